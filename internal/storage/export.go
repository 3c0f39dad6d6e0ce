// ABOUTME: Backup file encoding for export and import.
// ABOUTME: Supports JSON and YAML; both carry the same versioned envelope.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/myhealth/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export and checked on import.
const ExportVersion = "1.0"

// Format is a backup file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (use json or yaml)", s)
}

// ExportData is the on-disk backup file.
type ExportData struct {
	Version    string         `json:"version" yaml:"version"`
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Tool       string         `json:"tool" yaml:"tool"`
	Data       *models.Backup `json:"data" yaml:"data"`
}

// EncodeBackup wraps b in an export envelope and encodes it.
func EncodeBackup(b *models.Backup, format Format) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("encode backup: backup is nil")
	}

	data := ExportData{
		Version:    ExportVersion,
		ExportedAt: time.UnixMilli(b.Timestamp).UTC(),
		Tool:       "myhealth",
		Data:       b,
	}

	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal JSON: %w", err)
		}
		return out, nil
	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal YAML: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("encode backup: unknown format %q", format)
}

// DecodeBackup parses an export produced by EncodeBackup. Undecodable input
// and unknown versions fail with KindMalformedData.
func DecodeBackup(raw []byte, format Format) (*models.Backup, error) {
	const op = "decode backup"

	var data ExportData
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, newError(KindMalformedData, op, fmt.Errorf("unmarshal JSON: %w", err))
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, newError(KindMalformedData, op, fmt.Errorf("unmarshal YAML: %w", err))
		}
	default:
		return nil, fmt.Errorf("%s: unknown format %q", op, format)
	}

	if data.Version != ExportVersion {
		return nil, newError(KindMalformedData, op, fmt.Errorf("unsupported version %q", data.Version))
	}
	if data.Data == nil {
		return nil, newError(KindMalformedData, op, fmt.Errorf("missing data section"))
	}
	return data.Data, nil
}
