// ABOUTME: Backup snapshots stored in Charm KV under uuid keys.
// ABOUTME: Push uploads a storage backup; pull fetches one back by ID prefix.
package charm

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/myhealth/internal/models"
)

// Snapshot is one uploaded backup.
type Snapshot struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Hostname  string         `json:"hostname,omitempty"`
	Backup    *models.Backup `json:"backup"`
}

// SnapshotInfo describes a snapshot without its payload.
type SnapshotInfo struct {
	ID        string
	CreatedAt time.Time
	Hostname  string
	Records   int
}

// ShortID returns the first 8 characters of the ID.
func (s SnapshotInfo) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

// PushBackup uploads b as a new snapshot.
func (c *Client) PushBackup(b *models.Backup) (*Snapshot, error) {
	if b == nil {
		return nil, fmt.Errorf("push backup: backup is nil")
	}

	hostname, _ := os.Hostname()
	snap := &Snapshot{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Hostname:  hostname,
		Backup:    b,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.set(BackupPrefix+snap.ID, data); err != nil {
		return nil, fmt.Errorf("push backup: %w", err)
	}
	return snap, nil
}

// ListBackups returns every snapshot, newest first.
func (c *Client) ListBackups() ([]SnapshotInfo, error) {
	entries, err := c.listByPrefix(BackupPrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	infos := make([]SnapshotInfo, 0, len(entries))
	for _, e := range entries {
		snap, err := unmarshalJSON[Snapshot](e.value)
		if err != nil {
			continue // Skip invalid entries
		}
		info := SnapshotInfo{
			ID:        extractID(e.key, BackupPrefix),
			CreatedAt: snap.CreatedAt,
			Hostname:  snap.Hostname,
		}
		if snap.Backup != nil {
			info.Records = snap.Backup.Len()
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// PullBackup fetches a snapshot by ID or unique ID prefix.
func (c *Client) PullBackup(idOrPrefix string) (*Snapshot, error) {
	data, err := c.getByIDPrefix(BackupPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("pull backup: %w", err)
	}

	snap, err := unmarshalJSON[Snapshot](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snap.Backup == nil {
		return nil, fmt.Errorf("snapshot %s has no backup data", idOrPrefix)
	}
	return snap, nil
}

// DeleteBackup removes a snapshot by ID or unique ID prefix.
func (c *Client) DeleteBackup(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(BackupPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	return nil
}
