// ABOUTME: Row codec: tagged column values and typed field accessors.
// ABOUTME: Accessors never coerce across kinds; a mismatch is reported with the field name.
package storage

import (
	"fmt"
	"time"
)

// ValueKind is the storage class of a column value.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueInteger
	ValueReal
	ValueText
	ValueBlob
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueInteger:
		return "integer"
	case ValueReal:
		return "real"
	case ValueText:
		return "text"
	case ValueBlob:
		return "blob"
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// Value is one column value tagged with its kind. Only the field matching
// Kind is meaningful.
type Value struct {
	Kind ValueKind
	Int  int64
	Real float64
	Text string
	Blob []byte
}

// valueOf converts a value produced by the driver into a tagged Value.
func valueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{Kind: ValueNull}, nil
	case int64:
		return Value{Kind: ValueInteger, Int: x}, nil
	case float64:
		return Value{Kind: ValueReal, Real: x}, nil
	case string:
		return Value{Kind: ValueText, Text: x}, nil
	case []byte:
		return Value{Kind: ValueBlob, Blob: append([]byte(nil), x...)}, nil
	case bool:
		if x {
			return Value{Kind: ValueInteger, Int: 1}, nil
		}
		return Value{Kind: ValueInteger, Int: 0}, nil
	default:
		return Value{}, fmt.Errorf("unsupported column value type %T", v)
	}
}

// Row is one result record: column names in select order and their values.
type Row struct {
	columns []string
	values  map[string]Value
}

func newRow(columns []string, values []Value) Row {
	m := make(map[string]Value, len(columns))
	for i, c := range columns {
		m[c] = values[i]
	}
	return Row{columns: columns, values: m}
}

// Columns returns a copy of the column names in select order. Rows of one
// result set share the underlying slice.
func (r Row) Columns() []string { return append([]string(nil), r.columns...) }

// Get returns the value of a column.
func (r Row) Get(field string) (Value, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Timestamps are stored as epoch milliseconds and must fall in years 1..9999.
var (
	minTimestampMillis = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxTimestampMillis = time.Date(9999, 12, 31, 23, 59, 59, 999_000_000, time.UTC).UnixMilli()
)

func timestampFromMillis(ms int64) (time.Time, bool) {
	if ms < minTimestampMillis || ms > maxTimestampMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func millis(t time.Time) int64 { return t.UnixMilli() }

func (r Row) field(field string, want ValueKind) (Value, error) {
	v, ok := r.values[field]
	if !ok {
		return Value{}, fmt.Errorf("failed to get %q field: column missing", field)
	}
	if v.Kind != want {
		return Value{}, fmt.Errorf("failed to get %q field: want %s, got %s", field, want, v.Kind)
	}
	return v, nil
}

// Timestamp decodes an epoch-milliseconds integer column.
func (r Row) Timestamp(field string) (time.Time, error) {
	v, err := r.field(field, ValueInteger)
	if err != nil {
		return time.Time{}, err
	}
	ts, ok := timestampFromMillis(v.Int)
	if !ok {
		return time.Time{}, fmt.Errorf("failed to parse %q field: %d is not a valid timestamp", field, v.Int)
	}
	return ts, nil
}

// Float decodes a real column.
func (r Row) Float(field string) (float64, error) {
	v, err := r.field(field, ValueReal)
	if err != nil {
		return 0, err
	}
	return v.Real, nil
}

// Text decodes a text column.
func (r Row) Text(field string) (string, error) {
	v, err := r.field(field, ValueText)
	if err != nil {
		return "", err
	}
	return v.Text, nil
}

// Int decodes an integer column.
func (r Row) Int(field string) (int64, error) {
	v, err := r.field(field, ValueInteger)
	if err != nil {
		return 0, err
	}
	return v.Int, nil
}
