// ABOUTME: Tests for the row codec's typed accessors.
// ABOUTME: Covers missing columns, kind mismatches, and timestamp bounds.
package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Value{Kind: ValueNull}},
		{"integer", int64(42), Value{Kind: ValueInteger, Int: 42}},
		{"real", 1.5, Value{Kind: ValueReal, Real: 1.5}},
		{"text", "abc", Value{Kind: ValueText, Text: "abc"}},
		{"blob", []byte{1, 2}, Value{Kind: ValueBlob, Blob: []byte{1, 2}}},
		{"true", true, Value{Kind: ValueInteger, Int: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := valueOf(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := valueOf(time.Now())
	require.Error(t, err)
}

func TestValueOfCopiesBlob(t *testing.T) {
	src := []byte{1, 2, 3}
	v, err := valueOf(src)
	require.NoError(t, err)

	src[0] = 9
	require.Equal(t, byte(1), v.Blob[0])
}

func TestRowAccessors(t *testing.T) {
	row := newRow(
		[]string{"ts", "value", "name", "count", "empty"},
		[]Value{
			{Kind: ValueInteger, Int: 1_700_000_000_123},
			{Kind: ValueReal, Real: 82.5},
			{Kind: ValueText, Text: "apple"},
			{Kind: ValueInteger, Int: 7},
			{Kind: ValueNull},
		},
	)

	require.Equal(t, []string{"ts", "value", "name", "count", "empty"}, row.Columns())

	ts, err := row.Timestamp("ts")
	require.NoError(t, err)
	require.Equal(t, time.UnixMilli(1_700_000_000_123).UTC(), ts)

	f, err := row.Float("value")
	require.NoError(t, err)
	require.Equal(t, 82.5, f)

	s, err := row.Text("name")
	require.NoError(t, err)
	require.Equal(t, "apple", s)

	n, err := row.Int("count")
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	v, ok := row.Get("empty")
	require.True(t, ok)
	require.Equal(t, ValueNull, v.Kind)
}

func TestRowAccessorsRejectMismatch(t *testing.T) {
	row := newRow(
		[]string{"number_as_text", "int", "null"},
		[]Value{
			{Kind: ValueText, Text: "1.5"},
			{Kind: ValueInteger, Int: 3},
			{Kind: ValueNull},
		},
	)

	_, err := row.Float("number_as_text")
	require.ErrorContains(t, err, `"number_as_text"`)

	_, err = row.Float("int")
	require.ErrorContains(t, err, "want real, got integer")

	_, err = row.Text("null")
	require.ErrorContains(t, err, "got null")

	_, err = row.Timestamp("number_as_text")
	require.Error(t, err)

	_, err = row.Text("missing")
	require.ErrorContains(t, err, `"missing"`)
}

func TestRowTimestampBounds(t *testing.T) {
	tests := []struct {
		name    string
		ms      int64
		wantErr bool
	}{
		{"epoch", 0, false},
		{"year 1", minTimestampMillis, false},
		{"year 9999", maxTimestampMillis, false},
		{"before year 1", minTimestampMillis - 1, true},
		{"after year 9999", maxTimestampMillis + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := newRow([]string{"ts"}, []Value{{Kind: ValueInteger, Int: tt.ms}})
			_, err := row.Timestamp("ts")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
