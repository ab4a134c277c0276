// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03-01", want: "2024-03-01T00:00:00"},
		{in: "2024-03-01T17:30:00", want: "2024-03-01T17:30:00"},
		{in: " 2024-03-01 ", want: "2024-03-01T00:00:00"},
		{in: "2024-13-01", wantErr: true},
		{in: "2024-03-01 17:30:00", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewTimestampDropsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := NewTimestamp(time.Date(2024, 3, 1, 8, 15, 0, 500, loc))
	assert.Equal(t, "2024-03-01T08:15:00", ts.String())
	assert.Equal(t, time.UTC, ts.Location())
}

func TestTaskJSONShape(t *testing.T) {
	deadline, err := ParseTimestamp("2024-03-01")
	require.NoError(t, err)

	data, err := json.Marshal(Task{Text: "Buy milk ", Deadline: &deadline})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Buy milk ","done":false,"deadline":"2024-03-01T00:00:00","completed_at":null}`, string(data))

	var back Task
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.HasDeadline())
	assert.False(t, back.HasCompletion())
	assert.True(t, deadline.Equal(back.Deadline.Time))
}

func TestTimestampUnmarshalJSONRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &ts))
}
