package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_MarshalJSON(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"07-03-2025"`, string(data))
}

func TestDate_MarshalJSON_Zero(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "day-first format", input: `"07-03-2025"`, want: "07-03-2025"},
		{name: "ISO format", input: `"2025-03-07"`, want: "07-03-2025"},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "garbage", input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.True(t, d.IsZero())
			} else {
				assert.Equal(t, tt.want, d.String())
			}
		})
	}
}

func TestDate_Before(t *testing.T) {
	earlier := NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewDate(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.False(t, earlier.Before(earlier))
}
