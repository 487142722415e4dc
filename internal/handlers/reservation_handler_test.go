package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestModifiable(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	lead := 2 * time.Hour

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"well before the window", now.Add(48 * time.Hour), true},
		{"exactly at the boundary", now.Add(lead), true},
		{"one second inside the window", now.Add(lead - time.Second), false},
		{"starting now", now, false},
		{"already in the past", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Modifiable(tt.date, now, lead))
		})
	}
}
