package timeago

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "just now", ago: 10 * time.Second, want: "Just now"},
		{name: "under a minute boundary", ago: 59 * time.Second, want: "Just now"},
		{name: "minutes", ago: 15 * time.Minute, want: "15m ago"},
		{name: "hours", ago: 2 * time.Hour, want: "2h ago"},
		{name: "days", ago: 49 * time.Hour, want: "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(now.Add(-tt.ago), now)
			assert.Equal(t, tt.want, got)
		})
	}
}
