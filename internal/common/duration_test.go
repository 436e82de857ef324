package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDurationRemaining(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{duration: 0, expected: "0 seconds"},
		{duration: -time.Hour, expected: "0 seconds"},
		{duration: 500 * time.Millisecond, expected: "0 seconds"},
		{duration: time.Second, expected: "1 second"},
		{duration: 90 * time.Second, expected: "1 minute, 30 seconds"},
		{duration: 2 * time.Hour, expected: "2 hours"},
		{duration: 25*time.Hour + 3*time.Minute, expected: "1 day, 1 hour, 3 minutes"},
		{duration: 72 * time.Hour, expected: "3 days"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDurationRemaining(tt.duration))
		})
	}
}
