package taskqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{attempt: 0, expected: 30 * time.Second},
		{attempt: 1, expected: 30 * time.Second},
		{attempt: 2, expected: time.Minute},
		{attempt: 3, expected: 2 * time.Minute},
		{attempt: 4, expected: 4 * time.Minute},
		{attempt: 8, expected: time.Hour},
		{attempt: 100, expected: time.Hour},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Backoff(tt.attempt), "attempt %d", tt.attempt)
	}
}
