package taskqueue

import "time"

const (
	baseRetryDelay = 30 * time.Second
	maxRetryDelay  = time.Hour
)

// Backoff is the delay before re-running a job after its attempt'th
// failure: 30s doubled per attempt, capped at an hour.
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseRetryDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}
