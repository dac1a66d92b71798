package session

import (
	"context"
	"time"
)

// RunSweeper periodically removes expired sessions until ctx is cancelled.
// Intended to run as a background goroutine owned by the composition root.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpired()
		}
	}
}
