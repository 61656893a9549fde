package session

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by stores that can drop entries nobody has saved
// since cutoff. Browsers stop sending the cookie after its max age, so such
// rows can never be loaded again.
type Sweeper interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweep removes sessions older than maxAge once immediately and then every
// interval until ctx is done. Stores without DeleteStale are left alone.
func Sweep(ctx context.Context, store Store, maxAge, interval time.Duration, logger *slog.Logger) {
	sweeper, ok := store.(Sweeper)
	if !ok {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	run := func() {
		n, err := sweeper.DeleteStale(ctx, time.Now().Add(-maxAge))
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("session sweep failed", "err", err)
			}
			return
		}
		if n > 0 {
			logger.Info("removed expired sessions", "count", n)
		}
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
