package storeclient

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Default verification bounds. Freshly written objects may lag behind HEAD
// visibility on some providers; a handful of short, fixed-delay probes
// absorbs that window. Deliberately linear: no exponential growth, no jitter.
const (
	DefaultVerifyAttempts = 5
	DefaultVerifyDelay    = time.Second
)

// SleepFunc pauses between verification probes. Injectable so tests can
// simulate N attempts without real delay.
type SleepFunc func(ctx context.Context, d time.Duration)

// defaultSleep waits for d or until ctx is done, whichever comes first.
func defaultSleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// waitVisible polls the adapter's existence probe until it reports true or
// the attempt budget is exhausted. Probe errors count as failed attempts;
// the loop never returns an error, only false after the final probe.
func (c *Client) waitVisible(ctx context.Context, key string) bool {
	for attempt := 1; attempt <= c.verifyAttempts; attempt++ {
		ok, err := c.adapter.Exists(ctx, key)
		if err != nil {
			c.logger.Warn("Existence probe failed",
				zap.String("key", key),
				zap.Int("attempt", attempt),
				zap.Error(err))
		} else if ok {
			return true
		}

		if attempt == c.verifyAttempts || ctx.Err() != nil {
			break
		}
		c.sleep(ctx, c.verifyDelay)
	}
	return false
}
