package reporter

import (
	"context"
	"time"
)

// Sleeper pauses between outbound Slack calls so the bot stays under the
// posting rate limit. It is injected so tests run without wall-clock delay.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

type realSleeper struct{}

// NewSleeper creates a Sleeper backed by the wall clock
func NewSleeper() Sleeper {
	return realSleeper{}
}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
