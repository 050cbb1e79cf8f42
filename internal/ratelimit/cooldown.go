// Package ratelimit paces batch runs with fixed cooldown pauses.
package ratelimit

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Cooldown pauses a run after every Every completed items.
type Cooldown struct {
	Every   int
	Seconds int
	Sleep   SleepFunc
}

// Checkpoint reports whether the completed-th item of total closes a batch.
// The final item never does; the run ends there instead.
func (c Cooldown) Checkpoint(completed, total int) bool {
	return c.Every > 0 && completed > 0 && completed%c.Every == 0 && completed < total
}

// Due reports whether a pause follows the completed-th item of total: a
// checkpoint with a positive cooldown.
func (c Cooldown) Due(completed, total int) bool {
	return c.Seconds > 0 && c.Checkpoint(completed, total)
}

// Wait sleeps one second at a time, calling tick with the seconds remaining before each step.
func (c Cooldown) Wait(ctx context.Context, tick func(remaining int)) error {
	sleep := c.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	for remaining := c.Seconds; remaining > 0; remaining-- {
		if tick != nil {
			tick(remaining)
		}
		if err := sleep(ctx, time.Second); err != nil {
			return err
		}
	}
	if tick != nil {
		tick(0)
	}
	return nil
}

// Sleep blocks for d unless ctx is cancelled first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
