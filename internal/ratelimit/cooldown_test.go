package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"ragjudge/internal/testutil"
)

// TestCooldownDue verifies pauses fall after each full batch but never after the last item.
func TestCooldownDue(t *testing.T) {
	c := Cooldown{Every: 2, Seconds: 5}
	var due []int
	for i := 1; i <= 5; i++ {
		if c.Due(i, 5) {
			due = append(due, i)
		}
	}
	if diff := cmp.Diff([]int{2, 4}, due); diff != "" {
		t.Fatalf("due mismatch (-want +got):\n%s", diff)
	}
	if (Cooldown{Every: 2, Seconds: 5}).Due(4, 4) {
		t.Fatalf("expected no pause after the final item")
	}
	if (Cooldown{Every: 2, Seconds: 0}).Due(2, 5) {
		t.Fatalf("expected zero-second cooldown to be skipped")
	}
}

// TestCooldownCheckpointIgnoresSeconds verifies batch boundaries exist without a pause.
func TestCooldownCheckpointIgnoresSeconds(t *testing.T) {
	c := Cooldown{Every: 2}
	var points []int
	for i := 1; i <= 5; i++ {
		if c.Checkpoint(i, 5) {
			points = append(points, i)
		}
	}
	if diff := cmp.Diff([]int{2, 4}, points); diff != "" {
		t.Fatalf("checkpoint mismatch (-want +got):\n%s", diff)
	}
	if c.Checkpoint(4, 4) || (Cooldown{}).Checkpoint(1, 5) {
		t.Fatalf("expected no checkpoint after the final item or without a batch size")
	}
}

// TestCooldownWaitTicksEachSecond verifies the countdown and per-second sleeps.
func TestCooldownWaitTicksEachSecond(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	c := Cooldown{Every: 1, Seconds: 3, Sleep: clock.Sleep}
	var ticks []int
	if err := c.Wait(testutil.Context(t, 0), func(remaining int) { ticks = append(ticks, remaining) }); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if diff := cmp.Diff([]int{3, 2, 1, 0}, ticks); diff != "" {
		t.Fatalf("ticks mismatch (-want +got):\n%s", diff)
	}
	if len(clock.Sleeps()) != 3 || clock.Now().Unix() != 3 {
		t.Fatalf("expected three one-second sleeps, got %v", clock.Sleeps())
	}
}

// TestCooldownWaitCancelled verifies cancellation interrupts the pause.
func TestCooldownWaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Cooldown{Every: 1, Seconds: 70}.Wait(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
