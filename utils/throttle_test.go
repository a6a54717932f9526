package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIDSetNoDuplicates(t *testing.T) {
	s := NewIDSet()

	if !s.Add("123") {
		t.Error("first Add should return true")
	}
	if s.Add("123") {
		t.Error("second Add of same id should return false")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
	if !s.Contains("123") || s.Contains("456") {
		t.Error("Contains reported the wrong membership")
	}
}

func TestThrottleSpacing(t *testing.T) {
	interval := 100 * time.Millisecond
	th := NewThrottle(interval)

	var ends, starts []time.Time
	for i := 0; i < 3; i++ {
		err := th.Do(context.Background(), func() error {
			starts = append(starts, time.Now())
			time.Sleep(10 * time.Millisecond)
			ends = append(ends, time.Now())
			return nil
		})
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
	}

	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(ends[i-1])
		if gap < interval {
			t.Errorf("gap between call %d and %d: %v < minimum %v", i-1, i, gap, interval)
		}
	}
}

func TestThrottlePassesError(t *testing.T) {
	th := NewThrottle(0)
	want := errors.New("boom")
	if err := th.Do(context.Background(), func() error { return want }); !errors.Is(err, want) {
		t.Errorf("got %v, want %v", err, want)
	}
}

func TestThrottleCancelledWait(t *testing.T) {
	th := NewThrottle(time.Hour)
	_ = th.Do(context.Background(), func() error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := th.Do(ctx, func() error { called = true; return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if called {
		t.Error("fn ran despite cancelled context")
	}
}
