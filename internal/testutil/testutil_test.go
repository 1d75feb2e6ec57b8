package testutil

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	AssertEqual(t, clock.Now(), start)

	clock.Advance(time.Minute)
	AssertEqual(t, clock.Now(), start.Add(time.Minute))

	later := start.Add(time.Hour)
	clock.Set(later)
	AssertEqual(t, clock.Now(), later)
}

func TestMockClockZeroStart(t *testing.T) {
	clock := NewMockClock(time.Time{})
	if clock.Now().IsZero() {
		t.Error("zero start time should default to the current time")
	}
}

func TestEventually(t *testing.T) {
	var flag atomic.Bool
	go func() {
		time.Sleep(10 * time.Millisecond)
		flag.Store(true)
	}()

	Eventually(t, time.Second, flag.Load)
}
