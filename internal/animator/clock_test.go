package animator

import (
	"testing"
	"time"
)

func TestTickerClockProgressClamps(t *testing.T) {
	c := NewTickerClock(60)
	c.SetDuration(2 * time.Second)

	c.SetProgress(1.5)
	if c.Progress() != 1 {
		t.Fatalf("expected clamp to 1, got %v", c.Progress())
	}
	c.SetProgress(-0.5)
	if c.Progress() != 0 {
		t.Fatalf("expected clamp to 0, got %v", c.Progress())
	}
}

func TestTickerClockSetProgressNotifies(t *testing.T) {
	c := NewTickerClock(60)
	c.SetDuration(time.Second)

	fired := 0
	detach := c.Attach(func() { fired++ })
	c.SetProgress(0.5)
	if fired != 1 {
		t.Fatalf("expected listener to fire on seek, got %d", fired)
	}

	detach()
	c.SetProgress(0.25)
	if fired != 1 {
		t.Fatalf("expected no fire after detach, got %d", fired)
	}
}

func TestTickerClockStepLoopsWhenConfigured(t *testing.T) {
	c := NewTickerClock(10) // 100ms ticks
	c.SetDuration(200 * time.Millisecond)
	c.Loop = true
	c.running = true

	c.step() // 0.5
	c.step() // 1.0 -> wraps
	if got := c.Progress(); got != 0 {
		t.Fatalf("expected wrap to 0, got %v", got)
	}
	if !c.running {
		t.Fatal("looping clock must keep running")
	}

	c.Loop = false
	c.step()
	c.step()
	if got := c.Progress(); got != 1 {
		t.Fatalf("expected clamp at 1, got %v", got)
	}
	if c.running {
		t.Fatal("non-looping clock must stop at the end")
	}
}
