package monitoring

import (
	"sync"
	"testing"
	"time"
)

// fakeNow returns a clock that advances by step on every call.
func fakeNow(step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := time.Unix(0, 0)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(step)
		return t
	}
}

func TestTickTiming(t *testing.T) {
	m := NewTickMonitor()
	m.now = fakeNow(5 * time.Millisecond)

	timer := m.StartTick()
	timer.EndTick()

	got := m.Metrics()
	if got.Ticks != 1 {
		t.Errorf("Expected 1 tick, got %d", got.Ticks)
	}
	if got.LastTick != 5*time.Millisecond {
		t.Errorf("Expected last tick 5ms, got %v", got.LastTick)
	}
	if got.AverageTick != 5*time.Millisecond {
		t.Errorf("Expected average 5ms, got %v", got.AverageTick)
	}
}

func TestRunningAverageAndPeak(t *testing.T) {
	m := NewTickMonitor()
	base := time.Unix(0, 0)

	for _, d := range []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 6 * time.Millisecond} {
		calls := 0
		m.now = func() time.Time {
			calls++
			if calls == 1 {
				return base
			}
			return base.Add(d)
		}
		m.StartTick().EndTick()
	}

	got := m.Metrics()
	if got.AverageTick != 4*time.Millisecond {
		t.Errorf("Expected average 4ms, got %v", got.AverageTick)
	}
	if got.PeakTick != 6*time.Millisecond {
		t.Errorf("Expected peak 6ms, got %v", got.PeakTick)
	}
	t.Logf("metrics: %+v", got)
}

func TestProfiledDraw(t *testing.T) {
	m := NewTickMonitor()
	m.now = fakeNow(3 * time.Millisecond)

	ran := false
	d := m.ProfiledDraw(func() { ran = true })
	if !ran {
		t.Fatal("draw function did not run")
	}
	if d != 3*time.Millisecond || m.Metrics().LastDraw != d {
		t.Errorf("Expected 3ms draw, got %v / %v", d, m.Metrics().LastDraw)
	}
}

func TestGauges(t *testing.T) {
	m := NewTickMonitor()
	m.SetActors(7)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.AddEvent()
		}()
	}
	wg.Wait()

	got := m.Metrics()
	if got.Actors != 7 || got.Events != 10 {
		t.Errorf("Expected 7 actors and 10 events, got %d and %d", got.Actors, got.Events)
	}
}

func TestCheckAlerts(t *testing.T) {
	m := NewTickMonitor()
	m.now = fakeNow(40 * time.Millisecond)
	m.StartTick().EndTick()

	if alerts := m.CheckAlerts(50 * time.Millisecond); len(alerts) != 0 {
		t.Errorf("Expected no alerts within budget, got %v", alerts)
	}
	alerts := m.CheckAlerts(25 * time.Millisecond)
	if len(alerts) != 1 || alerts[0].Type != "slow_tick" {
		t.Fatalf("Expected a slow_tick alert, got %v", alerts)
	}
	if alerts := m.CheckAlerts(0); len(alerts) != 0 {
		t.Errorf("A zero budget disables the check, got %v", alerts)
	}
}

func TestReset(t *testing.T) {
	m := NewTickMonitor()
	m.now = fakeNow(time.Millisecond)
	m.StartTick().EndTick()
	m.SetActors(3)
	m.AddEvent()

	m.Reset()
	got := m.Metrics()
	if got.Ticks != 0 || got.Actors != 0 || got.Events != 0 || got.AverageTick != 0 || got.PeakTick != 0 {
		t.Errorf("Expected cleared metrics, got %+v", got)
	}
}
