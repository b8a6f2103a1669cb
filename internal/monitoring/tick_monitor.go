// Package monitoring measures how long town ticks and frames take.
package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// TickMonitor tracks tick and draw timings plus a few town gauges. Timers may
// be ended from any goroutine; the transport reports events concurrently.
type TickMonitor struct {
	tickCount atomic.Uint64
	tickTime  atomic.Uint64 // nanoseconds, last tick
	drawTime  atomic.Uint64 // nanoseconds, last frame

	actors atomic.Int32
	events atomic.Uint64

	mutex       sync.RWMutex
	avgTickTime float64 // nanoseconds
	peakTick    time.Duration
	startTime   time.Time

	now func() time.Time
}

func NewTickMonitor() *TickMonitor {
	return &TickMonitor{
		startTime: time.Now(),
		now:       time.Now,
	}
}

// TickTimer measures one tick.
type TickTimer struct {
	monitor   *TickMonitor
	startTime time.Time
}

// StartTick begins tick timing
func (m *TickMonitor) StartTick() *TickTimer {
	return &TickTimer{monitor: m, startTime: m.now()}
}

// EndTick records the tick and folds it into the running average.
func (tt *TickTimer) EndTick() {
	m := tt.monitor
	d := m.now().Sub(tt.startTime)
	m.tickTime.Store(uint64(d.Nanoseconds()))
	n := m.tickCount.Add(1)

	m.mutex.Lock()
	m.avgTickTime += (float64(d.Nanoseconds()) - m.avgTickTime) / float64(n)
	if d > m.peakTick {
		m.peakTick = d
	}
	m.mutex.Unlock()
}

// ProfiledDraw times a frame draw.
func (m *TickMonitor) ProfiledDraw(fn func()) time.Duration {
	start := m.now()
	fn()
	d := m.now().Sub(start)
	m.drawTime.Store(uint64(d.Nanoseconds()))
	return d
}

func (m *TickMonitor) SetActors(n int) { m.actors.Store(int32(n)) }

// AddEvent counts one transport event.
func (m *TickMonitor) AddEvent() { m.events.Add(1) }

// Metrics is a point-in-time view of the monitor.
type Metrics struct {
	Ticks       uint64
	LastTick    time.Duration
	AverageTick time.Duration
	PeakTick    time.Duration
	LastDraw    time.Duration
	Actors      int32
	Events      uint64
	Uptime      time.Duration
	MemoryMB    uint64
	Goroutines  int
}

func (m *TickMonitor) Metrics() Metrics {
	m.mutex.RLock()
	avg, peak, start := m.avgTickTime, m.peakTick, m.startTime
	m.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Metrics{
		Ticks:       m.tickCount.Load(),
		LastTick:    time.Duration(m.tickTime.Load()),
		AverageTick: time.Duration(avg),
		PeakTick:    peak,
		LastDraw:    time.Duration(m.drawTime.Load()),
		Actors:      m.actors.Load(),
		Events:      m.events.Load(),
		Uptime:      m.now().Sub(start),
		MemoryMB:    memStats.Alloc / 1024 / 1024,
		Goroutines:  runtime.NumGoroutine(),
	}
}

// Alert is a performance warning.
type Alert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
}

// CheckAlerts reports a slow tick when the last one took longer than budget,
// the time one tick may take at the configured rate.
func (m *TickMonitor) CheckAlerts(budget time.Duration) []Alert {
	var alerts []Alert
	if last := time.Duration(m.tickTime.Load()); budget > 0 && last > budget {
		alerts = append(alerts, Alert{
			Type:      "slow_tick",
			Message:   "Tick took longer than its budget",
			Value:     float64(last.Milliseconds()),
			Threshold: float64(budget.Milliseconds()),
		})
	}
	return alerts
}

// Reset clears every counter.
func (m *TickMonitor) Reset() {
	m.tickCount.Store(0)
	m.tickTime.Store(0)
	m.drawTime.Store(0)
	m.actors.Store(0)
	m.events.Store(0)

	m.mutex.Lock()
	m.avgTickTime = 0
	m.peakTick = 0
	m.startTime = m.now()
	m.mutex.Unlock()
}
