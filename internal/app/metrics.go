package app

import (
	"fmt"
	"time"
)

// Metrics tracks event loop timing. It is owned by the loop goroutine.
type Metrics struct {
	startTime time.Time

	// Input handling
	eventCount   uint64
	eventTotalNs int64

	// Recompute and draw
	renderCount   uint64
	renderTotalNs int64
	renderMaxNs   int64
	linesRetagged uint64

	reloads uint64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records the time spent dispatching one input event.
func (m *Metrics) RecordEvent(d time.Duration) {
	m.eventCount++
	m.eventTotalNs += d.Nanoseconds()
}

// RecordRender records one update-and-draw cycle and the number of lines
// the highlighter re-tagged during it.
func (m *Metrics) RecordRender(d time.Duration, retagged int) {
	ns := d.Nanoseconds()
	m.renderCount++
	m.renderTotalNs += ns
	m.renderMaxNs = max(m.renderMaxNs, ns)
	m.linesRetagged += uint64(retagged)
}

// RecordReload records a configuration reload.
func (m *Metrics) RecordReload() {
	m.reloads++
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgEvent, avgRender int64
	if m.eventCount > 0 {
		avgEvent = m.eventTotalNs / int64(m.eventCount)
	}
	if m.renderCount > 0 {
		avgRender = m.renderTotalNs / int64(m.renderCount)
	}
	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		EventCount:    m.eventCount,
		AvgEventNs:    avgEvent,
		RenderCount:   m.renderCount,
		AvgRenderNs:   avgRender,
		MaxRenderNs:   m.renderMaxNs,
		LinesRetagged: m.linesRetagged,
		Reloads:       m.reloads,
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	EventCount    uint64
	AvgEventNs    int64
	RenderCount   uint64
	AvgRenderNs   int64
	MaxRenderNs   int64
	LinesRetagged uint64
	Reloads       uint64
}

// String formats the snapshot for the log.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s events=%d avg_event=%s frames=%d avg_frame=%s max_frame=%s retagged=%d reloads=%d",
		s.Uptime.Round(time.Millisecond), s.EventCount, time.Duration(s.AvgEventNs),
		s.RenderCount, time.Duration(s.AvgRenderNs), time.Duration(s.MaxRenderNs),
		s.LinesRetagged, s.Reloads)
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
