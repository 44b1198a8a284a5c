package dispatcher

import (
	"sort"
	"time"
)

// Metrics collects dispatch statistics for one session.
type Metrics struct {
	actions map[Action]*ActionMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Action        Action
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    Status
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[Action]*ActionMetrics)}
}

// RecordDispatch records one applied action.
func (m *Metrics) RecordDispatch(a Action, d time.Duration, status Status) {
	m.totalDispatches++
	m.totalDuration += d
	if status == StatusError {
		m.totalErrors++
	}

	am := m.actions[a]
	if am == nil {
		am = &ActionMetrics{Action: a}
		m.actions[a] = am
	}
	am.DispatchCount++
	am.TotalDuration += d
	am.LastStatus = status
	if d > am.MaxDuration {
		am.MaxDuration = d
	}
	if status == StatusError {
		am.ErrorCount++
	}
}

// RecordPanic records a recovered panic.
func (m *Metrics) RecordPanic() {
	m.totalPanics++
}

// TotalDispatches returns the number of actions applied.
func (m *Metrics) TotalDispatches() uint64 {
	return m.totalDispatches
}

// TotalErrors returns the number of actions that failed.
func (m *Metrics) TotalErrors() uint64 {
	return m.totalErrors
}

// TotalPanics returns the number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	return m.totalPanics
}

// AverageDuration returns the average action duration.
func (m *Metrics) AverageDuration() time.Duration {
	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// ActionStats returns a copy of the metrics for a, or nil.
func (m *Metrics) ActionStats(a Action) *ActionMetrics {
	am := m.actions[a]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// TopActions returns the n most dispatched actions.
func (m *Metrics) TopActions(n int) []ActionMetrics {
	out := make([]ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		out = append(out, *am)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Action < out[j].Action
	})
	return out[:min(n, len(out))]
}

// AverageDuration returns the average duration for the action.
func (am ActionMetrics) AverageDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}
