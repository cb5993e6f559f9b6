package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls        int
	errors       int
	authFailures int
	lastLatency  time.Duration
}

// Recorder captures lightweight, in-memory metrics about backend
// operations. It is intentionally simple so it can be swapped for a
// real backend later.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*operationStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*operationStats),
		otel:  otel,
	}
}

// RecordOperation increments counters for a backend call and stores the
// last observed latency.
func (r *Recorder) RecordOperation(operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(operation)
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordOperation(operation, duration, err)
	}
}

// RecordAuthFailure tracks an authentication failure for an operation,
// local precondition failures included.
func (r *Recorder) RecordAuthFailure(operation string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(operation).authFailures++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAuthFailure(operation)
	}
}

// Snapshot is a copy of the current stats for one operation.
type Snapshot struct {
	Calls        int
	Errors       int
	AuthFailures int
	LastLatency  time.Duration
}

func (r *Recorder) Snapshot(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[operation]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:        stats.calls,
		Errors:       stats.errors,
		AuthFailures: stats.authFailures,
		LastLatency:  stats.lastLatency,
	}
}

// OperationCalls returns the total attempts recorded for an operation.
func (r *Recorder) OperationCalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// OperationErrors returns the total failed attempts recorded for an operation.
func (r *Recorder) OperationErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// AuthFailures returns the auth failures recorded for an operation.
func (r *Recorder) AuthFailures(operation string) int {
	return r.Snapshot(operation).AuthFailures
}

// LastLatency returns the last recorded latency for an operation.
func (r *Recorder) LastLatency(operation string) time.Duration {
	return r.Snapshot(operation).LastLatency
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(operation string) *operationStats {
	stats, ok := r.stats[operation]
	if !ok {
		stats = &operationStats{}
		r.stats[operation] = stats
	}
	return stats
}
