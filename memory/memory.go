// Package memory provides the bounded interaction log kept by agents: a
// fixed-capacity, FIFO-evicted rolling window over opaque records. The log
// never inspects record contents and never rejects a record, including nil.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Log is a capacity-bounded, insertion-ordered record log. When an append
// pushes the log over capacity, the oldest records are dropped so that exactly
// the trailing capacity records survive, in their original relative order.
//
// Concurrency: a single mutex guards the record slice, so one Log may be
// shared across goroutines.
type Log struct {
	mu       sync.Mutex
	capacity int
	records  []any
}

// NewLog constructs an empty Log bounded to capacity records. A non-positive
// capacity is coerced to 1 so that Add always retains at least the newest record.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{capacity: capacity}
}

// Add appends record and then enforces the capacity bound. Any value is
// accepted, including nil. Add never fails.
func (l *Log) Add(record any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	// Trim only when over, to exactly capacity. A single append grows the log
	// by at most one, so one trim step suffices.
	if len(l.records) > l.capacity {
		trimmed := make([]any, l.capacity)
		copy(trimmed, l.records[len(l.records)-l.capacity:])
		l.records = trimmed
	}
}

// All returns a copy of the current records in chronological order.
func (l *Log) All() []any {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]any, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records currently retained.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Capacity returns the configured bound.
func (l *Log) Capacity() int { return l.capacity }

// NewRecord builds a conventional interaction record from a query and an
// execution result, stamped with a unique id and the current time. The log
// itself treats records as opaque; this is a convenience for callers that
// want a consistent shape.
func NewRecord(query string, result map[string]any) map[string]any {
	return map[string]any{
		"id":        uuid.NewString(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"query":     query,
		"result":    result,
	}
}
