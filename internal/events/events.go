// Package events carries processing failures from the service layer to the
// host, which decides how to present them.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// EventType classifies a reported failure
type EventType string

// Event types
const (
	TRFProcessError     EventType = "TRF_PROCESS_ERROR"
	FileValidationError EventType = "FILE_VALIDATION_ERROR"
	FilterDesignError   EventType = "FILTER_DESIGN_ERROR"
	ExportError         EventType = "EXPORT_ERROR"
)

// Event is a single failure notification
type Event struct {
	Type EventType
	// MeasurementID or design ID the failure belongs to, if any
	SubjectID string
	Err       error
	At        time.Time
}

// Notifier fans failure events out on a buffered channel.
// Publish never blocks: events are dropped and counted when the buffer is full.
type Notifier struct {
	ch      chan Event
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

// NewNotifier creates a notifier with the given buffer size
func NewNotifier(buffer int) *Notifier {
	if buffer < 0 {
		buffer = 0
	}
	return &Notifier{ch: make(chan Event, buffer)}
}

// Publish queues an event. It reports false when the event was dropped.
func (n *Notifier) Publish(eventType EventType, subjectID string, err error) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.dropped.Add(1)
		return false
	}

	select {
	case n.ch <- Event{Type: eventType, SubjectID: subjectID, Err: err, At: time.Now()}:
		return true
	default:
		n.dropped.Add(1)
		return false
	}
}

// Events returns the receive side of the notifier
func (n *Notifier) Events() <-chan Event {
	return n.ch
}

// Dropped returns how many events could not be queued
func (n *Notifier) Dropped() uint64 {
	return n.dropped.Load()
}

// Close stops accepting events and closes the channel once
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	close(n.ch)
}
