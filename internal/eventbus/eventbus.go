// Package eventbus provides a small fan-out bus for optimization pipeline
// events. Observers such as loggers or metrics collectors subscribe without
// coupling the pipeline to them.
package eventbus

import "sync"

// StageEvent describes one step of a pipeline run.
type StageEvent struct {
	// Stage is the pipeline step, e.g. "policy_run", "validation",
	// "selection".
	Stage string
	// Policy labels the schedule the event refers to, when applicable.
	Policy string
	// Detail carries a short human-readable note.
	Detail string
	// Err is set when the stage failed.
	Err error
}

// Bus is a publish/subscribe bus for stage events. Delivery is non-blocking:
// slow subscribers lose events rather than stalling the pipeline.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan StageEvent
	closed bool
}

// New creates an empty Bus.
func New() *Bus { return &Bus{} }

// Publish sends the event to all subscribers without blocking.
func (b *Bus) Publish(e StageEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan StageEvent {
	ch := make(chan StageEvent, 8)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan StageEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes all subscriber channels and clears the list.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()
}
