package service

import (
	"sync"
)

// Event is a progress notification for one job.
type Event struct {
	JobID    string
	Status   string
	Progress int
	Stage    string
	Message  string
}

type EventPublisher interface {
	Publish(jobID string, event Event)
}

// EventBus fans job events out to in-process subscribers. Slow subscribers miss events
// rather than blocking the worker.
type EventBus struct {
	subscribers map[string][]chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

func (eb *EventBus) Subscribe(jobID string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 16)
	eb.subscribers[jobID] = append(eb.subscribers[jobID], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(jobID string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[jobID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[jobID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(eb.subscribers[jobID]) == 0 {
		delete(eb.subscribers, jobID)
	}
}

func (eb *EventBus) Publish(jobID string, event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	event.JobID = jobID
	for _, ch := range eb.subscribers[jobID] {
		select {
		case ch <- event:
		default:
		}
	}
}
