package ecs

import "github.com/milk9111/lockon/lockon"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventLockOnTargetChanged = "lockon_target_changed"
	EventLockOnStateChanged  = "lockon_state_changed"
	EventDamaged             = "damaged"
	EventDied                = "died"
)

// LockOnTargetChanged mirrors a controller target notification. Target is
// zero when the lock was released.
type LockOnTargetChanged struct {
	Owner  Entity
	Target Entity
}

type LockOnStateChanged struct {
	Owner Entity
	State lockon.State
}

type Damaged struct {
	Entity    Entity
	Amount    float64
	Remaining float64
}

type Died struct {
	Entity Entity
}

// EventQueue is a simple FIFO queue. The world clears it at the end of every
// update, so events are visible to the systems that run after the producer.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Each calls fn for every queued event of type typ without consuming it.
func (q *EventQueue) Each(typ string, fn func(Event)) {
	if q == nil {
		return
	}
	for _, evt := range q.items {
		if evt.Type == typ {
			fn(evt)
		}
	}
}

// Len reports how many events are queued.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
