package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventOptionsChanged carries the new depth options after a toggle or a
	// config reload.
	EventOptionsChanged = "options_changed"
	// EventLayersStripped carries a bool: true when layers were taken off.
	EventLayersStripped = "layers_stripped"
	// EventDepthReport carries a DepthReport.
	EventDepthReport = "depth_report"
)

// DepthReport is a per-frame summary of the sprite layer pass.
type DepthReport struct {
	Resolved int
	Written  int
	Cleared  int
	Skipped  int
	Dangling int
	Cycles   int
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns the queued events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
