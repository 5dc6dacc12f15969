package game

import "github.com/pthm-cable/polar/view"

// EventQueue buffers input edges for hosts that poll input at a different
// rate from drawing. The zero value is ready to use.
type EventQueue struct {
	events []view.Event
}

// Push appends one input edge.
func (q *EventQueue) Push(ev view.Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of buffered edges.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain applies every buffered edge in arrival order, empties the queue and
// reports whether any of them asked to quit. Call it between BeginFrame and Frame.
func (c *Context) Drain(q *EventQueue, host view.Host) (quit bool) {
	for _, ev := range q.events {
		if c.HandleEvent(ev, host) {
			quit = true
		}
	}
	q.events = q.events[:0]
	return quit
}
