package tunemill

// Event carries one engine notification. Which fields are meaningful
// depends on Type.
type Event struct {
	Type EventType

	// Completion fields (EventCompletion)
	Handle     Handle
	Target     TargetID
	Payload    int
	HasPayload bool

	// Transition fields (EventTransition)
	From AppState
	To   AppState

	// Diagnostic fields (EventDiagnostic): one of ErrInvalidStateRequest,
	// ErrRedundantStateRequest, wrapped with detail.
	Err error
}

// EventSink receives every event the engine drains, in queue order. It is
// fire-and-forget: no acknowledgement is expected.
type EventSink interface {
	EmitEvent(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(event Event)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event Event) { f(event) }

// EventQueue is an ordered FIFO drained synchronously once per tick.
// Events pushed while draining are delivered in the same drain.
type EventQueue struct {
	events []Event
	head   int
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop removes and returns the oldest event.
func (q *EventQueue) Pop() (Event, bool) {
	if q.head >= len(q.events) {
		return Event{}, false
	}
	e := q.events[q.head]
	q.events[q.head] = Event{}
	q.head++
	if q.head == len(q.events) {
		q.events = q.events[:0]
		q.head = 0
	}
	return e, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return len(q.events) - q.head }

// Drain pops every pending event, including ones pushed by fn, and passes
// each to fn in order.
func (q *EventQueue) Drain(fn func(Event)) {
	for {
		e, ok := q.Pop()
		if !ok {
			return
		}
		fn(e)
	}
}
