package state

// Event names a notification on the Bus.
type Event string

const (
	// EventDrawingChanged fires when committed marks or the mark being
	// dragged change.
	EventDrawingChanged Event = "drawing-changed"
	// EventToolMoved fires when the cursor preview moves or changes.
	EventToolMoved Event = "tool-moved"
)

type Handler func()

// Bus is a synchronous publish/subscribe channel. Publish runs every handler
// subscribed to the event, in subscription order, before returning.
type Bus struct {
	handlers map[Event][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Event][]Handler)}
}

func (b *Bus) Subscribe(e Event, h Handler) {
	b.handlers[e] = append(b.handlers[e], h)
}

// Publish delivers e. Handlers subscribed while e is being delivered are
// first called on the next Publish. Publishing on a nil Bus does nothing.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	for _, h := range b.handlers[e] {
		h()
	}
}
