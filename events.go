package markpad

import "sync"

// EventType identifies the kind of event emitted by the coordinator.
type EventType int

const (
	EventContentChanged EventType = iota + 1
	EventExportStarted
	EventExportSucceeded
	EventExportFailed
)

// Event is the structure passed to subscribers.
type Event struct {
	Type EventType
	Data any
}

// ContentChangedData accompanies EventContentChanged.
type ContentChangedData struct {
	Content string
}

// ExportSucceededData accompanies EventExportSucceeded.
type ExportSucceededData struct {
	Path string
}

// ExportFailedData accompanies EventExportFailed.
type ExportFailedData struct {
	Err error
}

// EventHandler is the function signature for event subscribers.
type EventHandler func(e Event)

// Dispatcher handles event subscriptions and synchronous dispatch.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType][]EventHandler)}
}

// Subscribe adds a handler for an event type.
func (d *Dispatcher) Subscribe(t EventType, h EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[t] = append(d.handlers[t], h)
}

// Dispatch sends an event to all handlers registered for its type.
// Handlers run synchronously; the slice is copied first so a handler
// subscribing during dispatch cannot corrupt iteration.
func (d *Dispatcher) Dispatch(t EventType, data any) {
	d.mu.RLock()
	handlers := d.handlers[t]
	snapshot := make([]EventHandler, len(handlers))
	copy(snapshot, handlers)
	d.mu.RUnlock()

	e := Event{Type: t, Data: data}
	for _, h := range snapshot {
		h(e)
	}
}
