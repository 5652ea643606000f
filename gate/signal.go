package gate

import "sync"

// Connectable is the native shape of an event source. Connect registers a
// handler and returns a subscription ID that Disconnect accepts.
// Disconnecting an unknown ID must be a no-op.
type Connectable interface {
	Connect(handler func(args ...any)) (id uint64)
	Disconnect(id uint64)
}

// SubscribeFunc is the functional shape of an event source. Calling it
// registers the handler and returns the matching cancel function.
type SubscribeFunc func(handler func(args ...any)) (cancel func())

// A Signal is a minimal in-process event source. Handlers connected to the
// signal are invoked, in connection order, every time Emit is called. It is
// the native source form that OnEvent resolves without reflection; engines
// with their own event types adapt to it or to SubscribeFunc.
type Signal struct {
	name string

	lock     sync.Mutex
	nextID   uint64
	order    []uint64
	handlers map[uint64]func(args ...any)
}

// NewSignal creates a named signal with no handlers connected.
func NewSignal(name string) *Signal {
	NameMustBeValid(name)

	return &Signal{
		name:     name,
		handlers: make(map[uint64]func(args ...any)),
	}
}

// Name returns the name of the signal.
func (s *Signal) Name() string {
	return s.name
}

// Connect registers a handler and returns its subscription ID.
func (s *Signal) Connect(handler func(args ...any)) uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.nextID++
	id := s.nextID
	s.handlers[id] = handler
	s.order = append(s.order, id)

	return id
}

// Disconnect removes a subscription. Disconnecting an unknown ID is a
// no-op.
func (s *Signal) Disconnect(id uint64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.handlers, id)

	for i, n := range s.order {
		if n == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Emit invokes all connected handlers with the given arguments. Handlers
// run on the emitting goroutine, outside the signal's lock, so a handler
// may connect or disconnect without deadlocking.
func (s *Signal) Emit(args ...any) {
	s.lock.Lock()
	snapshot := make([]func(args ...any), 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, s.handlers[id])
	}
	s.lock.Unlock()

	for _, handler := range snapshot {
		handler(args...)
	}
}

// NumHandlers returns the number of connected handlers.
func (s *Signal) NumHandlers() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.handlers)
}
