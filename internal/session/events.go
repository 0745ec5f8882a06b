package session

// EventType identifies editing session events.
type EventType int

const (
	// EventImageLoaded fires when a load completes and editing can begin.
	// Data is the *Session.
	EventImageLoaded EventType = iota
	// EventLoadFailed fires when a load is aborted; the session keeps its
	// previous state. Data is the error.
	EventLoadFailed
	// EventMaskChanged fires after every stamp, undo, redo, or reset.
	EventMaskChanged
	// EventHistoryChanged fires when undo/redo availability may have
	// changed.
	EventHistoryChanged
	// EventBackgroundChanged fires when the background variant switches.
	EventBackgroundChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// emit triggers all listeners for the specified event type. Never call
// it with the session lock held.
func (s *Session) emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}
