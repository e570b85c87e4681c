package client

import "sync"

// Session tracks the identity currently signed in. Listeners registered with
// OnChange are told exactly once about every actual change.
type Session struct {
	mu        sync.Mutex
	current   *Identity
	listeners []listener
}

type listener func(identity Identity, present bool)

// NewSession returns a session with no identity.
func NewSession() *Session {
	return &Session{}
}

// Current returns the established identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// OnChange registers fn to be called after every change of identity.
func (s *Session) OnChange(fn func(identity Identity, present bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Establish makes id the current identity. It reports false, without
// notifying anyone, when the same user is already established; only the
// token is refreshed then.
func (s *Session) Establish(id Identity) bool {
	s.mu.Lock()
	if s.current != nil && s.current.UserID == id.UserID {
		s.current = &id
		s.mu.Unlock()
		return false
	}
	s.current = &id
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(id, true)
	}
	return true
}

// Clear drops the current identity. It reports false when none was set.
func (s *Session) Clear() bool {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return false
	}
	s.current = nil
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(Identity{}, false)
	}
	return true
}

func (s *Session) snapshotListeners() []listener {
	return append([]listener(nil), s.listeners...)
}
