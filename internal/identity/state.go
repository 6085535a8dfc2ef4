package identity

import (
	"sync"

	"github.com/kharidoapp/checkout-engine/internal/models"
)

// State is the process-wide current-principal cell. Every component reads
// the signed-in identity through it instead of keeping its own copy, and
// interested parties subscribe to changes the way a view would watch an
// auth-change stream.
type State struct {
	mu      sync.RWMutex
	current *models.Principal
	nextID  int
	subs    map[int]func(*models.Principal)
}

func NewState() *State {
	return &State{subs: make(map[int]func(*models.Principal))}
}

// Current returns the signed-in principal, or nil when nobody is.
func (s *State) Current() *models.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Set records the principal and notifies subscribers when the identity
// actually changed. Re-setting the same principal is silent.
func (s *State) Set(p *models.Principal) {
	s.mu.Lock()

	if samePrincipal(s.current, p) {
		s.mu.Unlock()
		return
	}

	s.current = p

	callbacks := make([]func(*models.Principal), 0, len(s.subs))
	for _, cb := range s.subs {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(p)
	}
}

// Subscribe registers a callback for identity changes and returns its
// unsubscribe handle. Unsubscribing twice is harmless.
func (s *State) Subscribe(cb func(*models.Principal)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = cb
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func samePrincipal(a, b *models.Principal) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.ID == b.ID
}
