package store

import (
	"context"
	"sync"
	"time"
)

// Local keeps the method in-process. It does not survive restart; use it for
// tests or as a stand-in when no backend is configured.
type Local struct {
	mu  sync.RWMutex
	rec Record
	set bool
}

var _ Store = (*Local)(nil)

func NewLocal() *Local { return &Local{} }

func (s *Local) Load(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Method, s.set, nil
}

func (s *Local) Save(_ context.Context, name string) error {
	s.mu.Lock()
	s.rec = Record{Method: name, SelectedAt: time.Now()}
	s.set = true
	s.mu.Unlock()
	return nil
}

// SelectedAt reports when the current value was saved (zero if never).
func (s *Local) SelectedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.SelectedAt
}

func (s *Local) Close(_ context.Context) error { return nil }
