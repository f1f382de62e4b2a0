// Package asynchook moves hook delivery off the caller's goroutine.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{RejectEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	eng, _ := subcipher.New(subcipher.Options{Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/subcipher"
	"github.com/unkn0wn-root/subcipher/method"
)

type Hooks struct {
	inner   subcipher.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var _ subcipher.Hooks = (*Hooks)(nil)

func New(inner subcipher.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded because the queue was full.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	defer func() {
		// send on closed channel after Close
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) MethodSelected(p subcipher.Policy, prev, next method.Method) {
	h.try(func() { h.inner.MethodSelected(p, prev, next) })
}
func (h *Hooks) SelectRejected(name string, err error) {
	h.try(func() { h.inner.SelectRejected(name, err) })
}
func (h *Hooks) PersistFailed(err *subcipher.PersistError) {
	h.try(func() { h.inner.PersistFailed(err) })
}
func (h *Hooks) CorruptInput(m method.Method, err error) {
	h.try(func() { h.inner.CorruptInput(m, err) })
}
