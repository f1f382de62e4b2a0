package subcipher

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/subcipher/method"
)

// binding is the Registry State cell for one policy.
type binding interface {
	load(ctx context.Context) (method.Method, error)
	// swap binds m and returns what was bound before.
	swap(ctx context.Context, m method.Method) (method.Method, error)
}

// globalBinding is one cell shared by every call on the Engine.
// The tag is an immutable value, so an atomic swap is the whole snapshot.
type globalBinding struct {
	cell atomic.Uint32
}

func newGlobalBinding(def method.Method) *globalBinding {
	b := &globalBinding{}
	b.cell.Store(uint32(def))
	return b
}

func (b *globalBinding) load(context.Context) (method.Method, error) {
	m := method.Method(b.cell.Load())
	if !m.Valid() {
		return method.None, ErrUnboundMethod
	}
	return m, nil
}

func (b *globalBinding) swap(_ context.Context, m method.Method) (method.Method, error) {
	return method.Method(b.cell.Swap(uint32(m))), nil
}

// scopedBinding keeps a cell per WithScope context. The cell is created on
// first use and dropped when the scope ends.
type scopedBinding struct {
	def method.Method
}

func (b *scopedBinding) state(ctx context.Context) (*atomic.Uint32, error) {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	if s == nil {
		return nil, ErrNoScope
	}
	return s.cell(b)
}

func (b *scopedBinding) load(ctx context.Context) (method.Method, error) {
	c, err := b.state(ctx)
	if err != nil {
		return method.None, err
	}
	m := method.Method(c.Load())
	if !m.Valid() {
		return method.None, ErrUnboundMethod
	}
	return m, nil
}

func (b *scopedBinding) swap(ctx context.Context, m method.Method) (method.Method, error) {
	c, err := b.state(ctx)
	if err != nil {
		return method.None, err
	}
	return method.Method(c.Swap(uint32(m))), nil
}

type scopeKey struct{}

type scope struct {
	mu    sync.Mutex
	ended bool
	cells map[*scopedBinding]*atomic.Uint32
}

func (s *scope) cell(b *scopedBinding) (*atomic.Uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrScopeEnded
	}
	c, ok := s.cells[b]
	if !ok {
		c = new(atomic.Uint32)
		c.Store(uint32(b.def))
		if s.cells == nil {
			s.cells = make(map[*scopedBinding]*atomic.Uint32)
		}
		s.cells[b] = c
	}
	return c, nil
}

func (s *scope) end() {
	s.mu.Lock()
	s.ended = true
	s.cells = nil
	s.mu.Unlock()
}

// WithScope returns a context carrying a fresh binding scope for engines using
// PolicyScoped. The scope ends when end is called or ctx is done; after that
// every call through the context returns ErrScopeEnded.
func WithScope(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	s := &scope{}
	context.AfterFunc(ctx, s.end)
	return context.WithValue(ctx, scopeKey{}, s), func() {
		s.end()
		cancel()
	}
}
