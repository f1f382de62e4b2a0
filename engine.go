package subcipher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/subcipher/internal/wire"
	"github.com/unkn0wn-root/subcipher/method"
	"github.com/unkn0wn-root/subcipher/store"
)

type engine struct {
	policy         Policy
	binding        binding
	store          store.Store
	persistTimeout time.Duration
	log            Logger
	hooks          Hooks
}

var _ Engine = (*engine)(nil)

func newEngine(opts Options) (*engine, error) {
	def := method.None
	if opts.DefaultMethod != "" {
		m, err := method.Parse(opts.DefaultMethod)
		if err != nil {
			return nil, fmt.Errorf("subcipher: default method: %w", err)
		}
		def = m
	}

	e := &engine{
		policy: opts.Policy,
		store:  opts.Store,
	}
	switch opts.Policy {
	case PolicyGlobal:
		e.binding = newGlobalBinding(def)
	case PolicyScoped:
		e.binding = &scopedBinding{def: def}
	default:
		return nil, fmt.Errorf("subcipher: unknown binding policy %s", opts.Policy)
	}

	e.log = coalesce[Logger](opts.Logger, NopLogger{})
	e.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	e.persistTimeout = coalesce[time.Duration](opts.PersistTimeout, defaultPersistTimeout)
	return e, nil
}

func (e *engine) Encode(ctx context.Context, key, plaintext []byte) ([]byte, error) {
	m, err := e.binding.load(ctx)
	if err != nil {
		return nil, err
	}
	return e.seal(m, key, plaintext)
}

func (e *engine) Decode(ctx context.Context, key, ciphertext []byte) ([]byte, error) {
	m, err := e.binding.load(ctx)
	if err != nil {
		return nil, err
	}
	return e.open(m, key, ciphertext)
}

func (e *engine) EncodeWith(_ context.Context, name string, key, plaintext []byte) ([]byte, error) {
	m, err := method.Parse(name)
	if err != nil {
		return nil, err
	}
	return e.seal(m, key, plaintext)
}

func (e *engine) DecodeWith(_ context.Context, name string, key, ciphertext []byte) ([]byte, error) {
	m, err := method.Parse(name)
	if err != nil {
		return nil, err
	}
	return e.open(m, key, ciphertext)
}

func (e *engine) seal(m method.Method, key, plaintext []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if plaintext == nil {
		return nil, nil
	}
	return wire.Seal(plaintext, key, m.Encode)
}

func (e *engine) open(m method.Method, key, ciphertext []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if ciphertext == nil {
		return nil, nil
	}
	out, err := wire.Open(ciphertext, key, m.Decode)
	if errors.Is(err, ErrCorrupt) {
		e.hooks.CorruptInput(m, err)
		e.log.Debug("decode rejected corrupt escape", Fields{"method": m.String(), "len": len(ciphertext)})
	}
	return out, err
}

func (e *engine) Select(ctx context.Context, name string) error {
	m, err := method.Parse(name)
	if err != nil {
		e.hooks.SelectRejected(name, err)
		e.log.Warn("select rejected", Fields{"name": name, "err": err})
		return err
	}
	prev, err := e.binding.swap(ctx, m)
	if err != nil {
		return err
	}
	if prev == m {
		// already bound; nothing to announce or persist
		return nil
	}
	e.hooks.MethodSelected(e.policy, prev, m)
	e.log.Info("method selected", Fields{"method": m.String(), "prev": prev.String(), "policy": e.policy.String()})
	e.persist(ctx, m)
	return nil
}

// bind swaps m in as a read-back of stored state: no hook, no write-through.
func (e *engine) bind(ctx context.Context, m method.Method) error {
	prev, err := e.binding.swap(ctx, m)
	if err != nil {
		return err
	}
	e.log.Info("method restored", Fields{"method": m.String(), "prev": prev.String(), "policy": e.policy.String()})
	return nil
}

// persist writes m through to the store. Failures are reported, never returned.
func (e *engine) persist(ctx context.Context, m method.Method) {
	if e.store == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, e.persistTimeout)
	defer cancel()
	if err := e.store.Save(pctx, m.String()); err != nil {
		pe := &PersistError{Method: m.String(), Err: err}
		e.hooks.PersistFailed(pe)
		e.log.Error("persist method failed", Fields{"method": m.String(), "err": err})
	}
}

func (e *engine) Current(ctx context.Context) (method.Method, error) {
	return e.binding.load(ctx)
}

func (e *engine) Methods() []string { return method.Names() }

func (e *engine) Close(ctx context.Context) error {
	if e.store != nil {
		return e.store.Close(ctx)
	}
	return nil
}
