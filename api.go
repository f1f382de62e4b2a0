package subcipher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/unkn0wn-root/subcipher/method"
	"github.com/unkn0wn-root/subcipher/store"
)

// Engine is the cipher core exposed to collaborators.
type Engine interface {
	// Encode/Decode use the currently bound method.
	// A nil payload is passed through as (nil, nil).
	Encode(ctx context.Context, key, plaintext []byte) ([]byte, error)
	Decode(ctx context.Context, key, ciphertext []byte) ([]byte, error)

	// EncodeWith/DecodeWith resolve name explicitly and leave the binding alone.
	EncodeWith(ctx context.Context, name string, key, plaintext []byte) ([]byte, error)
	DecodeWith(ctx context.Context, name string, key, ciphertext []byte) ([]byte, error)

	Select(ctx context.Context, name string) error
	Current(ctx context.Context) (method.Method, error)
	Methods() []string

	Close(context.Context) error
}

// Policy decides where the current method lives.
type Policy uint8

const (
	// PolicyGlobal keeps one cell per Engine shared by all callers.
	PolicyGlobal Policy = iota
	// PolicyScoped keeps one cell per WithScope context, created on first use.
	PolicyScoped
)

func (p Policy) String() string {
	switch p {
	case PolicyGlobal:
		return "global"
	case PolicyScoped:
		return "scoped"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "global":
		return PolicyGlobal, nil
	case "scoped", "scope":
		return PolicyScoped, nil
	}
	return 0, fmt.Errorf("subcipher: unknown binding policy %q", s)
}

// Options tune the Engine. The zero value is a global, unbound, in-memory engine.
type Options struct {
	Policy Policy

	// DefaultMethod is bound at construction (global) or on first use of each
	// scope (scoped). Empty means no default: Encode fails until Select.
	DefaultMethod string

	Store          store.Store   // nil => selection is not persisted
	PersistTimeout time.Duration // 0 => 2s

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
}

func New(opts Options) (Engine, error) {
	return newEngine(opts)
}
