package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/subcipher"
	"github.com/unkn0wn-root/subcipher/method"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectEvery  uint64
	CorruptEvery uint64
	// Optional redactor for rejected names (operator input). Defaults to a
	// SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectCtr  atomic.Uint64
	corruptCtr atomic.Uint64
}

var _ subcipher.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(s string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(s)
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) MethodSelected(p subcipher.Policy, prev, next method.Method) {
	if h.l == nil {
		return
	}
	h.l.Info("subcipher.method_selected",
		"policy", p.String(),
		"prev", prev.String(),
		"next", next.String())
}

func (h *Hooks) SelectRejected(name string, err error) {
	if h.l == nil || !sample(h.opts.RejectEvery, &h.rejectCtr) {
		return
	}
	h.l.Warn("subcipher.select_rejected",
		"name", h.redact(name),
		"err", err)
}

func (h *Hooks) PersistFailed(err *subcipher.PersistError) {
	if h.l == nil {
		return
	}
	h.l.Error("subcipher.persist_failed",
		"method", err.Method,
		"err", err.Err)
}

func (h *Hooks) CorruptInput(m method.Method, err error) {
	if h.l == nil || !sample(h.opts.CorruptEvery, &h.corruptCtr) {
		return
	}
	h.l.Debug("subcipher.corrupt_input",
		"method", m.String(),
		"err", err)
}
