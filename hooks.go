package subcipher

import "github.com/unkn0wn-root/subcipher/method"

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; wrap slow sinks with
// hooks/async.
type Hooks interface {
	// The bound method changed (prev may be method.None).
	MethodSelected(policy Policy, prev, next method.Method)

	// Select was called with a name outside the catalog.
	SelectRejected(name string, err error)

	// Writing the selection through to the store failed; selection stands.
	PersistFailed(err *PersistError)

	// Decode met a malformed escape sequence.
	CorruptInput(m method.Method, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) MethodSelected(Policy, method.Method, method.Method) {}
func (NopHooks) SelectRejected(string, error)                        {}
func (NopHooks) PersistFailed(*PersistError)                         {}
func (NopHooks) CorruptInput(method.Method, error)                   {}
