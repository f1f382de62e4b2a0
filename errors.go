package subcipher

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/subcipher/internal/keystream"
	"github.com/unkn0wn-root/subcipher/internal/wire"
	"github.com/unkn0wn-root/subcipher/method"
)

var (
	ErrEmptyKey               = keystream.ErrEmptyKey
	ErrCorrupt                = wire.ErrCorrupt
	ErrUnboundMethod          = errors.New("subcipher: no method selected")
	ErrNoScope                = errors.New("subcipher: context carries no binding scope")
	ErrScopeEnded             = errors.New("subcipher: binding scope has ended")
	ErrPersistenceWriteFailed = errors.New("subcipher: persisting method failed")
)

// UnknownMethodError carries the rejected name and the full catalog.
type UnknownMethodError = method.UnknownError

// PersistError is reported when writing the selected method through to the
// store fails. The in-memory selection stays applied.
type PersistError struct {
	Method string
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("subcipher: persist method %q: %v", e.Method, e.Err)
}

func (e *PersistError) Unwrap() []error {
	errs := make([]error, 0, 2)
	errs = append(errs, ErrPersistenceWriteFailed)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
