package subcipher

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/subcipher/method"
	"github.com/unkn0wn-root/subcipher/store"
)

// binder re-binds a method read back from storage without writing it through
// again or announcing it as a new selection.
type binder interface {
	bind(ctx context.Context, m method.Method) error
}

// Restore reads the last persisted method from st and binds it on e.
// It reports whether a method was re-bound. Call it once at startup, before
// the first Encode/Decode.
//
// For engines built by New the stored record is left as is and no
// MethodSelected hook fires. Other Engine implementations fall back to Select.
func Restore(ctx context.Context, e Engine, st store.Store) (bool, error) {
	name, ok, err := st.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("subcipher: restore: %w", err)
	}
	if !ok {
		return false, nil
	}
	b, isBinder := e.(binder)
	if !isBinder {
		if err := e.Select(ctx, name); err != nil {
			return false, err
		}
		return true, nil
	}
	m, err := method.Parse(name)
	if err != nil {
		return false, err
	}
	if err := b.bind(ctx, m); err != nil {
		return false, err
	}
	return true, nil
}
