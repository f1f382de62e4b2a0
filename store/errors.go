package store

import "errors"

// ErrRejected is returned when a provider refuses a write under pressure.
var ErrRejected = errors.New("store: provider rejected write")
