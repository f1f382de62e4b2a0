package keystream

import (
	"errors"

	"github.com/unkn0wn-root/subcipher/method"
)

var ErrEmptyKey = errors.New("subcipher: key has zero length")

// Apply runs fn over payload with key repeated cyclically:
// out[i] = fn(payload[i], key[i%len(key)]). Inputs are never mutated.
func Apply(payload, key []byte, fn method.ByteFunc) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	out := make([]byte, len(payload))
	k := len(key)
	for i, c := range payload {
		out[i] = fn(c, key[i%k])
	}
	return out, nil
}
