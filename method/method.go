// Package method defines the closed catalog of reversible byte transforms.
//
// Every method is built from XOR with a key byte and rotation by a key-derived
// shift, and each Decode is the exact inverse of its Encode for every (c, k)
// pair. The catalog names are a compatibility contract: they are persisted and
// shown to operators verbatim.
package method

import (
	"strings"

	"github.com/unkn0wn-root/subcipher/internal/rotate"
)

// Method is a tag over the fixed catalog. The zero value is None (unbound).
type Method uint8

const (
	None Method = iota
	Naive
	Usual
	Single
	Alternate
	Twin
	Both
)

// ByteFunc transforms one payload byte c with one key byte k.
type ByteFunc func(c, k byte) byte

// Pair bundles the two halves of a method.
type Pair struct {
	Method Method
	Encode ByteFunc
	Decode ByteFunc
}

var catalog = [...]Method{Naive, Usual, Single, Alternate, Twin, Both}

var names = [...]string{
	None:      "",
	Naive:     "naive",
	Usual:     "usual",
	Single:    "single",
	Alternate: "alternate",
	Twin:      "twin",
	Both:      "both",
}

// All returns the catalog in its stable order.
func All() []Method {
	out := make([]Method, len(catalog))
	copy(out, catalog[:])
	return out
}

// Names returns the catalog names in the same order as All.
func Names() []string {
	out := make([]string, len(catalog))
	for i, m := range catalog {
		out[i] = names[m]
	}
	return out
}

func (m Method) Valid() bool { return m >= Naive && m <= Both }

func (m Method) String() string {
	if !m.Valid() {
		return "none"
	}
	return names[m]
}

// Pair returns the encode/decode halves of m bound as plain functions.
func (m Method) Pair() Pair {
	return Pair{Method: m, Encode: m.Encode, Decode: m.Decode}
}

// Encode transforms plaintext byte c with key byte k.
func (m Method) Encode(c, k byte) byte {
	switch m {
	case Naive:
		return c ^ k
	case Usual:
		return rotate.Right(c^k, k)
	case Single:
		return rotate.Right(c, k) ^ k
	case Alternate:
		if k%2 == 1 {
			return rotate.Left(c^k, k)
		}
		return rotate.Right(c^k, k)
	case Twin:
		return c ^ rotate.Right(k, k)
	case Both:
		return rotate.Left(c, rotate.Right(k, k)) ^ k
	}
	panic("method: encode with unbound method")
}

// Decode reverses Encode for the same key byte.
func (m Method) Decode(c, k byte) byte {
	switch m {
	case Naive:
		return c ^ k
	case Usual:
		return rotate.Left(c, k) ^ k
	case Single:
		return rotate.Left(c^k, k)
	case Alternate:
		if k%2 == 1 {
			return rotate.Right(c, k) ^ k
		}
		return rotate.Left(c, k) ^ k
	case Twin:
		return c ^ rotate.Right(k, k)
	case Both:
		return rotate.Right(c^k, rotate.Right(k, k))
	}
	panic("method: decode with unbound method")
}

// Parse resolves a method name. Surrounding ASCII whitespace is ignored and
// the comparison is case-insensitive. Unknown or blank names yield
// *UnknownError.
func Parse(name string) (Method, error) {
	s := strings.TrimFunc(name, isSpace)
	if s != "" {
		for _, m := range catalog {
			if strings.EqualFold(s, names[m]) {
				return m, nil
			}
		}
	}
	return None, &UnknownError{Name: s, Valid: Names()}
}

// SP, HT, LF, VT, FF, CR.
func isSpace(r rune) bool {
	return r == ' ' || (r >= '\t' && r <= '\r')
}
