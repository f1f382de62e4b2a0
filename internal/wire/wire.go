package wire

import (
	"bytes"
	"errors"

	"github.com/unkn0wn-root/subcipher/internal/keystream"
	"github.com/unkn0wn-root/subcipher/method"
)

const (
	terminator byte = 0x00
	escape     byte = 0xC0 // lead byte of every two-byte escape
	nulTail    byte = 0x80 // escape|nulTail stands for a transformed 0x00 (Modified UTF-8 NUL)
)

var ErrCorrupt = errors.New("subcipher: corrupt ciphertext escape")

// Sentinel is the two-byte stand-in for an embedded zero byte.
var Sentinel = [2]byte{escape, nulTail}

// Seal transforms payload with fn under the cyclic key and returns a
// zero-terminated buffer with no interior zero bytes.
//
//	0x00 -> C0 80
//	0xC0 -> C0 C0
//	b    -> b
//	end  -> 00
func Seal(payload, key []byte, fn method.ByteFunc) ([]byte, error) {
	raw, err := keystream.Apply(payload, key, fn)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(raw) + len(raw)/8 + 2)
	for _, z := range raw {
		switch z {
		case terminator:
			buf.Write(Sentinel[:])
		case escape:
			buf.WriteByte(escape)
			buf.WriteByte(escape)
		default:
			buf.WriteByte(z)
		}
	}
	buf.WriteByte(terminator)
	return buf.Bytes(), nil
}

// Open reverses Seal. It reads up to the first real zero byte or the end of
// b, whichever comes first, so the terminator is optional. The i-th logical
// ciphertext byte is decoded with key[i%len(key)] regardless of how many
// escapes preceded it.
func Open(b, key []byte, fn method.ByteFunc) ([]byte, error) {
	if len(key) == 0 {
		return nil, keystream.ErrEmptyKey
	}
	logical, err := unescape(b)
	if err != nil {
		return nil, err
	}
	return keystream.Apply(logical, key, fn)
}

func unescape(b []byte) ([]byte, error) {
	out := make([]byte, 0, len(b))
	for off := 0; off < len(b); {
		c := b[off]
		if c == escape {
			// escape pairs are checked before the terminator
			if off+1 >= len(b) {
				return nil, ErrCorrupt
			}
			switch b[off+1] {
			case nulTail:
				c = terminator
			case escape:
				c = escape
			default:
				return nil, ErrCorrupt
			}
			off += 2
		} else {
			if c == terminator {
				break
			}
			off++
		}
		out = append(out, c)
	}
	return out, nil
}
