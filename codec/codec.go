// Package codec turns typed values into the bytes a provider stores.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Map adapts a Codec[W] into a Codec[V] through a pair of conversions.
// Handy when the wire type is a generated or well-known message.
type Map[V, W any] struct {
	Inner Codec[W]
	To    func(V) (W, error)
	From  func(W) (V, error)
}

func (m Map[V, W]) Encode(v V) ([]byte, error) {
	w, err := m.To(v)
	if err != nil {
		return nil, err
	}
	return m.Inner.Encode(w)
}

func (m Map[V, W]) Decode(b []byte) (V, error) {
	w, err := m.Inner.Decode(b)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.From(w)
}
