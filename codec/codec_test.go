package codec

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type sample struct {
	Name string `json:"name" msgpack:"name" cbor:"name"`
	N    int    `json:"n" msgpack:"n" cbor:"n"`
}

func TestCodecsRoundTrip(t *testing.T) {
	cb, err := NewCBOR[sample](true)
	if err != nil {
		t.Fatal(err)
	}
	codecs := map[string]Codec[sample]{
		"cbor":    cb,
		"limited": LimitCodec[sample]{Inner: cb, MaxDecode: 64},
	}
	in := sample{Name: "usual", N: 3}
	for name, c := range codecs {
		b, err := c.Encode(in)
		if err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		out, err := c.Decode(b)
		if err != nil || out != in {
			t.Fatalf("%s: got %+v err=%v", name, out, err)
		}
	}
}

func TestCBORDeterministic(t *testing.T) {
	c, err := NewCBOR[map[string]int](true)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	for i := 0; i < 20; i++ {
		b, _ := c.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
		if string(a) != string(b) {
			t.Fatal("deterministic CBOR produced different bytes")
		}
	}
}

func TestMapThroughProtobuf(t *testing.T) {
	c := Map[string, *wrapperspb.StringValue]{
		Inner: NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} }),
		To:    func(s string) (*wrapperspb.StringValue, error) { return wrapperspb.String(s), nil },
		From:  func(w *wrapperspb.StringValue) (string, error) { return w.GetValue(), nil },
	}
	b, err := c.Encode("twin")
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Decode(b)
	if err != nil || got != "twin" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestMapPropagatesConversionError(t *testing.T) {
	boom := errors.New("boom")
	cb, err := NewCBOR[sample](false)
	if err != nil {
		t.Fatal(err)
	}
	c := Map[int, sample]{
		Inner: cb,
		To:    func(int) (sample, error) { return sample{}, boom },
		From:  func(s sample) (int, error) { return s.N, nil },
	}
	if _, err := c.Encode(1); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestLimitCodec(t *testing.T) {
	cb, err := NewCBOR[sample](true)
	if err != nil {
		t.Fatal(err)
	}
	c := LimitCodec[sample]{Inner: cb, MaxDecode: 8}
	b, _ := c.Encode(sample{Name: "alternate"})
	if _, err := c.Decode(b); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("err=%v", err)
	}
	c.MaxDecode = 0
	if _, err := c.Decode(b); err != nil {
		t.Fatalf("unlimited decode: %v", err)
	}
}
