package method

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/unkn0wn-root/subcipher/internal/rotate"
)

func TestEveryMethodIsInvertible(t *testing.T) {
	for _, m := range All() {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			p := m.Pair()
			for k := 0; k < 256; k++ {
				for c := 0; c < 256; c++ {
					enc := p.Encode(byte(c), byte(k))
					if got := p.Decode(enc, byte(k)); got != byte(c) {
						t.Fatalf("%s: decode(encode(%#x,%#x))=%#x", m, c, k, got)
					}
				}
			}
		})
	}
}

func TestEncodeIsPermutationPerKey(t *testing.T) {
	for _, m := range All() {
		for k := 0; k < 256; k++ {
			var seen [256]bool
			for c := 0; c < 256; c++ {
				e := m.Encode(byte(c), byte(k))
				if seen[e] {
					t.Fatalf("%s: key %#x maps two inputs to %#x", m, k, e)
				}
				seen[e] = true
			}
		}
	}
}

func TestFormulas(t *testing.T) {
	const c, k = byte(0x5A), byte(0x6B)
	tw := rotate.Right(k, k)
	cases := []struct {
		m    Method
		want byte
	}{
		{Naive, c ^ k},
		{Usual, rotate.Right(c^k, k)},
		{Single, rotate.Right(c, k) ^ k},
		{Alternate, rotate.Left(c^k, k)}, // k is odd
		{Twin, c ^ tw},
		{Both, rotate.Left(c, tw) ^ k},
	}
	for _, tc := range cases {
		if got := tc.m.Encode(c, k); got != tc.want {
			t.Errorf("%s.Encode=%#x want %#x", tc.m, got, tc.want)
		}
	}
	// even key takes the right-rotation branch
	if got, want := Alternate.Encode(c, 0x6A), rotate.Right(c^0x6A, 0x6A); got != want {
		t.Errorf("Alternate even key=%#x want %#x", got, want)
	}
}

func TestTwinAndNaiveAreSelfInverse(t *testing.T) {
	for _, m := range []Method{Naive, Twin} {
		for k := 0; k < 256; k++ {
			for c := 0; c < 256; c++ {
				if m.Encode(byte(c), byte(k)) != m.Decode(byte(c), byte(k)) {
					t.Fatalf("%s must be self-inverse", m)
				}
			}
		}
	}
}

func TestNamesStableOrder(t *testing.T) {
	want := []string{"naive", "usual", "single", "alternate", "twin", "both"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names()=%v want %v", got, want)
	}
	for i, m := range All() {
		if m.String() != want[i] {
			t.Fatalf("All()[%d]=%s want %s", i, m, want[i])
		}
	}
}

func TestParse(t *testing.T) {
	ok := map[string]Method{
		"naive":       Naive,
		"USUAL":       Usual,
		" Single\t":   Single,
		"\nalternate": Alternate,
		"Twin":        Twin,
		"both\r\n":    Both,
	}
	for in, want := range ok {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Errorf("Parse(%q)=%v,%v want %v", in, got, err, want)
		}
	}

	for _, bad := range []string{"bogus", "", "   ", "naive2"} {
		m, err := Parse(bad)
		if m != None {
			t.Errorf("Parse(%q) returned %v", bad, m)
		}
		var ue *UnknownError
		if !errors.As(err, &ue) {
			t.Fatalf("Parse(%q) err=%v want *UnknownError", bad, err)
		}
		if len(ue.Valid) != 6 {
			t.Fatalf("valid list=%v", ue.Valid)
		}
		for _, n := range Names() {
			if !strings.Contains(err.Error(), n) {
				t.Fatalf("error %q misses %q", err, n)
			}
		}
	}
}

func TestNoneIsNotValid(t *testing.T) {
	if None.Valid() {
		t.Fatal("None must not be valid")
	}
	if None.String() != "none" {
		t.Fatalf("None.String()=%q", None.String())
	}
}
