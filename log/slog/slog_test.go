//go:build go1.21

package slog

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/unkn0wn-root/subcipher"
)

func TestAttrsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{
		ReplaceAttr: func(_ []string, a stdslog.Attr) stdslog.Attr {
			if a.Key == stdslog.TimeKey {
				return stdslog.Attr{}
			}
			return a
		},
	}))}
	l.Warn("x", subcipher.Fields{"b": 2, "a": 1, "c": "z"})
	want := "level=WARN msg=x a=1 b=2 c=z\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}
