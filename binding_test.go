package subcipher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unkn0wn-root/subcipher/method"
)

func TestScopedRequiresScope(t *testing.T) {
	e := newTestEngine(t, func(o *Options) { o.Policy = PolicyScoped })
	ctx := context.Background()
	if _, err := e.Current(ctx); !errors.Is(err, ErrNoScope) {
		t.Fatalf("Current err=%v want ErrNoScope", err)
	}
	if err := e.Select(ctx, "naive"); !errors.Is(err, ErrNoScope) {
		t.Fatalf("Select err=%v want ErrNoScope", err)
	}
}

func TestScopesAreIsolated(t *testing.T) {
	e := newTestEngine(t, func(o *Options) { o.Policy = PolicyScoped })

	a, endA := WithScope(context.Background())
	defer endA()
	b, endB := WithScope(context.Background())
	defer endB()

	if err := e.Select(a, "twin"); err != nil {
		t.Fatal(err)
	}
	if m, err := e.Current(a); err != nil || m != method.Twin {
		t.Fatalf("scope a: %v,%v", m, err)
	}
	if _, err := e.Current(b); !errors.Is(err, ErrUnboundMethod) {
		t.Fatalf("scope b must start unbound, err=%v", err)
	}
	if err := e.Select(b, "both"); err != nil {
		t.Fatal(err)
	}
	if m, _ := e.Current(a); m != method.Twin {
		t.Fatalf("scope a changed to %v", m)
	}
}

func TestScopeDefaultAppliedLazily(t *testing.T) {
	e := newTestEngine(t, func(o *Options) {
		o.Policy = PolicyScoped
		o.DefaultMethod = "single"
	})
	ctx, end := WithScope(context.Background())
	defer end()
	m, err := e.Current(ctx)
	if err != nil || m != method.Single {
		t.Fatalf("Current=%v,%v want single", m, err)
	}
	ct, err := e.Encode(ctx, []byte("k"), []byte("hi"))
	if err != nil {
		t.Fatal(err)
	}
	pt, err := e.DecodeWith(ctx, "single", []byte("k"), ct)
	if err != nil || string(pt) != "hi" {
		t.Fatalf("Decode=%q,%v", pt, err)
	}
}

func TestScopeEnds(t *testing.T) {
	e := newTestEngine(t, func(o *Options) { o.Policy = PolicyScoped })
	ctx, end := WithScope(context.Background())
	if err := e.Select(ctx, "usual"); err != nil {
		t.Fatal(err)
	}
	end()
	if _, err := e.Current(ctx); !errors.Is(err, ErrScopeEnded) {
		t.Fatalf("Current err=%v want ErrScopeEnded", err)
	}
	if _, err := e.Encode(ctx, []byte("k"), []byte("x")); !errors.Is(err, ErrScopeEnded) {
		t.Fatalf("Encode err=%v want ErrScopeEnded", err)
	}
	end() // idempotent
}

func TestScopeEndsWithParentCancel(t *testing.T) {
	e := newTestEngine(t, func(o *Options) { o.Policy = PolicyScoped })
	parent, cancel := context.WithCancel(context.Background())
	ctx, end := WithScope(parent)
	defer end()
	if err := e.Select(ctx, "naive"); err != nil {
		t.Fatal(err)
	}
	cancel()
	<-ctx.Done()
	// AfterFunc runs asynchronously; the scope must end shortly after.
	for i := 0; i < 1000; i++ {
		if _, err := e.Current(ctx); errors.Is(err, ErrScopeEnded) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("scope did not end after parent cancel")
}

func TestScopeSharedByTwoEngines(t *testing.T) {
	e1 := newTestEngine(t, func(o *Options) { o.Policy = PolicyScoped })
	e2 := newTestEngine(t, func(o *Options) { o.Policy = PolicyScoped; o.DefaultMethod = "both" })
	ctx, end := WithScope(context.Background())
	defer end()
	if err := e1.Select(ctx, "naive"); err != nil {
		t.Fatal(err)
	}
	if m, _ := e2.Current(ctx); m != method.Both {
		t.Fatalf("engine 2 sees %v; each engine owns its cell", m)
	}
}

func TestGlobalIgnoresScope(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx, end := WithScope(context.Background())
	if err := e.Select(ctx, "twin"); err != nil {
		t.Fatal(err)
	}
	end()
	if m, err := e.Current(context.Background()); err != nil || m != method.Twin {
		t.Fatalf("global binding must outlive scopes: %v,%v", m, err)
	}
}
