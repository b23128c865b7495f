package modkit

import (
	"net/http"
	"testing"

	"gearbox/internal/modkit/httpkit"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" {
		t.Fatalf("default Name = %q, want empty", b.Name)
	}
	if b.Prefix != "" {
		t.Fatalf("default Prefix = %q, want empty", b.Prefix)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if len(b.Mw) != 0 {
		t.Fatalf("default Mw length = %d, want 0", len(b.Mw))
	}

	// Subrouter default is identity; should return what it was given
	var r httpkit.Router
	if r2 := b.Subrouter(r); r2 != r {
		t.Fatalf("default Subrouter should be identity")
	}

	// Register default is no-op; ensure it doesn't panic
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("default Register panicked: %v", v)
		}
	}()
	b.Register(r)
}

func TestBuild_WithOptions(t *testing.T) {
	t.Parallel()

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	subCalled := 0
	regCalled := 0

	type ports struct{ N int }

	b := Build(
		WithName("analytics"),
		WithPrefix("/analytics"),
		WithMiddlewares(mwA, mwB),
		WithPorts(ports{N: 7}),
		WithSubrouter(func(in httpkit.Router) httpkit.Router {
			subCalled++
			return in
		}),
		WithRegister(func(httpkit.Router) { regCalled++ }),
	)

	if b.Name != "analytics" || b.Prefix != "/analytics" {
		t.Fatalf("built = %q %q", b.Name, b.Prefix)
	}
	if got, ok := b.Ports.(ports); !ok || got.N != 7 {
		t.Fatalf("Ports = %#v", b.Ports)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("Mw length = %d, want 2", len(b.Mw))
	}

	var r httpkit.Router
	b.Subrouter(r)
	b.Register(r)
	if subCalled != 1 || regCalled != 1 {
		t.Fatalf("hooks called %d/%d times", subCalled, regCalled)
	}
}
