package repokit

import "testing"

type fakeRepo struct{ q Queryer }

func TestBindFunc(t *testing.T) {
	t.Parallel()

	b := BindFunc[fakeRepo](func(q Queryer) fakeRepo { return fakeRepo{q: q} })
	// a nil Queryer is fine for Bind itself; binding is just wiring
	r := b.Bind(nil)
	if r.q != nil {
		t.Fatalf("bound q = %v", r.q)
	}
}

func TestMustBind_PanicsOnNilQueryer(t *testing.T) {
	t.Parallel()

	b := BindFunc[fakeRepo](func(q Queryer) fakeRepo { return fakeRepo{q: q} })
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustBind[fakeRepo](b, nil)
}
