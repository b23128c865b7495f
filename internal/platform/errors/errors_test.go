package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	t.Parallel()

	base := New(ErrorCodeNotFound, "shop profile missing")
	if base.Error() != "shop profile missing" {
		t.Fatalf("Error() = %q", base.Error())
	}

	wrapped := Wrap(base, ErrorCodeDB, "query shops")
	if got := wrapped.Error(); got != "query shops: shop profile missing" {
		t.Fatalf("wrapped.Error() = %q", got)
	}
	if Root(wrapped) == wrapped {
		t.Fatalf("Root should unwrap to the base cause")
	}
	if !stderrs.Is(Root(wrapped), Root(base)) && Root(wrapped).Error() != base.Error() {
		t.Fatalf("Root(wrapped) != base")
	}
}

func TestCodeOfAndHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code ErrorCode
		http int
	}{
		{NotFoundf("no profile for %s", "ACME"), ErrorCodeNotFound, http.StatusNotFound},
		{InvalidArgf("bad date"), ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{DuplicateKeyf("order exists"), ErrorCodeDuplicateKey, http.StatusConflict},
		{JSONErrf("parse"), ErrorCodeJSON, http.StatusBadRequest},
		{Unavailablef("pg down"), ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{stderrs.New("foreign"), ErrorCodeUnknown, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.code {
			t.Fatalf("CodeOf(%v) = %d, want %d", c.err, got, c.code)
		}
		if got := HTTPStatus(c.err); got != c.http {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.http)
		}
	}
}

func TestWireFrom(t *testing.T) {
	t.Parallel()

	if w := WireFrom(nil); w.Code != ErrorCodeUnknown || w.Message != "" {
		t.Fatalf("WireFrom(nil) = %+v, want zero", w)
	}

	w := WireFrom(WithField(Newf(ErrorCodeValidation, "required"), "shop_name"))
	if w.Code != ErrorCodeValidation || w.Field != "shop_name" {
		t.Fatalf("WireFrom = %+v", w)
	}

	w = WireFrom(stderrs.New("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("WireFrom(foreign) = %+v", w)
	}
}

func TestMutators_CopyOnWrite(t *testing.T) {
	t.Parallel()

	orig := New(ErrorCodeValidation, "bad")
	withOp := WithOp(orig, "analytics.create")

	oe, _ := As(orig)
	we, _ := As(withOp)
	if oe.Op() != "" {
		t.Fatalf("original mutated: op = %q", oe.Op())
	}
	if we.Op() != "analytics.create" {
		t.Fatalf("WithOp not applied: %q", we.Op())
	}

	// foreign errors pass through unchanged
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("WithField should not wrap foreign errors")
	}
}

func TestWrapIf(t *testing.T) {
	t.Parallel()

	if WrapIf(nil, ErrorCodeDB, "noop") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if err := WrapIf(stderrs.New("x"), ErrorCodeDB, "op"); !IsCode(err, ErrorCodeDB) {
		t.Fatalf("WrapIf should carry the code")
	}
}
