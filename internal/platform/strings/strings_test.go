package strings

import (
	"testing"

	kit "gearbox/internal/platform/testkit"
)

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("analytics", "name"); got != "analytics" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { MustString("   ", "name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"analytics":    "/analytics",
		"/analytics":   "/analytics",
		" /analytics/": "/analytics",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix("  ") })
}

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	def := []string{"a"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "a" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	in := []string{"b"}
	if got := IfEmpty(in, def); got[0] != "b" {
		t.Fatalf("IfEmpty(in) = %v", got)
	}
}

func TestSQLNull(t *testing.T) {
	t.Parallel()

	if got := SQLNull("  "); got != nil {
		t.Fatalf("SQLNull(blank) = %v, want nil", got)
	}
	if got := SQLNull("TX"); got != "TX" {
		t.Fatalf("SQLNull = %v", got)
	}
}
