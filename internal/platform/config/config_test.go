package config

import (
	"testing"
	"time"

	kit "gearbox/internal/platform/testkit"
)

func TestPrefixComposition(t *testing.T) {
	t.Setenv("A_B_KEY", "v")

	c := New().Prefix("A_").Prefix("B_")
	if got := c.MayString("KEY", ""); got != "v" {
		t.Fatalf("prefixed lookup = %q, want v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Setenv("GBX_REQ", "present")

	c := New().Prefix("GBX_")
	if got := c.MustString("REQ"); got != "present" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { c.MustString("ABSENT") })
}

func TestMayHelpers_Defaults(t *testing.T) {
	c := New().Prefix("GBX_MAY_")

	if got := c.MayString("S", "d"); got != "d" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("I", 9); got != 9 {
		t.Fatalf("MayInt default = %d", got)
	}
	if got := c.MayInt64("I64", 50<<20); got != 50<<20 {
		t.Fatalf("MayInt64 default = %d", got)
	}
	if got := c.MayBool("B", true); !got {
		t.Fatalf("MayBool default = false")
	}
	if got := c.MayDuration("D", 10*time.Minute); got != 10*time.Minute {
		t.Fatalf("MayDuration default = %v", got)
	}
}

func TestMayHelpers_InvalidFallsBack(t *testing.T) {
	t.Setenv("GBX_MAY_I", "nope")
	t.Setenv("GBX_MAY_D", "soon")

	c := New().Prefix("GBX_MAY_")
	if got := c.MayInt("I", 3); got != 3 {
		t.Fatalf("MayInt invalid = %d, want default", got)
	}
	if got := c.MayDuration("D", time.Second); got != time.Second {
		t.Fatalf("MayDuration invalid = %v, want default", got)
	}
}

func TestMustDuration(t *testing.T) {
	t.Setenv("GBX_TTL", "10m")

	c := New().Prefix("GBX_")
	if got := c.MustDuration("TTL"); got != 10*time.Minute {
		t.Fatalf("MustDuration = %v", got)
	}
}
