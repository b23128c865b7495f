package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "debug"},
		{"   nonsense   ", "debug"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

// Init is once-guarded so every path gets exercised off a single root
func TestInit_Get_Named_C_WithRequest(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:   "info",
		Format:  "json",
		Service: "gearbox-test",
		Writer:  &buf,
	})

	Get().Info().Str("k", "v").Msg("root-msg")
	Named("cache").Info().Msg("named-msg")
	C(WithRequest(context.Background(), "req-123")).Info().Msg("scoped-msg")

	out := buf.String()
	for _, want := range []string{
		"root-msg",
		`"service":"gearbox-test"`,
		`"component":"cache"`,
		`"request_id":"req-123"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestC_NoRequestID(t *testing.T) {
	// plain context yields a usable logger without a request_id field
	l := C(context.Background())
	if l == nil {
		t.Fatalf("C returned nil logger")
	}
}
