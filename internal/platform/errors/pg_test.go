package errors

import (
	stderrs "errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErr(code string) error {
	return &pgconn.PgError{Code: code, Message: "pg says no"}
}

func TestExtractPgError(t *testing.T) {
	t.Parallel()

	wrapped := Wrap(pgErr(pgErrUniqueViolation), ErrorCodeDB, "insert order")
	pe, ok := ExtractPgError(wrapped)
	if !ok || pe.Code != pgErrUniqueViolation {
		t.Fatalf("ExtractPgError = %v, %v", pe, ok)
	}

	if _, ok := ExtractPgError(stderrs.New("nope")); ok {
		t.Fatalf("ExtractPgError should be false for non-pg errors")
	}
}

func TestDBErrorCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sqlstate string
		want     ErrorCode
	}{
		{pgErrUniqueViolation, ErrorCodeDuplicateKey},
		{pgErrForeignKeyViolation, ErrorCodeInvalidArgument},
		{pgErrNotNullViolation, ErrorCodeValidation},
		{pgErrCheckViolation, ErrorCodeValidation},
		{pgErrDeadlockDetected, ErrorCodeUnavailable},
		{"99999", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(pgErr(c.sqlstate))
		if !ok || got != c.want {
			t.Fatalf("DBErrorCode(%s) = %d ok=%v, want %d", c.sqlstate, got, ok, c.want)
		}
	}

	if _, ok := DBErrorCode(stderrs.New("not pg")); ok {
		t.Fatalf("DBErrorCode should not claim foreign errors")
	}
}

func TestIsRetryableAndDuplicate(t *testing.T) {
	t.Parallel()

	if !IsRetryable(pgErr(pgErrSerializationFailure)) {
		t.Fatalf("serialization failure should be retryable")
	}
	if IsRetryable(pgErr(pgErrUniqueViolation)) {
		t.Fatalf("unique violation is not retryable")
	}
	if !IsDuplicateKey(pgErr(pgErrUniqueViolation)) {
		t.Fatalf("IsDuplicateKey false for 23505")
	}
}

func TestFromPG(t *testing.T) {
	t.Parallel()

	if FromPG(nil, "noop") != nil {
		t.Fatalf("FromPG(nil) should be nil")
	}
	err := FromPG(pgErr(pgErrUniqueViolation), "orders.insert")
	if !IsCode(err, ErrorCodeDuplicateKey) {
		t.Fatalf("FromPG code = %d", CodeOf(err))
	}
	e, _ := As(err)
	if e.Op() != "orders.insert" {
		t.Fatalf("FromPG op = %q", e.Op())
	}
}
