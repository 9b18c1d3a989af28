package testutil

import (
	"errors"
	"testing"

	apperrors "github.com/beabzk/pft-api/internal/errors"

	"github.com/shopspring/decimal"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Fatalf("expected error code %q, got %q (%s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimalEqual checks that a decimal equals the expected string value.
func AssertDecimalEqual(t *testing.T, got decimal.Decimal, expected string) {
	t.Helper()

	want := decimal.RequireFromString(expected)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}
