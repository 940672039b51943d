package testutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
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
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal compares a money value against its decimal string form.
// Trailing zeros are irrelevant: "10" matches 10.00.
func AssertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("bad expected decimal %q: %v", want, err)
	}
	if !got.Equal(expected) {
		t.Errorf("expected %s, got %s", expected.String(), got.String())
	}
}

// AssertNotFound checks that err is one of the *_NOT_FOUND AppErrors.
func AssertNotFound(t *testing.T, err error) {
	t.Helper()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected a not-found AppError, got %T: %v", err, err)
	}
	if appErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected a 404 error, got %s (%d)", appErr.Code, appErr.StatusCode)
	}
}
