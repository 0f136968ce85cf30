package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("db down")
	e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
	if !errors.Is(e, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if e.Error() != "INTERNAL_ERROR: An internal error occurred: db down" {
		t.Fatalf("unexpected message: %s", e.Error())
	}

	simple := NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound).
		WithDetails(map[string]any{"payment_id": "p-1"}).
		AsRetryable()
	body := simple.ToHTTPError()
	if body.Code != "PAYMENT_NOT_FOUND" || body.Details["payment_id"] != "p-1" || !body.Retryable {
		t.Fatalf("unexpected http error: %+v", body)
	}
	if simple.Error() != "PAYMENT_NOT_FOUND: Payment not found" {
		t.Fatalf("unexpected message: %s", simple.Error())
	}
}
