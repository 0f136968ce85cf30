package request

import (
	"testing"

	"edupay/internal/domain/entities"
)

func TestPaymentRequests_Normalize(t *testing.T) {
	r := CreatePaymentIntentRequest{PaymentMethod: "  PIX "}
	if r.Method() != entities.PaymentMethodPix {
		t.Fatalf("unexpected method: %q", r.Method())
	}

	fee := InstructorFeeRequest{}
	if fee.Method() != "" {
		t.Fatalf("expected empty method, got %q", fee.Method())
	}

	c := ConfirmPaymentRequest{ClaimedStatus: "Succeeded"}
	if c.Claimed() != entities.ChargeStatusSucceeded {
		t.Fatalf("unexpected claimed status: %q", c.Claimed())
	}
}
