package request

import (
	"strings"

	"edupay/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// CreatePaymentIntentRequest opens a course or lesson purchase.
// Exactly one of course_id or lesson_id must be set.
type CreatePaymentIntentRequest struct {
	CourseID      string          `json:"course_id"`
	LessonID      string          `json:"lesson_id"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
}

func (r CreatePaymentIntentRequest) Method() entities.PaymentMethod {
	return normalizeMethod(r.PaymentMethod)
}

// InstructorFeeRequest opens the instructor registration fee charge.
// A zero amount means the configured fee.
type InstructorFeeRequest struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
}

func (r InstructorFeeRequest) Method() entities.PaymentMethod {
	return normalizeMethod(r.PaymentMethod)
}

type ConfirmPaymentRequest struct {
	PaymentID     string `json:"payment_id" binding:"required"`
	ChargeID      string `json:"charge_id" binding:"required"`
	ClaimedStatus string `json:"status"`
}

func (r ConfirmPaymentRequest) Claimed() entities.ChargeStatus {
	return entities.ChargeStatus(strings.ToLower(strings.TrimSpace(r.ClaimedStatus)))
}

type RefundRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Reason    string `json:"reason"`
}

func normalizeMethod(raw string) entities.PaymentMethod {
	return entities.PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
}
