package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement state of a payment.
//
// Domain notes:
//   - pending is the only initial state.
//   - completed and failed are terminal; completed may still move to refunded.
//   - the ledger is the single source of truth for this value.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusRefunded
}

type PaymentType string

const (
	PaymentTypeCourse        PaymentType = "course_payment"
	PaymentTypeLesson        PaymentType = "lesson_payment"
	PaymentTypeInstructorFee PaymentType = "instructor_fee"
)

type PaymentMethod string

const (
	PaymentMethodMercadoPago PaymentMethod = "mercadopago"
	PaymentMethodPix         PaymentMethod = "pix"
	PaymentMethodCreditCard  PaymentMethod = "credit_card"
	PaymentMethodDebitCard   PaymentMethod = "debit_card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodMercadoPago, PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodDebitCard:
		return true
	}
	return false
}

// Payment is the settlement ledger record persisted by the payment service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (user_id-index): user_id, created_at
//   - uniqueness marker item "txn#<transaction_id>" pointing back to id
//
// Money:
//   - Amount, AdminShare and InstructorShare carry two fractional digits.
//   - AdminShare + InstructorShare == Amount.
type Payment struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	CourseID      string          `json:"course_id,omitempty"`
	LessonID      string          `json:"lesson_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Type          PaymentType     `json:"type"`
	TransactionID string          `json:"transaction_id"`

	AdminShare      decimal.Decimal `json:"admin_share"`
	InstructorShare decimal.Decimal `json:"instructor_share"`
	InstructorID    string          `json:"instructor_id,omitempty"`

	Status        PaymentStatus `json:"payment_status"`
	FailureReason string        `json:"failure_reason,omitempty"`
	RefundReason  string        `json:"refund_reason,omitempty"`
	RefundID      string        `json:"refund_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`
}

// OwnedBy reports whether userID is the paying user.
func (p Payment) OwnedBy(userID string) bool {
	return p.UserID != "" && p.UserID == userID
}

// AmountMinor converts Amount to the smallest currency unit (cents).
func (p Payment) AmountMinor() int64 {
	return ToMinorUnits(p.Amount)
}

func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
