package usecase

import (
	"errors"
	"fmt"

	"edupay/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAlreadyEntitled      = errors.New("user already has access to this content")
	ErrGateway              = errors.New("payment gateway error")
	ErrInvalidTransition    = errors.New("invalid payment status transition")
	ErrRefundNotAllowed     = errors.New("refund not allowed")
	ErrSignatureInvalid     = errors.New("webhook signature invalid")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrForbidden            = errors.New("forbidden")
	ErrUpstreamUnavailable  = errors.New("upstream service unavailable")
	ErrInvalidPaymentTarget = errors.New("exactly one of course_id or lesson_id is required")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrChargeMismatch       = errors.New("charge id does not belong to payment")
	ErrInvalidClaimedStatus = errors.New("invalid claimed status")
	ErrInvalidWebhookEvent  = errors.New("invalid webhook event")
)

type AmountBound string

const (
	AmountBoundMin AmountBound = "min"
	AmountBoundMax AmountBound = "max"
)

// InvalidAmountError carries the violated bound for client display.
type InvalidAmountError struct {
	Bound     AmountBound
	Limit     decimal.Decimal
	Requested decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	if e.Bound == AmountBoundMin {
		return fmt.Sprintf("invalid amount: %s is below the minimum of %s", e.Requested.StringFixed(2), e.Limit.StringFixed(2))
	}
	return fmt.Sprintf("invalid amount: %s exceeds the maximum of %s", e.Requested.StringFixed(2), e.Limit.StringFixed(2))
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }

// GatewayError wraps a rejection reported by the payment gateway.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }

func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

// TransitionError reports a rejected ledger move, usually the losing side of a
// confirm/webhook race.
type TransitionError struct {
	PaymentID string
	From      entities.PaymentStatus
	To        entities.PaymentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid payment status transition %s -> %s (payment %s)", e.From, e.To, e.PaymentID)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
