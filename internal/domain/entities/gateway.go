package entities

// ChargeStatus is the gateway-side state of a charge, normalised across providers.

type ChargeStatus string

const (
	ChargeStatusSucceeded  ChargeStatus = "succeeded"
	ChargeStatusFailed     ChargeStatus = "failed"
	ChargeStatusProcessing ChargeStatus = "processing"
)

// LedgerStatus maps a terminal charge status to the ledger status it settles to.
// The boolean is false for non-terminal statuses.
func (s ChargeStatus) LedgerStatus() (PaymentStatus, bool) {
	switch s {
	case ChargeStatusSucceeded:
		return PaymentStatusCompleted, true
	case ChargeStatusFailed:
		return PaymentStatusFailed, true
	}
	return "", false
}

// ChargeRequest opens a charge intent. Amount is expressed in minor units.
type ChargeRequest struct {
	AmountMinor int64
	Currency    string
	Method      PaymentMethod
	Description string
	Metadata    map[string]string
}

// ChargeIntent is the gateway answer to ChargeRequest.
type ChargeIntent struct {
	ChargeID     string
	ClientSecret string
	Status       ChargeStatus
}

type RefundResult struct {
	RefundID string
	Status   string
}

// WebhookEvent is a verified, parsed gateway notification.
type WebhookEvent struct {
	ID       string
	Type     string
	ChargeID string
	Status   ChargeStatus
}

const (
	WebhookEventPaymentSucceeded = "payment.succeeded"
	WebhookEventPaymentFailed    = "payment.failed"
	WebhookEventPaymentUpdated   = "payment.updated"
	WebhookEventPaymentCreated   = "payment.created"
)
