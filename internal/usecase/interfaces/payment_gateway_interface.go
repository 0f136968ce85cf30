package interfaces

import (
	"context"
	"errors"

	"edupay/internal/domain/entities"
)

// ErrMalformedWebhookEvent is returned by VerifyWebhook when the signature is
// valid but the body cannot be decoded into an event.
var ErrMalformedWebhookEvent = errors.New("malformed webhook event")

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_mock.go -package=mock_interfaces

// IPaymentGateway abstracts the external payment processor (e.g. Mercado Pago).
//
// The payment service uses it to open charge intents, read authoritative
// charge state, refund settled charges and authenticate webhook deliveries.
type IPaymentGateway interface {
	CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeIntent, error)
	GetCharge(ctx context.Context, chargeID string) (entities.ChargeStatus, error)
	Refund(ctx context.Context, chargeID string, amountMinor int64, reason string) (entities.RefundResult, error)
	VerifyWebhook(rawBody []byte, signatureHeader string) (entities.WebhookEvent, error)
}
