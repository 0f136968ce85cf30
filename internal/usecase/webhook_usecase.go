package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type WebhookOutcome string

const (
	WebhookOutcomeApplied            WebhookOutcome = "applied"
	WebhookOutcomeDuplicate          WebhookOutcome = "duplicate"
	WebhookOutcomeConflict           WebhookOutcome = "conflict"
	WebhookOutcomeUnknownTransaction WebhookOutcome = "unknown_transaction"
	WebhookOutcomeIgnored            WebhookOutcome = "ignored"
)

type WebhookResult struct {
	Outcome   WebhookOutcome
	PaymentID string
	Status    entities.PaymentStatus
}

// IWebhookUseCase reconciles signed gateway notifications into the ledger.
// Deliveries may repeat or arrive out of order; only the first effective
// transition for a payment takes hold.
type IWebhookUseCase interface {
	HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) (WebhookResult, error)
}

type WebhookUseCase struct {
	repo           interfaces.IPaymentRepository
	gateway        interfaces.IPaymentGateway
	ledger         ISettlementLedger
	gatewayTimeout time.Duration
	logger         *zap.Logger
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(repo interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway, ledger ISettlementLedger, gatewayTimeout time.Duration, logger *zap.Logger) *WebhookUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatewayTimeout <= 0 {
		gatewayTimeout = 5 * time.Second
	}
	return &WebhookUseCase{
		repo:           repo,
		gateway:        gateway,
		ledger:         ledger,
		gatewayTimeout: gatewayTimeout,
		logger:         logger.Named("webhook.usecase"),
	}
}

func (u *WebhookUseCase) HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) (WebhookResult, error) {
	event, err := u.gateway.VerifyWebhook(rawBody, signatureHeader)
	if errors.Is(err, interfaces.ErrMalformedWebhookEvent) {
		u.logger.Warn("signed webhook with unreadable body", zap.Error(err))
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrInvalidWebhookEvent, err)
	}
	if err != nil {
		u.logger.Warn("webhook rejected", zap.Error(err))
		return WebhookResult{}, ErrSignatureInvalid
	}

	log := u.logger.With(
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("transaction_id", event.ChargeID),
	)

	p, err := u.repo.GetByTransactionID(ctx, event.ChargeID)
	if err != nil {
		return WebhookResult{}, err
	}
	if p.ID == "" {
		log.Warn("webhook for unknown transaction")
		return WebhookResult{Outcome: WebhookOutcomeUnknownTransaction}, nil
	}

	status, err := u.eventStatus(ctx, event)
	if err != nil {
		return WebhookResult{}, err
	}
	target, terminal := status.LedgerStatus()
	if !terminal {
		log.Debug("non-terminal charge status", zap.String("status", string(status)))
		return WebhookResult{Outcome: WebhookOutcomeIgnored, PaymentID: p.ID, Status: p.Status}, nil
	}
	if p.Status == target {
		log.Info("duplicate webhook delivery", zap.String("payment_id", p.ID))
		return WebhookResult{Outcome: WebhookOutcomeDuplicate, PaymentID: p.ID, Status: p.Status}, nil
	}

	var opts []TransitionOption
	if target == entities.PaymentStatusFailed {
		opts = append(opts, WithFailureReason("gateway reported "+event.Type))
	}

	settled, err := u.ledger.Apply(ctx, p.ID, target, opts...)
	var terr *TransitionError
	switch {
	case errors.As(err, &terr):
		log.Warn("webhook conflicts with ledger",
			zap.String("payment_id", p.ID),
			zap.String("ledger_status", string(terr.From)),
			zap.String("event_status", string(terr.To)),
		)
		return WebhookResult{Outcome: WebhookOutcomeConflict, PaymentID: p.ID, Status: terr.From}, nil
	case err != nil:
		return WebhookResult{}, err
	}

	log.Info("webhook applied", zap.String("payment_id", p.ID), zap.String("status", string(settled.Status)))
	return WebhookResult{Outcome: WebhookOutcomeApplied, PaymentID: p.ID, Status: settled.Status}, nil
}

func (u *WebhookUseCase) eventStatus(ctx context.Context, event entities.WebhookEvent) (entities.ChargeStatus, error) {
	switch event.Type {
	case entities.WebhookEventPaymentSucceeded:
		return entities.ChargeStatusSucceeded, nil
	case entities.WebhookEventPaymentFailed:
		return entities.ChargeStatusFailed, nil
	case entities.WebhookEventPaymentUpdated, entities.WebhookEventPaymentCreated:
		if event.Status != "" {
			return event.Status, nil
		}
		gctx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
		defer cancel()
		status, err := u.gateway.GetCharge(gctx, event.ChargeID)
		if err != nil {
			return "", errors.Join(ErrUpstreamUnavailable, err)
		}
		return status, nil
	}
	return entities.ChargeStatusProcessing, nil
}
