package usecase

import (
	"context"
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// ISettlementLedger is the only writer of Payment.Status.
//
// Every move is a conditional update on the stored status, so a confirm call
// and a webhook delivery racing on the same row settle exactly once.
type ISettlementLedger interface {
	Apply(ctx context.Context, paymentID string, to entities.PaymentStatus, opts ...TransitionOption) (entities.Payment, error)
	ApplyByTransactionID(ctx context.Context, transactionID string, to entities.PaymentStatus, opts ...TransitionOption) (entities.Payment, error)
}

type TransitionOption func(*entities.Transition)

func WithFailureReason(reason string) TransitionOption {
	return func(t *entities.Transition) { t.FailureReason = reason }
}

func WithRefund(refundID, reason string) TransitionOption {
	return func(t *entities.Transition) {
		t.RefundID = refundID
		t.RefundReason = reason
	}
}

type SettlementLedger struct {
	repo   interfaces.IPaymentRepository
	now    func() time.Time
	logger *zap.Logger
}

var _ ISettlementLedger = (*SettlementLedger)(nil)

func NewSettlementLedger(repo interfaces.IPaymentRepository, logger *zap.Logger) *SettlementLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettlementLedger{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.Named("ledger"),
	}
}

func (l *SettlementLedger) Apply(ctx context.Context, paymentID string, to entities.PaymentStatus, opts ...TransitionOption) (entities.Payment, error) {
	p, err := l.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return l.apply(ctx, p, to, opts...)
}

func (l *SettlementLedger) ApplyByTransactionID(ctx context.Context, transactionID string, to entities.PaymentStatus, opts ...TransitionOption) (entities.Payment, error) {
	p, err := l.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return l.apply(ctx, p, to, opts...)
}

func (l *SettlementLedger) apply(ctx context.Context, p entities.Payment, to entities.PaymentStatus, opts ...TransitionOption) (entities.Payment, error) {
	if p.Status == to {
		l.logger.Debug("transition already applied", zap.String("payment_id", p.ID), zap.String("status", string(to)))
		return p, nil
	}
	if !entities.CanTransition(p.Status, to) {
		return p, l.reject(p, to)
	}

	t := entities.Transition{From: p.Status, To: to, At: l.now()}
	for _, opt := range opts {
		opt(&t)
	}

	current, swapped, err := l.repo.Transition(ctx, p.ID, t)
	if err != nil {
		l.logger.Error("transition write failed",
			zap.String("payment_id", p.ID),
			zap.String("from", string(t.From)),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		return entities.Payment{}, err
	}
	if swapped {
		l.logger.Info("payment settled",
			zap.String("payment_id", p.ID),
			zap.String("from", string(t.From)),
			zap.String("to", string(to)),
		)
		return current, nil
	}

	// lost the race: someone else moved the row first
	if current.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if current.Status == to {
		return current, nil
	}
	return current, l.reject(current, to)
}

func (l *SettlementLedger) reject(p entities.Payment, to entities.PaymentStatus) error {
	l.logger.Warn("transition rejected",
		zap.String("payment_id", p.ID),
		zap.String("from", string(p.Status)),
		zap.String("to", string(to)),
	)
	return &TransitionError{PaymentID: p.ID, From: p.Status, To: to}
}
