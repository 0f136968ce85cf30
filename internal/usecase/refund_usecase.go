package usecase

import (
	"context"
	"strings"
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type IRefundUseCase interface {
	Refund(ctx context.Context, cmd RefundCommand) (entities.Payment, error)
}

type RefundCommand struct {
	PaymentID string
	Reason    string
	Requester entities.Requester
}

type RefundUseCase struct {
	repo    interfaces.IPaymentRepository
	gateway interfaces.IPaymentGateway
	ledger  ISettlementLedger
	logger  *zap.Logger
	timeout time.Duration
}

var _ IRefundUseCase = (*RefundUseCase)(nil)

func NewRefundUseCase(repo interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway, ledger ISettlementLedger, gatewayTimeout time.Duration, logger *zap.Logger) *RefundUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatewayTimeout <= 0 {
		gatewayTimeout = 5 * time.Second
	}
	return &RefundUseCase{repo: repo, gateway: gateway, ledger: ledger, timeout: gatewayTimeout, logger: logger.Named("refund.usecase")}
}

// Refund returns the full amount of a completed payment to the payer.
// The ledger is only moved once the gateway confirms the refund.
func (u *RefundUseCase) Refund(ctx context.Context, cmd RefundCommand) (entities.Payment, error) {
	p, err := loadPayment(ctx, u.repo, cmd.PaymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if !cmd.Requester.CanRead(p) {
		return entities.Payment{}, ErrForbidden
	}
	if p.Status != entities.PaymentStatusCompleted {
		u.logger.Info("refund refused",
			zap.String("payment_id", p.ID),
			zap.String("status", string(p.Status)),
		)
		return entities.Payment{}, ErrRefundNotAllowed
	}

	reason := strings.TrimSpace(cmd.Reason)
	gctx, cancel := context.WithTimeout(ctx, u.timeout)
	res, err := u.gateway.Refund(gctx, p.TransactionID, p.AmountMinor(), reason)
	cancel()
	if err != nil {
		u.logger.Warn("gateway refund failed",
			zap.String("payment_id", p.ID),
			zap.String("transaction_id", p.TransactionID),
			zap.Error(err),
		)
		return entities.Payment{}, &GatewayError{Op: "refund", Err: err}
	}

	refunded, err := u.ledger.Apply(ctx, p.ID, entities.PaymentStatusRefunded, WithRefund(res.RefundID, reason))
	if err != nil {
		// money already left through the gateway
		u.logger.Error("refund recorded at gateway but ledger update failed",
			zap.String("payment_id", p.ID),
			zap.String("refund_id", res.RefundID),
			zap.Error(err),
		)
		return entities.Payment{}, err
	}
	return refunded, nil
}
