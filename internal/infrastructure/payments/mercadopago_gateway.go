package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
	ErrInvalidChargeID                 = errors.New("invalid mercado pago charge id")
	ErrUnknownMockCharge               = errors.New("unknown mock charge")
)

type paymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type refundAPI interface {
	Create(ctx context.Context, paymentID int) (*refund.Response, error)
}

type GatewayOptions struct {
	AccessToken      string
	Mock             bool
	WebhookSecret    string
	WebhookTolerance time.Duration
}

// MercadoPagoGateway implements IPaymentGateway on top of the Mercado Pago SDK.
//
// In mock mode no network call is made: charges are kept in memory and
// settle as succeeded, which keeps local environments usable without
// sandbox credentials. Webhook signatures are verified in both modes.
type MercadoPagoGateway struct {
	payments paymentAPI
	refunds  refundAPI

	mockMode    bool
	mockMu      sync.Mutex
	mockCharges map[string]entities.ChargeStatus

	webhookSecret    string
	webhookTolerance time.Duration
	now              func() time.Time
	logger           *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts GatewayOptions, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &MercadoPagoGateway{
		webhookSecret:    opts.WebhookSecret,
		webhookTolerance: opts.WebhookTolerance,
		now:              time.Now,
		logger:           logger.Named("payment.gateway"),
	}

	if opts.Mock {
		g.logger.Info("mock mode enabled")
		g.mockMode = true
		g.mockCharges = map[string]entities.ChargeStatus{}
		return g, nil
	}

	if opts.AccessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}
	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		g.logger.Error("failed creating sdk config", zap.Error(err))
		return nil, err
	}
	g.payments = payment.NewClient(cfg)
	g.refunds = refund.NewClient(cfg)
	g.logger.Info("Mercado Pago client initialized")
	return g, nil
}

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeIntent, error) {
	if g.mockMode {
		id := strconv.FormatInt(g.now().UTC().UnixNano(), 10)
		g.mockMu.Lock()
		g.mockCharges[id] = entities.ChargeStatusSucceeded
		g.mockMu.Unlock()
		g.logger.Info("mock charge created", zap.String("charge_id", id), zap.Int64("amount_minor", req.AmountMinor))
		return entities.ChargeIntent{ChargeID: id, ClientSecret: "mock_secret_" + id, Status: entities.ChargeStatusProcessing}, nil
	}
	if g.payments == nil {
		return entities.ChargeIntent{}, ErrMercadoPagoGatewayNotConfigured
	}

	metadata := make(map[string]any, len(req.Metadata))
	for k, v := range req.Metadata {
		if v != "" {
			metadata[k] = v
		}
	}

	resp, err := g.payments.Create(ctx, payment.Request{
		TransactionAmount: minorToAmount(req.AmountMinor),
		Description:       req.Description,
		PaymentMethodID:   methodID(req.Method),
		ExternalReference: req.Metadata["paymentId"],
		Metadata:          metadata,
	})
	if err != nil {
		g.logger.Warn("sdk create failed", zap.Error(err))
		return entities.ChargeIntent{}, err
	}

	chargeID := strconv.Itoa(resp.ID)
	status := normalizeStatus(resp.Status)
	g.logger.Info("charge created",
		zap.String("charge_id", chargeID),
		zap.String("provider_status", resp.Status),
	)
	if status == entities.ChargeStatusFailed {
		return entities.ChargeIntent{}, fmt.Errorf("charge %s %s: %s", chargeID, resp.Status, resp.StatusDetail)
	}
	return entities.ChargeIntent{ChargeID: chargeID, ClientSecret: clientSecret(resp), Status: status}, nil
}

func (g *MercadoPagoGateway) GetCharge(ctx context.Context, chargeID string) (entities.ChargeStatus, error) {
	if g.mockMode {
		g.mockMu.Lock()
		defer g.mockMu.Unlock()
		status, ok := g.mockCharges[chargeID]
		if !ok {
			return "", ErrUnknownMockCharge
		}
		return status, nil
	}
	if g.payments == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(chargeID)
	if err != nil {
		return "", ErrInvalidChargeID
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return normalizeStatus(resp.Status), nil
}

// Refund returns the whole charge. amountMinor is only used for logging and
// the mock ledger; Mercado Pago refunds the captured amount.
func (g *MercadoPagoGateway) Refund(ctx context.Context, chargeID string, amountMinor int64, reason string) (entities.RefundResult, error) {
	if g.mockMode {
		g.mockMu.Lock()
		defer g.mockMu.Unlock()
		if _, ok := g.mockCharges[chargeID]; !ok {
			return entities.RefundResult{}, ErrUnknownMockCharge
		}
		g.mockCharges[chargeID] = entities.ChargeStatusFailed
		g.logger.Info("mock refund", zap.String("charge_id", chargeID), zap.Int64("amount_minor", amountMinor), zap.String("reason", reason))
		return entities.RefundResult{RefundID: "mock_refund_" + chargeID, Status: "approved"}, nil
	}
	if g.refunds == nil {
		return entities.RefundResult{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(chargeID)
	if err != nil {
		return entities.RefundResult{}, ErrInvalidChargeID
	}
	resp, err := g.refunds.Create(ctx, id)
	if err != nil {
		g.logger.Warn("sdk refund failed", zap.String("charge_id", chargeID), zap.Error(err))
		return entities.RefundResult{}, err
	}
	g.logger.Info("refund created",
		zap.String("charge_id", chargeID),
		zap.Int("refund_id", resp.ID),
		zap.Int64("amount_minor", amountMinor),
		zap.String("reason", reason),
	)
	return entities.RefundResult{RefundID: strconv.Itoa(resp.ID), Status: resp.Status}, nil
}

func (g *MercadoPagoGateway) VerifyWebhook(rawBody []byte, signatureHeader string) (entities.WebhookEvent, error) {
	if err := verifySignature(g.webhookSecret, signatureHeader, rawBody, g.webhookTolerance, g.now()); err != nil {
		return entities.WebhookEvent{}, err
	}
	return parseWebhookEvent(rawBody)
}

func minorToAmount(minor int64) float64 {
	return decimal.New(minor, -2).InexactFloat64()
}

func methodID(m entities.PaymentMethod) string {
	switch m {
	case entities.PaymentMethodPix:
		return "pix"
	case entities.PaymentMethodCreditCard, entities.PaymentMethodDebitCard:
		// card brand is resolved from the card token on the client side
		return ""
	}
	return "account_money"
}

// clientSecret extracts what the client needs to finish the payment: the
// pix copy-paste code, or the ticket url for other flows.
func clientSecret(resp *payment.Response) string {
	raw, err := json.Marshal(resp)
	if err != nil {
		return ""
	}
	var body struct {
		PointOfInteraction struct {
			TransactionData struct {
				QRCode    string `json:"qr_code"`
				TicketURL string `json:"ticket_url"`
			} `json:"transaction_data"`
		} `json:"point_of_interaction"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if td := body.PointOfInteraction.TransactionData; td.QRCode != "" {
		return td.QRCode
	} else if td.TicketURL != "" {
		return td.TicketURL
	}
	return ""
}
