package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const failureReasonAlreadyEntitled = "already_entitled"

// IPaymentUseCase orchestrates charge creation and confirmation.
//
// Requested behavior:
//   - validate target and amount, block users who already own the content,
//     open the gateway charge and record it as pending.
//   - confirm settles a pending payment using the gateway's authoritative status.
type IPaymentUseCase interface {
	CreatePayment(ctx context.Context, cmd CreatePaymentCommand) (PaymentIntent, error)
	CreateInstructorFee(ctx context.Context, cmd CreateInstructorFeeCommand) (PaymentIntent, error)
	ConfirmPayment(ctx context.Context, cmd ConfirmPaymentCommand) (entities.Payment, error)
	GetByID(ctx context.Context, id string, requester entities.Requester) (entities.Payment, error)
	History(ctx context.Context, requester entities.Requester, userID string) ([]entities.Payment, error)
	Stats(ctx context.Context) (entities.PaymentStats, error)
}

type CreatePaymentCommand struct {
	UserID   string
	CourseID string
	LessonID string
	Amount   decimal.Decimal
	Currency string
	Method   entities.PaymentMethod
}

type CreateInstructorFeeCommand struct {
	UserID   string
	Amount   decimal.Decimal
	Currency string
	Method   entities.PaymentMethod
}

type ConfirmPaymentCommand struct {
	PaymentID     string
	ChargeID      string
	ClaimedStatus entities.ChargeStatus
	UserID        string
}

// PaymentIntent is returned to the client so it can complete the charge
// with the gateway. ClientSecret is never persisted.
type PaymentIntent struct {
	PaymentID     string
	TransactionID string
	ClientSecret  string
	Amount        decimal.Decimal
	Currency      string
	Status        entities.PaymentStatus
}

// PaymentSettings carries the tunables the orchestrator needs from config.
type PaymentSettings struct {
	FeeRate             decimal.Decimal
	MinAmount           decimal.Decimal
	MaxAmount           decimal.Decimal
	InstructorFeeAmount decimal.Decimal
	Currency            string
	GatewayTimeout      time.Duration
}

type PaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	gateway  interfaces.IPaymentGateway
	ledger   ISettlementLedger
	guard    IEnrollmentGuard
	resolver IInstructorResolver
	settings PaymentSettings
	now      func() time.Time
	logger   *zap.Logger
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	gateway interfaces.IPaymentGateway,
	ledger ISettlementLedger,
	guard IEnrollmentGuard,
	resolver IInstructorResolver,
	settings PaymentSettings,
	logger *zap.Logger,
) *PaymentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.GatewayTimeout <= 0 {
		settings.GatewayTimeout = 5 * time.Second
	}
	return &PaymentUseCase{
		repo:     repo,
		gateway:  gateway,
		ledger:   ledger,
		guard:    guard,
		resolver: resolver,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.Named("payment.usecase"),
	}
}

func (u *PaymentUseCase) CreatePayment(ctx context.Context, cmd CreatePaymentCommand) (PaymentIntent, error) {
	userID := strings.TrimSpace(cmd.UserID)
	courseID := strings.TrimSpace(cmd.CourseID)
	lessonID := strings.TrimSpace(cmd.LessonID)

	var paymentType entities.PaymentType
	switch {
	case lessonID != "":
		paymentType = entities.PaymentTypeLesson
	case courseID != "":
		paymentType = entities.PaymentTypeCourse
	default:
		return PaymentIntent{}, ErrInvalidPaymentTarget
	}

	amount, err := u.checkAmount(cmd.Amount)
	if err != nil {
		return PaymentIntent{}, err
	}
	method, err := normalizeMethod(cmd.Method)
	if err != nil {
		return PaymentIntent{}, err
	}

	if ent := u.guard.CheckEntitlement(ctx, userID, courseID, lessonID); ent.Entitled {
		u.logger.Info("purchase blocked",
			zap.String("user_id", userID),
			zap.String("course_id", courseID),
			zap.String("lesson_id", lessonID),
			zap.String("scope", string(ent.Scope)),
		)
		return PaymentIntent{}, fmt.Errorf("%w: %s", ErrAlreadyEntitled, ent.BlockReason)
	}

	instructorID := ""
	if u.resolver != nil {
		instructorID = u.resolver.ResolveOwner(ctx, courseID, lessonID)
	}

	return u.open(ctx, entities.Payment{
		UserID:        userID,
		CourseID:      courseID,
		LessonID:      lessonID,
		Amount:        amount,
		Currency:      u.currency(cmd.Currency),
		PaymentMethod: method,
		Type:          paymentType,
		InstructorID:  instructorID,
	})
}

func (u *PaymentUseCase) CreateInstructorFee(ctx context.Context, cmd CreateInstructorFeeCommand) (PaymentIntent, error) {
	amount := cmd.Amount
	if amount.IsZero() {
		amount = u.settings.InstructorFeeAmount
	}
	amount, err := u.checkAmount(amount)
	if err != nil {
		return PaymentIntent{}, err
	}
	method, err := normalizeMethod(cmd.Method)
	if err != nil {
		return PaymentIntent{}, err
	}

	userID := strings.TrimSpace(cmd.UserID)
	return u.open(ctx, entities.Payment{
		UserID:        userID,
		Amount:        amount,
		Currency:      u.currency(cmd.Currency),
		PaymentMethod: method,
		Type:          entities.PaymentTypeInstructorFee,
		InstructorID:  userID,
	})
}

// open charges the gateway and records the pending ledger row. No row is
// written unless the gateway accepted the charge.
func (u *PaymentUseCase) open(ctx context.Context, p entities.Payment) (PaymentIntent, error) {
	p.ID = uuid.NewString()

	gctx, cancel := context.WithTimeout(ctx, u.settings.GatewayTimeout)
	defer cancel()
	intent, err := u.gateway.CreateCharge(gctx, entities.ChargeRequest{
		AmountMinor: entities.ToMinorUnits(p.Amount),
		Currency:    p.Currency,
		Method:      p.PaymentMethod,
		Description: describe(p),
		Metadata: map[string]string{
			"paymentId": p.ID,
			"userId":    p.UserID,
			"courseId":  p.CourseID,
			"lessonId":  p.LessonID,
			"type":      string(p.Type),
		},
	})
	if err != nil {
		u.logger.Warn("gateway rejected charge", zap.String("user_id", p.UserID), zap.Error(err))
		return PaymentIntent{}, &GatewayError{Op: "create charge", Err: err}
	}

	split := entities.ComputeSplit(p.Amount, u.settings.FeeRate, p.Type)
	now := u.now()
	p.TransactionID = intent.ChargeID
	p.AdminShare = split.AdminShare
	p.InstructorShare = split.InstructorShare
	p.Status = entities.PaymentStatusPending
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		// the gateway charge exists without a ledger row; it is not retried
		u.logger.Error("orphaned gateway charge",
			zap.String("payment_id", p.ID),
			zap.String("transaction_id", intent.ChargeID),
			zap.Error(err),
		)
		return PaymentIntent{}, err
	}

	u.logger.Info("payment intent created",
		zap.String("payment_id", created.ID),
		zap.String("transaction_id", created.TransactionID),
		zap.String("user_id", created.UserID),
		zap.String("type", string(created.Type)),
	)

	return PaymentIntent{
		PaymentID:     created.ID,
		TransactionID: created.TransactionID,
		ClientSecret:  intent.ClientSecret,
		Amount:        created.Amount,
		Currency:      created.Currency,
		Status:        created.Status,
	}, nil
}

func (u *PaymentUseCase) ConfirmPayment(ctx context.Context, cmd ConfirmPaymentCommand) (entities.Payment, error) {
	p, err := u.load(ctx, cmd.PaymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if !p.OwnedBy(cmd.UserID) {
		return entities.Payment{}, ErrForbidden
	}
	if strings.TrimSpace(cmd.ChargeID) != p.TransactionID {
		return entities.Payment{}, ErrChargeMismatch
	}
	switch cmd.ClaimedStatus {
	case "", entities.ChargeStatusSucceeded, entities.ChargeStatusFailed, entities.ChargeStatusProcessing:
	default:
		return entities.Payment{}, ErrInvalidClaimedStatus
	}

	// close the window between intent and confirmation
	if p.Status == entities.PaymentStatusPending && p.Type != entities.PaymentTypeInstructorFee {
		if ent := u.guard.CheckEntitlement(ctx, p.UserID, p.CourseID, p.LessonID); ent.Entitled {
			u.logger.Warn("entitlement granted before confirmation, failing payment",
				zap.String("payment_id", p.ID),
				zap.String("scope", string(ent.Scope)),
			)
			if _, err := u.ledger.Apply(ctx, p.ID, entities.PaymentStatusFailed, WithFailureReason(failureReasonAlreadyEntitled)); err != nil {
				return entities.Payment{}, err
			}
			return entities.Payment{}, fmt.Errorf("%w: %s", ErrAlreadyEntitled, ent.BlockReason)
		}
	}

	status, err := u.chargeStatus(ctx, p, cmd.ClaimedStatus)
	if err != nil {
		return entities.Payment{}, err
	}

	target, terminal := status.LedgerStatus()
	if !terminal {
		return p, nil
	}

	var opts []TransitionOption
	if target == entities.PaymentStatusFailed {
		opts = append(opts, WithFailureReason("charge failed at gateway"))
	}
	return u.ledger.Apply(ctx, p.ID, target, opts...)
}

// chargeStatus asks the gateway for the authoritative charge state and falls
// back to the client's claim when the gateway cannot be reached.
func (u *PaymentUseCase) chargeStatus(ctx context.Context, p entities.Payment, claimed entities.ChargeStatus) (entities.ChargeStatus, error) {
	gctx, cancel := context.WithTimeout(ctx, u.settings.GatewayTimeout)
	defer cancel()

	status, err := u.gateway.GetCharge(gctx, p.TransactionID)
	if err == nil {
		return status, nil
	}

	u.logger.Warn("charge lookup failed, using claimed status",
		zap.String("payment_id", p.ID),
		zap.String("transaction_id", p.TransactionID),
		zap.String("claimed_status", string(claimed)),
		zap.Error(errors.Join(ErrUpstreamUnavailable, err)),
	)
	if claimed == "" {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return claimed, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string, requester entities.Requester) (entities.Payment, error) {
	p, err := u.load(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if !requester.CanRead(p) {
		return entities.Payment{}, ErrForbidden
	}
	return p, nil
}

func (u *PaymentUseCase) History(ctx context.Context, requester entities.Requester, userID string) ([]entities.Payment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = requester.UserID
	}
	if userID != requester.UserID && !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	return u.repo.ListByUserID(ctx, userID)
}

func (u *PaymentUseCase) Stats(ctx context.Context) (entities.PaymentStats, error) {
	payments, err := u.repo.ListAll(ctx)
	if err != nil {
		return entities.PaymentStats{}, err
	}
	return entities.Aggregate(payments), nil
}

func (u *PaymentUseCase) load(ctx context.Context, id string) (entities.Payment, error) {
	return loadPayment(ctx, u.repo, id)
}

// loadPayment resolves a caller supplied id. Ids that are not uuids never
// reach the repository.
func loadPayment(ctx context.Context, repo interfaces.IPaymentRepository, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) checkAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	return checkAmountBounds(amount, u.settings.MinAmount, u.settings.MaxAmount)
}

func checkAmountBounds(amount, lo, hi decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if amount.LessThan(lo) {
		return decimal.Zero, &InvalidAmountError{Bound: AmountBoundMin, Limit: lo, Requested: amount}
	}
	if amount.GreaterThan(hi) {
		return decimal.Zero, &InvalidAmountError{Bound: AmountBoundMax, Limit: hi, Requested: amount}
	}
	return amount, nil
}

func (u *PaymentUseCase) currency(requested string) string {
	c := strings.ToLower(strings.TrimSpace(requested))
	if c == "" {
		return u.settings.Currency
	}
	return c
}

func normalizeMethod(m entities.PaymentMethod) (entities.PaymentMethod, error) {
	m = entities.PaymentMethod(strings.ToLower(strings.TrimSpace(string(m))))
	if m == "" {
		return entities.PaymentMethodMercadoPago, nil
	}
	if !m.Valid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

func describe(p entities.Payment) string {
	switch p.Type {
	case entities.PaymentTypeLesson:
		return "Lesson " + p.LessonID
	case entities.PaymentTypeCourse:
		return "Course " + p.CourseID
	}
	return "Instructor fee"
}
