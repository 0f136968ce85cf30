package interfaces

import (
	"context"
	"errors"

	"edupay/internal/domain/entities"
)

// ErrDuplicateTransactionID is returned by Create when the gateway charge id
// is already bound to another ledger row.
var ErrDuplicateTransactionID = errors.New("transaction id already recorded")

//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/payment_repository_mock.go -package=mock_interfaces

// IPaymentRepository abstracts DynamoDB persistence for the settlement ledger.
//
// Lookups return a zero Payment (empty ID) when nothing matches.
// Transition is a compare-and-swap on (id, t.From): when the stored status
// differs it reports swapped=false together with the stored row.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (entities.Payment, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error)
	ListAll(ctx context.Context) ([]entities.Payment, error)
	Transition(ctx context.Context, id string, t entities.Transition) (current entities.Payment, swapped bool, err error)
}
