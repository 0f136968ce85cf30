package usecase

import (
	"context"
	"sort"
	"sync"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"
)

// memoryRepository is an in-process ledger store with the same
// compare-and-swap contract as the DynamoDB repository.
type memoryRepository struct {
	mu          sync.Mutex
	byID        map[string]entities.Payment
	byTxn       map[string]string
	transitions int
}

var _ interfaces.IPaymentRepository = (*memoryRepository)(nil)

func newMemoryRepository(seed ...entities.Payment) *memoryRepository {
	r := &memoryRepository{byID: map[string]entities.Payment{}, byTxn: map[string]string{}}
	for _, p := range seed {
		r.byID[p.ID] = p
		r.byTxn[p.TransactionID] = p.ID
	}
	return r
}

func (r *memoryRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTxn[p.TransactionID]; ok {
		return entities.Payment{}, interfaces.ErrDuplicateTransactionID
	}
	r.byID[p.ID] = p
	r.byTxn[p.TransactionID] = p.ID
	return p, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memoryRepository) GetByTransactionID(_ context.Context, transactionID string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[r.byTxn[transactionID]], nil
}

func (r *memoryRepository) ListByUserID(_ context.Context, userID string) ([]entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Payment
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) ListAll(_ context.Context) ([]entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Payment, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepository) Transition(_ context.Context, id string, t entities.Transition) (entities.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return entities.Payment{}, false, nil
	}
	if p.Status != t.From {
		return p, false, nil
	}
	p = t.Apply(p)
	r.byID[id] = p
	r.transitions++
	return p, true, nil
}

func (r *memoryRepository) transitionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transitions
}
