package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFeeRate is the platform share of a course or lesson sale.
var DefaultFeeRate = decimal.NewFromFloat(0.15)

// Split is the derived revenue division of a payment amount.
type Split struct {
	AdminShare      decimal.Decimal
	InstructorShare decimal.Decimal
}

// ComputeSplit divides amount between the platform and the content owner.
// Instructor fees are paid to the platform in full.
func ComputeSplit(amount, feeRate decimal.Decimal, paymentType PaymentType) Split {
	if paymentType == PaymentTypeInstructorFee {
		return Split{AdminShare: amount.Round(2), InstructorShare: decimal.Zero}
	}
	admin := amount.Mul(feeRate).Round(2)
	return Split{
		AdminShare:      admin,
		InstructorShare: amount.Sub(admin).Round(2),
	}
}

// CanTransition reports whether from -> to is a legal ledger move.
// Re-applying the current status is handled by the caller as a no-op.
func CanTransition(from, to PaymentStatus) bool {
	switch from {
	case PaymentStatusPending:
		return to == PaymentStatusCompleted || to == PaymentStatusFailed
	case PaymentStatusCompleted:
		return to == PaymentStatusRefunded
	}
	return false
}

// Transition describes one conditional status update.
type Transition struct {
	From          PaymentStatus
	To            PaymentStatus
	At            time.Time
	FailureReason string
	RefundReason  string
	RefundID      string
}

// Apply returns p with the transition's fields set, mirroring what the
// store writes.
func (t Transition) Apply(p Payment) Payment {
	at := t.At
	p.Status = t.To
	p.UpdatedAt = at
	switch t.To {
	case PaymentStatusCompleted:
		p.CompletedAt = &at
	case PaymentStatusFailed:
		p.FailedAt = &at
		p.FailureReason = t.FailureReason
	case PaymentStatusRefunded:
		p.RefundedAt = &at
		p.RefundReason = t.RefundReason
		p.RefundID = t.RefundID
	}
	return p
}

// PaymentStats aggregates ledger rows for the admin dashboard.
type PaymentStats struct {
	TotalPayments     int                   `json:"total_payments"`
	CountByStatus     map[PaymentStatus]int `json:"count_by_status"`
	GrossRevenue      decimal.Decimal       `json:"gross_revenue"`
	AdminRevenue      decimal.Decimal       `json:"admin_revenue"`
	InstructorRevenue decimal.Decimal       `json:"instructor_revenue"`
	RefundedAmount    decimal.Decimal       `json:"refunded_amount"`
}

// Aggregate folds payments into stats. Only completed rows count as revenue.
func Aggregate(payments []Payment) PaymentStats {
	s := PaymentStats{
		CountByStatus:     map[PaymentStatus]int{},
		GrossRevenue:      decimal.Zero,
		AdminRevenue:      decimal.Zero,
		InstructorRevenue: decimal.Zero,
		RefundedAmount:    decimal.Zero,
	}
	for _, p := range payments {
		s.TotalPayments++
		s.CountByStatus[p.Status]++
		switch p.Status {
		case PaymentStatusCompleted:
			s.GrossRevenue = s.GrossRevenue.Add(p.Amount)
			s.AdminRevenue = s.AdminRevenue.Add(p.AdminShare)
			s.InstructorRevenue = s.InstructorRevenue.Add(p.InstructorShare)
		case PaymentStatusRefunded:
			s.RefundedAmount = s.RefundedAmount.Add(p.Amount)
		}
	}
	return s
}
