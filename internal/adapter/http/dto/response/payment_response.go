package response

import (
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase"
)

type PaymentResponse struct {
	ID              string     `json:"id"`
	PaymentID       string     `json:"payment_id"`
	UserID          string     `json:"user_id"`
	CourseID        string     `json:"course_id,omitempty"`
	LessonID        string     `json:"lesson_id,omitempty"`
	Type            string     `json:"type"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency"`
	PaymentMethod   string     `json:"payment_method"`
	TransactionID   string     `json:"transaction_id"`
	AdminShare      string     `json:"admin_share"`
	InstructorShare string     `json:"instructor_share"`
	InstructorID    string     `json:"instructor_id,omitempty"`
	Status          string     `json:"payment_status"`
	FailureReason   string     `json:"failure_reason,omitempty"`
	RefundReason    string     `json:"refund_reason,omitempty"`
	RefundID        string     `json:"refund_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	FailedAt        *time.Time `json:"failed_at,omitempty"`
	RefundedAt      *time.Time `json:"refunded_at,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		PaymentID:       p.ID,
		UserID:          p.UserID,
		CourseID:        p.CourseID,
		LessonID:        p.LessonID,
		Type:            string(p.Type),
		Amount:          p.Amount.StringFixed(2),
		Currency:        p.Currency,
		PaymentMethod:   string(p.PaymentMethod),
		TransactionID:   p.TransactionID,
		AdminShare:      p.AdminShare.StringFixed(2),
		InstructorShare: p.InstructorShare.StringFixed(2),
		InstructorID:    p.InstructorID,
		Status:          string(p.Status),
		FailureReason:   p.FailureReason,
		RefundReason:    p.RefundReason,
		RefundID:        p.RefundID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		CompletedAt:     p.CompletedAt,
		FailedAt:        p.FailedAt,
		RefundedAt:      p.RefundedAt,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}

type PaymentIntentResponse struct {
	PaymentID     string `json:"payment_id"`
	TransactionID string `json:"transaction_id"`
	ClientSecret  string `json:"client_secret"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"payment_status"`
}

func FromPaymentIntent(i usecase.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		PaymentID:     i.PaymentID,
		TransactionID: i.TransactionID,
		ClientSecret:  i.ClientSecret,
		Amount:        i.Amount.StringFixed(2),
		Currency:      i.Currency,
		Status:        string(i.Status),
	}
}

type PaymentStatsResponse struct {
	TotalPayments     int            `json:"total_payments"`
	CountByStatus     map[string]int `json:"count_by_status"`
	GrossRevenue      string         `json:"gross_revenue"`
	AdminRevenue      string         `json:"admin_revenue"`
	InstructorRevenue string         `json:"instructor_revenue"`
	RefundedAmount    string         `json:"refunded_amount"`
}

func FromPaymentStats(s entities.PaymentStats) PaymentStatsResponse {
	counts := make(map[string]int, len(s.CountByStatus))
	for status, n := range s.CountByStatus {
		counts[string(status)] = n
	}
	return PaymentStatsResponse{
		TotalPayments:     s.TotalPayments,
		CountByStatus:     counts,
		GrossRevenue:      s.GrossRevenue.StringFixed(2),
		AdminRevenue:      s.AdminRevenue.StringFixed(2),
		InstructorRevenue: s.InstructorRevenue.StringFixed(2),
		RefundedAmount:    s.RefundedAmount.StringFixed(2),
	}
}

type WebhookResponse struct {
	Received  bool   `json:"received"`
	Outcome   string `json:"outcome"`
	PaymentID string `json:"payment_id,omitempty"`
	Status    string `json:"payment_status,omitempty"`
}

func FromWebhookResult(r usecase.WebhookResult) WebhookResponse {
	return WebhookResponse{
		Received:  true,
		Outcome:   string(r.Outcome),
		PaymentID: r.PaymentID,
		Status:    string(r.Status),
	}
}
