package response

import (
	"testing"
	"time"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.Payment{
		ID:              "pay-1",
		UserID:          "u1",
		CourseID:        "c1",
		Type:            entities.PaymentTypeCourse,
		Amount:          decimal.NewFromInt(100),
		Currency:        "usd",
		PaymentMethod:   entities.PaymentMethodPix,
		TransactionID:   "123",
		AdminShare:      decimal.RequireFromString("15"),
		InstructorShare: decimal.RequireFromString("85"),
		Status:          entities.PaymentStatusCompleted,
		CreatedAt:       now,
		UpdatedAt:       now,
		CompletedAt:     &now,
	}

	res := FromPayment(p)
	if res.ID != "pay-1" || res.PaymentID != "pay-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Amount != "100.00" || res.AdminShare != "15.00" || res.InstructorShare != "85.00" {
		t.Fatalf("unexpected money fields: %+v", res)
	}
	if res.Status != "completed" || res.Type != "course_payment" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.CompletedAt == nil || !res.CompletedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
	if got := FromPayments(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFromPaymentIntent(t *testing.T) {
	res := FromPaymentIntent(usecase.PaymentIntent{
		PaymentID:     "pay-1",
		TransactionID: "ch-1",
		ClientSecret:  "secret",
		Amount:        decimal.RequireFromString("19.9"),
		Currency:      "usd",
		Status:        entities.PaymentStatusPending,
	})
	if res.Amount != "19.90" || res.ClientSecret != "secret" || res.Status != "pending" {
		t.Fatalf("unexpected intent: %+v", res)
	}
}

func TestFromPaymentStats(t *testing.T) {
	stats := entities.Aggregate([]entities.Payment{
		{Status: entities.PaymentStatusCompleted, Amount: decimal.NewFromInt(100), AdminShare: decimal.NewFromInt(15), InstructorShare: decimal.NewFromInt(85)},
		{Status: entities.PaymentStatusPending, Amount: decimal.NewFromInt(10)},
	})

	res := FromPaymentStats(stats)
	if res.TotalPayments != 2 || res.CountByStatus["completed"] != 1 || res.CountByStatus["pending"] != 1 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if res.GrossRevenue != "100.00" || res.AdminRevenue != "15.00" || res.InstructorRevenue != "85.00" {
		t.Fatalf("unexpected revenue: %+v", res)
	}
}

func TestFromWebhookResult(t *testing.T) {
	res := FromWebhookResult(usecase.WebhookResult{Outcome: usecase.WebhookOutcomeDuplicate, PaymentID: "pay-1", Status: entities.PaymentStatusCompleted})
	if !res.Received || res.Outcome != "duplicate" || res.Status != "completed" {
		t.Fatalf("unexpected webhook response: %+v", res)
	}
}
