package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"edupay/internal/adapter/http/handlers/mocks"
	"edupay/internal/domain/entities"
	"edupay/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestWebhookHandler_Receive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := `{"id":"evt-1","type":"payment.succeeded","data":{"id":"123"}}`

	setup := func(t *testing.T) (*mocks.MockIWebhookUseCase, *gin.Engine) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIWebhookUseCase(ctrl)
		h := NewWebhookHandler(uc, nil)
		r := gin.New()
		r.POST("/v1/payments/webhook", h.Receive)
		return uc, r
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", bytes.NewBufferString(body))
		req.Header.Set("X-Signature", "ts=1,v1=abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("applied", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().HandleEvent(gomock.Any(), []byte(body), "ts=1,v1=abc").
			Return(usecase.WebhookResult{Outcome: usecase.WebhookOutcomeApplied, PaymentID: "pay-1", Status: entities.PaymentStatusCompleted}, nil)

		w := post(r)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := decodeBody(t, w); got["outcome"] != "applied" || got["received"] != true {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("unknown transaction is acknowledged", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().HandleEvent(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(usecase.WebhookResult{Outcome: usecase.WebhookOutcomeUnknownTransaction}, nil)

		if w := post(r); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().HandleEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{}, usecase.ErrSignatureInvalid)

		if w := post(r); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("signed but unreadable event", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().HandleEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{}, usecase.ErrInvalidWebhookEvent)

		w := post(r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeBody(t, w); got["code"] != "INVALID_REQUEST" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("gateway lookup down", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().HandleEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{}, usecase.ErrUpstreamUnavailable)

		if w := post(r); w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
