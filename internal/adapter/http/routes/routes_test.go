package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edupay/internal/adapter/http/handlers"
	"edupay/internal/adapter/http/handlers/mocks"
	"edupay/internal/domain/entities"
	"edupay/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/mock/gomock"
)

const secret = "routes-secret"

func bearer(t *testing.T, sub, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	payments := mocks.NewMockIPaymentUseCase(ctrl)
	webhooks := mocks.NewMockIWebhookUseCase(ctrl)

	router := NewRouter(Handlers{
		Payments:  handlers.NewPaymentHandler(payments, mocks.NewMockIRefundUseCase(ctrl), nil),
		Webhooks:  handlers.NewWebhookHandler(webhooks, nil),
		JWTSecret: secret,
	}, nil)

	serve := func(method, path, auth string, body []byte) int {
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("ping", func(t *testing.T) {
		if code := serve(http.MethodGet, "/v1/ping", "", nil); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})

	t.Run("payments need a token", func(t *testing.T) {
		if code := serve(http.MethodGet, "/v1/payments/history", "", nil); code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", code)
		}
	})

	t.Run("stats is admin only", func(t *testing.T) {
		if code := serve(http.MethodGet, "/v1/payments/stats", bearer(t, "u1", "student"), nil); code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", code)
		}
		payments.EXPECT().Stats(gomock.Any()).Return(entities.Aggregate(nil), nil)
		if code := serve(http.MethodGet, "/v1/payments/stats", bearer(t, "a1", "admin"), nil); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})

	t.Run("instructor fee rejects students", func(t *testing.T) {
		if code := serve(http.MethodPost, "/v1/payments/instructor/fee", bearer(t, "u1", "student"), nil); code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", code)
		}
	})

	t.Run("create intent is for students", func(t *testing.T) {
		if code := serve(http.MethodPost, "/v1/payments/create-intent", bearer(t, "i1", "instructor"), []byte(`{}`)); code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", code)
		}
	})

	t.Run("id route does not shadow history", func(t *testing.T) {
		payments.EXPECT().History(gomock.Any(), entities.Requester{UserID: "u1", Role: entities.RoleStudent}, "").Return(nil, nil)
		if code := serve(http.MethodGet, "/v1/payments/history", bearer(t, "u1", "student"), nil); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		payments.EXPECT().GetByID(gomock.Any(), "pay-1", gomock.Any()).Return(entities.Payment{ID: "pay-1"}, nil)
		if code := serve(http.MethodGet, "/v1/payments/pay-1", bearer(t, "u1", "student"), nil); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})

	t.Run("webhook skips jwt", func(t *testing.T) {
		webhooks.EXPECT().HandleEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{Outcome: usecase.WebhookOutcomeIgnored}, nil)
		if code := serve(http.MethodPost, "/v1/payments/webhook", "", []byte(`{}`)); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})
}
