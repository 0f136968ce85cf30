package handlers

import (
	"net/http"

	"edupay/internal/adapter/http/dto/response"
	"edupay/internal/infrastructure/payments"
	"edupay/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives gateway notifications. It is not behind JWT auth;
// the signature header authenticates the sender.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
	logger  *zap.Logger
}

func NewWebhookHandler(uc usecase.IWebhookUseCase, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{usecase: uc, logger: logger.Named("webhook.handler")}
}

// Receive godoc
// @Summary      Gateway webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Signature  header    string  true  "ts=<unix>,v1=<hex hmac-sha256>"
// @Success      200          {object}  response.WebhookResponse
// @Failure      400,503      {object}  pkg.HTTPError
// @Router       /payments/webhook [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		appErr := invalidRequest(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.HandleEvent(c.Request.Context(), raw, c.GetHeader(payments.SignatureHeader))
	if err != nil {
		h.logger.Warn("webhook rejected", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWebhookResult(result))
}
