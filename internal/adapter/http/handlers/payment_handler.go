package handlers

import (
	"net/http"

	"edupay/internal/adapter/http/dto/request"
	"edupay/internal/adapter/http/dto/response"
	"edupay/internal/adapter/http/middleware"
	"edupay/internal/usecase"
	"edupay/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler handles the authenticated payment routes.
type PaymentHandler struct {
	payments usecase.IPaymentUseCase
	refunds  usecase.IRefundUseCase
	logger   *zap.Logger
}

func NewPaymentHandler(payments usecase.IPaymentUseCase, refunds usecase.IRefundUseCase, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{payments: payments, refunds: refunds, logger: logger.Named("payment.handler")}
}

// CreateIntent godoc
// @Summary      Open a course or lesson payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.CreatePaymentIntentRequest  true  "purchase"
// @Success      201   {object}  response.PaymentIntentResponse
// @Failure      400,409,422,502  {object}  pkg.HTTPError
// @Router       /payments/create-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req request.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, invalidRequest(err))
		return
	}
	requester := middleware.Requester(c)

	intent, err := h.payments.CreatePayment(c.Request.Context(), usecase.CreatePaymentCommand{
		UserID:   requester.UserID,
		CourseID: req.CourseID,
		LessonID: req.LessonID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Method:   req.Method(),
	})
	if err != nil {
		h.logger.Info("create intent failed", zap.String("user_id", requester.UserID), zap.Error(err))
		h.fail(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentIntent(intent))
}

// CreateInstructorFee godoc
// @Summary      Open the instructor registration fee payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.InstructorFeeRequest  false  "fee"
// @Success      201   {object}  response.PaymentIntentResponse
// @Failure      400,422,502  {object}  pkg.HTTPError
// @Router       /payments/instructor/fee [post]
func (h *PaymentHandler) CreateInstructorFee(c *gin.Context) {
	var req request.InstructorFeeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, invalidRequest(err))
			return
		}
	}
	requester := middleware.Requester(c)

	intent, err := h.payments.CreateInstructorFee(c.Request.Context(), usecase.CreateInstructorFeeCommand{
		UserID:   requester.UserID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Method:   req.Method(),
	})
	if err != nil {
		h.logger.Info("instructor fee failed", zap.String("user_id", requester.UserID), zap.Error(err))
		h.fail(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentIntent(intent))
}

// Confirm godoc
// @Summary      Confirm a pending payment after the client completed the charge
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.ConfirmPaymentRequest  true  "confirmation"
// @Success      200   {object}  response.PaymentResponse
// @Failure      400,403,404,409,503  {object}  pkg.HTTPError
// @Router       /payments/confirm [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, invalidRequest(err))
		return
	}
	requester := middleware.Requester(c)

	payment, err := h.payments.ConfirmPayment(c.Request.Context(), usecase.ConfirmPaymentCommand{
		PaymentID:     req.PaymentID,
		ChargeID:      req.ChargeID,
		ClaimedStatus: req.Claimed(),
		UserID:        requester.UserID,
	})
	if err != nil {
		h.logger.Info("confirm failed", zap.String("payment_id", req.PaymentID), zap.Error(err))
		h.fail(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// Refund godoc
// @Summary      Refund a completed payment in full
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.RefundRequest  true  "refund"
// @Success      200   {object}  response.PaymentResponse
// @Failure      400,403,404,409,502  {object}  pkg.HTTPError
// @Router       /payments/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req request.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, invalidRequest(err))
		return
	}

	payment, err := h.refunds.Refund(c.Request.Context(), usecase.RefundCommand{
		PaymentID: req.PaymentID,
		Reason:    req.Reason,
		Requester: middleware.Requester(c),
	})
	if err != nil {
		h.logger.Info("refund failed", zap.String("payment_id", req.PaymentID), zap.Error(err))
		h.fail(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// GetByID godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "payment id"
// @Success      200  {object}  response.PaymentResponse
// @Failure      400,403,404  {object}  pkg.HTTPError
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	payment, err := h.payments.GetByID(c.Request.Context(), c.Param("id"), middleware.Requester(c))
	if err != nil {
		h.fail(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// History godoc
// @Summary      List payments of the caller, or of ?userId= for admins
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        userId  query     string  false  "user id (admin only)"
// @Success      200     {array}   response.PaymentResponse
// @Failure      403     {object}  pkg.HTTPError
// @Router       /payments/history [get]
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.payments.History(c.Request.Context(), middleware.Requester(c), c.Query("userId"))
	if err != nil {
		h.fail(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// Stats godoc
// @Summary      Revenue and status counts over the whole ledger
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.PaymentStatsResponse
// @Router       /payments/stats [get]
func (h *PaymentHandler) Stats(c *gin.Context) {
	stats, err := h.payments.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentStats(stats))
}

func (h *PaymentHandler) fail(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.String("code", appErr.Code), zap.Error(appErr.Err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
