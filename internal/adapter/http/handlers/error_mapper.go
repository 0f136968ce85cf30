package handlers

import (
	"errors"
	"net/http"

	"edupay/internal/usecase"
	"edupay/pkg"
)

func mapPaymentError(err error) *pkg.AppError {
	var amountErr *usecase.InvalidAmountError
	var gatewayErr *usecase.GatewayError
	var transitionErr *usecase.TransitionError

	switch {
	case errors.As(err, &amountErr):
		return pkg.NewDomainError("INVALID_AMOUNT", amountErr.Error(), err, http.StatusUnprocessableEntity).WithDetails(map[string]any{
			"bound":     string(amountErr.Bound),
			"limit":     amountErr.Limit.StringFixed(2),
			"requested": amountErr.Requested.StringFixed(2),
		})
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainError("INVALID_AMOUNT", "Invalid amount", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrAlreadyEntitled):
		return pkg.NewDomainError("ALREADY_ENTITLED", "User already has access to this content", err, http.StatusConflict)
	case errors.As(err, &gatewayErr):
		return pkg.NewDomainError("GATEWAY_ERROR", "Payment gateway rejected the request", err, http.StatusBadGateway).WithDetails(map[string]any{
			"operation": gatewayErr.Op,
			"reason":    gatewayErr.Message(),
		})
	case errors.Is(err, usecase.ErrGateway):
		return pkg.NewDomainError("GATEWAY_ERROR", "Payment gateway rejected the request", err, http.StatusBadGateway)
	case errors.As(err, &transitionErr):
		return pkg.NewDomainError("INVALID_TRANSITION", "Payment is not in a state that allows this operation", err, http.StatusConflict).WithDetails(map[string]any{
			"current_status":   string(transitionErr.From),
			"requested_status": string(transitionErr.To),
		})
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Payment is not in a state that allows this operation", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrRefundNotAllowed):
		return pkg.NewDomainError("REFUND_NOT_ALLOWED", "Only completed payments can be refunded", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrSignatureInvalid):
		return pkg.NewDomainError("INVALID_SIGNATURE", "Invalid webhook signature", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainError("FORBIDDEN", "Forbidden", err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		return pkg.NewDomainError("UPSTREAM_UNAVAILABLE", "A dependent service is unavailable, try again later", err, http.StatusServiceUnavailable).AsRetryable()
	case errors.Is(err, usecase.ErrInvalidPaymentTarget),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrChargeMismatch),
		errors.Is(err, usecase.ErrInvalidClaimedStatus),
		errors.Is(err, usecase.ErrInvalidWebhookEvent):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func invalidRequest(err error) *pkg.AppError {
	return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
}
