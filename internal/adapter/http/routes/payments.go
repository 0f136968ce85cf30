package routes

import (
	"edupay/internal/adapter/http/middleware"
	"edupay/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, h Handlers) {
	payments := rg.Group(PathPayments)

	// signed by the gateway, no bearer token
	payments.POST("/webhook", h.Webhooks.Receive)

	authed := payments.Group("", middleware.AuthRequired(h.JWTSecret))
	{
		authed.POST("/create-intent", middleware.RequireRoles(entities.RoleStudent), h.Payments.CreateIntent)
		authed.POST("/instructor/fee", middleware.RequireRoles(entities.RoleInstructor, entities.RoleAdmin), h.Payments.CreateInstructorFee)
		authed.POST("/confirm", h.Payments.Confirm)
		authed.POST("/refund", h.Payments.Refund)
		authed.GET("/history", h.Payments.History)
		authed.GET("/stats", middleware.RequireRoles(entities.RoleAdmin), h.Payments.Stats)
		authed.GET("/:id", h.Payments.GetByID)
	}
}
