package routes

import (
	"net/http"
	"strconv"

	_ "edupay/docs" // swagger spec registration
	"edupay/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Payments  *handlers.PaymentHandler
	Webhooks  *handlers.WebhookHandler
	JWTSecret string
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	setMiddlewares(router, logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, h)
	return router
}

// Run will start the server
func Run(router *gin.Engine, port int) error {
	return router.Run(":" + strconv.Itoa(port))
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
