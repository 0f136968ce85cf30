package main

import (
	"context"
	"errors"

	"edupay/internal/adapter/http/handlers"
	"edupay/internal/adapter/http/routes"
	"edupay/internal/adapter/persistence/repository"
	"edupay/internal/config"
	"edupay/internal/infrastructure/cache"
	"edupay/internal/infrastructure/collaborators"
	"edupay/internal/infrastructure/database"
	"edupay/internal/infrastructure/logger"
	"edupay/internal/infrastructure/payments"
	"edupay/internal/usecase"
	"edupay/internal/usecase/interfaces"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			h, cleanup, err := buildHandlers(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("startup failed", zap.Error(err))
				return err
			}
			defer cleanup()

			log.Info("listening", zap.Int("port", cfg.Port))
			return routes.Run(routes.NewRouter(h, log), cfg.Port)
		},
	}
}

func buildHandlers(ctx context.Context, cfg *config.Config, log *zap.Logger) (routes.Handlers, func(), error) {
	if cfg.Auth.JWTSecret == "" {
		return routes.Handlers{}, nil, errors.New("JWT_SECRET is required")
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return routes.Handlers{}, nil, err
	}
	repo := repository.NewPaymentDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable)

	gateway, err := payments.NewMercadoPagoGateway(payments.GatewayOptions{
		AccessToken:      cfg.Gateway.AccessToken,
		Mock:             cfg.Gateway.Mock,
		WebhookSecret:    cfg.Gateway.WebhookSecret,
		WebhookTolerance: cfg.Gateway.WebhookTolerance,
	}, log)
	if err != nil {
		return routes.Handlers{}, nil, err
	}

	enrollments := collaborators.NewEnrollmentClient(collaborators.Options{
		BaseURL:      cfg.Services.EnrollmentURL,
		ServiceToken: cfg.Services.ServiceToken,
		Timeout:      cfg.Services.Timeout,
		MaxRetries:   cfg.Services.MaxRetries,
	}, log)
	catalog := collaborators.NewCourseCatalogClient(collaborators.Options{
		BaseURL:      cfg.Services.CourseURL,
		ServiceToken: cfg.Services.ServiceToken,
		Timeout:      cfg.Services.Timeout,
		MaxRetries:   cfg.Services.MaxRetries,
	}, log)

	cleanup := func() {}
	var ownerCache interfaces.IOwnerCache
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisOwnerCache(ctx, cfg.Redis.URL)
		if err != nil {
			// attribution still works without the cache
			log.Warn("owner cache disabled", zap.Error(err))
		} else {
			ownerCache = rc
			cleanup = func() { _ = rc.Close() }
		}
	}

	ledger := usecase.NewSettlementLedger(repo, log)
	guard := usecase.NewEnrollmentGuard(enrollments, log)
	resolver := usecase.NewInstructorResolver(catalog, ownerCache, cfg.Redis.OwnerTTL, log)

	paymentUseCase := usecase.NewPaymentUseCase(repo, gateway, ledger, guard, resolver, usecase.PaymentSettings{
		FeeRate:             cfg.Payments.FeeRate,
		MinAmount:           cfg.Payments.MinAmount,
		MaxAmount:           cfg.Payments.MaxAmount,
		InstructorFeeAmount: cfg.Payments.InstructorFeeAmount,
		Currency:            cfg.Payments.Currency,
		GatewayTimeout:      cfg.Gateway.Timeout,
	}, log)
	refundUseCase := usecase.NewRefundUseCase(repo, gateway, ledger, cfg.Gateway.Timeout, log)
	webhookUseCase := usecase.NewWebhookUseCase(repo, gateway, ledger, cfg.Gateway.Timeout, log)

	return routes.Handlers{
		Payments:  handlers.NewPaymentHandler(paymentUseCase, refundUseCase, log),
		Webhooks:  handlers.NewWebhookHandler(webhookUseCase, log),
		JWTSecret: cfg.Auth.JWTSecret,
	}, cleanup, nil
}
