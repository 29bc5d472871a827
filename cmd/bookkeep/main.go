package main

import (
	"context"
	"log/slog"
	"os"

	"bookkeep/config"
	"bookkeep/internal/delivery"
	"bookkeep/internal/delivery/http"
	"bookkeep/internal/delivery/http/middleware"
	"bookkeep/internal/delivery/http/router/handler"
	"bookkeep/internal/domain/service"
	"bookkeep/internal/infra/auth"
	logs "bookkeep/internal/infra/log"
	"bookkeep/internal/infra/notification"
	"bookkeep/internal/infra/persistence/postgres"
	"bookkeep/internal/infra/qrcode"
	"bookkeep/internal/infra/session"
	"bookkeep/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			session.New,
			notification.NewSMTPNotifier,
			qrcode.NewQRCodeService,
		),
	)
}

// newPasswordHasher creates a bcrypt hasher with the configured cost
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil || cfg.Auth.BcryptCost == 0 {
		// Use the bcrypt default cost if not configured
		return auth.NewBcryptHasher()
	}

	return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewSupplierService,
			impl.NewProductService,
			impl.NewOrderService,
			impl.NewServiceRecordService,
			impl.NewStatisticsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewSupplierHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewServiceRecordHandler,
			handler.NewStatisticsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
