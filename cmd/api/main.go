package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ferramentaria/ferramentaria-api/internal/application/auth"
	"github.com/ferramentaria/ferramentaria-api/internal/application/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/application/usecase"
	"github.com/ferramentaria/ferramentaria-api/internal/infrastructure/postgres"
	httpRouter "github.com/ferramentaria/ferramentaria-api/internal/interfaces/http"
	"github.com/ferramentaria/ferramentaria-api/pkg/config"
	"github.com/ferramentaria/ferramentaria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	modelRepo := postgres.NewItemModelRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	rfidRepo := postgres.NewRfidPendingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, rfidRepo)
	modelUC := usecase.NewItemModelUseCase(modelRepo)
	itemUC := usecase.NewItemUseCase(txRunner, itemRepo, modelRepo, rfidRepo)
	rfidUC := usecase.NewRfidUseCase(itemRepo, userRepo, rfidRepo)
	recordUC := custody.NewRecordTransactionUseCase(txRunner, itemRepo, userRepo, log)
	statusUC := custody.NewStatusUseCase(txRepo, itemRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ferramentaria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ItemModelUC: modelUC,
		ItemUC:      itemUC,
		RfidUC:      rfidUC,
		RecordUC:    recordUC,
		StatusUC:    statusUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
