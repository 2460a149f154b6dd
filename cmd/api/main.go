package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appauth "github.com/voluz/vendas-api/internal/application/auth"
	appcommission "github.com/voluz/vendas-api/internal/application/commission"
	"github.com/voluz/vendas-api/internal/application/pipeline"
	"github.com/voluz/vendas-api/internal/application/sellersync"
	"github.com/voluz/vendas-api/internal/infrastructure/postgres"
	httpRouter "github.com/voluz/vendas-api/internal/interfaces/http"
	"github.com/voluz/vendas-api/pkg/config"
	"github.com/voluz/vendas-api/pkg/logger"
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
	leadRepo := postgres.NewLeadRepository(pool)
	batchWriter := postgres.NewBatchWriter(pool)

	pipelineUC := pipeline.NewUseCase(leadRepo, userRepo)
	aggregator := pipeline.NewAggregator(userRepo, leadRepo)
	commissionUC := appcommission.NewUseCase(userRepo, leadRepo)
	reconciler := sellersync.NewReconciler(userRepo, leadRepo, batchWriter, log)
	authUC := appauth.NewAuthUseCase(userRepo, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Tabela de apelidos históricos de vendedores (SYNC_ALIASES, JSON).
	var aliases []sellersync.Alias
	if cfg.Sync.AliasesJSON != "" {
		if err := json.Unmarshal([]byte(cfg.Sync.AliasesJSON), &aliases); err != nil {
			log.Fatal().Err(err).Msg("SYNC_ALIASES malformado")
		}
	}

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
		Title:    "Voluz Vendas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PipelineUC:   pipelineUC,
		Aggregator:   aggregator,
		CommissionUC: commissionUC,
		Reconciler:   reconciler,
		Aliases:      aliases,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
