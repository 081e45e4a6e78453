package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/inventory"
	"github.com/jhoicas/pos-core/internal/application/usecase"
	infrapdf "github.com/jhoicas/pos-core/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-core/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-core/internal/interfaces/http"
	"github.com/jhoicas/pos-core/pkg/config"
	"github.com/jhoicas/pos-core/pkg/logger"
	"github.com/jhoicas/pos-core/pkg/metrics"
	"github.com/jhoicas/pos-core/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas")
	}
	if err := metrics.RegisterPool(prometheus.DefaultRegisterer, pool); err != nil {
		log.Fatal().Err(err).Msg("registrar métricas del pool")
	}

	hasher, err := password.New(cfg.Auth.Hasher, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hasher de contraseñas")
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, txRunner, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.Options{
		AdminPassword:      cfg.Auth.AdminPassword,
		AllowInactiveLogin: cfg.Auth.AllowInactiveLogin,
	}, log, m)

	// Sin rol ADMIN ni usuario inicial no se sirve ninguna petición.
	if err := authUC.InitializeAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("inicializar administrador")
	}

	userUC := usecase.NewUserUseCase(userRepo, roleRepo, txRunner, hasher, log)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	inventoryUC := inventory.NewInventoryUseCase(categoryRepo, productRepo)
	reportUC := inventory.NewReportUseCase(productRepo, infrapdf.NewStockReportGenerator())

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		SwaggerFile: cfg.HTTP.SwaggerFile,
		Metrics:     m,
	}, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		StoreUC:     storeUC,
		InventoryUC: inventoryUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado con error")
		pool.Close()
		os.Exit(1)
	}

	log.Info().Msg("aplicación detenida")
}
