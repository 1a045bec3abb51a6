package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jhoicas/inventaris-api/internal/application/auth"
	"github.com/jhoicas/inventaris-api/internal/application/inventory"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/media"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventaris-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/qrcode"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventaris-api/internal/interfaces/http"
	"github.com/jhoicas/inventaris-api/pkg/config"
	"github.com/jhoicas/inventaris-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.NewMigrator(pool).Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	files, err := storage.New(ctx, cfg.Storage, cfg.HTTP.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar storage")
	}
	images := media.NewImageUploader(files)
	m := metrics.New()

	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockEntryRepository(pool)
	lookupRepo := postgres.NewLookupRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	repos := inventory.Repos{Items: itemRepo, Warehouses: warehouseRepo, Stock: stockRepo}
	ledger := inventory.NewLedger(repos, inventory.WithRecorder(m))

	itemUC := usecase.NewItemUseCase(usecase.ItemDeps{
		Repos:   repos,
		Lookups: lookupRepo,
		Tx:      txRunner,
		Ledger:  ledger,
		Images:  images,
		Log:     log,
	})
	labelUC := usecase.NewLabelUseCase(itemRepo, qrcode.NewGenerator(qrcode.DefaultSize),
		infrapdf.NewLabelSheetGenerator(), files, log)
	authUC := auth.NewAuthUseCase(userRepo, images, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	appCfg := httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Log:         log,
		Metrics:     m,
		SwaggerFile: "./docs/swagger.json",
	}
	if cfg.Storage.Driver == config.StorageLocal {
		appCfg.StorageDir = cfg.Storage.LocalDir
	}
	app := httpRouter.NewApp(appCfg, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		StockUC:     usecase.NewStockUseCase(ledger),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo, userRepo),
		LookupUC:    usecase.NewLookupUseCase(lookupRepo),
		UserUC:      usecase.NewUserUseCase(userRepo, images, log),
		LabelUC:     labelUC,
		DashboardUC: usecase.NewDashboardUseCase(itemRepo, lookupRepo, warehouseRepo, userRepo),
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil && !strings.Contains(err.Error(), "server closed") {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
