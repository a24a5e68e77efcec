package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "trtlmarket/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"trtlmarket/internal/auth"
	"trtlmarket/internal/cache"
	"trtlmarket/internal/config"
	"trtlmarket/internal/db"
	"trtlmarket/internal/handler"
	"trtlmarket/internal/licenses"
	"trtlmarket/internal/logging"
	"trtlmarket/internal/payment"
	"trtlmarket/internal/repository"
	"trtlmarket/internal/router"
	"trtlmarket/internal/service"
	"trtlmarket/internal/storage"
	"trtlmarket/internal/view"
	"trtlmarket/internal/worker"
)

// @title TRTL Market API
// @version 1.0
// @description Marketplace for digital goods paid with TurtleCoin integrated addresses.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in header
// @name Authorization
// @description Session token issued at login, sent as the trtl_session cookie or as a Bearer token.
func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Warnf("reset database: %v", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, flash notices and logout revocation are disabled")
	}

	catalog, err := licenses.Load(cfg.LicensesFile)
	if err != nil {
		log.Fatalf("licenses: %v", err)
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)

	// Initialize auth components
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, userRepo, auth.NewRevocationStore(cacheClient))
	flash := auth.NewFlashStore(cacheClient, cfg.CookieSecure)

	// Initialize services
	authService := service.NewAuthService(userRepo, log)
	itemService := service.NewItemService(service.ItemServiceConfig{
		Items:      itemRepo,
		Activities: activityRepo,
		Integrator: payment.NewClient(cfg.TRTLServicesURL, cfg.TRTLServicesToken, cfg.TRTLServicesTimeout),
		Store:      store,
		Catalog:    catalog,
		UploadPath: cfg.UploadPath,
		Log:        log,
	})
	moderationService := service.NewModerationService(itemRepo, log)
	activityService := service.NewActivityService(activityRepo)

	// Background jobs
	gauge := worker.NewReviewGauge(moderationService, cfg.ReviewGaugeSchedule, log)
	if err := gauge.Start(ctx); err != nil {
		log.Fatalf("review gauge: %v", err)
	}
	defer gauge.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	// Register routes
	router.Register(e, cfg, log, sessions, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, sessions, flash, cfg.CookieSecure, log),
		Items:    handler.NewItemHandler(itemService, flash, cfg.MaxUploadBytes, log),
		Activity: handler.NewActivityHandler(activityService, flash),
		Account:  handler.NewAccountHandler(authService, flash, log),
		Admin:    handler.NewAdminHandler(moderationService, flash, log),
	})

	log.Infof("Swagger documentation available at: %s", swaggerURL(cfg.SwaggerHost, cfg.ServerPort))

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}

// swaggerURL builds the docs URL. host may already include a scheme.
func swaggerURL(host, port string) string {
	if host == "" {
		host = "localhost:" + port
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}
