package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/unusualpills/internal/domain/ports"
	httphandlers "github.com/rafabene/unusualpills/internal/handlers/http"
	"github.com/rafabene/unusualpills/internal/infrastructure/config"
	"github.com/rafabene/unusualpills/internal/infrastructure/i18n"
	"github.com/rafabene/unusualpills/internal/infrastructure/logging"
	"github.com/rafabene/unusualpills/internal/infrastructure/metrics"
	"github.com/rafabene/unusualpills/internal/infrastructure/payments/stripe"
	"github.com/rafabene/unusualpills/internal/infrastructure/persistence/database"
	"github.com/rafabene/unusualpills/internal/services"
	"github.com/rafabene/unusualpills/web"
)

// @title        Unusual Pills API
// @version      1.0
// @description  JSON endpoints of the Unusual Pills marketing site.
// @BasePath     /
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting unusualpills site",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados e garantir a tabela
	db, err := database.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	// Inicializar i18n
	i18nService, err := i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	promMetrics := metrics.New()

	// Inicializar repositories
	signupRepo := database.NewSignupRepository(db)
	uow := database.NewUnitOfWork(db)

	// Gateway de pagamento é opcional
	var gateway ports.PaymentGateway
	if cfg.Checkout.StripeSecretKey != "" {
		gateway = stripe.NewGateway(cfg.Checkout.StripeSecretKey, logger)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, checkout disabled")
	}

	// Inicializar services
	signupService := services.NewSignupService(signupRepo, uow, promMetrics, logger, services.SignupOptions{
		DefaultCountry: cfg.Signup.DefaultCountry,
		StrictEmail:    cfg.Signup.StrictEmail,
	})
	checkoutService := services.NewCheckoutService(gateway, promMetrics, logger, services.CheckoutOptions{
		SiteURL:    cfg.Checkout.SiteURL,
		CancelPath: cfg.Checkout.CancelPath,
	})

	templates, err := web.Templates()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		log.Fatal(err)
	}
	static, err := web.Static()
	if err != nil {
		log.Fatal(err)
	}

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		I18n:            i18nService,
		Templates:       templates,
		Static:          static,
		SignupService:   signupService,
		CheckoutService: checkoutService,
		Metrics:         promMetrics.Handler(),
		HealthCheck:     sqlDB.PingContext,
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
