package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"

	"github.com/harentsoaR/smile-care-api/internal/config"
	"github.com/harentsoaR/smile-care-api/internal/handlers"
	"github.com/harentsoaR/smile-care-api/internal/repository"
	"github.com/harentsoaR/smile-care-api/internal/services"
	"github.com/harentsoaR/smile-care-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := repository.Connect(connectCtx, cfg.MongoConnectionURI(), cfg.MongoDatabase)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Disconnect(shutdownCtx); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = store.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	db := store.Database()
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)

	// --- Catalog cache ---
	var options services.OptionStore = repository.NewOptionRepo(db)
	if cfg.RedisAddr != "" {
		rdb, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			cached := repository.NewCachedOptionStore(options, rdb, cfg.CatalogCacheTTL, logger)
			if err := cached.Invalidate(ctx); err != nil {
				logger.Warn("Failed to clear stale catalog cache", zap.Error(err))
			}
			options = cached
			logger.Info("Catalog cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CatalogCacheTTL))
		}
	}

	// --- External services ---
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set, payment intents will fail")
	}
	gateway := services.NewStripeGateway(cfg.StripeSecretKey, nil)

	var notifier services.Notifier = services.NewLogNotifier(logger)
	if cfg.MailEnabled() {
		mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
		mailer := services.NewMailgunNotifier(mg, cfg.MailSender, cfg.NotifyTimeout, logger)
		defer mailer.Wait()
		notifier = mailer
	} else {
		logger.Info("Mailgun is not configured, confirmations are only logged")
	}

	var tx services.Transactor
	if cfg.MongoTransactions {
		tx = store
	}

	issuer, err := utils.NewAccessTokenIssuer(cfg.TokenSecret)
	if err != nil {
		return err
	}

	// --- Services & handlers ---
	svc := handlers.Services{
		Availability: services.NewAvailabilityService(options, bookings),
		Bookings:     services.NewBookingService(options, bookings, notifier, logger),
		Auth:         services.NewAuthService(users, issuer),
		Payments:     services.NewPaymentService(repository.NewPaymentRepo(db), bookings, gateway, tx, logger),
		Users:        services.NewUserService(users),
		Doctors:      services.NewDoctorService(repository.NewDoctorRepo(db)),
	}
	h := handlers.NewHandler(svc, store, logger, cfg.RequestTimeout)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handlers.NewRouter(h, issuer, handlers.RouterOptions{
		AllowedOrigins:    cfg.Origins(),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Smile care server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
