package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/techserve_ng/backend/internal/chatbot"
	"github.com/techserve_ng/backend/internal/config"
	"github.com/techserve_ng/backend/internal/db"
	httpapi "github.com/techserve_ng/backend/internal/http"
	"github.com/techserve_ng/backend/internal/notify"
	"github.com/techserve_ng/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "techserve-backend").Logger()

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := chatbot.ValidateFlows(); err != nil {
		logger.Fatal().Err(err).Msg("invalid assistant flows")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if cfg.MigrateOnStart {
		if err := store.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	var limiter service.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		limiter = service.NewRedisLimiter(rdb, "techserve:leads:", service.LeadMaxHits, service.LeadWindow)
		logger.Info().Msg("using redis lead rate limiter")
	} else {
		limiter = service.NewMemoryLimiter(service.LeadMaxHits, service.LeadWindow)
	}

	var notifier service.Notifier = notify.NopNotifier{}
	if cfg.NotificationsEnabled() {
		notifier = notify.NewEmailNotifier(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.EmailAPIKey,
			FromEmail: cfg.NotifyFrom,
			To:        cfg.NotifyTo,
		})
	} else {
		logger.Info().Msg("EMAIL_API_KEY not set, lead notifications disabled")
	}

	intake := &service.IntakeService{
		Store:        store,
		Limiter:      limiter,
		Notifier:     notifier,
		Logger:       logger,
		CompanyPhone: cfg.CompanyPhone,
	}

	router := httpapi.Router(cfg, store, intake, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(ctxShutdown)
		intake.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server error")
	}
	logger.Info().Msg("server stopped")
}
