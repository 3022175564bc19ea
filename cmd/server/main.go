package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/studentledger/internal/adapter/http"
	"github.com/iho/studentledger/internal/adapter/http/handler"
	"github.com/iho/studentledger/internal/adapter/http/middleware"
	redisRepo "github.com/iho/studentledger/internal/adapter/repository/redis"
	"github.com/iho/studentledger/internal/infrastructure/auth"
	"github.com/iho/studentledger/internal/infrastructure/config"
	"github.com/iho/studentledger/internal/infrastructure/logger"
	"github.com/iho/studentledger/internal/infrastructure/metrics"
	"github.com/iho/studentledger/internal/infrastructure/redis"
	"github.com/iho/studentledger/internal/report"
	"github.com/iho/studentledger/internal/usecase"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	var redisClient goredis.UniversalClient
	if cfg.RedisEnabled {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()
		redisClient = client
		log.Info().Msg("connected to redis")
	}

	srv := buildServer(cfg, st, redisClient, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("store", st.driver).Msg("starting server")
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

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// buildServer wires use cases, handlers and middleware. redisClient may be
// nil, in which case idempotency keys are not honoured.
func buildServer(cfg *config.Config, st *store, redisClient goredis.UniversalClient, log zerolog.Logger) *http.Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ledgerUC := usecase.NewLedgerUseCase(st.txManager, st.transactions, metrics.NewRecorder(m), usecase.SystemClock{}, log)

	checks := []handler.Check{{Name: st.driver, Ping: st.ping}}

	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redis.Ping(ctx, redisClient)
		}})
	}

	routerCfg := httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		ReportHandler:      handler.NewReportHandler(ledgerUC, report.NewRenderer(), m, log),
		HealthHandler:      handler.NewHealthHandler(checks...),
		DefaultOwner:       cfg.DefaultOwner,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Logger:             log,
	}

	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(m)
	}

	if cfg.AuthEnabled {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		userUC := usecase.NewUserUseCase(st.users, st.idGen)
		routerCfg.AuthHandler = handler.NewAuthHandler(userUC, jwtManager, m)
		routerCfg.TokenVerifier = jwtManager
	}

	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}
