package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	checkouthttp "github.com/RyuuShuvi/eshop/internal/checkout/adapters/http"
	checkoutmemory "github.com/RyuuShuvi/eshop/internal/checkout/adapters/memory"
	checkoutpostgres "github.com/RyuuShuvi/eshop/internal/checkout/adapters/postgres"
	checkoutapp "github.com/RyuuShuvi/eshop/internal/checkout/app"
	checkoutdomain "github.com/RyuuShuvi/eshop/internal/checkout/domain"
	checkoutmetrics "github.com/RyuuShuvi/eshop/internal/checkout/metrics"
	checkoutports "github.com/RyuuShuvi/eshop/internal/checkout/ports"
	"github.com/RyuuShuvi/eshop/internal/config"
	"github.com/RyuuShuvi/eshop/internal/database"
	shippingadapters "github.com/RyuuShuvi/eshop/internal/shipping/adapters"
	shippingkafka "github.com/RyuuShuvi/eshop/internal/shipping/adapters/kafka"
	shippingmemory "github.com/RyuuShuvi/eshop/internal/shipping/adapters/memory"
	shippingpostgres "github.com/RyuuShuvi/eshop/internal/shipping/adapters/postgres"
	shippingredis "github.com/RyuuShuvi/eshop/internal/shipping/adapters/redis"
	shippingapp "github.com/RyuuShuvi/eshop/internal/shipping/app"
	shippingports "github.com/RyuuShuvi/eshop/internal/shipping/ports"
	"github.com/RyuuShuvi/eshop/internal/telemetry"
)

const meterName = "github.com/RyuuShuvi/eshop"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing && cfg.Telemetry.OTelEndpoint != "",
		EnableMetrics:  cfg.Telemetry.EnableMetrics && cfg.Telemetry.OTelEndpoint != "",
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	meter := otel.Meter(meterName)

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}

	var pool *pgxpool.Pool
	if cfg.Shipping.Store == "postgres" {
		pool, err = database.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if cfg.Database.AutoMigrate {
			logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
			if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
				logger.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}
			logger.Info("migrations completed successfully")
		}
	}

	shippingRepo, productRepo := buildStores(cfg, pool)
	shippingRepo = shippingadapters.NewObservableRepository(shippingRepo, dbMetrics)

	publisher, queue, closeQueue, err := buildQueue(cfg, meter, logger)
	if err != nil {
		logger.Error("failed to build shipping queue", "error", err)
		os.Exit(1)
	}
	defer closeQueue()

	var shippingOpts []shippingapp.Option
	if queue != nil {
		shippingOpts = append(shippingOpts, shippingapp.WithQueue(queue))
	}
	shippingService := shippingapp.NewService(shippingRepo, publisher, logger, shippingOpts...)

	orderMetrics, err := checkoutmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}

	policy := checkoutdomain.SubmitBeforeShipping
	if cfg.Checkout.SubmitPolicy == "shipping-first" {
		policy = checkoutdomain.ShippingBeforeSubmit
	}

	checkoutService := checkoutapp.NewService(productRepo, shippingService, policy, logger, orderMetrics)
	checkoutHandler := checkouthttp.NewHandler(checkoutService)

	if queue != nil {
		go runShippingProcessor(ctx, shippingService, logger)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			if err := database.CheckHealth(r.Context(), pool); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	checkoutHandler.Register(mux)

	httpMetrics, err := checkouthttp.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	handler := withRecovery(withLogging(checkouthttp.WithMetrics(mux, httpMetrics)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

func buildStores(cfg *config.Config, pool *pgxpool.Pool) (shippingports.Repository, checkoutports.ProductRepository) {
	switch cfg.Shipping.Store {
	case "postgres":
		return shippingpostgres.NewRepository(pool), checkoutpostgres.NewProductRepository(pool)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		// Product state stays in memory; only shippings move to redis.
		return shippingredis.NewRepository(client), checkoutmemory.NewProductRepository()
	default:
		return shippingmemory.NewRepository(), checkoutmemory.NewProductRepository()
	}
}

// buildQueue picks the messaging wiring. With brokers configured the new
// shipping events flow through kafka; otherwise an in-process queue keeps
// the processor loop working, except for the redis store where an external
// worker is assumed to consume the events.
func buildQueue(cfg *config.Config, meter metric.Meter, logger *slog.Logger) (shippingports.Publisher, shippingports.Queue, func(), error) {
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaMetrics, err := shippingkafka.NewMetrics(meter)
		if err != nil {
			return nil, nil, nil, err
		}

		publisher := shippingkafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, kafkaMetrics)
		queue := shippingkafka.NewQueue(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)

		closer := func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka publisher", "error", err)
			}
			if err := queue.Close(); err != nil {
				logger.Error("failed to close kafka queue", "error", err)
			}
		}
		return publisher, queue, closer, nil
	}

	if cfg.Shipping.Store == "redis" {
		return shippingkafka.NewNoopPublisher(), nil, func() {}, nil
	}

	queue := shippingmemory.NewQueue()
	return queue, queue, func() {}, nil
}

func runShippingProcessor(ctx context.Context, service *shippingapp.Service, logger *slog.Logger) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			processed, err := service.ProcessShippingBatch(ctx)
			if err != nil {
				logger.Error("shipping batch processing failed", "error", err)
				continue
			}
			if len(processed) > 0 {
				logger.Info("processed shippings", "count", len(processed))
			}
		}
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		slog.Info("http request", "method", r.Method, "path", r.URL.Path, "status", rw.status, "duration", time.Since(start))
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "error", rec)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
