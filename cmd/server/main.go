package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/cairnhealth/altitude-risk-service/internal/adapter/geo"
	"github.com/cairnhealth/altitude-risk-service/internal/adapter/httpapi"
	kafkaadapter "github.com/cairnhealth/altitude-risk-service/internal/adapter/kafka"
	"github.com/cairnhealth/altitude-risk-service/internal/config"
	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/observability"
	"github.com/cairnhealth/altitude-risk-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	guideline, err := domain.GuidelineByName(cfg.GuidelineProfile)
	if err != nil {
		logger.Error("unknown guideline profile", "profile", cfg.GuidelineProfile, "error", err)
		os.Exit(1)
	}
	logger.Info("guideline profile loaded",
		"profile", guideline.Name,
		"max_daily_ascent_m", guideline.MaxDailyAscentMeters,
	)

	// Place lookup is feature-flagged via GEO_ENABLED. When Redis is configured
	// the resolver cache is shared across replicas, otherwise it stays in-process.
	var resolver domain.ElevationResolver
	var pinger service.Pinger
	if cfg.GeoEnabled {
		client := geo.NewClient(cfg.GeoTimeout, metrics, logger)

		var store geo.Store
		if cfg.RedisAddr != "" {
			redisStore := geo.NewRedisStore(redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			}))
			store = redisStore
			pinger = redisStore
			logger.Info("geo lookup enabled", "cache", "redis", "addr", cfg.RedisAddr)
		} else {
			store = geo.NewLRUStore(cfg.GeoCacheSize)
			logger.Info("geo lookup enabled", "cache", "lru", "cache_size", cfg.GeoCacheSize)
		}

		resolver = geo.NewCachedResolver(client, store, metrics)
		metrics.GeoEnabled.Set(1)
	} else {
		logger.Info("geo lookup disabled")
	}

	var auditor service.Auditor
	var publisher *kafkaadapter.Publisher
	if cfg.AuditEnabled() {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		auditor = publisher
		logger.Info("audit publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAuditTopic)
	} else {
		logger.Info("audit publishing disabled")
	}

	assessor := service.New(guideline, resolver, auditor, pinger, metrics, logger)
	srv := httpapi.NewServer(cfg.HTTPAddr, assessor, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
