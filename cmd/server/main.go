package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"haven/internal/blackout"
	"haven/internal/crypto/keys"
	"haven/internal/delivery"
	"haven/internal/devicetoken"
	"haven/internal/platform/audit"
	"haven/internal/platform/config"
	"haven/internal/platform/httpserver"
	"haven/internal/platform/logger"
	"haven/internal/platform/metrics"
	"haven/internal/platform/postgres"
	"haven/internal/platform/redis"
	profilestore "haven/internal/profile/store"
	routinghandler "haven/internal/routing/handler"
	"haven/internal/routing/ports"
	routingservice "haven/internal/routing/service"
	signalhandler "haven/internal/signal/handler"
	signalstore "haven/internal/signal/store"
	httptransport "haven/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages. Every backend falls back
// to an in-memory implementation when unconfigured, so a bare
// `go run ./cmd/server` works for local development.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	checks := map[string]httptransport.HealthCheck{}

	// Signal store: Postgres when configured, else in-memory.
	var signals interface {
		ports.SignalStore
		signalhandler.Store
	}
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		signals = signalstore.NewPostgres(db)
		checks["postgres"] = func(ctx context.Context) error { return db.PingContext(ctx) }
		log.Info("signal store: postgres")
	} else {
		signals = signalstore.NewInMemory()
		log.Warn("signal store: in-memory, signals are lost on restart")
	}

	// Profile store reads the projection tables over pgx.
	var profiles ports.ProfileStore
	pool, err := postgres.OpenPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
		profiles = profilestore.NewPostgres(pool)
	} else {
		profiles = profilestore.NewInMemory()
		log.Warn("profile store: in-memory")
	}

	// Blackout windows need shared state across instances; Redis when
	// configured.
	var blackouts interface {
		ports.BlackoutScheduler
		signalhandler.BlackoutReader
	}
	if cfg.Redis.URL != "" {
		redisClient, err := redis.New(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		blackouts = blackout.NewRedisScheduler(redisClient.Client)
		checks["redis"] = redisClient.Health
		log.Info("blackout scheduler: redis")
	} else {
		blackouts = blackout.NewInMemory()
		log.Warn("blackout scheduler: in-memory")
	}

	// Delivery queue: Kafka when brokers are configured.
	var queue ports.DeliveryQueue
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaQueue, err := delivery.NewKafkaQueue(ctx, cfg.Kafka.Brokers, cfg.Kafka.DeliveryTopic)
		if err != nil {
			return err
		}
		defer kafkaQueue.Close()
		queue = kafkaQueue
		log.Info("delivery queue: kafka", "topic", cfg.Kafka.DeliveryTopic)
	} else {
		queue = delivery.NewInMemory()
		log.Warn("delivery queue: in-memory, nothing reaches a partner")
	}

	partnerPublicKey := cfg.PartnerPublicKeyPEM
	if partnerPublicKey == "" {
		// Development only: mint a throwaway keypair so the pipeline can
		// run end to end. Sealed envelopes are undecryptable by anyone.
		pair, err := keys.GeneratePartnerKeyPair()
		if err != nil {
			return err
		}
		partnerPublicKey = pair.PublicKey
		log.Warn("PARTNER_PUBLIC_KEY unset, using ephemeral development keypair")
	}

	// Audit trail: channel-fed worker so emitters never block.
	auditInbox := make(chan audit.Event, 256)
	auditWorker := audit.NewWorker(audit.NewInMemoryStore(), auditInbox)
	auditPublisher := audit.NewChannelPublisher(auditInbox, log)

	routing, err := routingservice.New(
		signals, profiles, queue, blackouts, partnerPublicKey,
		routingservice.WithLogger(log),
		routingservice.WithMetrics(m),
		routingservice.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		return err
	}

	jwtService := devicetoken.NewJWTService(cfg.DeviceJWTSigningKey, "haven", "haven-devices")

	router := httptransport.NewRouter(httptransport.Deps{
		Signals: signalhandler.New(signals, blackouts, jwtService, log, m, auditPublisher),
		Routing: routinghandler.New(routing, log),
		Checks:  checks,
	})
	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting haven", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		return auditWorker.Run(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
