// Command server runs the loan application record service.
//
// Wiring only; business logic lives in the internal packages. Optional
// infrastructure (Postgres, Redis, Kafka) is enabled when its address is
// configured and replaced by in-memory implementations otherwise, so a bare
// `go run ./cmd/server` gives a fully working development instance.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	apphandler "lendfold/internal/application/handler"
	"lendfold/internal/application/service"
	appstore "lendfold/internal/application/store"
	"lendfold/internal/audit"
	"lendfold/internal/export"
	"lendfold/internal/fieldcrypt"
	"lendfold/internal/identity"
	"lendfold/internal/platform/config"
	"lendfold/internal/platform/httpserver"
	"lendfold/internal/platform/logger"
	"lendfold/internal/platform/metrics"
	platformredis "lendfold/internal/platform/redis"
	"lendfold/internal/ratelimit"
	httptransport "lendfold/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	codec, err := fieldcrypt.New(cfg.FieldCryptSecret)
	if err != nil {
		return err
	}
	m := metrics.New()

	var (
		applications appstore.Store = appstore.NewInMemory()
		auditStore   audit.Store    = audit.NewInMemoryStore()
		health       func(ctx context.Context) error
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		applications = appstore.NewPostgres(db)
		auditStore = audit.NewPostgresStore(db)
		health = db.PingContext
		log.Info("postgres stores enabled")
	}

	var buckets ratelimit.BucketStore = ratelimit.NewInMemoryBucketStore()
	redisClient, err := platformredis.New(cfg.RedisAddr)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		buckets = ratelimit.NewRedisBucketStore(redisClient.Client)
		log.Info("redis rate limiting enabled", "addr", cfg.RedisAddr)
	}

	auditOpts := []audit.Option{}
	var (
		outbox    chan audit.Event
		forwarder *audit.KafkaForwarder
	)
	if len(cfg.KafkaBrokers) > 0 {
		forwarder, err = audit.NewKafkaForwarder(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			return err
		}
		defer forwarder.Close()
		outbox = make(chan audit.Event, 256)
		auditOpts = append(auditOpts, audit.WithOutbox(outbox))
		log.Info("kafka audit forwarding enabled", "topic", cfg.KafkaAuditTopic)
	}
	recorder := audit.NewRecorder(auditStore, log, auditOpts...)

	svc := service.New(applications, codec, recorder, log, service.WithMetrics(m))
	limiter := ratelimit.NewLimiter(buckets, cfg.CreateLimit, cfg.CreateWindow, log)
	exportSvc := export.New(applications, codec, recorder, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Metrics:      m,
		Verifier:     identity.NewVerifier(cfg.IdentitySigningKey),
		Applications: apphandler.New(svc, limiter, log),
		Export:       export.NewHandler(exportSvc),
		Health:       health,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting lendfold", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if forwarder != nil {
		worker := audit.NewWorker(outbox, forwarder, log)
		g.Go(func() error {
			if err := worker.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
