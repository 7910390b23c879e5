package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/lib/pq"

	"riskgate/internal/platform/config"
	"riskgate/internal/platform/httpserver"
	"riskgate/internal/platform/kafka"
	"riskgate/internal/platform/logger"
	redisplatform "riskgate/internal/platform/redis"
	riskhandler "riskgate/internal/riskprofile/handler"
	riskmetrics "riskgate/internal/riskprofile/metrics"
	riskservice "riskgate/internal/riskprofile/service"
	riskstore "riskgate/internal/riskprofile/store"
	accountstore "riskgate/internal/riskprofile/store/account"
	profilestore "riskgate/internal/riskprofile/store/profile"
	questionstore "riskgate/internal/riskprofile/store/question"
	responsestore "riskgate/internal/riskprofile/store/response"
	scalestore "riskgate/internal/riskprofile/store/scale"
	selectionstore "riskgate/internal/riskprofile/store/selection"
	audit "riskgate/pkg/platform/audit"
	auditkafka "riskgate/pkg/platform/audit/sink/kafka"
	auditmemory "riskgate/pkg/platform/audit/store/memory"
	"riskgate/pkg/platform/httputil"
)

// main wires stores, the questionnaire service, and the HTTP surface. With no
// DATABASE_URL the process runs fully in memory with seeded dev data.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var serviceOpts []riskservice.Option
	serviceOpts = append(serviceOpts, riskservice.WithLogger(log))
	serviceOpts = append(serviceOpts, riskservice.WithMetrics(riskmetrics.New()))

	var stores riskservice.Stores
	var scaleBase scalestore.Store
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}
		stores = riskservice.Stores{
			Accounts:   accountstore.NewPostgres(db),
			Questions:  questionstore.NewPostgres(db),
			Responses:  responsestore.NewPostgres(db),
			Selections: selectionstore.NewPostgres(db),
			Profiles:   profilestore.NewPostgres(db),
		}
		scaleBase = scalestore.NewPostgres(db)
		serviceOpts = append(serviceOpts, riskservice.WithTx(newPostgresStoreTx(db)))
		log.Info("using postgres stores")
	} else {
		accounts := accountstore.NewInMemory()
		questions := questionstore.NewInMemory()
		responses := responsestore.NewInMemory()
		scales := scalestore.NewInMemory()
		riskstore.SeedDevData(accounts, questions, responses, scales)
		stores = riskservice.Stores{
			Accounts:   accounts,
			Questions:  questions,
			Responses:  responses,
			Selections: selectionstore.NewInMemory(),
			Profiles:   profilestore.NewInMemory(),
		}
		scaleBase = scales
		log.Warn("DATABASE_URL not set, using in-memory stores with dev seed data")
	}

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	stores.Scales = scaleBase
	if redisClient != nil {
		defer redisClient.Close()
		stores.Scales = scalestore.NewCached(scaleBase, redisClient.Client, config.ScaleCacheTTL, log)
		log.Info("scale cache enabled")
	}

	auditStore := audit.Store(auditmemory.NewInMemoryStore())
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		auditStore = audit.NewFanout(auditStore, auditkafka.NewSink(producer, cfg.Kafka.AuditTopic))
		log.Info("audit kafka sink enabled", "topic", cfg.Kafka.AuditTopic)
	}
	auditor := audit.NewPublisher(auditStore, audit.WithAsyncBuffer(256))
	defer auditor.Close()
	serviceOpts = append(serviceOpts, riskservice.WithAuditor(auditor))

	svc := riskservice.NewService(stores, serviceOpts...)

	router := chi.NewRouter()
	riskhandler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting riskgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
