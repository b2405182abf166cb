package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/events"
	"github.com/anonto42/socialfeed/backend/internal/metrics"
	"github.com/anonto42/socialfeed/backend/internal/router"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/anonto42/socialfeed/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := router.Migrate(ctx, db.Postgres, db.Mongo.Database(cfg.MongoDatabase)); err != nil {
		return err
	}

	var verifier services.TokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return err
		}
		verifier = app.AuthClient
		log.Info("firebase login enabled")
	}

	publisher := events.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		log.Info("publishing events to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close event publisher", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	config.SetupMiddleware(e, cfg, log)
	router.SetupRoutes(e, router.Deps{
		Config:    cfg,
		DB:        db,
		Firebase:  verifier,
		Publisher: publisher,
		Metrics:   collector,
		Logger:    log,
	})

	api := &http.Server{Addr: ":" + cfg.Port, Handler: e, ReadHeaderTimeout: 5 * time.Second}
	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metrics.Handler(reg), ReadHeaderTimeout: 5 * time.Second}

	eg, groupCtx := errgroup.WithContext(ctx)
	for name, srv := range map[string]*http.Server{"api": api, "metrics": metricsSrv} {
		eg.Go(func() error {
			log.Info("server starting", zap.String("server", name), zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	eg.Go(func() error {
		<-groupCtx.Done()
		log.Info("server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(api.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}
