package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wreckster1507/sentiment-analysis/internal/api"
	"github.com/wreckster1507/sentiment-analysis/internal/blob"
	s3blob "github.com/wreckster1507/sentiment-analysis/internal/blob/s3"
	"github.com/wreckster1507/sentiment-analysis/internal/config"
	"github.com/wreckster1507/sentiment-analysis/internal/health"
	"github.com/wreckster1507/sentiment-analysis/internal/inference"
	"github.com/wreckster1507/sentiment-analysis/internal/platform/logger"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
	"github.com/wreckster1507/sentiment-analysis/internal/store/postgres"
)

func main() {
	// Optional override for the model endpoint (local runs)
	inferenceURL := flag.String("inference-url", "", "Override SENTIMENT_INFERENCE_URL")
	flag.Parse()

	log := logger.New("sentiment-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *inferenceURL != "" {
		cfg.InferenceURL = *inferenceURL
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("http_port", cfg.HTTPPort).
		Str("inference_url", cfg.InferenceURL).
		Msg("Sentiment service starting…")

	ctx := context.Background()

	// -------- Storage layer -----------------
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres unavailable")
	}
	defer func() { _ = db.Close() }()
	if err := postgres.Bootstrap(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Schema bootstrap failed")
	}
	st := postgres.NewWithDB(db)

	// -------- Blob store --------------------
	blobs, err := s3blob.New(ctx, s3blob.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Blob store unavailable")
	}

	// -------- Inference client --------------
	model := inference.NewClient(cfg.InferenceURL)
	fetcher := blob.NewFetcher(nil)

	// -------- Health monitor ----------------
	storeHC := store.NewStoreHealthChecker(st, log, 2*time.Second)
	modelHC := inference.NewModelHealthChecker(model, log, 2*time.Second)
	serviceHC := health.NewServiceHealthChecker(log, storeHC, modelHC)
	go storeHC.Start(ctx, cfg.HealthInterval)
	go modelHC.Start(ctx, cfg.HealthInterval)
	go serviceHC.Start(ctx, cfg.HealthInterval)

	// -------- Router & Server ---------------
	router := api.NewRouter(cfg, st, blobs, model, fetcher, serviceHC)
	// WriteTimeout must cover a full predict call, which can run for
	// minutes on long videos.
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
