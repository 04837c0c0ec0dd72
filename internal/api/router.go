package api

import (
	"github.com/gorilla/mux"

	httpHandlers "github.com/wreckster1507/sentiment-analysis/internal/api/http"
	"github.com/wreckster1507/sentiment-analysis/internal/api/recovery"
	"github.com/wreckster1507/sentiment-analysis/internal/auth"
	"github.com/wreckster1507/sentiment-analysis/internal/blob"
	"github.com/wreckster1507/sentiment-analysis/internal/config"
	"github.com/wreckster1507/sentiment-analysis/internal/health"
	"github.com/wreckster1507/sentiment-analysis/internal/services"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(
	cfg *config.Config,
	st store.Store,
	blobs blob.Store,
	predictor services.Predictor,
	fetcher services.Downloader,
	checker *health.ServiceHealthChecker,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	authorizer := auth.NewAuthorizer(cfg, st)

	uploadSvc := services.NewUploadService(st, blobs)
	analysisSvc := services.NewAnalysisService(st, blobs, predictor, fetcher)

	healthHandler := httpHandlers.NewHealthHandler(checker)
	uploadHandler := httpHandlers.NewUploadHandler(uploadSvc, authorizer, cfg.MaxUploadBytes)
	analysisHandler := httpHandlers.NewAnalysisHandler(analysisSvc, authorizer)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/upload-url", uploadHandler.InitUpload).Methods("POST")
	router.HandleFunc("/api/upload-video", uploadHandler.UploadVideo).Methods("POST")
	router.HandleFunc("/api/sentiment-inference", analysisHandler.Analyze).Methods("POST")

	return router
}
