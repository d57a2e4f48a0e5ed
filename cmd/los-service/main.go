package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/okoamaisha/platform/pkg/artifacts"
	"github.com/okoamaisha/platform/pkg/common/config"
	"github.com/okoamaisha/platform/pkg/common/logger"
	"github.com/okoamaisha/platform/pkg/common/middleware"
	"github.com/okoamaisha/platform/pkg/intake"
	"github.com/okoamaisha/platform/pkg/serving"
	"github.com/okoamaisha/platform/pkg/serving/predictor"
	"github.com/okoamaisha/platform/pkg/terminology"
)

func main() {
	logger.Init()
	cfg := config.Load()

	// No degraded mode: without a model there is nothing to serve.
	bundle, err := artifacts.NewLoader(cfg.ArtifactDir, cfg.ArtifactRetryDelay).Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load model artifacts")
	}

	bounds, err := intake.LoadBounds(cfg.InputBoundsFile)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.InputBoundsFile).Fatal("Failed to load input bounds")
	}
	catalog, err := terminology.Load(cfg.TerminologyFile)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.TerminologyFile).Fatal("Failed to load terminology catalog")
	}
	validator := intake.NewValidator(bounds, bundle.Metadata.ComorbidityCols).WithCatalog(catalog)

	handler := serving.NewHTTPHandler(predictor.NewPredictor(bundle, validator), cfg.MaxRequestBody)

	router := mux.NewRouter()
	handler.Register(router)

	var root http.Handler = router
	root = middleware.BodyLimit(cfg.MaxRequestBody)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(root)
	root = middleware.Recovery(root)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      root,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host":     cfg.ServerHost,
			"port":     cfg.ServerPort,
			"features": len(bundle.FeatureNames),
		}).Info("Length-of-stay service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down length-of-stay service...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	logger.Log.Info("Length-of-stay service stopped")
}
