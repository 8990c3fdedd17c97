//	@title			datadrop
//	@version		v0
//	@description	Upload and download per-x-system data files.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	APIKeyAuth
//	@in							header
//	@name						X-API-Key
//	@description				Opaque API key resolved to a set of authorized x-systems.

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/datadrop/service/internal/config"
	"github.com/datadrop/service/internal/drop"
	appMiddleware "github.com/datadrop/service/internal/middleware"
	"github.com/datadrop/service/internal/storage"
	"github.com/datadrop/service/internal/system"

	_ "github.com/datadrop/service/docs/swagger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration load failed", "error", err)
		os.Exit(1)
	}

	var store storage.Store
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewMinio(
			cfg.S3Endpoint,
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			cfg.S3Bucket,
			cfg.S3UseSSL,
		)
	default:
		store, err = storage.NewLocal(cfg.DropDirectory)
	}
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	// Background write pool; nil queue means synchronous writes.
	queueCtx, stopQueue := context.WithCancel(context.Background())
	queueDone := make(chan struct{})
	var queue *drop.Queue
	if !cfg.SyncWrites {
		queue = drop.NewQueue(store, log, cfg.WriteWorkers, 256)
		go func() {
			queue.Run(queueCtx)
			close(queueDone)
		}()
	} else {
		close(queueDone)
	}

	// Wire dependencies: service → handler
	dropSvc := drop.NewService(store, queue, log)
	dropHandler := drop.NewHandler(dropSvc, cfg.MaxUploadBytes)
	systemHandler := system.NewHandler(store, log, version)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Unauthenticated system endpoints
	r.Get("/_system/check", systemHandler.Check)
	r.Get("/_system/metrics", systemHandler.Metrics)

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v0
	r.Route("/v0", func(r chi.Router) {
		r.Use(appMiddleware.RequireAPIKey(cfg.UserDatabase))

		r.Get("/", dropHandler.ListXSystems)
		r.Get("/{xSystem}", dropHandler.ListEntityTypes)
		r.Get("/{xSystem}/{entityType}", dropHandler.DownloadData)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.LimitConcurrency(cfg.UploadConcurrency))
			r.Post("/{xSystem}", dropHandler.DropDataMultipart)
			r.Post("/{xSystem}/{entityType}", dropHandler.DropData)
		})
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}

	// Let the write pool drain accepted uploads before exit.
	stopQueue()
	select {
	case <-queueDone:
	case <-time.After(30 * time.Second):
		log.Warn("write pool did not drain in time")
	}

	log.Info("server stopped")
}
