package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"status-backend/config"
	"status-backend/internal/api"
	"status-backend/internal/db"
	"status-backend/internal/filecache"
	"status-backend/internal/scheduler"
	"status-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "status-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded (timezone %s, database %s)", cfg.Timezone, cfg.Database.Driver)

	gormDB, err := db.Init(&cfg.Database, cfg.Debug)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := make([]store.StatusInfo, len(cfg.Status.List))
	for i, e := range cfg.Status.List {
		catalog[i] = store.StatusInfo{ID: e.ID, Name: e.Name, Desc: e.Desc, Color: e.Color}
	}
	appStore := store.NewGormStore(gormDB, store.Options{
		Catalog: catalog,
		View: store.ViewPolicy{
			UsingFirst: cfg.Status.UsingFirst,
			Sorted:     cfg.Status.Sorted,
			NotUsing:   cfg.Status.NotUsing,
		},
		AllowList: cfg.Metrics.AllowList,
	})
	logger.Println("data store initialized")

	// Debug runs with the cache bypassed so edits to static files show up
	// immediately.
	fileCache := filecache.New(cfg.Server.StaticDir, cfg.CacheAge, cfg.Debug)

	schedSvc := scheduler.NewService(cfg, appStore, fileCache)
	go schedSvc.Run(ctx)

	router := api.NewRouter(cfg, appStore, fileCache)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
