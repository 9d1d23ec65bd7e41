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

	"go.uber.org/zap"

	"github.com/acmelogistics/inbound-api/internal/config"
	"github.com/acmelogistics/inbound-api/internal/httpserver"
	"github.com/acmelogistics/inbound-api/internal/logger"
	"github.com/acmelogistics/inbound-api/internal/store"
)

// main boots the service: config → logger → stores → schema → HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	// Load registry is a single JSON document; a missing file is an empty registry.
	loads := store.NewJSONLoadStore(cfg.LoadsPath)

	// Call logs live in Postgres behind a connection pool.
	calls, err := store.NewPostgresCallStore(cfg.DB.DSN())
	if err != nil {
		zl.Fatal("call log store unavailable", zap.Error(err))
	}
	defer calls.Close()

	if err := calls.EnsureSchema(); err != nil {
		zl.Fatal("schema bootstrap failed", zap.Error(err))
	}

	router := httpserver.NewRouter(cfg, loads, calls, zl)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("forced shutdown", zap.Error(err))
	}

	zl.Info("server exited")
}
