package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jackut-dev/jackut/db"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/core"
	"github.com/jackut-dev/jackut/internal/facade"
	"github.com/jackut-dev/jackut/internal/logger"
	"github.com/jackut-dev/jackut/internal/router"
	"github.com/jackut-dev/jackut/internal/store"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.L.Info("no .env file, using process environment")
	}

	network := core.NewNetwork()

	// Persistence is a collaborator: without a DATABASE_URL the system runs
	// purely in memory, and a failed load just starts empty.
	var snapshots core.SnapshotStore

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		if err := db.ConnectDatabase(dsn); err != nil {
			logger.L.Warn("database unavailable, running in memory", zap.Error(err))
		} else if err := db.MigrateDatabase(); err != nil {
			logger.L.Warn("migration failed, running in memory", zap.Error(err))
		} else {
			snapshots = store.NewGormStore(db.DB)
		}
	}

	app.Jackut = facade.New(network, snapshots, logger.L)
	app.Jackut.Startup(context.Background())

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		logger.L.Info("PORT not set, defaulting to 3000")
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router.NewRouter(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.L.Info("server started", zap.String("port", port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.L.Error("server forced to shutdown", zap.Error(err))
	}

	// Snapshot save plus session clear.
	app.Jackut.Shutdown(ctx)
}
