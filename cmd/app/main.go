package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"workshop/cmd"
	"workshop/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := cmd.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	readDB, err := postgres.OpenReadDB(configs.DSN())
	if err != nil {
		log.Fatalf("Error connecting read database: %v", err)
	}
	defer func() { _ = readDB.Close() }()

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, readDB, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}
	defer func() { _ = app.Close() }()

	if err = app.Jobs().StartAll(ctx); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer app.Jobs().StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *zap.Logger) {
	e, err := app.CreateEcho(ctx)
	if err != nil {
		log.Fatalf("Error creating web server: %v", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("web server shutdown", zap.Error(shutdownErr))
		}
	}()

	logger.Info("web server starting", zap.String("port", port))
	if err = e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
