package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aebonlee/stepup-cloud/backend/config"
	"github.com/aebonlee/stepup-cloud/backend/routes"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logCfg := utils.LoggerConfig{
		Format:       cfg.LogFormat,
		EnableColors: cfg.LogFormat != "json" && !cfg.IsProduction(),
	}
	logger := utils.InitLogger(logCfg)

	// Initialize database
	st, err := utils.InitDB(cfg, logger)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}

	revoked, err := utils.InitRevocations(cfg, logger)
	if err != nil {
		logger.Fatalf("Error initializing token revocation: %v", err)
	}

	app := routes.NewApp(cfg, logger, logCfg)
	routes.SetupRoutes(app, st, revoked, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("StepUp Cloud API listening on :%s (%s)", cfg.ServerPort, cfg.Env)
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Printf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Println("Shutting down...")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Printf("Error during shutdown: %v", err)
	}
	if err := st.Close(); err != nil {
		logger.Printf("Error closing database: %v", err)
	}
	if closer, ok := revoked.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Printf("Error closing redis: %v", err)
		}
	}
}
