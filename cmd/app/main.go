package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tozzo28/bulking/internal/config"
	"github.com/tozzo28/bulking/internal/db"
	"github.com/tozzo28/bulking/internal/email"
	"github.com/tozzo28/bulking/internal/logger"
	"github.com/tozzo28/bulking/internal/server"
)

// @title Bulking API
// @version 1.0
// @description Class scheduling and booking API for the Bulking gym platform.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting Bulking application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	logger.Info("Running migrations...")
	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	emailService := email.New(
		cfg.EmailFrom, cfg.EmailFromName,
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)

	srv := server.New(database, cfg, emailService)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down...")
		cancel()
		os.Exit(0)
	}()

	logger.Info("Server listening", "port", cfg.Port)
	if err := srv.Start(cfg.Port); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
