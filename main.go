package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"cherishedwords/internal/config"
	"cherishedwords/internal/database"
	"cherishedwords/internal/logging"
	"cherishedwords/internal/repositories"
	"cherishedwords/internal/server"
	"cherishedwords/internal/services"
	"cherishedwords/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(logging.Options{
		App:   "cherishedwords",
		Env:   cfg.Env,
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})

	app, cleanup, err := buildApp(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize application")
	}
	defer cleanup()

	// --- Start HTTP Server ---
	logger.WithField("port", cfg.Port).Info("Starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logger.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.WithError(err).Error("Error during Fiber shutdown")
	}
	logger.Info("Server gracefully stopped")
}

// buildApp wires storage, the optional event broker and the HTTP app. The
// returned cleanup releases what was opened.
func buildApp(cfg *config.ServerConfig, logger *logrus.Logger) (*fiber.App, func(), error) {
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{sqlDB.Close}

	deps := server.Deps{
		Users: repositories.NewGORMUserRepository(db),
		Cards: repositories.NewGORMCardRepository(db),
		Log:   logger,
	}

	// --- Initialize RabbitMQ Client ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		closers = append(closers, mqClient.Close)
		deps.Publisher = mqClient

		// Audit consumer: every card event ends up in the log.
		if err := mqClient.ConsumeCardEvents(func(event services.CardEvent) error {
			logger.WithFields(logrus.Fields{
				"event":   event.Type,
				"card_id": event.CardID,
				"user_id": event.UserID,
			}).Info("Received card event")
			return nil
		}); err != nil {
			logger.WithError(err).Error("Failed to start RabbitMQ consumer")
		}
	} else {
		logger.Warn("RABBITMQ_URL not set, card events are not published")
	}

	app, _ := server.NewApp(server.Options{
		ProjectID: cfg.ProjectID,
		APIKey:    cfg.APIKey,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		AccessLog: cfg.Env == "development",
	}, deps)

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.WithError(err).Error("Error during cleanup")
			}
		}
	}
	return app, cleanup, nil
}
