package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/apiclient"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/config"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/events"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/kafka"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/logger"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/middleware"
)

const serviceName = "service-shelter-intake"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName, logger.Options{
		FilePath:   cfg.Log.Path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Bool("kafka_enabled", cfg.KafkaEnabled()),
	)

	// Shelter API client
	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Debug:   cfg.API.Debug,
	}, log)
	if err != nil {
		log.Fatal("failed to create shelter API client", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Intake events, disabled when no brokers are configured
	var writer events.EventWriter
	if cfg.KafkaEnabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
		writer = producer
	}
	publisher := events.NewIntakePublisher(writer, cfg.Kafka.Topic, log)

	sessions, err := handler.NewSessionRegistry(cfg.SessionCapacity, client, publisher, log)
	if err != nil {
		log.Fatal("failed to create session registry", zap.Error(err))
	}

	if cfg.KafkaEnabled() {
		groupID := cfg.ConsumerGroupID(uuid.New().String())
		log.Info("joining intake consumer group", zap.String("group_id", groupID))
		intakeConsumer := events.NewIntakeEventConsumer(
			cfg.Kafka.Brokers,
			groupID,
			cfg.Kafka.Topic,
			sessions,
			log,
		)
		defer func() { _ = intakeConsumer.Close() }()

		go func() {
			log.Info("starting intake event consumer")
			if err := intakeConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("intake event consumer error", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	handler.NewHealthHandler(serviceName, sessions).RegisterRoutes(router)
	handler.NewFormHandler(sessions).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server. The write timeout covers a full submit, which may
	// wait on two API calls.
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.API.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
