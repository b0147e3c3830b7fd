package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yoobe-br/cubbo-order-support/internal/api"
	"github.com/yoobe-br/cubbo-order-support/internal/config"
	"github.com/yoobe-br/cubbo-order-support/internal/handlers"
	"github.com/yoobe-br/cubbo-order-support/internal/normalize"
	"github.com/yoobe-br/cubbo-order-support/internal/service"
)

// Converter níveis do Zap para severidade do GCP Cloud Logging
func zapLevelToGCPSeverity(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString("DEBUG")
	case zapcore.InfoLevel:
		enc.AppendString("INFO")
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	case zapcore.ErrorLevel:
		enc.AppendString("ERROR")
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		enc.AppendString("CRITICAL")
	case zapcore.FatalLevel:
		enc.AppendString("EMERGENCY")
	default:
		enc.AppendString("DEFAULT")
	}
}

func newLogger() (*zap.Logger, error) {
	// JSON estruturado compatível com o Cloud Logging
	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.MessageKey = "message"
	zapCfg.EncoderConfig.LevelKey = "severity"
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeLevel = zapLevelToGCPSeverity
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapCfg.Build()
}

// MAIN: inicializa servidor e dependências
func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		os.Exit(1)
	}

	// Dependências
	cubboClient := api.NewCubboClient(cfg.Cubbo, logger)
	normalizer := normalize.New(logger, cfg.DefaultCountry)
	orderService := service.NewOrderService(cubboClient, normalizer, cfg.Cubbo.StoreID, logger)
	orderHandler := handlers.NewOrderHandler(orderService, logger)

	// HTTP ROUTES
	router := chi.NewRouter()
	router.Use(handlers.RequestTrace(logger))
	router.Group(orderHandler.Routes)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// GRACEFUL SHUTDOWN
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		<-sigChan

		logger.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}

		logger.Info("Server exited")
		os.Exit(0)
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server stopped unexpectedly", zap.Error(err))
	}
}
