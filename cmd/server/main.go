package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"investment-ledger-go/internal/api"
	"investment-ledger-go/internal/config"
	"investment-ledger-go/internal/ledger"
	"investment-ledger-go/internal/logger"
	"investment-ledger-go/internal/store"
)

func main() {
	configDir := flag.String("config", "./configs", "Directory containing config.yml")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Open the ledger backend
	s, err := store.Open(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to open ledger storage", zap.Error(err))
	}
	log.Info("Ledger storage ready", zap.String("driver", cfg.Storage.Driver))

	service := ledger.NewService(s, log)
	server := api.NewServer(cfg.Server, api.NewAPIHandler(log, service), log)

	// Shut down gracefully on SIGINT/SIGTERM
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Web server failed", zap.Error(err))
	}
	log.Info("Server has been shut down.")
}
