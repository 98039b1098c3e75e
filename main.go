package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/protokollhq/protokoll/pkg/config"
	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/utils"
)

func main() {
	utils.InitLogger()
	logger := utils.GetLogger()

	configFile, err := config.EnsureDefaultConfig()
	if err != nil {
		logger.Error("Failed to ensure default config", "error", err)
		os.Exit(1)
	}

	cfg, _, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "file", configFile, "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		logger.Error("Failed to open database", "path", cfg.DatabasePath(), "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := NewServer(cfg, database)
	if err := server.Start(ctx); err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}

	logger.Info("Protokoll started", "config", configFile, "host", cfg.Host(), "port", cfg.Port())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())
	cancel()
}
