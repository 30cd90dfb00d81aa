package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rewired-gh/surveyboard/internal/charts"
	"github.com/rewired-gh/surveyboard/internal/config"
	"github.com/rewired-gh/surveyboard/internal/dashboard"
	"github.com/rewired-gh/surveyboard/internal/dataset"
	"github.com/rewired-gh/surveyboard/internal/logger"
	"github.com/rewired-gh/surveyboard/internal/render"
	"github.com/rewired-gh/surveyboard/internal/server"
	"github.com/rewired-gh/surveyboard/internal/telegram"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	dataPath   = flag.String("data", "", "Override dataset path (file or URL)")
	addr       = flag.String("addr", "", "Override listen address")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataPath != "" {
		cfg.Dataset.Path = *dataPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	defer logger.Sync()
	logger.Info("Configuration loaded from %s", *configPath)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	// The table is loaded once and shared read-only for the life of the process
	data, err := dataset.Load(ctx, cfg.Dataset)
	if err != nil {
		logger.Fatal("Failed to load dataset: %v", err)
	}
	logger.Info("Loaded %d responses (%d topics, %d sources) from %s",
		data.Len(), len(data.Topics()), len(data.Sources()), cfg.Dataset.Path)

	svc := dashboard.New(data, charts.Layout{
		DonutWidth:  cfg.Charts.DonutWidth,
		DonutHeight: cfg.Charts.DonutHeight,
		ChartWidth:  cfg.Charts.ChartWidth,
		ChartHeight: cfg.Charts.ChartHeight,
	})
	renderer := render.New(cfg.Charts)

	// Start Telegram command listener
	if cfg.Telegram.Enabled {
		tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase, svc, renderer)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram client initialized successfully")
		tg.ListenForCommands(ctx)
	} else {
		logger.Debug("Telegram bot disabled")
	}

	srv, err := server.New(cfg.Server, svc, renderer)
	if err != nil {
		logger.Fatal("Failed to initialize server: %v", err)
	}
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("Server failed: %v", err)
	}
	logger.Info("Service stopped")
}
