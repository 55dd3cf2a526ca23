package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/ai"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/cache"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/config"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/pricefeed"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/pricing"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/server"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/store"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/swapsim"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// env bootstrap function
func loadEnv(logger *logrus.Logger) {
	// Get the project root directory (where go.mod is)
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

// main is the entry point for the API server
// It initializes all dependencies and starts the HTTP server with graceful shutdown
func main() {
	// Initialize structured logger with custom formatting
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	loadEnv(logger)

	// Load and validate configuration from environment variables
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown (Ctrl+C, SIGTERM)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Analysis cache: Redis when configured, otherwise in-process
	var analysisCache cache.ResponseCache
	if cfg.RedisAddr != "" {
		rclient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   0, // Use default database for main application
		})
		if err := rclient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Fatal("failed to connect to Redis")
		}
		rc, err := cache.NewRedisCache(rclient, cfg.AnalysisTTL)
		if err != nil {
			logger.WithError(err).Fatal("failed to create analysis cache")
		}
		analysisCache = rc
	} else {
		logger.Info("REDIS_ADDR not set, using in-process analysis cache")
		analysisCache = cache.NewMemoryCache(cfg.AnalysisTTL)
	}

	// In-memory record store, seeded with the Rootstock testnet tokens
	records := store.New(logger)

	// Initialize the model-backed advisor (optional)
	var advisor *ai.Advisor
	if cfg.GeminiAPIKey != "" {
		a, err := ai.NewAdvisor(ai.AdvisorConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.LLMBaseURL,
			Logger:  logger,
		})
		if err != nil {
			logger.WithError(err).Warn("failed to initialize advisor, analysis will use the built-in fallback")
		} else {
			advisor = a
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, analysis will use the built-in fallback")
	}

	insights := ai.NewService(advisor, analysisCache, records, logger)

	// Price provider with fallback chain, plus the websocket feed
	prices := pricing.NewClient(cfg.PriceBaseURL, cfg.PriceBackupURL, logger)
	feed := pricefeed.NewHub(prices, logger)
	go feed.Run(ctx, cfg.PriceInterval)

	// Simulated approval/swap facade
	sim := swapsim.New(swapsim.Config{
		ApproveDelay: cfg.ApproveDelay,
		SwapDelay:    cfg.SwapDelay,
		SuccessRate:  swapsim.DefaultConfig().SuccessRate,
	}, nil, nil, logger)

	// Create handlers with all dependencies injected
	h := &server.Handlers{
		Store:    records,
		Insights: insights,
		Sim:      sim,
		Quoter:   prices,
		Feed:     feed,
		DevMode:  cfg.DevMode,
		Logger:   logger,
	}

	// Create HTTP server with configuration and handlers
	srv, err := server.NewServer(server.ServerDeps{
		Handlers: h,
		Config: server.ServerConfig{
			Addr:    cfg.APIAddr,
			DevMode: cfg.DevMode,
			APIKey:  cfg.APIKey, // Optional API key for authentication
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create http server")
	}

	// Setup graceful shutdown in a separate goroutine
	go func() {
		<-sigCh // Wait for shutdown signal
		logger.Info("shutting down")
		cancel()                               // Cancel context to stop ongoing operations
		_ = srv.Shutdown(context.Background()) // Gracefully shutdown HTTP server
	}()

	// Start the HTTP server
	logger.WithField("addr", cfg.APIAddr).Info("api server starting")
	if err := srv.Start(); err != nil {
		// "http: Server closed" is expected during graceful shutdown
		if err.Error() == "http: Server closed" {
			return
		}
		logger.WithError(err).Fatal("api server failed")
	}

	// Wait for server to be fully shut down
	if err := srv.WaitClosed(context.Background()); err != nil {
		fmt.Println(err)
	}
}
