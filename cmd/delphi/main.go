package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/delphi/internal/api/rest"
	"github.com/fortuna/delphi/internal/api/websocket"
	"github.com/fortuna/delphi/internal/cache"
	"github.com/fortuna/delphi/internal/config"
	"github.com/fortuna/delphi/internal/ingest/awards"
	"github.com/fortuna/delphi/internal/ingest/nbastats"
	"github.com/fortuna/delphi/internal/scheduler"
	"github.com/fortuna/delphi/internal/service"
	"github.com/fortuna/delphi/internal/store"
)

const (
	serviceName    = "delphi"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - MVP Prediction Service", serviceName, serviceVersion)

	// Load configuration from environment
	cfg := config.Load()
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connection
	db, err := store.NewDatabase(cfg.DelphiDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Delphi database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to Delphi database")

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// Initialize Redis client with retry logic
	var redisCache *cache.RedisCache
	maxRetries := 30
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
	}
	defer redisCache.Close()

	log.Println("✓ Connected to Redis")

	// Initialize scraping clients
	statsClient := nbastats.NewClient(cfg.StatsAPIBase, nil)
	awardClient := awards.NewClient(cfg.AwardHistoryURL, nil)
	defer awardClient.Close()

	// Initialize services
	ingestion := service.NewIngestionService(db, statsClient, awardClient, cfg.CurrentSeason, nil)
	predictions := service.NewPredictionService(db, redisCache, nil)

	// Initialize WebSocket server
	wsServer := websocket.NewServer(redisCache)

	// Initialize scheduler/orchestrator with configuration
	schedulerConfig := &scheduler.Config{
		DailyIngestionHour:   cfg.DailyIngestionHour,
		CurrentSeason:        cfg.CurrentSeason,
		EnableDailyIngestion: cfg.EnableDailyIngestion,
		RunOnStart:           cfg.IngestOnStart,
		MaxRetries:           cfg.IngestMaxRetries,
		RetryDelay:           cfg.IngestRetryDelay,
	}
	sched := scheduler.NewOrchestrator(ingestion, predictions, wsServer, schedulerConfig)

	// Start scheduler in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sched.Start(ctx)

	log.Println("✓ Scheduler started")

	// Initialize REST API server
	handler := rest.NewHandler(db, predictions, ingestion, sched, cfg.CurrentSeason, cfg.PredictionThreshold)
	restServer := rest.NewServer(cfg.RESTPort, handler)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", cfg.RESTPort)

	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.WSPort)
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on :%s", cfg.WSPort)
	log.Printf("✓ Delphi v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s", cfg.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down Delphi gracefully...")

	// Graceful shutdown
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Delphi stopped")
}
