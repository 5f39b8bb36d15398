package scheduler

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/fortuna/delphi/internal/pipeline"
	"github.com/fortuna/delphi/internal/service"
	"github.com/fortuna/delphi/internal/store"
)

// Broadcaster pushes a serialized prediction update to live subscribers.
// Satisfied by the websocket server.
type Broadcaster interface {
	BroadcastPredictions(data []byte)
}

// Orchestrator manages the scheduled pipeline runs and fans the refreshed
// predictions out to subscribers afterwards.
type Orchestrator struct {
	ingestion   *service.IngestionService
	predictions *service.PredictionService
	broadcaster Broadcaster
	config      *Config

	cancel  context.CancelFunc
	runCtx  context.Context
	running atomic.Bool
}

// Config holds scheduler configuration
type Config struct {
	DailyIngestionHour   int           // Default: 6 (6 AM)
	CurrentSeason        string        // e.g., "2025-26"
	EnableDailyIngestion bool          // Default: true
	RunOnStart           bool          // Default: false
	MaxRetries           int           // Default: 3
	RetryDelay           time.Duration // Default: 5m
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		DailyIngestionHour:   6,
		CurrentSeason:        "2025-26",
		EnableDailyIngestion: true,
		RunOnStart:           false,
		MaxRetries:           3,
		RetryDelay:           5 * time.Minute,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(ingestion *service.IngestionService, predictions *service.PredictionService, broadcaster Broadcaster, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{
		ingestion:   ingestion,
		predictions: predictions,
		broadcaster: broadcaster,
		config:      config,
	}
}

// Start begins the scheduled tasks and blocks until the context ends.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║     Delphi Pipeline Orchestrator       ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Daily ingestion: %v (at %02d:00)", o.config.EnableDailyIngestion, o.config.DailyIngestionHour)
	log.Printf("Season: %s", o.config.CurrentSeason)
	log.Println()

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.runCtx = ctx

	if o.config.RunOnStart {
		if err := o.TriggerRun(); err != nil {
			log.Printf("⚠️  Startup run not triggered: %v", err)
		}
	}

	if o.config.EnableDailyIngestion {
		go o.runDailySchedule(ctx)
	}

	<-ctx.Done()
	log.Println("Scheduler orchestrator stopping...")
}

// runDailySchedule sleeps until the configured hour every day and runs the
// full pipeline.
func (o *Orchestrator) runDailySchedule(ctx context.Context) {
	log.Printf("→ Daily pipeline scheduler started (runs at %02d:00 daily)", o.config.DailyIngestionHour)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.DailyIngestionHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next pipeline run: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Daily pipeline scheduler stopped")
			return
		case <-time.After(waitDuration):
			log.Println("═══ Daily Pipeline Run Starting ═══")
			o.runPipelineWithRetry(ctx)
			log.Println("═══ Daily Pipeline Run Complete ═══")
		}
	}
}

// runPipelineWithRetry runs the full pipeline, retrying transient failures,
// then refreshes and broadcasts predictions.
func (o *Orchestrator) runPipelineWithRetry(ctx context.Context) {
	if !o.running.CompareAndSwap(false, true) {
		log.Println("⚠️  Pipeline run already in progress, skipping")
		return
	}
	defer o.running.Store(false)

	startTime := time.Now()

	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		if err = o.ingestion.Run(ctx); err == nil {
			break
		}

		log.Printf("  ⚠️  Pipeline attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)
		if attempt < o.config.MaxRetries {
			log.Printf("  Retrying in %v...", o.config.RetryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}
	if err != nil {
		log.Printf("  ❌ All %d pipeline attempts failed", o.config.MaxRetries)
		return
	}

	o.refreshPredictions(ctx)
	log.Printf("✓ Pipeline run complete in %v", time.Since(startTime).Round(time.Second))
}

// refreshPredictions recomputes both variants and broadcasts the regular
// season ranking to live subscribers.
func (o *Orchestrator) refreshPredictions(ctx context.Context) {
	for _, variant := range []string{store.SeasonTypeRegular, store.SeasonTypePlayoff} {
		payload, err := o.predictions.Refresh(ctx, variant, o.config.CurrentSeason)
		if err != nil {
			if errors.Is(err, pipeline.ErrNothingToPredict) {
				log.Printf("  %s: nothing to predict for %s yet", variant, o.config.CurrentSeason)
				continue
			}
			log.Printf("  ⚠️  Refreshing %s predictions failed: %v", variant, err)
			continue
		}

		if variant == store.SeasonTypeRegular && o.broadcaster != nil {
			o.broadcaster.BroadcastPredictions(payload)
		}
	}
}

// TriggerRun starts a pipeline run in the background. Returns an error when
// a run is already in flight or the orchestrator has not started.
func (o *Orchestrator) TriggerRun() error {
	if o.runCtx == nil {
		return errors.New("orchestrator not started")
	}
	if o.running.Load() {
		return errors.New("pipeline run already in progress")
	}

	go o.runPipelineWithRetry(o.runCtx)
	return nil
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	log.Println("Stopping scheduler orchestrator...")
	if o.cancel != nil {
		o.cancel()
	}
	log.Println("✓ Scheduler orchestrator stopped")
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"daily_ingestion_enabled": o.config.EnableDailyIngestion,
		"daily_ingestion_hour":    o.config.DailyIngestionHour,
		"current_season":          o.config.CurrentSeason,
		"run_in_progress":         o.running.Load(),
	}
}
