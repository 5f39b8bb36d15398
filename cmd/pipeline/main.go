package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/fortuna/delphi/internal/config"
	"github.com/fortuna/delphi/internal/ingest/awards"
	"github.com/fortuna/delphi/internal/ingest/nbastats"
	"github.com/fortuna/delphi/internal/service"
	"github.com/fortuna/delphi/internal/store"
)

const (
	appName    = "delphi-pipeline"
	appVersion = "1.0.0"
)

// One-shot pipeline run for cron jobs and manual rebuilds. The long-running
// service schedules the same work itself; this binary exists for operating
// outside it.
func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	cfg := config.Load()

	var (
		dsn          = flag.String("dsn", cfg.DelphiDSN, "Delphi DSN")
		statsBase    = flag.String("stats-url", cfg.StatsAPIBase, "Stats API base URL")
		awardURL     = flag.String("award-url", cfg.AwardHistoryURL, "Award history page URL")
		season       = flag.String("season", cfg.CurrentSeason, "Current season label (e.g. 2025-26)")
		rebuildOnly  = flag.Bool("rebuild-only", false, "Reassemble feature tables without scraping")
		printMetrics = flag.Bool("metrics", true, "Print pipeline metrics after the run")
		timeout      = flag.Duration("timeout", 45*time.Minute, "Overall run timeout")
	)

	flag.Parse()

	db, err := store.NewDatabase(*dsn)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	statsClient := nbastats.NewClient(*statsBase, nil)
	awardClient := awards.NewClient(*awardURL, nil)
	defer awardClient.Close()

	ingestion := service.NewIngestionService(db, statsClient, awardClient, *season, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *rebuildOnly {
		err = ingestion.RebuildFeatures(ctx)
	} else {
		err = ingestion.Run(ctx)
	}
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	if *printMetrics {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ingestion.Metrics()); err != nil {
			log.Printf("encode metrics: %v", err)
		}
	}

	log.Println("✓ Pipeline completed successfully")
}
