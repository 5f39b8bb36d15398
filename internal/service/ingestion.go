package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/delphi/internal/ingest/awards"
	"github.com/fortuna/delphi/internal/ingest/nbastats"
	"github.com/fortuna/delphi/internal/pipeline"
	"github.com/fortuna/delphi/internal/season"
	"github.com/fortuna/delphi/internal/store"
	"github.com/fortuna/delphi/internal/store/repository"
)

// AwardFetcher fetches the rendered award-winner page. Satisfied by
// awards.Client; a stub serves in tests.
type AwardFetcher interface {
	FetchHistoryHTML(ctx context.Context) (string, error)
}

// StatsFetcher fetches stats API tables. Satisfied by nbastats.Client.
type StatsFetcher interface {
	FetchLeagueLeaders(ctx context.Context, seasonLabel, seasonType string) (*nbastats.ResultSet, error)
	FetchStandings(ctx context.Context, seasonLabel string) (*nbastats.ResultSet, error)
}

// IngestionService runs the full pipeline for one or both dataset variants:
// scrape, first-write-wins merge into the persisted raw tables, feature
// assembly and the atomic feature-table rewrite. Runs must not overlap; a
// mutex enforces single-flight within this process (concurrent processes
// are documented unsafe, last rewrite wins).
type IngestionService struct {
	stats    StatsFetcher
	awardSrc AwardFetcher

	players   *repository.PlayerStatsRepository
	awards    *repository.AwardsRepository
	standings *repository.StandingsRepository
	features  *repository.FeaturesRepository

	assembler     *pipeline.Assembler
	currentSeason string
	logger        *log.Logger

	runMu sync.Mutex

	mu          sync.Mutex
	lastMetrics map[string]*pipeline.Metrics
}

// NewIngestionService wires the pipeline against a database and the two
// scraping collaborators.
func NewIngestionService(db *store.Database, stats StatsFetcher, awardSrc AwardFetcher, currentSeason string, logger *log.Logger) *IngestionService {
	if logger == nil {
		logger = log.New(log.Writer(), "[ingest] ", log.LstdFlags)
	}
	return &IngestionService{
		stats:         stats,
		awardSrc:      awardSrc,
		players:       repository.NewPlayerStatsRepository(db),
		awards:        repository.NewAwardsRepository(db),
		standings:     repository.NewStandingsRepository(db),
		features:      repository.NewFeaturesRepository(db),
		assembler:     pipeline.NewAssembler(logger),
		currentSeason: currentSeason,
		logger:        logger,
		lastMetrics:   make(map[string]*pipeline.Metrics),
	}
}

// Run executes one full pipeline pass over both dataset variants.
func (s *IngestionService) Run(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	started := time.Now()
	s.logger.Println("pipeline run started")

	if err := s.scrapePlayers(ctx); err != nil {
		return fmt.Errorf("player stats are the required base table: %w", err)
	}
	// Award and standings sources are optional: a failed fetch degrades to
	// the documented default columns instead of aborting the run.
	if err := s.scrapeAwards(ctx); err != nil {
		s.logger.Printf("award source unavailable, indicator defaults apply: %v", err)
	}
	if err := s.scrapeStandings(ctx); err != nil {
		s.logger.Printf("standings source unavailable, win-rate defaults apply: %v", err)
	}

	if err := s.assemble(ctx, store.SeasonTypeRegular, true, true); err != nil {
		return err
	}
	if err := s.assemble(ctx, store.SeasonTypePlayoff, false, false); err != nil {
		return err
	}

	s.logger.Printf("pipeline run finished in %s", time.Since(started).Round(time.Second))
	return nil
}

// RebuildFeatures reassembles both feature tables from the persisted raw
// tables without scraping. Useful after a manual data fix.
func (s *IngestionService) RebuildFeatures(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if err := s.assemble(ctx, store.SeasonTypeRegular, true, true); err != nil {
		return err
	}
	return s.assemble(ctx, store.SeasonTypePlayoff, false, false)
}

// Metrics returns the last run's metrics per dataset variant.
func (s *IngestionService) Metrics() map[string]*pipeline.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*pipeline.Metrics, len(s.lastMetrics))
	for k, v := range s.lastMetrics {
		copied := *v
		out[k] = &copied
	}
	return out
}

// scrapeSeasons is every historical season label plus the configured current
// one, without duplicates.
func (s *IngestionService) scrapeSeasons() []string {
	seasons := season.Since(time.Now())
	for _, label := range seasons {
		if label == s.currentSeason {
			return seasons
		}
	}
	return append(seasons, s.currentSeason)
}

func (s *IngestionService) scrapePlayers(ctx context.Context) error {
	seasons := s.scrapeSeasons()

	fetched := 0
	for _, variant := range []string{store.SeasonTypeRegular, store.SeasonTypePlayoff} {
		var incoming []store.PlayerSeasonStat
		for _, label := range seasons {
			rs, err := s.stats.FetchLeagueLeaders(ctx, label, variant)
			if err != nil {
				s.logger.Printf("skipping %s %s: %v", label, variant, err)
				continue
			}
			stats, rejected, err := nbastats.ParseLeagueLeaders(rs, label, variant)
			if err != nil {
				s.logger.Printf("skipping %s %s: %v", label, variant, err)
				continue
			}
			if rejected > 0 {
				s.logger.Printf("rejected %d malformed rows for %s %s", rejected, label, variant)
			}
			incoming = append(incoming, stats...)
			fetched++
		}

		existing, err := s.players.ListBySeasonType(ctx, variant)
		if err != nil {
			return err
		}
		merged, appended := pipeline.Merge(existing, incoming)
		if appended == 0 {
			s.logger.Printf("%s: no new player rows", variant)
			continue
		}
		// The primary key makes the insert first-write-wins too; only the
		// genuinely new tail needs persisting.
		if _, err := s.players.Insert(ctx, merged[len(merged)-appended:]); err != nil {
			return err
		}
		s.logger.Printf("%s: appended %d player rows", variant, appended)
	}

	if fetched == 0 {
		existing, err := s.players.ListBySeasonType(ctx, store.SeasonTypeRegular)
		if err != nil || len(existing) == 0 {
			return fmt.Errorf("no seasons fetched and no persisted table: %w", nbastats.ErrSourceUnavailable)
		}
		s.logger.Println("scrape returned nothing; continuing with the persisted table")
	}

	return nil
}

func (s *IngestionService) scrapeAwards(ctx context.Context) error {
	html, err := s.awardSrc.FetchHistoryHTML(ctx)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parsing award page: %w", err)
	}

	winners, rejected := awards.ParseWinners(doc)
	if rejected > 0 {
		s.logger.Printf("rejected %d award lines outside the tracked window", rejected)
	}
	if len(winners) == 0 {
		return errors.New("award page yielded no winners")
	}

	inserted, err := s.awards.Insert(ctx, winners)
	if err != nil {
		return err
	}
	s.logger.Printf("awards: %d new winner records", inserted)
	return nil
}

func (s *IngestionService) scrapeStandings(ctx context.Context) error {
	fetched := 0
	for _, label := range s.scrapeSeasons() {
		rs, err := s.stats.FetchStandings(ctx, label)
		if err != nil {
			s.logger.Printf("skipping standings %s: %v", label, err)
			continue
		}
		standings, err := nbastats.ParseStandings(rs, label)
		if err != nil {
			s.logger.Printf("skipping standings %s: %v", label, err)
			continue
		}
		if _, err := s.standings.Insert(ctx, standings); err != nil {
			return err
		}
		fetched++
	}

	if fetched == 0 {
		return fmt.Errorf("standings: %w", nbastats.ErrSourceUnavailable)
	}
	return nil
}

func (s *IngestionService) assemble(ctx context.Context, variant string, includeMVP, includeWinPct bool) error {
	stats, err := s.players.ListBySeasonType(ctx, variant)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("no persisted player rows for %s", variant)
	}

	opts := pipeline.Options{
		IncludeMVP:    includeMVP,
		IncludeWinPct: includeWinPct,
		CurrentSeason: s.currentSeason,
	}
	if includeMVP {
		if opts.Awards, err = s.awards.List(ctx); err != nil {
			s.logger.Printf("%s: award table unavailable, indicator defaults apply: %v", variant, err)
			opts.IncludeMVP = false
		}
	}
	if includeWinPct {
		if opts.Standings, err = s.standings.List(ctx); err != nil {
			s.logger.Printf("%s: standings table unavailable, win-rate defaults apply: %v", variant, err)
			opts.IncludeWinPct = false
		}
	}

	rows, metrics := s.assembler.Assemble(stats, opts)
	if err := s.features.Replace(ctx, variant, rows); err != nil {
		return fmt.Errorf("rewriting %s feature table: %w", variant, err)
	}

	s.mu.Lock()
	s.lastMetrics[variant] = metrics
	s.mu.Unlock()
	return nil
}
