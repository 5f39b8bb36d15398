package service

import (
	"testing"
	"time"

	"github.com/fortuna/delphi/internal/season"
)

func TestScrapeSeasonsAppendsUnknownCurrentSeason(t *testing.T) {
	s := &IngestionService{currentSeason: "2999-00"}

	seasons := s.scrapeSeasons()
	if len(seasons) == 0 {
		t.Fatal("expected at least one season")
	}
	if got := seasons[len(seasons)-1]; got != "2999-00" {
		t.Errorf("last season = %q, want the configured current season", got)
	}
}

func TestScrapeSeasonsDoesNotDuplicateCurrentSeason(t *testing.T) {
	// A season already in the historical range must not be listed twice.
	current := season.Label(time.Now().Year() - 1)
	s := &IngestionService{currentSeason: current}

	count := 0
	for _, label := range s.scrapeSeasons() {
		if label == current {
			count++
		}
	}
	if count != 1 {
		t.Errorf("current season appears %d times, want 1", count)
	}
}
