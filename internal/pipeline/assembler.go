package pipeline

import (
	"errors"
	"log"
	"time"

	"github.com/fortuna/delphi/internal/season"
	"github.com/fortuna/delphi/internal/store"
)

// ErrNothingToPredict reports that no rows carry the designated current
// season even after synthesis, so there is nothing for the inference stage
// to score. Callers surface this as an explicit condition, not a crash.
var ErrNothingToPredict = errors.New("no rows for the current season")

// Options configures one assembly run for a dataset variant. A nil optional
// source behaves exactly like a disabled flag: the stage is skipped but its
// output column is still populated with the documented default, so the
// output schema is identical regardless of which sources were supplied.
type Options struct {
	IncludeMVP    bool
	IncludeWinPct bool
	CurrentSeason string

	Awards    []store.AwardWinner
	Standings []store.TeamStanding
}

// Assembler turns merged raw tables into the finalized feature table. Stage
// order is fixed: clean, award join, team-rate join, current-season
// synthesis, start-year extraction, next-season shift.
type Assembler struct {
	logger *log.Logger
}

// NewAssembler constructs an Assembler. A nil logger gets a tagged default.
func NewAssembler(logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.New(log.Writer(), "[pipeline] ", log.LstdFlags)
	}
	return &Assembler{logger: logger}
}

// Assemble runs the full derivation over an already-merged player table and
// returns the finalized rows plus run metrics. Rows whose season label does
// not parse to a tracked start year are rejected and counted, never
// mislabeled; the rest of the table is still processed.
func (a *Assembler) Assemble(stats []store.PlayerSeasonStat, opts Options) ([]store.FeatureRow, *Metrics) {
	m := &Metrics{RowsIn: len(stats), LastRun: time.Now()}

	rows := make([]store.FeatureRow, 0, len(stats))
	for _, s := range stats {
		if _, err := season.ParseStartYear(s.Season); err != nil {
			m.SeasonRejections++
			a.logger.Printf("rejecting row for %q: %v", s.PlayerName, err)
			continue
		}
		rows = append(rows, store.FeatureRow{PlayerSeasonStat: s})
	}

	joinAwards(rows, opts.Awards, opts.IncludeMVP, m)
	joinTeamRates(rows, opts.Standings, opts.IncludeWinPct, m)
	rows = ensureCurrentSeason(rows, opts.CurrentSeason, m)

	for i := range rows {
		year, err := season.StartYear(rows[i].Season)
		if err != nil {
			// Cannot happen for cleaned rows; the synthetic row reuses the
			// validated current-season label.
			m.SeasonRejections++
			continue
		}
		rows[i].SeasonStartYear = year
	}

	shiftNextSeasonPoints(rows)

	m.RowsOut = len(rows)
	a.logger.Printf("assembled %d rows (rejected %d, synthetic %d, unmatched awards %d, unmatched teams %d)",
		m.RowsOut, m.SeasonRejections, m.SyntheticRows, m.UnmatchedAwardWinners, m.UnmatchedTeamRows)

	return rows, m
}
