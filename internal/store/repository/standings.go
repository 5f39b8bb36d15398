package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// StandingsRepository handles persisted team season win rates.
type StandingsRepository struct {
	db *store.Database
}

// NewStandingsRepository creates a new standings repository.
func NewStandingsRepository(db *store.Database) *StandingsRepository {
	return &StandingsRepository{db: db}
}

// Insert persists standings, first write wins per (season, team).
func (r *StandingsRepository) Insert(ctx context.Context, standings []store.TeamStanding) (int, error) {
	query := `
		INSERT INTO team_standings (season, team, w_pct)
		VALUES ($1, $2, $3)
		ON CONFLICT (season, team) DO NOTHING
	`

	inserted := 0
	for _, s := range standings {
		res, err := r.db.DB().ExecContext(ctx, query, s.Season, s.Team, s.WinPct)
		if err != nil {
			return inserted, fmt.Errorf("inserting standing %s %s: %w", s.Season, s.Team, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	return inserted, nil
}

// List returns every persisted standing ordered by season then team.
func (r *StandingsRepository) List(ctx context.Context) ([]store.TeamStanding, error) {
	query := `SELECT season, team, w_pct FROM team_standings ORDER BY season, team`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying standings: %w", err)
	}
	defer rows.Close()

	var standings []store.TeamStanding
	for rows.Next() {
		var s store.TeamStanding
		if err := rows.Scan(&s.Season, &s.Team, &s.WinPct); err != nil {
			return nil, fmt.Errorf("scanning standing: %w", err)
		}
		standings = append(standings, s)
	}

	return standings, rows.Err()
}
