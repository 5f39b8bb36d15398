package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// PlayerStatsRepository handles the persisted raw player table.
type PlayerStatsRepository struct {
	db *store.Database
}

// NewPlayerStatsRepository creates a new player stats repository.
func NewPlayerStatsRepository(db *store.Database) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

// Insert persists scraped rows. The composite primary key plus ON CONFLICT
// DO NOTHING mirrors the in-memory first-write-wins merge: keys already
// settled are never overwritten, only new keys land. Returns the number of
// rows actually inserted.
func (r *PlayerStatsRepository) Insert(ctx context.Context, stats []store.PlayerSeasonStat) (int, error) {
	query := `
		INSERT INTO player_season_stats
			(season_type, season, player_id, player_name, team,
			 gp, min, fg_pct, fg3_pct, ft_pct, reb, ast, stl, blk, pts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (season_type, season, player_name) DO NOTHING
	`

	inserted := 0
	for _, s := range stats {
		res, err := r.db.DB().ExecContext(ctx, query,
			s.SeasonType, s.Season, s.PlayerID, s.PlayerName, s.Team,
			s.GamesPlayed, s.Minutes, s.FGPct, s.FG3Pct, s.FTPct,
			s.Rebounds, s.Assists, s.Steals, s.Blocks, s.Points,
		)
		if err != nil {
			return inserted, fmt.Errorf("inserting stats for %s %s: %w", s.PlayerName, s.Season, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	return inserted, nil
}

// ListBySeasonType returns the full persisted table for one dataset variant
// in insertion order, so merged output keeps existing rows first.
func (r *PlayerStatsRepository) ListBySeasonType(ctx context.Context, seasonType string) ([]store.PlayerSeasonStat, error) {
	query := `
		SELECT season_type, season, player_id, player_name, team,
			gp, min, fg_pct, fg3_pct, ft_pct, reb, ast, stl, blk, pts, created_at
		FROM player_season_stats
		WHERE season_type = $1
		ORDER BY created_at, season, player_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonType)
	if err != nil {
		return nil, fmt.Errorf("querying player stats: %w", err)
	}
	defer rows.Close()

	var stats []store.PlayerSeasonStat
	for rows.Next() {
		var s store.PlayerSeasonStat
		if err := rows.Scan(
			&s.SeasonType, &s.Season, &s.PlayerID, &s.PlayerName, &s.Team,
			&s.GamesPlayed, &s.Minutes, &s.FGPct, &s.FG3Pct, &s.FTPct,
			&s.Rebounds, &s.Assists, &s.Steals, &s.Blocks, &s.Points, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning player stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
