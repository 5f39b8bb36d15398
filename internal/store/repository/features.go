package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// FeaturesRepository handles the finalized feature tables, one per dataset
// variant.
type FeaturesRepository struct {
	db *store.Database
}

// NewFeaturesRepository creates a new features repository.
func NewFeaturesRepository(db *store.Database) *FeaturesRepository {
	return &FeaturesRepository{db: db}
}

// Replace atomically rewrites one variant's feature table: the previous rows
// are deleted and the new ones inserted inside a single transaction, so
// readers never observe a partially written table.
func (r *FeaturesRepository) Replace(ctx context.Context, seasonType string, rows []store.FeatureRow) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting feature rewrite: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM feature_rows WHERE season_type = $1`, seasonType); err != nil {
		return fmt.Errorf("clearing feature rows: %w", err)
	}

	query := `
		INSERT INTO feature_rows
			(season_type, season, player_id, player_name, team,
			 gp, min, fg_pct, fg3_pct, ft_pct, reb, ast, stl, blk, pts,
			 mvp, w_pct, season_start_year, pts_next_season)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query,
			row.SeasonType, row.Season, row.PlayerID, row.PlayerName, row.Team,
			row.GamesPlayed, row.Minutes, row.FGPct, row.FG3Pct, row.FTPct,
			row.Rebounds, row.Assists, row.Steals, row.Blocks, row.Points,
			row.MVP, row.WinPct, row.SeasonStartYear, row.PtsNextSeason,
		); err != nil {
			return fmt.Errorf("inserting feature row for %s %s: %w", row.PlayerName, row.Season, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing feature rewrite: %w", err)
	}

	return nil
}

// ListVariant returns one variant's finalized table in season order.
func (r *FeaturesRepository) ListVariant(ctx context.Context, seasonType string) ([]store.FeatureRow, error) {
	return r.list(ctx, `
		SELECT season_type, season, player_id, player_name, team,
			gp, min, fg_pct, fg3_pct, ft_pct, reb, ast, stl, blk, pts,
			mvp, w_pct, season_start_year, pts_next_season
		FROM feature_rows
		WHERE season_type = $1
		ORDER BY season_start_year, player_name
	`, seasonType)
}

// ListCurrentSeason returns the rows to score for the in-progress season.
func (r *FeaturesRepository) ListCurrentSeason(ctx context.Context, seasonType, seasonLabel string) ([]store.FeatureRow, error) {
	return r.list(ctx, `
		SELECT season_type, season, player_id, player_name, team,
			gp, min, fg_pct, fg3_pct, ft_pct, reb, ast, stl, blk, pts,
			mvp, w_pct, season_start_year, pts_next_season
		FROM feature_rows
		WHERE season_type = $1 AND season = $2
		ORDER BY player_name
	`, seasonType, seasonLabel)
}

func (r *FeaturesRepository) list(ctx context.Context, query string, args ...interface{}) ([]store.FeatureRow, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying feature rows: %w", err)
	}
	defer rows.Close()

	var out []store.FeatureRow
	for rows.Next() {
		var f store.FeatureRow
		if err := rows.Scan(
			&f.SeasonType, &f.Season, &f.PlayerID, &f.PlayerName, &f.Team,
			&f.GamesPlayed, &f.Minutes, &f.FGPct, &f.FG3Pct, &f.FTPct,
			&f.Rebounds, &f.Assists, &f.Steals, &f.Blocks, &f.Points,
			&f.MVP, &f.WinPct, &f.SeasonStartYear, &f.PtsNextSeason,
		); err != nil {
			return nil, fmt.Errorf("scanning feature row: %w", err)
		}
		out = append(out, f)
	}

	return out, rows.Err()
}
