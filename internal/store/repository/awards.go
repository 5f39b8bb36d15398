package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// AwardsRepository handles persisted award-winner records.
type AwardsRepository struct {
	db *store.Database
}

// NewAwardsRepository creates a new awards repository.
func NewAwardsRepository(db *store.Database) *AwardsRepository {
	return &AwardsRepository{db: db}
}

// Insert persists winner records, first write wins per (year, winner).
func (r *AwardsRepository) Insert(ctx context.Context, winners []store.AwardWinner) (int, error) {
	query := `
		INSERT INTO award_winners (award_year, winner)
		VALUES ($1, $2)
		ON CONFLICT (award_year, winner) DO NOTHING
	`

	inserted := 0
	for _, w := range winners {
		res, err := r.db.DB().ExecContext(ctx, query, w.Year, w.Winner)
		if err != nil {
			return inserted, fmt.Errorf("inserting winner %d %s: %w", w.Year, w.Winner, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	return inserted, nil
}

// List returns every persisted winner, oldest year first.
func (r *AwardsRepository) List(ctx context.Context) ([]store.AwardWinner, error) {
	query := `SELECT award_year, winner FROM award_winners ORDER BY award_year`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying award winners: %w", err)
	}
	defer rows.Close()

	var winners []store.AwardWinner
	for rows.Next() {
		var w store.AwardWinner
		if err := rows.Scan(&w.Year, &w.Winner); err != nil {
			return nil, fmt.Errorf("scanning award winner: %w", err)
		}
		winners = append(winners, w)
	}

	return winners, rows.Err()
}
