package pipeline

import (
	"database/sql"

	"github.com/fortuna/delphi/internal/store"
)

// ensureCurrentSeason guarantees the in-progress season is represented even
// before any award or standings data exists for it, so the inference stage
// always has at least one row to score. If no row carries the current label,
// the structurally-last row is cloned with its season overwritten and its
// not-yet-knowable fields nulled (MVP=0, win rate NULL).
//
// Only a single synthetic row is produced; there is no roster source to
// synthesize the full current-season player set from.
func ensureCurrentSeason(rows []store.FeatureRow, current string, m *Metrics) []store.FeatureRow {
	if len(rows) == 0 || current == "" {
		return rows
	}
	for i := range rows {
		if rows[i].Season == current {
			return rows
		}
	}

	synth := rows[len(rows)-1]
	synth.Season = current
	synth.MVP = 0
	synth.WinPct = sql.NullFloat64{}
	synth.PtsNextSeason = sql.NullFloat64{}
	m.SyntheticRows++

	return append(rows, synth)
}
