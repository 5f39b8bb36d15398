package pipeline

import (
	"github.com/fortuna/delphi/internal/canon"
	"github.com/fortuna/delphi/internal/season"
	"github.com/fortuna/delphi/internal/store"
)

// joinAwards derives the MVP indicator column: 1 where an award record
// matches the row's (season, canonical player name), else 0. The winner-name
// join key is not carried into the output. When include is false (postseason
// data has no award concept) the join is skipped entirely and every indicator
// is 0, but the column still exists so the output schema is stable.
//
// Matching is exact-string after canonicalization; a winner the source
// garbles beyond the fixed exception table simply fails to match and is
// counted, not resolved.
func joinAwards(rows []store.FeatureRow, winners []store.AwardWinner, include bool, m *Metrics) {
	if !include || len(winners) == 0 {
		for i := range rows {
			rows[i].MVP = 0
		}
		return
	}

	// The year printed alongside the award is the season's start year. One
	// winner per season is meaningful but the source is not trusted to
	// guarantee it: every record keeps its own (season, winner) join key, so
	// a duplicate year either matches its row or lands in the unmatched
	// count rather than vanishing.
	type awardKey struct {
		season string
		winner string
	}
	matched := make(map[awardKey]bool, len(winners))
	for _, w := range winners {
		matched[awardKey{season.Label(w.Year), canon.FormatPlayerName(w.Winner)}] = false
	}

	for i := range rows {
		rows[i].MVP = 0
		key := awardKey{rows[i].Season, canon.FormatPlayerName(rows[i].PlayerName)}
		if _, ok := matched[key]; ok {
			rows[i].MVP = 1
			matched[key] = true
		}
	}

	for _, ok := range matched {
		if !ok {
			m.UnmatchedAwardWinners++
		}
	}
}
