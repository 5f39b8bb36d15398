package pipeline

import (
	"database/sql"
	"sort"

	"github.com/fortuna/delphi/internal/store"
)

// shiftNextSeasonPoints computes the forward-looking supervised target: for
// each player, rows are ordered by season start year ascending and each row
// receives the points value from that player's next chronological row. The
// player's most recent observed season gets NULL. The next-season value is
// unknowable there, and assigning anything else would leak.
func shiftNextSeasonPoints(rows []store.FeatureRow) {
	byPlayer := make(map[int][]int)
	for i := range rows {
		byPlayer[rows[i].PlayerID] = append(byPlayer[rows[i].PlayerID], i)
	}

	for _, idxs := range byPlayer {
		sort.SliceStable(idxs, func(a, b int) bool {
			return rows[idxs[a]].SeasonStartYear < rows[idxs[b]].SeasonStartYear
		})
		for pos, i := range idxs {
			if pos == len(idxs)-1 {
				rows[i].PtsNextSeason = sql.NullFloat64{}
				continue
			}
			next := idxs[pos+1]
			rows[i].PtsNextSeason = sql.NullFloat64{Float64: rows[next].Points, Valid: true}
		}
	}
}
