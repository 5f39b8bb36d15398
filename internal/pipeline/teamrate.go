package pipeline

import (
	"database/sql"

	"github.com/fortuna/delphi/internal/canon"
	"github.com/fortuna/delphi/internal/store"
)

// joinTeamRates left-joins each team's season win rate onto the player rows
// by (season, team abbreviation). Unmatched rows keep a NULL win rate; when
// include is false the column is NULL for every row. NULL means "not
// applicable" and is distinct from a real 0% rate.
func joinTeamRates(rows []store.FeatureRow, standings []store.TeamStanding, include bool, m *Metrics) {
	if !include || len(standings) == 0 {
		for i := range rows {
			rows[i].WinPct = sql.NullFloat64{}
		}
		return
	}

	rates := make(map[string]float64, len(standings))
	for _, s := range standings {
		rates[s.Season+"|"+canon.AbbreviateTeam(s.Team)] = s.WinPct
	}

	for i := range rows {
		rate, ok := rates[rows[i].Season+"|"+canon.AbbreviateTeam(rows[i].Team)]
		if !ok {
			rows[i].WinPct = sql.NullFloat64{}
			m.UnmatchedTeamRows++
			continue
		}
		rows[i].WinPct = sql.NullFloat64{Float64: rate, Valid: true}
	}
}
