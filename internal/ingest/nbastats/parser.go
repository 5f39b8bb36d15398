package nbastats

import (
	"fmt"

	"github.com/fortuna/delphi/internal/canon"
	"github.com/fortuna/delphi/internal/store"
)

// ResultSet is the positional header/rowSet table shape every stats API
// endpoint returns.
type ResultSet struct {
	Name    string          `json:"name,omitempty"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

type leagueLeadersResponse struct {
	ResultSet ResultSet `json:"resultSet"`
}

type standingsResponse struct {
	ResultSets []ResultSet `json:"resultSets"`
}

// columnIndex resolves a header name to its position.
func (rs *ResultSet) columnIndex(name string) (int, error) {
	for i, h := range rs.Headers {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not in result set", name)
}

// ParseLeagueLeaders converts a leagueLeaders result set into player season
// rows for the given season and season type. RANK and EFF are administrative
// columns and are not carried. Rows with a malformed player field are
// skipped and reported through the returned count.
func ParseLeagueLeaders(rs *ResultSet, seasonLabel, seasonType string) ([]store.PlayerSeasonStat, int, error) {
	cols := map[string]int{}
	for _, name := range []string{"PLAYER_ID", "PLAYER", "TEAM", "GP", "MIN", "FG_PCT", "FG3_PCT", "FT_PCT", "REB", "AST", "STL", "BLK", "PTS"} {
		idx, err := rs.columnIndex(name)
		if err != nil {
			return nil, 0, fmt.Errorf("leagueLeaders payload: %w", err)
		}
		cols[name] = idx
	}

	stats := make([]store.PlayerSeasonStat, 0, len(rs.RowSet))
	rejected := 0
	for _, row := range rs.RowSet {
		if len(row) <= cols["PTS"] {
			rejected++
			continue
		}
		name, ok := row[cols["PLAYER"]].(string)
		if !ok || name == "" {
			rejected++
			continue
		}
		stats = append(stats, store.PlayerSeasonStat{
			SeasonType:  seasonType,
			Season:      seasonLabel,
			PlayerID:    int(asFloat(row[cols["PLAYER_ID"]])),
			PlayerName:  name,
			Team:        asString(row[cols["TEAM"]]),
			GamesPlayed: asFloat(row[cols["GP"]]),
			Minutes:     asFloat(row[cols["MIN"]]),
			FGPct:       asFloat(row[cols["FG_PCT"]]),
			FG3Pct:      asFloat(row[cols["FG3_PCT"]]),
			FTPct:       asFloat(row[cols["FT_PCT"]]),
			Rebounds:    asFloat(row[cols["REB"]]),
			Assists:     asFloat(row[cols["AST"]]),
			Steals:      asFloat(row[cols["STL"]]),
			Blocks:      asFloat(row[cols["BLK"]]),
			Points:      asFloat(row[cols["PTS"]]),
		})
	}

	return stats, rejected, nil
}

// ParseStandings converts a leaguestandingsv3 result set into team standings
// for the given season. Team naming is canonicalized to the abbreviation
// scheme shared with the player table before any join can see it.
func ParseStandings(rs *ResultSet, seasonLabel string) ([]store.TeamStanding, error) {
	cityIdx, err := rs.columnIndex("TeamCity")
	if err != nil {
		return nil, fmt.Errorf("standings payload: %w", err)
	}
	nameIdx, err := rs.columnIndex("TeamName")
	if err != nil {
		return nil, fmt.Errorf("standings payload: %w", err)
	}
	pctIdx, err := rs.columnIndex("WinPCT")
	if err != nil {
		return nil, fmt.Errorf("standings payload: %w", err)
	}

	standings := make([]store.TeamStanding, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		if len(row) <= pctIdx || len(row) <= cityIdx || len(row) <= nameIdx {
			continue
		}
		fullName := asString(row[cityIdx]) + " " + asString(row[nameIdx])
		standings = append(standings, store.TeamStanding{
			Season: seasonLabel,
			Team:   canon.AbbreviateTeam(fullName),
			WinPct: asFloat(row[pctIdx]),
		})
	}

	return standings, nil
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
