package store

import (
	"database/sql"
	"strconv"
	"time"
)

// Dataset variants. Each variant owns one persisted raw table slice and one
// finalized feature table.
const (
	SeasonTypeRegular = "Regular Season"
	SeasonTypePlayoff = "Playoffs"
)

// PlayerSeasonStat is one scraped row per (season type, season, player).
// RANK and EFF from the upstream payload are administrative and dropped at
// parse time; everything else is carried through the pipeline.
type PlayerSeasonStat struct {
	SeasonType  string    `json:"season_type" db:"season_type"`
	Season      string    `json:"season" db:"season"`
	PlayerID    int       `json:"player_id" db:"player_id"`
	PlayerName  string    `json:"player_name" db:"player_name"`
	Team        string    `json:"team" db:"team"`
	GamesPlayed float64   `json:"gp" db:"gp"`
	Minutes     float64   `json:"min" db:"min"`
	FGPct       float64   `json:"fg_pct" db:"fg_pct"`
	FG3Pct      float64   `json:"fg3_pct" db:"fg3_pct"`
	FTPct       float64   `json:"ft_pct" db:"ft_pct"`
	Rebounds    float64   `json:"reb" db:"reb"`
	Assists     float64   `json:"ast" db:"ast"`
	Steals      float64   `json:"stl" db:"stl"`
	Blocks      float64   `json:"blk" db:"blk"`
	Points      float64   `json:"pts" db:"pts"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`
}

// MergeKey is the composite uniqueness key for incremental re-scrapes.
// A key already present is never overwritten by a later scrape.
func (s PlayerSeasonStat) MergeKey() string {
	return s.SeasonType + "|" + s.Season + "|" + s.PlayerName
}

// AwardWinner is one award record: the calendar year printed alongside the
// award and the winner's name as the source lists it.
type AwardWinner struct {
	Year   int    `json:"year" db:"award_year"`
	Winner string `json:"winner" db:"winner"`
}

// MergeKey keys award records by year; the domain tracks one award per year
// but the merge must not assume the source guarantees that.
func (w AwardWinner) MergeKey() string {
	return strconv.Itoa(w.Year) + "|" + w.Winner
}

// TeamStanding is one team's aggregate win rate for a season.
type TeamStanding struct {
	Season string  `json:"season" db:"season"`
	Team   string  `json:"team" db:"team"`
	WinPct float64 `json:"w_pct" db:"w_pct"`
}

// MergeKey is the composite uniqueness key for standings re-scrapes.
func (t TeamStanding) MergeKey() string {
	return t.Season + "|" + t.Team
}

// FeatureRow is one finalized row of the training/inference table: the
// original stat columns plus the derived award indicator, team win rate,
// season start year and next-season target. The table is written once per
// pipeline run and immutable until the next full rewrite.
type FeatureRow struct {
	PlayerSeasonStat

	MVP             int             `json:"mvp" db:"mvp"`
	WinPct          sql.NullFloat64 `json:"w_pct" db:"w_pct"`
	SeasonStartYear int             `json:"season_start_year" db:"season_start_year"`
	PtsNextSeason   sql.NullFloat64 `json:"pts_next_season" db:"pts_next_season"`
}
