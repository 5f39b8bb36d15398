package pipeline

import "time"

// Metrics tracks per-run pipeline statistics. Rejections and join misses are
// absorbed conditions, but they must be observable rather than silent.
type Metrics struct {
	RowsIn                int       `json:"rows_in"`
	RowsOut               int       `json:"rows_out"`
	RowsAppended          int       `json:"rows_appended"`
	SeasonRejections      int       `json:"season_rejections"`
	UnmatchedAwardWinners int       `json:"unmatched_award_winners"`
	UnmatchedTeamRows     int       `json:"unmatched_team_rows"`
	SyntheticRows         int       `json:"synthetic_rows"`
	LastRun               time.Time `json:"last_run"`
}
