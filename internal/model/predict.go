package model

import (
	"sort"

	"github.com/fortuna/delphi/internal/store"
)

// DefaultThreshold is the documented probability floor for listing a player
// as an award candidate.
const DefaultThreshold = 0.05

// FeatureNames is the model's input column order.
var FeatureNames = []string{"GP", "FG_PCT", "AST", "STL", "BLK", "PTS", "W_PCT", "MIN", "FT_PCT", "FG3_PCT"}

// Candidate is one scored current-season row.
type Candidate struct {
	PlayerName  string  `json:"player_name"`
	Team        string  `json:"team"`
	Season      string  `json:"season"`
	Points      float64 `json:"pts"`
	Assists     float64 `json:"ast"`
	Rebounds    float64 `json:"reb"`
	WinPct      float64 `json:"w_pct"`
	Probability float64 `json:"probability"`
}

// Vector extracts the feature vector for one finalized row. Rows with a
// NULL win rate carry an unknowable feature and are excluded from both
// training and scoring, matching the historical behavior.
func Vector(row store.FeatureRow) ([]float64, bool) {
	if !row.WinPct.Valid {
		return nil, false
	}
	return []float64{
		row.GamesPlayed,
		row.FGPct,
		row.Assists,
		row.Steals,
		row.Blocks,
		row.Points,
		row.WinPct.Float64,
		row.Minutes,
		row.FTPct,
		row.FG3Pct,
	}, true
}

// TrainingSet builds (features, labels) from the finalized table, skipping
// rows with incomplete features.
func TrainingSet(rows []store.FeatureRow) ([][]float64, []float64) {
	var features [][]float64
	var labels []float64
	for _, row := range rows {
		x, ok := Vector(row)
		if !ok {
			continue
		}
		features = append(features, x)
		labels = append(labels, float64(row.MVP))
	}
	return features, labels
}

// RankCandidates scores the given rows with a trained classifier and
// returns those at or above the threshold, highest probability first.
func RankCandidates(clf Classifier, rows []store.FeatureRow, threshold float64) ([]Candidate, error) {
	candidates := []Candidate{}
	for _, row := range rows {
		x, ok := Vector(row)
		if !ok {
			continue
		}
		p, err := clf.PredictProba(x)
		if err != nil {
			return nil, err
		}
		if p < threshold {
			continue
		}
		candidates = append(candidates, Candidate{
			PlayerName:  row.PlayerName,
			Team:        row.Team,
			Season:      row.Season,
			Points:      row.Points,
			Assists:     row.Assists,
			Rebounds:    row.Rebounds,
			WinPct:      row.WinPct.Float64,
			Probability: p,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Probability > candidates[b].Probability
	})

	return candidates, nil
}
