package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fortuna/delphi/internal/cache"
	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/pipeline"
	"github.com/fortuna/delphi/internal/store"
	"github.com/fortuna/delphi/internal/store/repository"
)

// PredictionService trains the classifier over the finalized feature table
// and ranks current-season candidates for the dashboard.
type PredictionService struct {
	features *repository.FeaturesRepository
	cache    *cache.RedisCache
	logger   *log.Logger
}

// NewPredictionService creates a prediction service. The cache may be nil,
// in which case every call recomputes.
func NewPredictionService(db *store.Database, rc *cache.RedisCache, logger *log.Logger) *PredictionService {
	if logger == nil {
		logger = log.New(log.Writer(), "[predict] ", log.LstdFlags)
	}
	return &PredictionService{
		features: repository.NewFeaturesRepository(db),
		cache:    rc,
		logger:   logger,
	}
}

// Predict returns the ranked candidate list for the current season of one
// dataset variant, filtered to probability >= threshold. Cached payloads are
// served for the default threshold; other thresholds recompute.
//
// Returns pipeline.ErrNothingToPredict when the current season has no
// scorable rows, so callers can surface an explicit "nothing to predict"
// condition instead of an empty chart.
func (s *PredictionService) Predict(ctx context.Context, seasonType, currentSeason string, threshold float64) ([]model.Candidate, error) {
	if s.cache != nil && threshold == model.DefaultThreshold {
		if payload, err := s.cache.GetPredictions(ctx, seasonType); err == nil {
			var candidates []model.Candidate
			if err := json.Unmarshal(payload, &candidates); err == nil {
				return candidates, nil
			}
		} else if !cache.IsMiss(err) {
			s.logger.Printf("cache read failed, recomputing: %v", err)
		}
	}

	candidates, err := s.compute(ctx, seasonType, currentSeason, threshold)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && threshold == model.DefaultThreshold {
		if payload, err := json.Marshal(candidates); err == nil {
			if err := s.cache.SetPredictions(ctx, seasonType, payload, 0); err != nil {
				s.logger.Printf("cache write failed: %v", err)
			}
		}
	}

	return candidates, nil
}

// Refresh recomputes predictions after a pipeline run, replaces the cached
// payload and returns the serialized candidates for broadcast.
func (s *PredictionService) Refresh(ctx context.Context, seasonType, currentSeason string) ([]byte, error) {
	if s.cache != nil {
		if err := s.cache.InvalidatePredictions(ctx, seasonType); err != nil {
			s.logger.Printf("cache invalidation failed: %v", err)
		}
	}

	candidates, err := s.compute(ctx, seasonType, currentSeason, model.DefaultThreshold)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("encoding candidates: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.SetPredictions(ctx, seasonType, payload, 0); err != nil {
			s.logger.Printf("cache write failed: %v", err)
		}
	}

	return payload, nil
}

func (s *PredictionService) compute(ctx context.Context, seasonType, currentSeason string, threshold float64) ([]model.Candidate, error) {
	all, err := s.features.ListVariant(ctx, seasonType)
	if err != nil {
		return nil, fmt.Errorf("loading feature table: %w", err)
	}

	current, err := s.features.ListCurrentSeason(ctx, seasonType, currentSeason)
	if err != nil {
		return nil, fmt.Errorf("loading current season: %w", err)
	}
	scorable := 0
	for _, row := range current {
		if _, ok := model.Vector(row); ok {
			scorable++
		}
	}
	if scorable == 0 {
		return nil, pipeline.ErrNothingToPredict
	}

	features, labels := model.TrainingSet(all)
	if len(features) == 0 {
		return nil, pipeline.ErrNothingToPredict
	}

	clf := model.NewLogistic()
	if err := clf.Train(features, labels); err != nil {
		return nil, fmt.Errorf("training classifier: %w", err)
	}

	candidates, err := model.RankCandidates(clf, current, threshold)
	if err != nil {
		return nil, fmt.Errorf("scoring current season: %w", err)
	}

	s.logger.Printf("ranked %d candidates for %s %s (threshold %.2f)",
		len(candidates), seasonType, currentSeason, threshold)

	return candidates, nil
}
