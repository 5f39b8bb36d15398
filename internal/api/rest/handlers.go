package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/pipeline"
	"github.com/fortuna/delphi/internal/season"
	"github.com/fortuna/delphi/internal/service"
	"github.com/fortuna/delphi/internal/store"
	"github.com/fortuna/delphi/internal/store/repository"
)

// PipelineRunner triggers a pipeline pass without blocking the request.
// Satisfied by scheduler.Orchestrator.
type PipelineRunner interface {
	TriggerRun() error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db          *store.Database
	features    *repository.FeaturesRepository
	predictions *service.PredictionService
	ingestion   *service.IngestionService
	runner      PipelineRunner

	currentSeason    string
	defaultThreshold float64
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, predictions *service.PredictionService, ingestion *service.IngestionService, runner PipelineRunner, currentSeason string, threshold float64) *Handler {
	return &Handler{
		db:               db,
		features:         repository.NewFeaturesRepository(db),
		predictions:      predictions,
		ingestion:        ingestion,
		runner:           runner,
		currentSeason:    currentSeason,
		defaultThreshold: threshold,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  status,
		"service": "delphi",
		"version": "1.0.0",
	})
}

// GetPredictions returns the ranked MVP candidates for the current season
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	seasonType := seasonTypeFromQuery(r)

	threshold := h.defaultThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			respondError(w, http.StatusBadRequest, "threshold must be a number between 0 and 1", err)
			return
		}
		threshold = f
	}

	candidates, err := h.predictions.Predict(r.Context(), seasonType, h.currentSeason, threshold)
	if err != nil {
		if errors.Is(err, pipeline.ErrNothingToPredict) {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"season":     h.currentSeason,
				"condition":  "no_data_for_current_season",
				"candidates": []model.Candidate{},
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to compute predictions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":     h.currentSeason,
		"threshold":  threshold,
		"candidates": candidates,
	})
}

// GetFeatures returns the assembled feature table for one dataset variant
func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	seasonType := seasonTypeFromQuery(r)

	rows, err := h.features.ListVariant(r.Context(), seasonType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch feature rows", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season_type": seasonType,
		"count":       len(rows),
		"rows":        rows,
	})
}

// GetCurrentSeason returns the season predictions are made for
func (h *Handler) GetCurrentSeason(w http.ResponseWriter, r *http.Request) {
	startYear, err := season.StartYear(h.currentSeason)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Configured season label is invalid", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":     h.currentSeason,
		"start_year": startYear,
	})
}

// RunPipeline triggers a full scrape and rebuild in the background
func (h *Handler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.TriggerRun(); err != nil {
		respondError(w, http.StatusConflict, "Pipeline run already in progress", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "Pipeline run started",
	})
}

// GetPipelineMetrics returns per-variant counters from the last pipeline run
func (h *Handler) GetPipelineMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.ingestion.Metrics()
	if len(metrics) == 0 {
		respondJSON(w, http.StatusOK, map[string]string{
			"message": "No pipeline run recorded yet",
		})
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

func seasonTypeFromQuery(r *http.Request) string {
	if r.URL.Query().Get("season_type") == "playoffs" {
		return store.SeasonTypePlayoff
	}
	return store.SeasonTypeRegular
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
