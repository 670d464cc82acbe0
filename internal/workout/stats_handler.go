package workout

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/dkovacev/ironlog/internal/telemetry/tracing"
	"github.com/dkovacev/ironlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=stats_handler_mocks_test.go -package=workout_test

type statsRepo interface {
	ListAll(ctx context.Context, params EntryParams) ([]Entry, error)
}

type VolumeResponse struct {
	Exercise     string             `json:"exercise"`
	Total        float64            `json:"total"`
	VolumePerDay map[string]float64 `json:"volumePerDay"`
}

type ProgressionResponse struct {
	Exercise    string        `json:"exercise"`
	Formula     string        `json:"formula"`
	Progression []DayStrength `json:"progression"`
}

type StatsHandler struct {
	analyzer *Analyzer
}

func NewStatsHandler(repo statsRepo) *StatsHandler {
	return &StatsHandler{
		analyzer: NewAnalyzer(repo),
	}
}

func (handler *StatsHandler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.volume")
	defer span.End()

	vars := mux.Vars(r)
	exercise := vars["exercise"]
	if exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}

	params := EntryParams{
		Exercise: exercise,
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}

	volumePerDay, total, err := handler.analyzer.VolumePerDay(ctx, params)
	if err != nil {
		log.Errorf("failed to get volume for [%s]: %s", exercise, err)
		http.Error(w, "failed to get volume", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(VolumeResponse{
		Exercise:     exercise,
		Total:        total,
		VolumePerDay: volumePerDay,
	})
	if err != nil {
		log.Errorf("failed to marshal volume response: %s", err)
		http.Error(w, "failed to marshal volume response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *StatsHandler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.progression")
	defer span.End()

	vars := mux.Vars(r)
	exercise := vars["exercise"]
	if exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}

	formula := OneRepMaxFormula(r.URL.Query().Get("formula"))
	if formula == "" {
		formula = FormulaEpley
	}

	params := EntryParams{
		Exercise: exercise,
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}

	progression, err := handler.analyzer.StrengthProgression(ctx, params, formula)
	if err != nil {
		log.Errorf("failed to get progression for [%s]: %s", exercise, err)
		http.Error(w, "failed to get strength progression", http.StatusBadRequest)
		return
	}

	respJson, err := json.Marshal(ProgressionResponse{
		Exercise:    exercise,
		Formula:     string(formula),
		Progression: progression,
	})
	if err != nil {
		log.Errorf("failed to marshal progression response: %s", err)
		http.Error(w, "failed to marshal progression response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *StatsHandler) HandleOverload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.overload")
	defer span.End()

	vars := mux.Vars(r)
	exercise := vars["exercise"]
	if exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}

	report, err := handler.analyzer.DetectProgressiveOverload(ctx, EntryParams{
		Exercise: exercise,
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	})
	if err != nil {
		log.Errorf("failed to detect overload for [%s]: %s", exercise, err)
		http.Error(w, "failed to detect progressive overload", http.StatusInternalServerError)
		return
	}

	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Errorf("failed to marshal overload report: %s", err)
		http.Error(w, "failed to marshal overload report", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, reportJson)
}
