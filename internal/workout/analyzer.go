package workout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dkovacev/ironlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type OneRepMaxFormula string

const (
	FormulaEpley    OneRepMaxFormula = "epley"
	FormulaBrzycki  OneRepMaxFormula = "brzycki"
	FormulaLombardi OneRepMaxFormula = "lombardi"
)

var ErrNoEntries = errors.New("no entries found")

// EstimateOneRepMax estimates the one-rep max for a single set.
// For a single rep the weight itself is the 1RM. The formulas are most
// accurate for 12 reps or fewer; Brzycki is undefined for 37+ reps.
func EstimateOneRepMax(weight float64, reps int, formula OneRepMaxFormula) (float64, error) {
	if weight <= 0 {
		return 0, errors.New("weight must be positive")
	}
	if reps <= 0 {
		return 0, errors.New("reps must be positive")
	}
	if reps == 1 {
		return weight, nil
	}

	switch formula {
	case FormulaEpley:
		return weight * (1 + float64(reps)/30), nil
	case FormulaBrzycki:
		if reps >= 37 {
			return 0, errors.New("brzycki formula not valid for reps >= 37")
		}
		return weight * 36 / float64(37-reps), nil
	case FormulaLombardi:
		return weight * math.Pow(float64(reps), 0.1), nil
	default:
		return 0, fmt.Errorf("unknown formula: %s", formula)
	}
}

// BestSetOneRepMax returns the highest estimated 1RM across the sets of an entry.
func BestSetOneRepMax(entry Entry, formula OneRepMaxFormula) (float64, error) {
	var best float64
	for _, reps := range entry.Reps {
		oneRM, err := EstimateOneRepMax(entry.Weight, reps, formula)
		if err != nil {
			return 0, err
		}
		if oneRM > best {
			best = oneRM
		}
	}
	return best, nil
}

type DayStrength struct {
	Date         string  `json:"date"`
	MaxWeight    float64 `json:"maxWeight"`
	Estimated1RM float64 `json:"estimated1rm"`
}

type OverloadReport struct {
	HasOverload bool   `json:"hasOverload"`
	Type        string `json:"type,omitempty"` // "intensity" or "volume"
	Details     string `json:"details"`
}

type entriesRepo interface {
	ListAll(ctx context.Context, params EntryParams) ([]Entry, error)
}

type Analyzer struct {
	repo entriesRepo
}

func NewAnalyzer(repo entriesRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// VolumePerDay returns the total training volume for each day the given
// exercise was done, plus the overall total.
func (a *Analyzer) VolumePerDay(
	ctx context.Context,
	params EntryParams,
) (_ map[string]float64, total float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workout.volumePerDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := a.repo.ListAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	volumePerDay := make(map[string]float64)
	for _, entry := range entries {
		v := entry.Volume()
		volumePerDay[entry.Date] += v
		total += v
	}

	return volumePerDay, total, nil
}

// StrengthProgression returns, for each day the exercise was done, the max
// weight used and the best-set estimated 1RM, ordered by date.
func (a *Analyzer) StrengthProgression(
	ctx context.Context,
	params EntryParams,
	formula OneRepMaxFormula,
) (_ []DayStrength, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workout.strengthProgression")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", params.Exercise))

	entries, err := a.repo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	day2strength := make(map[string]DayStrength)
	for _, entry := range entries {
		oneRM, err := BestSetOneRepMax(entry, formula)
		if err != nil {
			return nil, fmt.Errorf("estimate 1rm for entry %d: %w", entry.ID, err)
		}
		day := day2strength[entry.Date]
		day.Date = entry.Date
		if entry.Weight > day.MaxWeight {
			day.MaxWeight = entry.Weight
		}
		if oneRM > day.Estimated1RM {
			day.Estimated1RM = oneRM
		}
		day2strength[entry.Date] = day
	}

	progression := make([]DayStrength, 0, len(day2strength))
	for _, day := range day2strength {
		progression = append(progression, day)
	}
	sort.Slice(progression, func(i, j int) bool {
		return progression[i].Date < progression[j].Date
	})

	return progression, nil
}

// thresholds for a meaningful per-workout increase
const (
	weightSlopeThreshold = 0.5
	volumeSlopeThreshold = 50
)

// DetectProgressiveOverload checks whether weight or volume is trending
// upwards across workouts of one exercise. Needs at least two workout days.
func (a *Analyzer) DetectProgressiveOverload(
	ctx context.Context,
	params EntryParams,
) (_ *OverloadReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workout.detectOverload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", params.Exercise))

	entries, err := a.repo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	day2volume := make(map[string]float64)
	day2maxWeight := make(map[string]float64)
	for _, entry := range entries {
		day2volume[entry.Date] += entry.Volume()
		if entry.Weight > day2maxWeight[entry.Date] {
			day2maxWeight[entry.Date] = entry.Weight
		}
	}

	if len(day2volume) < 2 {
		return &OverloadReport{
			HasOverload: false,
			Details:     "insufficient data (need at least 2 workouts)",
		}, nil
	}

	days := make([]string, 0, len(day2volume))
	for day := range day2volume {
		days = append(days, day)
	}
	sort.Strings(days)

	volumes := make([]float64, len(days))
	weights := make([]float64, len(days))
	for i, day := range days {
		volumes[i] = day2volume[day]
		weights[i] = day2maxWeight[day]
	}

	weightSlope := linearSlope(weights)
	volumeSlope := linearSlope(volumes)

	switch {
	case weightSlope > weightSlopeThreshold:
		return &OverloadReport{
			HasOverload: true,
			Type:        "intensity",
			Details:     fmt.Sprintf("weight increasing by ~%.2f per workout", weightSlope),
		}, nil
	case volumeSlope > volumeSlopeThreshold:
		return &OverloadReport{
			HasOverload: true,
			Type:        "volume",
			Details:     fmt.Sprintf("volume increasing by ~%.2f per workout", volumeSlope),
		}, nil
	default:
		return &OverloadReport{
			HasOverload: false,
			Details:     "no significant progression detected",
		}, nil
	}
}

// linearSlope fits y = a + b*x over x = 0..n-1 by least squares and
// returns b.
func linearSlope(ys []float64) float64 {
	n := float64(len(ys))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}
