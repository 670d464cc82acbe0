package extract

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=extract_test

import (
	"context"

	"github.com/dkovacev/ironlog/internal/telemetry/metrics"
	"github.com/dkovacev/ironlog/internal/telemetry/tracing"
	"github.com/dkovacev/ironlog/internal/workout"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type extractor interface {
	Extract(ctx context.Context, prompt string) (string, error)
}

// Result is the full outcome of one extraction run: validated entries,
// per-entry rejections, applied auto-fixes and the raw model output for
// debugging.
type Result struct {
	Accepted []workout.Entry `json:"accepted"`
	Rejected []RejectedEntry `json:"rejected"`
	Fixes    []string        `json:"fixes,omitempty"`
	RawJSON  string          `json:"-"`
}

// Service turns a raw workout log into validated entries: it builds the
// prompt, calls the extraction model, validates the output and maps
// exercise names to their canonical english form.
type Service struct {
	extractor extractor
	metrics   *metrics.Manager
}

func NewService(extractor extractor, metrics *metrics.Manager) *Service {
	return &Service{
		extractor: extractor,
		metrics:   metrics,
	}
}

func (s *Service) Extract(ctx context.Context, rawLog, targetDate string) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "extractService.extract")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	prompt := BuildPrompt(rawLog, targetDate)

	timer := prometheus.NewTimer(s.metrics.HistExtractionDuration)
	rawJSON, err := s.extractor.Extract(ctx, prompt)
	timer.ObserveDuration()
	if err != nil {
		s.metrics.CounterExtractions.WithLabelValues("error").Inc()
		return nil, err
	}

	validated, err := ValidateBatch(rawJSON, targetDate)
	if err != nil {
		s.metrics.CounterExtractions.WithLabelValues("malformed").Inc()
		return nil, err
	}

	unmapped := 0
	for i := range validated.Accepted {
		canonical, mapped := workout.CanonicalName(validated.Accepted[i].Exercise)
		if !mapped {
			unmapped++
			log.Debugf("exercise name not in vocabulary, kept as-is: %q", validated.Accepted[i].Exercise)
		}
		validated.Accepted[i].Exercise = canonical
	}

	s.metrics.CounterExtractions.WithLabelValues("ok").Inc()
	s.metrics.CounterEntriesAccepted.Add(float64(len(validated.Accepted)))
	s.metrics.CounterEntriesRejected.Add(float64(len(validated.Rejected)))
	s.metrics.CounterUnmappedExercises.Add(float64(unmapped))

	span.SetAttributes(
		attribute.Int("entries.accepted", len(validated.Accepted)),
		attribute.Int("entries.rejected", len(validated.Rejected)),
	)
	log.Debugf(
		"extraction done: %d accepted, %d rejected, %d fixes",
		len(validated.Accepted), len(validated.Rejected), len(validated.Fixes),
	)

	return &Result{
		Accepted: validated.Accepted,
		Rejected: validated.Rejected,
		Fixes:    validated.Fixes,
		RawJSON:  rawJSON,
	}, nil
}
