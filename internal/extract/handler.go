package extract

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=extract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/dkovacev/ironlog/internal/telemetry/tracing"
	"github.com/dkovacev/ironlog/internal/workout"
	"github.com/dkovacev/ironlog/pkg"

	log "github.com/sirupsen/logrus"
)

type entriesRepo interface {
	AddBatch(ctx context.Context, entries []workout.Entry) ([]workout.Entry, error)
}

type ingestService interface {
	Extract(ctx context.Context, rawLog, targetDate string) (*Result, error)
}

type IngestRequest struct {
	Log  string `json:"log"`
	Date string `json:"date"`
}

type IngestResponse struct {
	Accepted []workout.Entry `json:"accepted"`
	Rejected []RejectedEntry `json:"rejected"`
	Fixes    []string        `json:"fixes,omitempty"`
	Stored   int             `json:"stored"`
	// RawModelOutput is only set on preview, to let the caller inspect the
	// intermediate JSON before committing.
	RawModelOutput string `json:"rawModelOutput,omitempty"`
}

var requestDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Handler struct {
	service ingestService
	repo    entriesRepo
}

func NewHandler(service ingestService, repo entriesRepo) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
	}
}

func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request) *IngestRequest {
	reqBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("ingest, read request body: %s", err)
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return nil
	}

	var req IngestRequest
	if err := json.Unmarshal(reqBytes, &req); err != nil {
		log.Errorf("ingest, unmarshal request: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil
	}

	if req.Log == "" {
		http.Error(w, "log is empty", http.StatusBadRequest)
		return nil
	}
	if !requestDateRe.MatchString(req.Date) {
		http.Error(w, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return nil
	}

	return &req
}

func (h *Handler) extract(w http.ResponseWriter, r *http.Request, req *IngestRequest) *Result {
	res, err := h.service.Extract(r.Context(), req.Log, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, ErrExtractionUnavailable):
			log.Errorf("ingest, extraction unavailable: %s", err)
			http.Error(w, "extraction service unavailable", http.StatusBadGateway)
		case errors.Is(err, ErrMalformedBatch):
			log.Errorf("ingest, malformed model output: %s", err)
			http.Error(w, "extraction produced malformed output", http.StatusUnprocessableEntity)
		default:
			log.Errorf("ingest, extract: %s", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return nil
	}
	return res
}

// HandlePreview runs extraction and validation without storing anything.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "ingestHandler.preview")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	r = r.WithContext(ctx)

	req := h.readRequest(w, r)
	if req == nil {
		return
	}

	res := h.extract(w, r, req)
	if res == nil {
		return
	}

	respBytes, err := json.Marshal(IngestResponse{
		Accepted:       res.Accepted,
		Rejected:       res.Rejected,
		Fixes:          res.Fixes,
		RawModelOutput: res.RawJSON,
	})
	if err != nil {
		log.Errorf("ingest preview, marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// HandleIngest runs extraction and stores the accepted entries.
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "ingestHandler.ingest")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	r = r.WithContext(ctx)

	req := h.readRequest(w, r)
	if req == nil {
		return
	}

	res := h.extract(w, r, req)
	if res == nil {
		return
	}

	now := time.Now()
	for i := range res.Accepted {
		if res.Accepted[i].CreatedAt.IsZero() {
			res.Accepted[i].CreatedAt = now
		}
	}

	stored, err := h.repo.AddBatch(r.Context(), res.Accepted)
	if err != nil {
		log.Errorf("ingest, store entries: %s", err)
		http.Error(w, "failed to store entries", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(IngestResponse{
		Accepted: stored,
		Rejected: res.Rejected,
		Fixes:    res.Fixes,
		Stored:   len(stored),
	})
	if err != nil {
		log.Errorf("ingest, marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

// HandleCSV runs extraction and returns the accepted entries as CSV.
// The mode query param selects the layout: "aggregated" (default, one
// row per entry) or "detailed" (one row per set).
func (h *Handler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "ingestHandler.csv")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	r = r.WithContext(ctx)

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "aggregated"
	}
	if mode != "aggregated" && mode != "detailed" {
		http.Error(w, fmt.Sprintf("unknown mode %q", mode), http.StatusBadRequest)
		return
	}

	req := h.readRequest(w, r)
	if req == nil {
		return
	}

	res := h.extract(w, r, req)
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if mode == "detailed" {
		err = WriteDetailedCSV(&buf, res.Accepted)
	} else {
		err = WriteAggregatedCSV(&buf, res.Accepted)
	}
	if err != nil {
		log.Errorf("ingest csv, write csv: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.CSV, buf.Bytes())
}
