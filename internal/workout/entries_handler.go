package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/dkovacev/ironlog/internal/telemetry/tracing"
	"github.com/dkovacev/ironlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=entries_handler_mocks_test.go -package=workout_test

type entryRepo interface {
	Get(ctx context.Context, id int) (*Entry, error)
	Delete(ctx context.Context, id int) error
}

type DeleteEntryResponse struct {
	DeletedID int `json:"deletedId"`
}

// EntriesHandler serves single stored entries by id.
type EntriesHandler struct {
	repo entryRepo
}

func NewEntriesHandler(repo entryRepo) *EntriesHandler {
	return &EntriesHandler{
		repo: repo,
	}
}

func (handler *EntriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.get")
	defer span.End()

	id, ok := handler.entryID(w, r)
	if !ok {
		return
	}

	entry, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrEntryNotFound) {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get entry %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal entry %d: %s", id, err)
		http.Error(w, "failed to marshal entry", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, entryJson)
}

func (handler *EntriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.delete")
	defer span.End()

	id, ok := handler.entryID(w, r)
	if !ok {
		return
	}

	err := handler.repo.Delete(ctx, id)
	if errors.Is(err, ErrEntryNotFound) {
		log.Debugf("entry %d not found", id)
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete entry %d: %s", id, err)
		http.Error(w, "entry not deleted", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteEntryResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *EntriesHandler) entryID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
