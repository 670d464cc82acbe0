package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkovacev/ironlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrEntryNotFound = errors.New("workout entry not found")

type EntryParams struct {
	Exercise string
	From     string // YYYY-MM-DD, inclusive; empty for no lower bound
	To       string // YYYY-MM-DD, inclusive; empty for no upper bound
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so single inserts
// and batch inserts share the same statement.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.insertEntry(ctx, r.db, entry)
}

func (r *Repo) insertEntry(ctx context.Context, q querier, entry Entry) (*Entry, error) {
	span := trace.SpanFromContext(ctx)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	repsJson, err := json.Marshal(entry.Reps)
	if err != nil {
		return nil, fmt.Errorf("marshal reps: %w", err)
	}
	restTimesJson, err := json.Marshal(entry.RestTimes)
	if err != nil {
		return nil, fmt.Errorf("marshal rest times: %w", err)
	}

	rows, err := q.Query(
		ctx,
		`INSERT INTO workout_entry
				(day, exercise, sets, reps, weight, unit, rpe, rest_times, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id;`,
		entry.Date, entry.Exercise, entry.Sets, repsJson, entry.Weight,
		string(entry.Unit), entry.RPE, restTimesJson, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("entry.id", id))

	entry.ID = id
	return &entry, nil
}

// AddBatch stores the entries in a single transaction and returns the
// stored copies. A failure on any entry rolls back the whole batch.
func (r *Repo) AddBatch(ctx context.Context, entries []Entry) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.addBatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries", len(entries)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	stored := make([]Entry, 0, len(entries))
	for i, entry := range entries {
		added, err := r.insertEntry(ctx, tx, entry)
		if err != nil {
			return nil, fmt.Errorf("add entry %d: %w", i, err)
		}
		stored = append(stored, *added)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return stored, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, day, exercise, sets, reps, weight, unit, rpe, rest_times, notes, created_at
			FROM workout_entry
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEntryNotFound
	}

	return &entries[0], nil
}

func (r *Repo) ListAll(ctx context.Context, params EntryParams) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT id, day, exercise, sets, reps, weight, unit, rpe, rest_times, notes, created_at
		FROM workout_entry WHERE 1=1`
	var args []any
	if params.Exercise != "" {
		args = append(args, params.Exercise)
		query += fmt.Sprintf(" AND lower(exercise) = lower($%d)", len(args))
	}
	if params.From != "" {
		args = append(args, params.From)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if params.To != "" {
		args = append(args, params.To)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	query += " ORDER BY day, id;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2entries(rows)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_entry WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *Repo) rows2entries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var day time.Time
		var unit string
		var repsJson, restTimesJson []byte
		var notes *string
		if err := rows.Scan(
			&entry.ID, &day, &entry.Exercise, &entry.Sets, &repsJson,
			&entry.Weight, &unit, &entry.RPE, &restTimesJson, &notes, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entry.Date = day.Format("2006-01-02")
		if err := json.Unmarshal(repsJson, &entry.Reps); err != nil {
			return nil, fmt.Errorf("unmarshal reps: %w", err)
		}
		if len(restTimesJson) > 0 {
			if err := json.Unmarshal(restTimesJson, &entry.RestTimes); err != nil {
				return nil, fmt.Errorf("unmarshal rest times: %w", err)
			}
		}
		if notes != nil {
			entry.Notes = *notes
		}
		entry.Unit = Unit(unit)
		entries = append(entries, entry)
	}
	return entries, nil
}
