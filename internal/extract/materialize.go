package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dkovacev/ironlog/internal/workout"
)

// Column order is a stability contract, downstream consumers address
// columns positionally.
var aggregatedHeader = []string{"date", "exercise", "sets", "reps", "weight", "rpe", "notes"}

var detailedHeader = []string{"date", "exercise", "set_number", "reps", "weight", "rest_time", "rpe", "notes"}

// WriteAggregatedCSV writes one row per entry. The reps column carries the
// rep count of the first set, which is the representative value for the
// usual uniform-set case.
func WriteAggregatedCSV(w io.Writer, entries []workout.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(aggregatedHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.Date,
			e.Exercise,
			strconv.Itoa(e.Sets),
			strconv.Itoa(e.Reps[0]),
			formatWeight(e.Weight),
			formatRPE(e.RPE),
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDetailedCSV writes one row per set, with rest times aligned to set
// numbers where present.
func WriteDetailedCSV(w io.Writer, entries []workout.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailedHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		for setIdx, reps := range e.Reps {
			restTime := ""
			if setIdx < len(e.RestTimes) {
				restTime = e.RestTimes[setIdx]
			}
			row := []string{
				e.Date,
				e.Exercise,
				strconv.Itoa(setIdx + 1),
				strconv.Itoa(reps),
				formatWeight(e.Weight),
				restTime,
				formatRPE(e.RPE),
				e.Notes,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// formatRPE renders a missing RPE as an empty cell, never as "null" or 0.
func formatRPE(rpe *float64) string {
	if rpe == nil {
		return ""
	}
	return strconv.FormatFloat(*rpe, 'f', -1, 64)
}
