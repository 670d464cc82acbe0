package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/dkovacev/ironlog/internal/workout"
)

// ErrMalformedBatch means the model output was not a JSON array at the top
// level, so no per-entry recovery is possible.
var ErrMalformedBatch = errors.New("malformed extraction batch")

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FieldError describes a single validation failure in a rejected entry.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Value  string `json:"value,omitempty"`
}

// RejectedEntry keeps the position of the failed entry within the model
// output, so the caller can point back at the raw JSON element.
type RejectedEntry struct {
	Index  int          `json:"index"`
	Errors []FieldError `json:"errors"`
}

// ValidationResult holds the accepted entries in their original order,
// the rejected ones with per-field errors, and the list of auto-fixes
// that were applied to accepted entries.
type ValidationResult struct {
	Accepted []workout.Entry `json:"accepted"`
	Rejected []RejectedEntry `json:"rejected"`
	Fixes    []string        `json:"fixes,omitempty"`
}

// rawEntry mirrors the JSON shape the model is asked to produce. Pointer
// fields distinguish a missing key from a present zero value.
type rawEntry struct {
	Date      *string  `json:"date"`
	Exercise  *string  `json:"exercise"`
	Sets      *int     `json:"sets"`
	Reps      []int    `json:"reps"`
	Weight    *float64 `json:"weight"`
	Unit      *string  `json:"unit"`
	RPE       *float64 `json:"rpe"`
	RestTimes []string `json:"rest_times"`
	Notes     *string  `json:"notes"`
}

// ValidateBatch parses the model's raw JSON output and validates every
// entry against targetDate. A broken entry never poisons its siblings:
// the top-level array is split into raw elements first, and each element
// is parsed and checked in isolation.
func ValidateBatch(raw string, targetDate string) (*ValidationResult, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBatch, err)
	}
	// A bare `null` unmarshals into a nil slice without error, but the
	// top level must be an actual array.
	if items == nil {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrMalformedBatch)
	}

	result := &ValidationResult{}
	for i, item := range items {
		entry, fixes, fieldErrs := validateOne(item, targetDate)
		if len(fieldErrs) > 0 {
			result.Rejected = append(result.Rejected, RejectedEntry{Index: i, Errors: fieldErrs})
			continue
		}
		for _, fix := range fixes {
			result.Fixes = append(result.Fixes, fmt.Sprintf("entry %d: %s", i, fix))
		}
		result.Accepted = append(result.Accepted, *entry)
	}

	return result, nil
}

func validateOne(item json.RawMessage, targetDate string) (*workout.Entry, []string, []FieldError) {
	var re rawEntry
	if err := json.Unmarshal(item, &re); err != nil {
		return nil, nil, []FieldError{{Field: "entry", Reason: fmt.Sprintf("not a valid object: %s", err)}}
	}

	var fixes []string
	var errs []FieldError

	addErr := func(field, reason, value string) {
		errs = append(errs, FieldError{Field: field, Reason: reason, Value: value})
	}

	// fix pass first, so that the strict checks below see repaired values
	unit := ""
	if re.Unit != nil {
		unit = *re.Unit
	}
	switch unit {
	case "lb", "LB", "Lbs", "LBS":
		fixes = append(fixes, fmt.Sprintf("normalized unit %q to %q", unit, workout.UnitLbs))
		unit = string(workout.UnitLbs)
	case "KG", "Kg":
		fixes = append(fixes, fmt.Sprintf("normalized unit %q to %q", unit, workout.UnitKg))
		unit = string(workout.UnitKg)
	case "":
		fixes = append(fixes, fmt.Sprintf("defaulted missing unit to %q", workout.UnitKg))
		unit = string(workout.UnitKg)
	}

	reps := re.Reps
	if re.Sets != nil && *re.Sets > 1 && len(reps) == 1 {
		fixes = append(fixes, fmt.Sprintf("broadcast single rep count %d across %d sets", reps[0], *re.Sets))
		expanded := make([]int, *re.Sets)
		for i := range expanded {
			expanded[i] = reps[0]
		}
		reps = expanded
	}

	// strict pass
	switch {
	case re.Date == nil || *re.Date == "":
		addErr("date", "missing", "")
	case !dateRe.MatchString(*re.Date):
		addErr("date", "not in YYYY-MM-DD format", *re.Date)
	case *re.Date != targetDate:
		addErr("date", fmt.Sprintf("does not match target date %s", targetDate), *re.Date)
	}

	if re.Exercise == nil || *re.Exercise == "" {
		addErr("exercise", "missing", "")
	}

	sets := 0
	if re.Sets == nil {
		addErr("sets", "missing", "")
	} else if *re.Sets < 1 {
		addErr("sets", "must be at least 1", fmt.Sprintf("%d", *re.Sets))
	} else {
		sets = *re.Sets
	}

	if len(reps) == 0 {
		addErr("reps", "missing or empty", "")
	} else {
		for _, r := range reps {
			if r < 1 {
				addErr("reps", "each rep count must be at least 1", fmt.Sprintf("%d", r))
				break
			}
		}
		if sets > 0 && len(reps) != sets {
			addErr("reps", fmt.Sprintf("length %d does not match sets %d", len(reps), sets), "")
		}
	}

	weight := 0.0
	if re.Weight == nil {
		addErr("weight", "missing", "")
	} else if *re.Weight < 0 {
		addErr("weight", "must not be negative", fmt.Sprintf("%g", *re.Weight))
	} else {
		weight = *re.Weight
	}

	if unit != string(workout.UnitKg) && unit != string(workout.UnitLbs) {
		addErr("unit", "must be kg or lbs", unit)
	}

	if re.RPE != nil && (*re.RPE < 1 || *re.RPE > 10) {
		addErr("rpe", "must be between 1 and 10", fmt.Sprintf("%g", *re.RPE))
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}

	notes := ""
	if re.Notes != nil {
		notes = *re.Notes
	}

	return &workout.Entry{
		Date:      *re.Date,
		Exercise:  *re.Exercise,
		Sets:      sets,
		Reps:      reps,
		Weight:    weight,
		Unit:      workout.Unit(unit),
		RPE:       re.RPE,
		RestTimes: re.RestTimes,
		Notes:     notes,
	}, fixes, nil
}
