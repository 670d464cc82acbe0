package extract_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/dkovacev/ironlog/internal/extract"
	"github.com/dkovacev/ironlog/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpe(v float64) *float64 { return &v }

func testEntries() []workout.Entry {
	return []workout.Entry{
		{
			Date:      "2026-08-15",
			Exercise:  "Squat",
			Sets:      3,
			Reps:      []int{5, 5, 4},
			Weight:    102.5,
			Unit:      workout.UnitKg,
			RPE:       rpe(8.5),
			RestTimes: []string{"3:00", "3:30"},
			Notes:     "belt on last set",
		},
		{
			Date:     "2026-08-15",
			Exercise: "Pull-up",
			Sets:     2,
			Reps:     []int{12, 10},
			Weight:   0,
			Unit:     workout.UnitKg,
		},
	}
}

func TestWriteAggregatedCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, extract.WriteAggregatedCSV(&buf, testEntries()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + one row per entry

	assert.Equal(t,
		[]string{"date", "exercise", "sets", "reps", "weight", "rpe", "notes"},
		records[0],
	)

	// reps column carries the first set's rep count
	assert.Equal(t,
		[]string{"2026-08-15", "Squat", "3", "5", "102.5", "8.5", "belt on last set"},
		records[1],
	)

	// missing RPE renders as an empty cell
	assert.Equal(t,
		[]string{"2026-08-15", "Pull-up", "2", "12", "0", "", ""},
		records[2],
	)
}

func TestWriteDetailedCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, extract.WriteDetailedCSV(&buf, testEntries()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6) // header + 3 squat sets + 2 pull-up sets

	assert.Equal(t,
		[]string{"date", "exercise", "set_number", "reps", "weight", "rest_time", "rpe", "notes"},
		records[0],
	)

	// per-set rows with 1-based set numbers and literal rep counts
	assert.Equal(t, []string{"2026-08-15", "Squat", "1", "5", "102.5", "3:00", "8.5", "belt on last set"}, records[1])
	assert.Equal(t, []string{"2026-08-15", "Squat", "2", "5", "102.5", "3:30", "8.5", "belt on last set"}, records[2])
	// only two rest times were logged for three sets
	assert.Equal(t, []string{"2026-08-15", "Squat", "3", "4", "102.5", "", "8.5", "belt on last set"}, records[3])

	assert.Equal(t, []string{"2026-08-15", "Pull-up", "1", "12", "0", "", "", ""}, records[4])
	assert.Equal(t, []string{"2026-08-15", "Pull-up", "2", "10", "0", "", "", ""}, records[5])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, extract.WriteAggregatedCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}
