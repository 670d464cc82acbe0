package workout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dkovacev/ironlog/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEstimateOneRepMax(t *testing.T) {
	testCases := []struct {
		name     string
		weight   float64
		reps     int
		formula  workout.OneRepMaxFormula
		expected float64
		wantErr  bool
	}{
		{
			name:     "EpleyFiveReps",
			weight:   100,
			reps:     5,
			formula:  workout.FormulaEpley,
			expected: 100 * (1 + 5.0/30),
		},
		{
			name:     "BrzyckiFiveReps",
			weight:   100,
			reps:     5,
			formula:  workout.FormulaBrzycki,
			expected: 100 * 36 / 32.0,
		},
		{
			name:     "SingleRepIsTheWeightItself",
			weight:   120,
			reps:     1,
			formula:  workout.FormulaBrzycki,
			expected: 120,
		},
		{
			name:    "BrzyckiInvalidForHighReps",
			weight:  50,
			reps:    37,
			formula: workout.FormulaBrzycki,
			wantErr: true,
		},
		{
			name:    "ZeroWeight",
			weight:  0,
			reps:    5,
			formula: workout.FormulaEpley,
			wantErr: true,
		},
		{
			name:    "ZeroReps",
			weight:  100,
			reps:    0,
			formula: workout.FormulaEpley,
			wantErr: true,
		},
		{
			name:    "UnknownFormula",
			weight:  100,
			reps:    5,
			formula: "wathan",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := workout.EstimateOneRepMax(tc.weight, tc.reps, tc.formula)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 0.001)
		})
	}
}

func TestEntry_Volume(t *testing.T) {
	e := workout.Entry{
		Weight: 40,
		Sets:   3,
		Reps:   []int{10, 8, 6},
	}
	assert.Equal(t, 24, e.TotalReps())
	assert.InDelta(t, 960, e.Volume(), 0.001)

	bodyweight := workout.Entry{Weight: 0, Sets: 3, Reps: []int{12, 12, 12}}
	assert.Zero(t, bodyweight.Volume())
}

func TestAnalyzer_VolumePerDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := workout.NewAnalyzer(repoMock)

	params := workout.EntryParams{Exercise: "Squat"}
	repoMock.EXPECT().ListAll(gomock.Any(), params).Return([]workout.Entry{
		{Date: "2026-01-05", Weight: 100, Sets: 3, Reps: []int{5, 5, 5}},
		{Date: "2026-01-05", Weight: 80, Sets: 2, Reps: []int{8, 8}},
		{Date: "2026-01-08", Weight: 100, Sets: 3, Reps: []int{6, 6, 5}},
	}, nil)

	perDay, total, err := analyzer.VolumePerDay(context.Background(), params)
	require.NoError(t, err)
	assert.InDelta(t, 1500+1280, perDay["2026-01-05"], 0.001)
	assert.InDelta(t, 1700, perDay["2026-01-08"], 0.001)
	assert.InDelta(t, 1500+1280+1700, total, 0.001)
}

func TestAnalyzer_VolumePerDay_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := workout.NewAnalyzer(repoMock)

	repoMock.EXPECT().
		ListAll(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db gone"))

	_, _, err := analyzer.VolumePerDay(context.Background(), workout.EntryParams{Exercise: "Squat"})
	require.Error(t, err)
}

func TestAnalyzer_StrengthProgression(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := workout.NewAnalyzer(repoMock)

	params := workout.EntryParams{Exercise: "Bench Press"}
	repoMock.EXPECT().ListAll(gomock.Any(), params).Return([]workout.Entry{
		{Date: "2026-02-10", Weight: 60, Sets: 3, Reps: []int{8, 8, 8}},
		{Date: "2026-02-03", Weight: 55, Sets: 3, Reps: []int{10, 10, 9}},
		{Date: "2026-02-10", Weight: 65, Sets: 1, Reps: []int{1}},
	}, nil)

	progression, err := analyzer.StrengthProgression(context.Background(), params, workout.FormulaEpley)
	require.NoError(t, err)
	require.Len(t, progression, 2)

	// sorted by date
	assert.Equal(t, "2026-02-03", progression[0].Date)
	assert.Equal(t, "2026-02-10", progression[1].Date)

	assert.InDelta(t, 55, progression[0].MaxWeight, 0.001)
	assert.InDelta(t, 55*(1+10.0/30), progression[0].Estimated1RM, 0.001)

	// heaviest weight was the single at 65, but the 60x8 set gives the better 1RM estimate
	assert.InDelta(t, 65, progression[1].MaxWeight, 0.001)
	assert.InDelta(t, 60*(1+8.0/30), progression[1].Estimated1RM, 0.001)
}

func TestAnalyzer_DetectProgressiveOverload(t *testing.T) {
	testCases := []struct {
		name         string
		entries      []workout.Entry
		wantOverload bool
		wantType     string
	}{
		{
			name: "IntensityIncreasing",
			entries: []workout.Entry{
				{Date: "2026-01-01", Weight: 100, Sets: 3, Reps: []int{5, 5, 5}},
				{Date: "2026-01-08", Weight: 102.5, Sets: 3, Reps: []int{5, 5, 5}},
				{Date: "2026-01-15", Weight: 105, Sets: 3, Reps: []int{5, 5, 5}},
			},
			wantOverload: true,
			wantType:     "intensity",
		},
		{
			name: "VolumeIncreasingAtConstantWeight",
			entries: []workout.Entry{
				{Date: "2026-01-01", Weight: 60, Sets: 3, Reps: []int{8, 8, 8}},
				{Date: "2026-01-08", Weight: 60, Sets: 4, Reps: []int{8, 8, 8, 8}},
				{Date: "2026-01-15", Weight: 60, Sets: 5, Reps: []int{8, 8, 8, 8, 8}},
			},
			wantOverload: true,
			wantType:     "volume",
		},
		{
			name: "Stagnation",
			entries: []workout.Entry{
				{Date: "2026-01-01", Weight: 80, Sets: 3, Reps: []int{5, 5, 5}},
				{Date: "2026-01-08", Weight: 80, Sets: 3, Reps: []int{5, 5, 5}},
				{Date: "2026-01-15", Weight: 80, Sets: 3, Reps: []int{5, 5, 5}},
			},
			wantOverload: false,
		},
		{
			name: "SingleWorkoutIsInsufficientData",
			entries: []workout.Entry{
				{Date: "2026-01-01", Weight: 80, Sets: 3, Reps: []int{5, 5, 5}},
			},
			wantOverload: false,
		},
		{
			name:         "NoWorkouts",
			entries:      nil,
			wantOverload: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repoMock := NewMockstatsRepo(ctrl)
			analyzer := workout.NewAnalyzer(repoMock)

			repoMock.EXPECT().
				ListAll(gomock.Any(), gomock.Any()).
				Return(tc.entries, nil)

			report, err := analyzer.DetectProgressiveOverload(
				context.Background(),
				workout.EntryParams{Exercise: "Squat"},
			)
			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Equal(t, tc.wantOverload, report.HasOverload)
			if tc.wantType != "" {
				assert.Equal(t, tc.wantType, report.Type)
			}
		})
	}
}
