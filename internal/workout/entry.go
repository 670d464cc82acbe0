package workout

import "time"

type Unit string

const (
	UnitKg  Unit = "kg"
	UnitLbs Unit = "lbs"
)

// Entry is one logged exercise: a number of logical sets done with the
// same weight, with the literal per-set rep sequence preserved.
type Entry struct {
	ID        int       `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD, always the explicitly supplied target date
	Exercise  string    `json:"exercise"`
	Sets      int       `json:"sets"`
	Reps      []int     `json:"reps"`
	Weight    float64   `json:"weight"`
	Unit      Unit      `json:"unit"`
	RPE       *float64  `json:"rpe"` // nil when not logged, 0 is not a valid RPE
	RestTimes []string  `json:"restTimes,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalReps is the sum of the per-set rep sequence.
func (e Entry) TotalReps() int {
	var total int
	for _, r := range e.Reps {
		total += r
	}
	return total
}

// Volume is the total training volume of the entry: weight x total reps.
// For bodyweight work (weight 0) the volume is 0.
func (e Entry) Volume() float64 {
	return e.Weight * float64(e.TotalReps())
}
