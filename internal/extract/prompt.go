package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dkovacev/ironlog/internal/workout"
)

// BuildPrompt constructs the instruction text for the extraction model.
// The target date is mandatory and embedded verbatim: the model is never
// allowed to infer dates from the log content.
func BuildPrompt(rawLog, targetDate string) string {
	pairs := workout.NamePairs()
	variants := make([]string, 0, len(pairs))
	for variant := range pairs {
		variants = append(variants, variant)
	}
	sort.Strings(variants)

	var vocabulary strings.Builder
	for _, variant := range variants {
		vocabulary.WriteString(fmt.Sprintf("  - %s: %s\n", variant, pairs[variant]))
	}

	return fmt.Sprintf(`You are a workout log parser. Convert the mixed Chinese/English training log to structured JSON.

CRITICAL RULES:
1. Output ONLY a valid JSON array, NO preamble, NO explanations.
2. Bilateral exercises (先左后右, 左右交替, 单边, "left then right", "alternating"): count LEFT+RIGHT as ONE set.
   - Example: "11 11, 11 12" under a bilateral marker = 2 sets total (not 4).
3. Ignore ALL non-training content (emotions, diary entries, social notes). Such content must NEVER appear in "notes".
4. Map Chinese exercise names to English using the vocabulary below.
   - If an exercise is NOT in the vocabulary: keep its original name exactly as written.
5. Preserve individual set reps as an array, e.g. [17, 15, 15]. Never average them.
6. Use the provided date verbatim for every entry. Never infer a date from the log text.
7. Use null for missing RPE values, never 0 or any other default number.
8. Extract rest times if present (optional field, can be omitted).
9. "notes" may contain ONLY form cues, equipment issues and relevant training remarks.

Exercise Name Vocabulary (Chinese -> English):
%s
Output Schema (JSON array):
[
  {
    "date": "YYYY-MM-DD",
    "exercise": "Exercise Name (English)",
    "sets": 3,
    "reps": [17, 15, 15],
    "weight": 43,
    "unit": "kg",
    "rpe": 8.5,
    "rest_times": ["3:00", "3:15", "4:00"],
    "notes": "Brief relevant training notes only"
  }
]

Date to use for every entry: %s

Raw Training Log:
%s

Output ONLY the JSON array:`, vocabulary.String(), targetDate, rawLog)
}
