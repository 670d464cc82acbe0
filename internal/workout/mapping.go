package workout

// exerciseNames maps known Chinese exercise name variants to their
// canonical English names. Many variants map to the same canonical name.
// The table is read-only process-wide state, consulted by the prompt
// builder and again as a post-hoc normalization pass on extracted entries.
var exerciseNames = map[string]string{
	// legs
	"腿弯举":      "Leg Curl",
	"坐姿腿弯举":    "Seated Leg Curl",
	"俯卧腿弯举":    "Lying Leg Curl",
	"硬拉":       "Deadlift",
	"罗马尼亚硬拉":   "Romanian Deadlift",
	"直腿硬拉":     "Stiff-Legged Deadlift",
	"深蹲":       "Squat",
	"史密斯深蹲":    "Smith Squat",
	"杠铃深蹲":     "Barbell Squat",
	"哑铃深蹲":     "Dumbbell Squat",
	"前蹲":       "Front Squat",
	"后蹲":       "Back Squat",
	"坐姿蹬腿":     "Leg Press",
	"倒蹬":       "Leg Press",
	"腿举":       "Leg Press",
	"腿屈伸":      "Leg Extension",
	"坐姿腿屈伸":    "Leg Extension",
	"髋外展":      "Hip Abduction",
	"髋内收":      "Hip Adduction",
	"臀桥":       "Hip Thrust",
	"臀推":       "Hip Thrust",
	"提踵":       "Calf Raise",
	"站姿提踵":     "Standing Calf Raise",
	"坐姿提踵":     "Seated Calf Raise",
	// back
	"引体向上":     "Pull-up",
	"宽握引体":     "Wide-Grip Pull-up",
	"窄握引体":     "Close-Grip Pull-up",
	"高位下拉":     "Lat Pulldown",
	"宽握下拉":     "Wide-Grip Lat Pulldown",
	"窄握下拉":     "Close-Grip Lat Pulldown",
	"坐姿划船":     "Seated Cable Row",
	"杠铃划船":     "Barbell Row",
	"哑铃划船":     "Dumbbell Row",
	"单臂哑铃划船":   "Single-Arm Dumbbell Row",
	"训练凳单边哑铃划船": "Single-Arm Dumbbell Row",
	"训练凳划船":    "Dumbbell Row",
	"T杠划船":     "T-Bar Row",
	"面拉":       "Face Pull",
	// chest
	"卧推":       "Bench Press",
	"杠铃卧推":     "Barbell Bench Press",
	"哑铃卧推":     "Dumbbell Bench Press",
	"上斜卧推":     "Incline Bench Press",
	"下斜卧推":     "Decline Bench Press",
	"史密斯卧推":    "Smith Bench Press",
	"飞鸟":       "Dumbbell Fly",
	"哑铃飞鸟":     "Dumbbell Fly",
	"夹胸":       "Cable Fly",
	"龙门架夹胸":    "Cable Fly",
	"俯卧撑":      "Push-up",
	// shoulders
	"推举":       "Overhead Press",
	"肩推":       "Shoulder Press",
	"杠铃推举":     "Barbell Overhead Press",
	"哑铃推举":     "Dumbbell Shoulder Press",
	"阿诺德推举":    "Arnold Press",
	"侧平举":      "Lateral Raise",
	"哑铃侧平举":    "Dumbbell Lateral Raise",
	"前平举":      "Front Raise",
	"后束飞鸟":     "Reverse Fly",
	"俯身飞鸟":     "Bent-Over Fly",
	"直立划船":     "Upright Row",
	"耸肩":       "Shrug",
	// arms
	"弯举":       "Curl",
	"二头弯举":     "Bicep Curl",
	"杠铃弯举":     "Barbell Curl",
	"哑铃弯举":     "Dumbbell Curl",
	"锤式弯举":     "Hammer Curl",
	"集中弯举":     "Concentration Curl",
	"牧师凳弯举":    "Preacher Curl",
	"三头下压":     "Tricep Pushdown",
	"绳索下压":     "Cable Pushdown",
	"臂屈伸":      "Dip",
	"窄距卧推":     "Close-Grip Bench Press",
	"颈后臂屈伸":    "Overhead Tricep Extension",
	// core
	"卷腹":       "Crunch",
	"仰卧起坐":     "Sit-up",
	"平板支撑":     "Plank",
	"悬垂举腿":     "Hanging Leg Raise",
	"俄罗斯转体":    "Russian Twist",
}

var canonicalNames = func() map[string]bool {
	set := make(map[string]bool, len(exerciseNames))
	for _, canonical := range exerciseNames {
		set[canonical] = true
	}
	return set
}()

// CanonicalName returns the canonical English name for a localized
// exercise name. Names that already are canonical come back as mapped.
// Unknown names are passed through unchanged, so a gap in the mapping
// table never blocks ingestion.
func CanonicalName(name string) (_ string, mapped bool) {
	if canonical, ok := exerciseNames[name]; ok {
		return canonical, true
	}
	if canonicalNames[name] {
		return name, true
	}
	return name, false
}

// NamePairs returns the variant -> canonical pairs of the mapping table,
// for embedding the vocabulary into the extraction prompt.
func NamePairs() map[string]string {
	pairs := make(map[string]string, len(exerciseNames))
	for variant, canonical := range exerciseNames {
		pairs[variant] = canonical
	}
	return pairs
}
