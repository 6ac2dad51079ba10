// Package grading holds the grade band tables shared by mark entry, the
// public result assembler and the analytics rollups. The tables here are the
// single source of truth for thresholds; nothing else hard-codes a cutoff.
package grading

// GradeNA is returned when a grade cannot be computed (zero or missing max
// marks). Callers render it as-is rather than treating it as an error.
const GradeNA = "N/A"

// PassThreshold is the minimum subject percentage counted as a pass. A
// student passes only when every subject clears it.
const PassThreshold = 35.0

type band struct {
	Min   float64
	Grade string
}

// fineBands is the 8-band scale stored on mark records.
var fineBands = []band{
	{91, "A1"},
	{81, "A2"},
	{71, "B1"},
	{61, "B2"},
	{51, "C1"},
	{41, "C2"},
	{35, "D"},
	{0, "E"},
}

// coarseBands is the 4-band scale used by the analytics census.
var coarseBands = []band{
	{80, "A"},
	{60, "B"},
	{35, "C"},
	{0, "D"},
}

// Percentage converts a marks/max pair into a percentage. It reports false
// when max is not positive.
func Percentage(marks, max float64) (float64, bool) {
	if max <= 0 {
		return 0, false
	}
	return marks / max * 100, true
}

// Fine classifies a marks/max pair on the 8-band A1..E scale.
func Fine(marks, max float64) string {
	pct, ok := Percentage(marks, max)
	if !ok {
		return GradeNA
	}
	return classify(fineBands, pct)
}

// Coarse classifies a marks/max pair on the 4-band A..D scale.
func Coarse(marks, max float64) string {
	pct, ok := Percentage(marks, max)
	if !ok {
		return GradeNA
	}
	return CoarseFromPercent(pct)
}

// CoarseFromPercent buckets an already-computed percentage on the coarse
// scale. Analytics uses this for per-student averages.
func CoarseFromPercent(pct float64) string {
	return classify(coarseBands, pct)
}

func classify(bands []band, pct float64) string {
	for _, b := range bands {
		if pct >= b.Min {
			return b.Grade
		}
	}
	return bands[len(bands)-1].Grade
}
