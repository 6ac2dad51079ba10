package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFineBoundaries(t *testing.T) {
	cases := []struct {
		marks float64
		want  string
	}{
		{95, "A1"},
		{91, "A1"},
		{90, "A2"},
		{81, "A2"},
		{80, "B1"},
		{71, "B1"},
		{70, "B2"},
		{61, "B2"},
		{60, "C1"},
		{51, "C1"},
		{50, "C2"},
		{41, "C2"},
		{40, "D"},
		{35, "D"},
		{34, "E"},
		{0, "E"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Fine(tc.marks, 100), "marks=%v", tc.marks)
	}
}

func TestCoarseBoundaries(t *testing.T) {
	cases := []struct {
		marks float64
		want  string
	}{
		{100, "A"},
		{80, "A"},
		{79.9, "B"},
		{60, "B"},
		{59, "C"},
		{35, "C"},
		{34.9, "D"},
		{0, "D"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Coarse(tc.marks, 100), "marks=%v", tc.marks)
	}
}

func TestZeroMaxIsNotApplicable(t *testing.T) {
	assert.Equal(t, GradeNA, Fine(50, 0))
	assert.Equal(t, GradeNA, Coarse(50, 0))
	assert.Equal(t, GradeNA, Fine(0, -10))
}

func TestGradeMonotonicity(t *testing.T) {
	rank := map[string]int{"E": 0, "D": 1, "C2": 2, "C1": 3, "B2": 4, "B1": 5, "A2": 6, "A1": 7}
	prev := -1
	for pct := 0.0; pct <= 100; pct += 0.5 {
		r := rank[Fine(pct, 100)]
		assert.GreaterOrEqual(t, r, prev, "pct=%v", pct)
		prev = r
	}
}

func TestFineAGradesLandInCoarseA(t *testing.T) {
	for pct := 0.0; pct <= 100; pct += 0.25 {
		fine := Fine(pct, 100)
		if fine == "A1" || fine == "A2" {
			assert.Equal(t, "A", Coarse(pct, 100), "pct=%v", pct)
		}
	}
}

func TestPercentage(t *testing.T) {
	pct, ok := Percentage(45, 50)
	assert.True(t, ok)
	assert.InDelta(t, 90, pct, 1e-9)

	_, ok = Percentage(10, 0)
	assert.False(t, ok)
}
