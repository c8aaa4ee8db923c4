package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBenefitScore_Formula(t *testing.T) {
	tests := []struct {
		name            string
		gapMinutes      int
		bookingCount    int
		preferenceScore int
		want            int
	}{
		{"typical hour gap", 60, 2, 50, 55},        // 30 + 10 + 15
		{"all zero", 0, 0, 0, 0},
		{"gap capped at 40", 200, 2, 0, 50},        // 40 + 10 + 0
		{"density capped at 20", 60, 10, 0, 50},    // 30 + 20 + 0
		{"everything maxed", 80, 4, 100, 90},       // 40 + 20 + 30
		{"small gap quiet day", 30, 1, 50, 35},     // 15 + 5 + 15
		{"odd gap rounds", 45, 2, 50, 48},          // 22.5 + 10 + 15 = 47.5 -> 48
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BenefitScore(tt.gapMinutes, tt.bookingCount, tt.preferenceScore))
		})
	}
}

func TestBenefitScore_Bounded(t *testing.T) {
	for _, gap := range []int{0, 30, 60, 90, 500} {
		for _, count := range []int{0, 1, 5, 20} {
			for _, pref := range []int{0, 40, 50, 90, 100} {
				score := BenefitScore(gap, count, pref)
				assert.GreaterOrEqual(t, score, 0, "gap=%d count=%d pref=%d", gap, count, pref)
				assert.LessOrEqual(t, score, 100, "gap=%d count=%d pref=%d", gap, count, pref)
			}
		}
	}
}

func TestBenefitScore_MonotoneInEachInput(t *testing.T) {
	base := BenefitScore(40, 2, 50)
	assert.GreaterOrEqual(t, BenefitScore(60, 2, 50), base, "larger gap must not score lower")
	assert.GreaterOrEqual(t, BenefitScore(40, 3, 50), base, "busier day must not score lower")
	assert.GreaterOrEqual(t, BenefitScore(40, 2, 80), base, "stronger preference must not score lower")
}
