package optimizer

import "math"

// Benefit scoring weights. Gap size rewards larger reclaimed blocks up to a
// 40-point cap; a busier day is worth more to optimize (20-point cap); client
// preference contributes up to 30 points so it can tip a close decision but
// never dominates.
const (
	benefitGapCap        = 40.0
	benefitGapDivisor    = 2.0
	benefitDensityCap    = 20.0
	benefitDensityWeight = 5.0
	benefitPrefWeight    = 30.0
)

// BenefitScore combines gap size, schedule density, and client preference
// into a single 0-100 ranking value. Pure function, monotone in each input.
func BenefitScore(gapMinutes, bookingCount, preferenceScore int) int {
	score := math.Min(benefitGapCap, float64(gapMinutes)/benefitGapDivisor) +
		math.Min(benefitDensityCap, float64(bookingCount)*benefitDensityWeight) +
		float64(preferenceScore)/100.0*benefitPrefWeight

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
