package wealth

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Round rounds value half away from zero to places decimals.
//
// The float is first converted to the shortest decimal that represents it,
// so that binary representation error does not leak into the rounding:
// Round(0.1+0.2, 2) is 0.3 and Round(100.555, 2) is 100.56.
func Round(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(int32(places)).InexactFloat64()
}

// Median returns the median of values, 0 for an empty slice.
// values is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values.
// It returns 0 for fewer than 2 values.
func StdDev(values []float64) float64 {
	return StdDevAround(values, Mean(values))
}

// StdDevAround is like StdDev with a precomputed mean.
func StdDevAround(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// PercentageChange returns the relative change from previous to current,
// rounded to 2 decimals. ok is false when previous is 0: the change is then
// undefined.
func PercentageChange(current, previous float64) (p Percent, ok bool) {
	if previous == 0 {
		return 0, false
	}
	return Percent(Round((current-previous)/math.Abs(previous)*100, 2)), true
}
