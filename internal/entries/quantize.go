package entries

import "math"

// QuantizeWeight reduces a fractional weight to whole units: round
// half-to-even to zero decimal places, then truncate toward zero.
// This reproduces the quantization the chain already runs on — 2.6 becomes 3,
// 2.5 becomes 2, 3.5 becomes 4. Do not "fix" it to plain rounding.
func QuantizeWeight(w float64) int64 {
	return int64(math.Trunc(math.RoundToEven(w)))
}
