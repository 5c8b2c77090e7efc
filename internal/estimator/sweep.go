package estimator

// DefaultSweepBits are the weight precisions offered by the calculator.
var DefaultSweepBits = []float64{4, 8, 16, 32}

// SweepPoint is the estimate of one weight precision.
type SweepPoint struct {
	QuantizationBits float64
	Result           Result
}

// Sweep estimates in once per weight precision, leaving every other field as
// given. With no bits, DefaultSweepBits is used.
func Sweep(in Input, bits ...float64) []SweepPoint {
	if len(bits) == 0 {
		bits = DefaultSweepBits
	}
	out := make([]SweepPoint, 0, len(bits))
	for _, b := range bits {
		in.QuantizationBits = b
		out = append(out, SweepPoint{QuantizationBits: b, Result: Estimate(in)})
	}
	return out
}
