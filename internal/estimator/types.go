package estimator

// Input is one calculator configuration. Pointer fields are optional:
// nil means the value was not supplied, which is different from zero only
// for BatchSize (a supplied value below 1 is clamped to 1).
type Input struct {
	// Parameter count in billions; must be positive to size the weights.
	ModelParamsBillions float64
	// Bits per weight (4, 8, 16, 32). Zero means unset.
	QuantizationBits float64

	ContextLength *float64
	BatchSize     *float64
	// Accelerator memory in GB. Negative values clamp to 0.
	GPUVRAMGB  *float64
	HiddenSize *float64
	NumLayers  *float64

	KVCacheBits KVCacheBits
}

// Result is the memory breakdown in GB for one Input.
type Result struct {
	ModelRAMGB    float64
	KVCacheRAMGB  float64
	OverheadRAMGB float64
	GPURAMUsedGB  float64
	SystemRAMGB   float64
	Warnings      []string
}

// TotalRAMGB is the memory demand before any of it is offloaded.
func (r Result) TotalRAMGB() float64 {
	return r.ModelRAMGB + r.KVCacheRAMGB + r.OverheadRAMGB
}
