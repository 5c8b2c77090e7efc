package estimator

import "math"

const (
	// BytesPerGB is the binary gigabyte used for every reported value.
	BytesPerGB = 1 << 30
	// OverheadRAMGB is the flat runtime and framework allowance.
	OverheadRAMGB = 2.0

	paramsPerBillion = 1e9
	// keys and values are cached separately
	kvTensorsPerToken = 2
)

// ModelRAMGB returns the memory in GB taken by the weights, or 0 when either
// argument is not positive.
func ModelRAMGB(paramsBillions, bits float64) float64 {
	if !(paramsBillions > 0) || !(bits > 0) {
		return 0
	}
	return paramsBillions * paramsPerBillion * (bits / 8) / BytesPerGB
}

// KVCacheRAMGB returns the memory in GB taken by the key/value cache, or 0
// when any argument is not positive.
func KVCacheRAMGB(contextLength, batchSize, numLayers, hiddenSize, bits float64) float64 {
	for _, v := range []float64{contextLength, batchSize, numLayers, hiddenSize, bits} {
		if !(v > 0) {
			return 0
		}
	}
	return contextLength * batchSize * numLayers * hiddenSize * kvTensorsPerToken * (bits / 8) / BytesPerGB
}

// Estimate computes the memory breakdown for in. It never fails; see the
// package documentation.
func Estimate(in Input) Result {
	var warnings []string
	res := Result{OverheadRAMGB: OverheadRAMGB}

	if in.ModelParamsBillions > 0 && in.QuantizationBits > 0 {
		res.ModelRAMGB = ModelRAMGB(in.ModelParamsBillions, in.QuantizationBits)
	} else {
		warnings = append(warnings, "Model parameters and quantization bits must be positive numbers to calculate model RAM.")
	}

	kvBits, kvWarnings := ResolveKVCacheBits(in.KVCacheBits, in.QuantizationBits)
	warnings = append(warnings, kvWarnings...)

	batch := in.BatchSize
	if batch != nil && *batch < 1 {
		one := 1.0
		batch = &one
	}
	shape := []*float64{in.ContextLength, batch, in.NumLayers, in.HiddenSize}
	switch {
	case allPositive(shape):
		res.KVCacheRAMGB = KVCacheRAMGB(*in.ContextLength, *batch, *in.NumLayers, *in.HiddenSize, kvBits)
	case anySupplied(shape):
		warnings = append(warnings, "To calculate KV cache RAM, please provide all of Context Length, Batch Size, Num Layers, and Hidden Size as positive numbers.")
	}

	gpu := 0.0
	if in.GPUVRAMGB != nil && *in.GPUVRAMGB > 0 {
		gpu = *in.GPUVRAMGB
	}
	modelOnGPU := math.Min(gpu, res.ModelRAMGB)
	kvOnGPU := math.Min(gpu-modelOnGPU, res.KVCacheRAMGB)
	res.GPURAMUsedGB = modelOnGPU + kvOnGPU
	res.SystemRAMGB = (res.ModelRAMGB - modelOnGPU) + (res.KVCacheRAMGB - kvOnGPU) + res.OverheadRAMGB

	res.Warnings = warnings
	return res
}

func allPositive(vals []*float64) bool {
	for _, v := range vals {
		if v == nil || !(*v > 0) {
			return false
		}
	}
	return true
}

// anySupplied reports whether any value was given as a usable non-zero number.
func anySupplied(vals []*float64) bool {
	for _, v := range vals {
		if v != nil && *v != 0 && !math.IsNaN(*v) {
			return true
		}
	}
	return false
}
