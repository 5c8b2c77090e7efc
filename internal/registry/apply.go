package registry

import (
	"github.com/gpustack/gguf-parser-go/util/ptr"

	"ramcalc/internal/estimator"
	"ramcalc/pkg/types"
)

// Apply fills the fields of in that were not supplied with the values m
// provides. Supplied fields always win.
func Apply(m types.Model, in estimator.Input) estimator.Input {
	if in.ModelParamsBillions == 0 && m.ParamsB > 0 {
		in.ModelParamsBillions = m.ParamsB
	}
	if in.QuantizationBits == 0 && m.BitsPerWeight > 0 {
		in.QuantizationBits = m.BitsPerWeight
	}
	in.NumLayers = fill(in.NumLayers, m.NumLayers)
	in.HiddenSize = fill(in.HiddenSize, m.HiddenSize)
	in.ContextLength = fill(in.ContextLength, m.MaxContextLength)
	return in
}

func fill(cur *float64, v int) *float64 {
	if cur != nil || v <= 0 {
		return cur
	}
	return ptr.To(float64(v))
}
