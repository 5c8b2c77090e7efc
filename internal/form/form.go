// Package form turns calculator text fields (HTML form values, query
// strings, CLI flags) into estimator inputs. Empty text always means "not
// supplied", never zero.
package form

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gpustack/gguf-parser-go/util/ptr"

	"ramcalc/internal/estimator"
	"ramcalc/pkg/types"
)

// Field keys, shared by the HTML form, query strings and config defaults.
const (
	KeyModelParamsB     = "modelParamsB"
	KeyQuantizationBits = "quantizationBits"
	KeyContextLength    = "contextLength"
	KeyBatchSize        = "batchSize"
	KeyGPUVRAMGB        = "gpuVramGb"
	KeyHiddenSize       = "hiddenSize"
	KeyNumLayers        = "numLayers"
	KeyKVCacheBits      = "kvCacheQuantizationBits"
)

// Keys lists every field in display order.
var Keys = []string{
	KeyModelParamsB, KeyQuantizationBits, KeyContextLength, KeyBatchSize,
	KeyGPUVRAMGB, KeyHiddenSize, KeyNumLayers, KeyKVCacheBits,
}

// Values holds raw field text by key. A missing key and an empty value both
// mean the field was left blank.
type Values map[string]string

// Defaults returns the initial state of the calculator form.
func Defaults() Values {
	return Values{
		KeyModelParamsB:     "7",
		KeyQuantizationBits: "16",
		KeyContextLength:    "2048",
		KeyBatchSize:        "1",
		KeyGPUVRAMGB:        "0",
		KeyHiddenSize:       "4096",
		KeyNumLayers:        "32",
		KeyKVCacheBits:      estimator.SameAsModelText,
	}
}

// WithOverrides returns Defaults with every known key of over applied.
// Unknown keys are ignored.
func WithOverrides(over map[string]string) Values {
	d := Defaults()
	for _, k := range Keys {
		if v, ok := over[k]; ok {
			d[k] = v
		}
	}
	return d
}

// FromURL picks the calculator fields out of a query string or posted form.
func FromURL(q url.Values) Values {
	v := Values{}
	for _, k := range Keys {
		if _, ok := q[k]; ok {
			v[k] = q.Get(k)
		}
	}
	return v
}

// Merge returns a copy of v with every key of over applied on top.
func (v Values) Merge(over Values) Values {
	out := make(Values, len(v)+len(over))
	for k, s := range v {
		out[k] = s
	}
	for k, s := range over {
		out[k] = s
	}
	return out
}

// Parse normalizes the fields the way the calculator form does: blank or
// unreadable numbers are absent, a batch size below 1 becomes 1 and any other
// negative number becomes 0.
func Parse(v Values) estimator.Input {
	in := estimator.Input{
		ContextLength: number(v, KeyContextLength),
		BatchSize:     number(v, KeyBatchSize),
		GPUVRAMGB:     number(v, KeyGPUVRAMGB),
		HiddenSize:    number(v, KeyHiddenSize),
		NumLayers:     number(v, KeyNumLayers),
		KVCacheBits:   kvSelection(v),
	}
	in.ModelParamsBillions = ptr.Deref(number(v, KeyModelParamsB), 0)
	in.QuantizationBits = ptr.Deref(selection(v, KeyQuantizationBits), 0)
	return in
}

// Encode renders in back into field text; absent fields become blank. The
// model detail endpoint returns it so callers see the prefilled inputs.
func Encode(in estimator.Input) Values {
	v := Values{
		KeyModelParamsB:     formatNonZero(in.ModelParamsBillions),
		KeyQuantizationBits: formatNonZero(in.QuantizationBits),
		KeyContextLength:    formatPtr(in.ContextLength),
		KeyBatchSize:        formatPtr(in.BatchSize),
		KeyGPUVRAMGB:        formatPtr(in.GPUVRAMGB),
		KeyHiddenSize:       formatPtr(in.HiddenSize),
		KeyNumLayers:        formatPtr(in.NumLayers),
		KeyKVCacheBits:      in.KVCacheBits.String(),
	}
	return v
}

// FromRequest maps an API request onto an Input without normalization; the
// estimator applies its own clamps and warnings.
func FromRequest(req types.EstimateRequest) estimator.Input {
	in := estimator.Input{
		ModelParamsBillions: ptr.Deref(req.ModelParamsB, 0),
		QuantizationBits:    ptr.Deref(req.QuantizationBits, 0),
		ContextLength:       req.ContextLength,
		BatchSize:           req.BatchSize,
		GPUVRAMGB:           req.GPUVRAMGB,
		HiddenSize:          req.HiddenSize,
		NumLayers:           req.NumLayers,
	}
	switch kv := req.KVCacheQuantizationBits; {
	case kv.Number != nil:
		in.KVCacheBits = estimator.ExplicitKVCacheBits(*kv.Number)
	case kv.Text != "":
		in.KVCacheBits = estimator.ParseKVCacheBits(kv.Text)
	}
	return in
}

func number(v Values, key string) *float64 {
	s := strings.TrimSpace(v[key])
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	switch {
	case key == KeyBatchSize && n < 1:
		n = 1
	case n < 0:
		n = 0
	}
	return ptr.To(n)
}

// kvSelection reads the KV cache precision choice. Besides "same" only a
// leading integer counts; text without one is treated as not selected.
func kvSelection(v Values) estimator.KVCacheBits {
	kv := estimator.ParseKVCacheBits(strings.TrimSpace(v[KeyKVCacheBits]))
	if kv.Mode != estimator.KVCacheExplicit {
		return kv
	}
	if math.IsNaN(kv.Bits) {
		return estimator.KVCacheBits{}
	}
	return estimator.ExplicitKVCacheBits(kv.Bits)
}

// selection reads an integer choice such as the weight precision.
func selection(v Values, key string) *float64 {
	s := strings.TrimSpace(v[key])
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return ptr.To(math.Trunc(n))
}

func formatNonZero(n float64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func formatPtr(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}
