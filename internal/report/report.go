// Package report renders estimator results for people and programs: a
// plain text summary, the HTML calculator page, a precision sweep table and
// the JSON response types.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"ramcalc/internal/estimator"
	"ramcalc/pkg/types"
)

// GB formats a value the way every surface displays it: two decimals.
func GB(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// Response converts a result into its JSON shape. Warnings is never null.
func Response(res estimator.Result) types.EstimateResponse {
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return types.EstimateResponse{
		ModelRAMGB:    res.ModelRAMGB,
		KVCacheRAMGB:  res.KVCacheRAMGB,
		OverheadRAMGB: res.OverheadRAMGB,
		GPURAMUsedGB:  res.GPURAMUsedGB,
		SystemRAMGB:   res.SystemRAMGB,
		Warnings:      warnings,
	}
}

// NonFiniteError reports an estimate whose inputs overflowed. Field is the
// JSON name of the first affected value.
type NonFiniteError struct{ Field string }

func (e *NonFiniteError) Error() string {
	return "inputs too large: " + e.Field + " is not a finite number"
}

// CheckFinite returns a *NonFiniteError when res cannot be represented in JSON.
func CheckFinite(res estimator.Result) error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"model_ram_gb", res.ModelRAMGB},
		{"kv_cache_ram_gb", res.KVCacheRAMGB},
		{"overhead_ram_gb", res.OverheadRAMGB},
		{"gpu_ram_used_gb", res.GPURAMUsedGB},
		{"system_ram_gb", res.SystemRAMGB},
	} {
		if math.IsInf(f.v, 0) || math.IsNaN(f.v) {
			return &NonFiniteError{Field: f.name}
		}
	}
	return nil
}

// SweepResponse converts sweep points into their JSON shape.
func SweepResponse(points []estimator.SweepPoint) types.SweepResponse {
	rows := make([]types.SweepRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, types.SweepRow{QuantizationBits: p.QuantizationBits, EstimateResponse: Response(p.Result)})
	}
	return types.SweepResponse{Rows: rows}
}

const textTemplate = `{{ "Calculation Results" | upper }}
{{ repeat 40 "-" }}
{{ row "Model RAM" .ModelRAMGB }}
{{ row "KV Cache RAM" .KVCacheRAMGB }}
{{ row "Estimated Overhead" .OverheadRAMGB }}
{{ row "RAM Offloaded to GPU" .GPURAMUsedGB }}
{{ repeat 40 "-" }}
Total Estimated System RAM: {{ gb .SystemRAMGB }} GB
{{- if .Warnings }}

Warnings:
{{- range .Warnings }}
  - {{ . }}
{{- end }}
{{- end }}
`

var textTmpl = template.Must(template.New("text").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
	"gb":  GB,
	"row": func(label string, v float64) string { return fmt.Sprintf("%-22s %8s GB", label+":", GB(v)) },
}).Parse(textTemplate))

// WriteText writes the human-readable summary of res.
func WriteText(w io.Writer, res estimator.Result) error {
	return textTmpl.Execute(w, res)
}
