package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"ramcalc/internal/estimator"
)

var sweepHeaders = []any{"Bits", "Model GB", "KV Cache GB", "Overhead GB", "GPU GB", "System GB"}

// WriteSweepTable renders one row per weight precision.
func WriteSweepTable(w io.Writer, points []estimator.SweepPoint) error {
	table := tablewriter.NewTable(w)
	table.Header(sweepHeaders...)
	for _, p := range points {
		r := p.Result
		row := []any{
			strconv.FormatFloat(p.QuantizationBits, 'f', -1, 64),
			GB(r.ModelRAMGB), GB(r.KVCacheRAMGB), GB(r.OverheadRAMGB), GB(r.GPURAMUsedGB), GB(r.SystemRAMGB),
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	return table.Render()
}
