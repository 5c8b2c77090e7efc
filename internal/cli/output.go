package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"ramcalc/pkg/types"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func humanParams(b float64) string {
	if b <= 0 {
		return ""
	}
	return humanize.SIWithDigits(b*1e9, 2, "")
}

func humanInt(n int) string {
	if n <= 0 {
		return ""
	}
	return humanize.Comma(int64(n))
}

func humanBits(b float64) string {
	if b <= 0 {
		return ""
	}
	return humanize.FtoaWithDigits(b, 2)
}

func humanSize(n int64) string {
	if n <= 0 {
		return ""
	}
	return humanize.IBytes(uint64(n))
}

// writeModel prints the metadata of m, one field per line. Empty fields are
// skipped.
func writeModel(w io.Writer, m types.Model) error {
	rows := [][2]string{
		{"ID", m.ID},
		{"Name", m.Name},
		{"Format", m.Format},
		{"Path", m.Path},
		{"Family", m.Family},
		{"Quant", m.Quant},
		{"Parameters", humanParams(m.ParamsB)},
		{"Bits/weight", humanBits(m.BitsPerWeight)},
		{"Layers", humanInt(m.NumLayers)},
		{"Hidden size", humanInt(m.HiddenSize)},
		{"Context", humanInt(m.MaxContextLength)},
		{"Size", humanSize(m.FileSizeBytes)},
		{"Error", m.Error},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", r[0]+":", r[1]); err != nil {
			return err
		}
	}
	return nil
}

// writeModels prints a table of discovered models.
func writeModels(w io.Writer, models []types.Model) error {
	table := tablewriter.NewTable(w)
	table.Header("ID", "Format", "Params", "Bits", "Layers", "Hidden", "Context", "Size", "Error")
	for _, m := range models {
		if err := table.Append(m.ID, m.Format, humanParams(m.ParamsB), humanBits(m.BitsPerWeight),
			humanInt(m.NumLayers), humanInt(m.HiddenSize), humanInt(m.MaxContextLength), humanSize(m.FileSizeBytes), m.Error); err != nil {
			return err
		}
	}
	return table.Render()
}
