package registry

import (
	"fmt"
	"os"
	"path/filepath"

	gguf "github.com/gpustack/gguf-parser-go"

	"ramcalc/pkg/types"
)

// FormatGGUF and FormatHFConfig name the metadata sources a Model can come from.
const (
	FormatGGUF     = "gguf"
	FormatHFConfig = "hf-config"
)

// InspectGGUF reads the header of a GGUF file and returns the calculator
// inputs it describes. Tensor data is not loaded.
func InspectGGUF(path string) (types.Model, error) {
	m := types.Model{ID: filepath.Base(path), Name: filepath.Base(path), Path: path, Format: FormatGGUF}
	st, err := os.Stat(path)
	if err != nil {
		return m, fmt.Errorf("stat gguf: %w", err)
	}
	m.FileSizeBytes = st.Size()

	f, err := gguf.ParseGGUFFile(path)
	if err != nil {
		return m, fmt.Errorf("parse gguf %s: %w", filepath.Base(path), err)
	}
	md := f.Metadata()
	arch := f.Architecture()
	if md.Name != "" {
		m.Name = md.Name
	}
	m.Family = arch.Architecture
	m.Quant = fmt.Sprint(md.FileType)
	m.ParamsB = float64(md.Parameters) / 1e9
	m.BitsPerWeight = float64(md.BitsPerWeight)
	m.NumLayers = int(arch.BlockCount)
	m.HiddenSize = int(arch.EmbeddingLength)
	m.MaxContextLength = int(arch.MaximumContextLength)
	return m, nil
}
