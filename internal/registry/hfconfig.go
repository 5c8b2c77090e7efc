package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ramcalc/internal/common/fsutil"
	"ramcalc/pkg/types"
)

// ConfigFileName is the Hugging Face model configuration file.
const ConfigFileName = "config.json"

const safetensorsIndexName = "model.safetensors.index.json"

// hfConfig is the subset of a Hugging Face config.json the calculator uses.
// GPT-2 style checkpoints name the same values n_embd, n_layer, n_positions.
type hfConfig struct {
	NameOrPath            string   `json:"_name_or_path"`
	ModelType             string   `json:"model_type"`
	Architectures         []string `json:"architectures"`
	TorchDtype            string   `json:"torch_dtype"`
	HiddenSize            int      `json:"hidden_size"`
	NumHiddenLayers       int      `json:"num_hidden_layers"`
	MaxPositionEmbeddings int      `json:"max_position_embeddings"`
	NEmbd                 int      `json:"n_embd"`
	NLayer                int      `json:"n_layer"`
	NPositions            int      `json:"n_positions"`
}

type safetensorsIndex struct {
	Metadata struct {
		TotalSize float64 `json:"total_size"`
	} `json:"metadata"`
}

// LoadHFConfig reads a config.json. When a model.safetensors.index.json sits
// next to it, the parameter count is derived from the total weight size.
func LoadHFConfig(path string) (types.Model, error) {
	dir := filepath.Dir(path)
	m := types.Model{ID: filepath.Base(dir), Name: filepath.Base(dir), Path: path, Format: FormatHFConfig}
	b, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read config: %w", err)
	}
	m.FileSizeBytes = int64(len(b))
	var cfg hfConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return m, fmt.Errorf("parse config: %w", err)
	}
	if cfg.NameOrPath != "" {
		m.Name = cfg.NameOrPath
	}
	m.Family = cfg.ModelType
	m.Quant = cfg.TorchDtype
	m.BitsPerWeight = dtypeBits(cfg.TorchDtype)
	m.HiddenSize = firstPositive(cfg.HiddenSize, cfg.NEmbd)
	m.NumLayers = firstPositive(cfg.NumHiddenLayers, cfg.NLayer)
	m.MaxContextLength = firstPositive(cfg.MaxPositionEmbeddings, cfg.NPositions)

	idxPath := filepath.Join(dir, safetensorsIndexName)
	if fsutil.IsFile(idxPath) {
		ib, err := os.ReadFile(idxPath)
		if err != nil {
			return m, fmt.Errorf("read index: %w", err)
		}
		var idx safetensorsIndex
		if err := json.Unmarshal(ib, &idx); err != nil {
			return m, fmt.Errorf("parse index: %w", err)
		}
		bits := m.BitsPerWeight
		if bits == 0 {
			bits = 16
		}
		if idx.Metadata.TotalSize > 0 {
			m.ParamsB = idx.Metadata.TotalSize / (bits / 8) / 1e9
		}
	}
	return m, nil
}

// dtypeBits maps torch_dtype names to bits per element; unknown names give 0.
func dtypeBits(dtype string) float64 {
	switch strings.ToLower(strings.TrimPrefix(dtype, "torch.")) {
	case "float32", "fp32":
		return 32
	case "float16", "fp16", "bfloat16", "bf16":
		return 16
	case "int8", "uint8", "float8_e4m3fn", "float8_e5m2":
		return 8
	default:
		return 0
	}
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
