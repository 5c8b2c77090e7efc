package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Model is a model discovered on disk together with the calculator inputs
// its metadata provides. Zero metadata fields were not found in the file.
type Model struct {
	// Stable identifier: file name for GGUF, directory name for config.json.
	// example: llama-2-7b.Q4_K_M.gguf
	ID string `json:"id" example:"llama-2-7b.Q4_K_M.gguf"`
	// Human-friendly name.
	// example: Llama 2 7B
	Name string `json:"name" example:"Llama 2 7B"`
	// Absolute path of the metadata source.
	// example: /home/user/models/llama-2-7b.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/llama-2-7b.Q4_K_M.gguf"`
	// Metadata format, gguf or hf-config.
	// example: gguf
	Format string `json:"format" example:"gguf"`
	// Quantization level or dtype string.
	// example: Q4_K_M
	Quant string `json:"quant,omitempty" example:"Q4_K_M"`
	// Architecture family (e.g., llama, mistral, phi).
	// example: llama
	Family string `json:"family,omitempty" example:"llama"`
	// Parameter count in billions.
	// example: 6.74
	ParamsB float64 `json:"params_b,omitempty" example:"6.74"`
	// Bits per weight.
	// example: 4.85
	BitsPerWeight float64 `json:"bits_per_weight,omitempty" example:"4.85"`
	// Transformer layers.
	// example: 32
	NumLayers int `json:"num_layers,omitempty" example:"32"`
	// Hidden size (d_model).
	// example: 4096
	HiddenSize int `json:"hidden_size,omitempty" example:"4096"`
	// Maximum context length the model was trained for.
	// example: 4096
	MaxContextLength int `json:"max_context_length,omitempty" example:"4096"`
	// Size of the metadata source on disk in bytes.
	// example: 4081004224
	FileSizeBytes int64 `json:"file_size_bytes,omitempty" example:"4081004224"`
	// Set when the metadata could not be read; the other fields may be empty.
	Error string `json:"error,omitempty"`
}

// KVCacheSetting carries the KV cache precision as sent on the wire: a JSON
// number, a JSON string (for example "same" or "8"), or null.
type KVCacheSetting struct {
	Number *float64
	Text   string
}

// IsZero reports whether no setting was sent.
func (k KVCacheSetting) IsZero() bool { return k.Number == nil && k.Text == "" }

func (k *KVCacheSetting) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*k = KVCacheSetting{}
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		return json.Unmarshal(b, &k.Text)
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("kv_cache_quantization_bits must be a number, a string or null")
	}
	k.Number = &n
	return nil
}

func (k KVCacheSetting) MarshalJSON() ([]byte, error) {
	switch {
	case k.Number != nil:
		return json.Marshal(*k.Number)
	case k.Text != "":
		return json.Marshal(k.Text)
	default:
		return []byte("null"), nil
	}
}
