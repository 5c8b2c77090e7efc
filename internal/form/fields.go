package form

// Option is one choice of a selection field.
type Option struct {
	Value string
	Label string
}

// Field describes how one calculator input is presented.
type Field struct {
	Key         string
	Label       string
	Help        string
	Placeholder string
	Min         string
	Step        string
	// Options turns the field into a selection.
	Options []Option
	// Advanced fields only matter for KV cache sizing.
	Advanced bool
}

// Fields is the calculator form in display order.
var Fields = []Field{
	{
		Key: KeyModelParamsB, Label: "Model Parameters (Billions)", Placeholder: "e.g., 7", Min: "0", Step: "any",
		Help: "Total number of parameters in the model, in billions (e.g., 7 for a 7B model).",
	},
	{
		Key: KeyQuantizationBits, Label: "Quantization (Bits)",
		Help: "Precision of model weights. Lower values reduce RAM (e.g., 16 for FP16, 8 for INT8, 4 for INT4/NF4).",
		Options: []Option{
			{"", "Select Precision..."},
			{"4", "4-bit"},
			{"8", "8-bit"},
			{"16", "16-bit (FP16/BF16)"},
			{"32", "32-bit (FP32)"},
		},
	},
	{
		Key: KeyContextLength, Label: "Context Length (Tokens)", Placeholder: "e.g., 4096", Min: "0",
		Help: "Max tokens (input + output) the model processes. Affects KV cache RAM.",
	},
	{
		Key: KeyBatchSize, Label: "Batch Size", Placeholder: "e.g., 1", Min: "1",
		Help: "Number of input sequences processed in parallel. Often 1 for local inference. Affects KV cache.",
	},
	{
		Key: KeyGPUVRAMGB, Label: "Available GPU VRAM (GB)", Placeholder: "e.g., 24", Min: "0", Step: "any",
		Help: "VRAM on your GPU (if any). Model and KV cache can be offloaded here, reducing system RAM.",
	},
	{
		Key: KeyHiddenSize, Label: "Hidden Size (d_model)", Placeholder: "e.g., 4096", Min: "0", Advanced: true,
		Help: "Dimensionality of hidden states. From model's config.json.",
	},
	{
		Key: KeyNumLayers, Label: "Number of Layers", Placeholder: "e.g., 32", Min: "0", Advanced: true,
		Help: "Total transformer layers. From model's config.json.",
	},
	{
		Key: KeyKVCacheBits, Label: "KV Cache Precision (Bits)", Advanced: true,
		Help: "Precision for KV cache. 'Same as Model', 8-bit, or 16-bit. Affects KV cache RAM.",
		Options: []Option{
			{"same", "Same as Model"},
			{"8", "8-bit"},
			{"16", "16-bit (FP16)"},
		},
	},
}
