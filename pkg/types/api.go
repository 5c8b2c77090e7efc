package types

// EstimateRequest is the payload of POST /v1/estimate. Omitted or null
// fields are treated as not supplied.
type EstimateRequest struct {
	// Parameter count in billions.
	// example: 7
	ModelParamsB *float64 `json:"model_params_b,omitempty" example:"7"`
	// Bits per model weight (4, 8, 16, 32).
	// example: 16
	QuantizationBits *float64 `json:"quantization_bits,omitempty" example:"16"`
	// Token budget of the KV cache.
	// example: 2048
	ContextLength *float64 `json:"context_length,omitempty" example:"2048"`
	// Parallel sequences; values below 1 are treated as 1.
	// example: 1
	BatchSize *float64 `json:"batch_size,omitempty" example:"1"`
	// Available accelerator memory in GB.
	// example: 24
	GPUVRAMGB *float64 `json:"gpu_vram_gb,omitempty" example:"24"`
	// Model hidden size (d_model).
	// example: 4096
	HiddenSize *float64 `json:"hidden_size,omitempty" example:"4096"`
	// Number of transformer layers.
	// example: 32
	NumLayers *float64 `json:"num_layers,omitempty" example:"32"`
	// KV cache precision: bits as a number, a numeric string, or "same".
	// example: same
	KVCacheQuantizationBits KVCacheSetting `json:"kv_cache_quantization_bits" swaggertype:"string" example:"same"`
}

// EstimateResponse is the memory breakdown returned by the estimate endpoints.
type EstimateResponse struct {
	// Memory taken by the model weights in GB.
	// example: 13.04
	ModelRAMGB float64 `json:"model_ram_gb" example:"13.04"`
	// Memory taken by the key/value cache in GB.
	// example: 1
	KVCacheRAMGB float64 `json:"kv_cache_ram_gb" example:"1"`
	// Flat runtime overhead in GB.
	// example: 2
	OverheadRAMGB float64 `json:"overhead_ram_gb" example:"2"`
	// Memory offloaded to the GPU in GB.
	// example: 0
	GPURAMUsedGB float64 `json:"gpu_ram_used_gb" example:"0"`
	// Estimated system memory in GB.
	// example: 16.04
	SystemRAMGB float64 `json:"system_ram_gb" example:"16.04"`
	// Notes about defaults applied or inputs missing, in detection order.
	Warnings []string `json:"warnings"`
}

// SweepRow is one weight precision of a precision sweep.
type SweepRow struct {
	// Bits per weight for this row.
	// example: 8
	QuantizationBits float64 `json:"quantization_bits" example:"8"`
	EstimateResponse
}

// SweepResponse is returned by GET /v1/sweep.
type SweepResponse struct {
	Rows []SweepRow `json:"rows"`
}

// ModelsResponse wraps the list of models returned by GET /v1/models.
type ModelsResponse struct {
	// List of discovered models.
	Models []Model `json:"models"`
}

// ModelDetailResponse is returned by GET /v1/models/{id}.
type ModelDetailResponse struct {
	Model Model `json:"model"`
	// Calculator fields after the model metadata was applied, keyed like the
	// query parameters. Blank means not supplied.
	Inputs   map[string]string `json:"inputs"`
	Estimate EstimateResponse  `json:"estimate"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
