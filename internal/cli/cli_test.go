package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"ramcalc/internal/config"
	"ramcalc/pkg/types"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

// tinyModel writes a config.json with an index giving 1.1B bf16 parameters.
func tinyModel(t *testing.T, dir string) string {
	t.Helper()
	md := filepath.Join(dir, "tiny-llama")
	writeFile(t, filepath.Join(md, "config.json"), `{"model_type":"llama","torch_dtype":"bfloat16","hidden_size":2048,"num_hidden_layers":22,"max_position_embeddings":2048}`)
	writeFile(t, filepath.Join(md, "model.safetensors.index.json"), `{"metadata":{"total_size":2200000000}}`)
	return md
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRun_NoArgsAndUnknown(t *testing.T) {
	if code, _, _ := runCLI(t); code != 2 {
		t.Fatalf("expected exit code 2 for no args, got %d", code)
	}
	if code, _, errOut := runCLI(t, "wat"); code != 1 || !strings.Contains(errOut, "unknown command") {
		t.Fatalf("expected exit code 1 for unknown command, got %d (%q)", code, errOut)
	}
}

func TestEstimate_DefaultsText(t *testing.T) {
	code, out, errOut := runCLI(t, "estimate")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Total Estimated System RAM: 16.04 GB") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestEstimate_FlagsAndJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "estimate", "--bits", "8", "--gpu-vram", "4", "--json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var resp types.EstimateResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if !approx(resp.KVCacheRAMGB, 0.5) || !approx(resp.GPURAMUsedGB, 4) {
		t.Fatalf("unexpected: %+v", resp)
	}
}

func TestEstimate_BlankFlagAndNoDefaults(t *testing.T) {
	_, out, _ := runCLI(t, "estimate", "--hidden-size", "", "--json")
	var resp types.EstimateResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.KVCacheRAMGB != 0 || len(resp.Warnings) != 1 || !strings.HasPrefix(resp.Warnings[0], "To calculate KV cache RAM") {
		t.Fatalf("blank hidden size: %+v", resp)
	}

	_, out, _ = runCLI(t, "estimate", "--no-defaults", "--json")
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.SystemRAMGB != 2 || len(resp.Warnings) != 2 {
		t.Fatalf("blank form: %+v", resp)
	}
}

func TestEstimate_HFConfigPrefill(t *testing.T) {
	md := tinyModel(t, t.TempDir())
	code, out, errOut := runCLI(t, "estimate", "--hf-config", md, "--json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var resp types.EstimateResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	// 2 * 2048 ctx * 22 layers * 2048 hidden * 2 bytes
	if !approx(resp.KVCacheRAMGB, 0.34375) {
		t.Fatalf("kv=%v warnings=%v", resp.KVCacheRAMGB, resp.Warnings)
	}
	if !approx(resp.ModelRAMGB, 1.1e9*2/(1<<30)) {
		t.Fatalf("model=%v", resp.ModelRAMGB)
	}

	_, out, _ = runCLI(t, "estimate", "--hf-config", md, "--context", "4096")
	if !strings.Contains(out, "Model: tiny-llama (hf-config)") || !strings.Contains(out, "0.69 GB") {
		t.Fatalf("flag should override metadata:\n%s", out)
	}

	if code, _, _ := runCLI(t, "estimate", "--hf-config", md, "--gguf", "x.gguf"); code != 1 {
		t.Fatalf("expected exclusive flags error")
	}
}

func TestEstimate_ConfigDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ramcalc.yaml")
	writeFile(t, p, "defaults:\n  gpuVramGb: \"24\"\n")
	code, out, errOut := runCLI(t, "--config", p, "estimate")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Total Estimated System RAM: 2.00 GB") {
		t.Fatalf("config default not applied:\n%s", out)
	}
	if code, _, _ := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "estimate"); code != 1 {
		t.Fatalf("missing config should fail")
	}
}

func TestSweep(t *testing.T) {
	code, out, errOut := runCLI(t, "sweep")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{"3.26", "6.52", "13.04", "26.08"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in:\n%s", want, out)
		}
	}

	_, out, _ = runCLI(t, "sweep", "--precisions", "4,8", "--json")
	var resp types.SweepResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil || len(resp.Rows) != 2 {
		t.Fatalf("sweep json: %v\n%s", err, out)
	}
	if code, _, _ := runCLI(t, "sweep", "--precisions", "0"); code != 1 {
		t.Fatalf("zero precision should fail")
	}
}

func TestInspectAndModels(t *testing.T) {
	dir := t.TempDir()
	md := tinyModel(t, dir)

	code, out, errOut := runCLI(t, "inspect", md)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{"Format:      hf-config", "Layers:      22", "Hidden size: 2,048", "Family:      llama"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if code, _, _ := runCLI(t, "inspect", filepath.Join(dir, "notes.txt")); code != 1 {
		t.Fatalf("unsupported file should fail")
	}

	code, out, errOut = runCLI(t, "models", "--dir", dir)
	if code != 0 || !strings.Contains(out, "tiny-llama") {
		t.Fatalf("models: %d %s %s", code, out, errOut)
	}
	_, out, _ = runCLI(t, "models", "--dir", dir, "--json")
	var models []types.Model
	if err := json.Unmarshal([]byte(out), &models); err != nil || len(models) != 1 || models[0].NumLayers != 22 {
		t.Fatalf("models json: %v %s", err, out)
	}
	t.Setenv(config.EnvModelsDir, "")
	if code, _, _ := runCLI(t, "models"); code != 1 {
		t.Fatalf("models without a directory should fail")
	}
}

func TestServe_FlagsReachServer(t *testing.T) {
	old := fnServe
	defer func() { fnServe = old }()
	var got config.Config
	fnServe = func(ctx context.Context, c config.Config, logger zerolog.Logger) error {
		got = c
		return nil
	}
	t.Setenv(config.EnvModelsDir, "/from/env")
	if code, _, errOut := runCLI(t, "serve", "--addr", "127.0.0.1:0", "--log-level", "debug"); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if got.Addr != "127.0.0.1:0" || got.LogLevel != "debug" || got.ModelsDir != "/from/env" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.MaxBodyBytes != config.DefaultMaxBodyBytes {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := config.Config{Addr: "127.0.0.1:0"}.WithDefaults()
	if err := serve(ctx, c, zerolog.Nop()); err != nil {
		t.Fatalf("serve: %v", err)
	}
	c.ModelsDir = filepath.Join(t.TempDir(), "missing")
	if err := serve(ctx, c, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for missing models dir")
	}
}

func TestCompletion(t *testing.T) {
	code, out, _ := runCLI(t, "completion", "bash")
	if code != 0 || !strings.Contains(out, "ramcalc") {
		t.Fatalf("completion: %d", code)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("warn", &buf)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
	if got := newLogger("bogus", &buf).GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("bogus level -> %v", got)
	}
	if got := newLogger("off", &buf).GetLevel(); got != zerolog.Disabled {
		t.Fatalf("off -> %v", got)
	}
}

func TestEstimateJSON_Overflow(t *testing.T) {
	code, out, errOut := runCLI(t, "estimate", "--params", "1e300", "--json")
	if code != 1 || out != "" {
		t.Fatalf("exit %d out=%q", code, out)
	}
	if !strings.Contains(errOut, "model_ram_gb is not a finite number") {
		t.Fatalf("stderr=%q", errOut)
	}
	if code, _, errOut := runCLI(t, "sweep", "--params", "1e300", "--json"); code != 1 || !strings.Contains(errOut, "model_ram_gb") {
		t.Fatalf("sweep exit %d: %q", code, errOut)
	}
	// text output still renders
	if code, _, errOut := runCLI(t, "estimate", "--params", "1e300"); code != 0 {
		t.Fatalf("text exit %d: %s", code, errOut)
	}
}
