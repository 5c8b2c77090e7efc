package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ramcalc/internal/form"
	"ramcalc/internal/registry"
	"ramcalc/pkg/types"
)

// fieldFlag binds a calculator field to a command line flag. Values are text
// so an empty flag means the field was left blank.
type fieldFlag struct {
	key  string
	name string
	val  string
}

func newFieldFlags() []*fieldFlag {
	return []*fieldFlag{
		{key: form.KeyModelParamsB, name: "params"},
		{key: form.KeyQuantizationBits, name: "bits"},
		{key: form.KeyContextLength, name: "context"},
		{key: form.KeyBatchSize, name: "batch"},
		{key: form.KeyGPUVRAMGB, name: "gpu-vram"},
		{key: form.KeyHiddenSize, name: "hidden-size"},
		{key: form.KeyNumLayers, name: "layers"},
		{key: form.KeyKVCacheBits, name: "kv-bits"},
	}
}

// inputFlags are the flags shared by estimate and sweep.
type inputFlags struct {
	fields     []*fieldFlag
	noDefaults bool
	ggufPath   string
	hfPath     string
	asJSON     bool
}

func addInputFlags(cmd *cobra.Command) *inputFlags {
	f := &inputFlags{fields: newFieldFlags()}
	for _, ff := range f.fields {
		cmd.Flags().StringVar(&ff.val, ff.name, "", fieldLabel(ff.key))
	}
	cmd.Flags().BoolVar(&f.noDefaults, "no-defaults", false, "Start from a blank form instead of the calculator defaults")
	cmd.Flags().StringVar(&f.ggufPath, "gguf", "", "Prefill fields from the metadata of a GGUF file")
	cmd.Flags().StringVar(&f.hfPath, "hf-config", "", "Prefill fields from a Hugging Face config.json or its directory")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print JSON instead of text")
	return f
}

func fieldLabel(key string) string {
	for _, f := range form.Fields {
		if f.Key == key {
			return f.Label
		}
	}
	return key
}

// model loads the metadata named by --gguf or --hf-config, if any.
func (f *inputFlags) model() (*types.Model, error) {
	if f.ggufPath != "" && f.hfPath != "" {
		return nil, fmt.Errorf("--gguf and --hf-config are mutually exclusive")
	}
	var (
		m   types.Model
		err error
	)
	switch {
	case f.ggufPath != "":
		m, err = registry.InspectGGUF(f.ggufPath)
	case f.hfPath != "":
		m, err = registry.Inspect(f.hfPath)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// values assembles the form: defaults, minus the fields the model provides,
// with the flags given on the command line on top.
func (f *inputFlags) values(cmd *cobra.Command, defaults form.Values, m *types.Model) form.Values {
	base := form.Values{}
	if !f.noDefaults {
		base = defaults.Merge(nil)
	}
	if m != nil {
		for _, k := range modelKeys(*m) {
			delete(base, k)
		}
	}
	for _, ff := range f.fields {
		if cmd.Flags().Changed(ff.name) {
			base[ff.key] = ff.val
		}
	}
	return base
}

// modelKeys lists the form fields m has metadata for.
func modelKeys(m types.Model) []string {
	var keys []string
	if m.ParamsB > 0 {
		keys = append(keys, form.KeyModelParamsB)
	}
	if m.BitsPerWeight > 0 {
		keys = append(keys, form.KeyQuantizationBits)
	}
	if m.MaxContextLength > 0 {
		keys = append(keys, form.KeyContextLength)
	}
	if m.HiddenSize > 0 {
		keys = append(keys, form.KeyHiddenSize)
	}
	if m.NumLayers > 0 {
		keys = append(keys, form.KeyNumLayers)
	}
	return keys
}
