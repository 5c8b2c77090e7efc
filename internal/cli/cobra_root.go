package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ramcalc/internal/config"
	"ramcalc/internal/estimator"
	"ramcalc/internal/form"
	"ramcalc/internal/registry"
	"ramcalc/internal/report"
)

// buildRootCmdWith constructs the Cobra command tree.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	var (
		settingsCfg config.Config
		logger      = zerolog.Nop()
	)

	root := &cobra.Command{
		Use:           "ramcalc",
		Short:         "Estimate the system RAM needed to run a large language model locally",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.ConfigPath, "config", "", "Config file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", "", "Log level: debug|info|warn|error|off (defaults RAMCALC_LOG_LEVEL or info)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c, err := settings(cfg)
		if err != nil {
			return err
		}
		settingsCfg = c
		logger = newLogger(c.LogLevel, cmd.ErrOrStderr())
		return nil
	}

	// estimate
	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate RAM for one configuration",
		Example: "  ramcalc estimate --params 13 --bits 4 --gpu-vram 8\n" +
			"  ramcalc estimate --gguf ~/models/llama-2-7b.Q4_K_M.gguf --context 8192\n" +
			"  ramcalc estimate --no-defaults --params 7 --bits 8 --json",
		Args: cobra.NoArgs,
	}
	estimateFlags := addInputFlags(estimateCmd)
	estimateCmd.RunE = func(cmd *cobra.Command, args []string) error {
		m, err := estimateFlags.model()
		if err != nil {
			return err
		}
		values := estimateFlags.values(cmd, form.WithOverrides(settingsCfg.Defaults), m)
		in := form.Parse(values)
		if m != nil {
			in = registry.Apply(*m, in)
		}
		res := estimator.Estimate(in)
		logger.Debug().Interface("values", values).Float64("total_gb", res.TotalRAMGB()).Int("warnings", len(res.Warnings)).Msg("estimate")

		out := cmd.OutOrStdout()
		if estimateFlags.asJSON {
			if err := report.CheckFinite(res); err != nil {
				return err
			}
			return writeJSON(out, report.Response(res))
		}
		if m != nil {
			fmt.Fprintf(out, "Model: %s (%s)\n\n", m.Name, m.Format)
		}
		return report.WriteText(out, res)
	}
	root.AddCommand(estimateCmd)

	// sweep
	sweepCmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Compare one configuration across weight precisions",
		Example: "  ramcalc sweep --params 70 --gpu-vram 24\n  ramcalc sweep --precisions 3,4,5,6,8",
		Args:    cobra.NoArgs,
	}
	sweepFlags := addInputFlags(sweepCmd)
	var precisions []float64
	sweepCmd.Flags().Float64SliceVar(&precisions, "precisions", estimator.DefaultSweepBits, "Weight precisions in bits")
	sweepCmd.RunE = func(cmd *cobra.Command, args []string) error {
		m, err := sweepFlags.model()
		if err != nil {
			return err
		}
		in := form.Parse(sweepFlags.values(cmd, form.WithOverrides(settingsCfg.Defaults), m))
		if m != nil {
			in = registry.Apply(*m, in)
		}
		for _, b := range precisions {
			if !(b > 0) {
				return fmt.Errorf("invalid precision %v: must be positive", b)
			}
		}
		points := estimator.Sweep(in, precisions...)
		logger.Debug().Floats64("precisions", precisions).Msg("sweep")
		if sweepFlags.asJSON {
			for _, p := range points {
				if err := report.CheckFinite(p.Result); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), report.SweepResponse(points))
		}
		return report.WriteSweepTable(cmd.OutOrStdout(), points)
	}
	root.AddCommand(sweepCmd)

	// inspect
	var inspectJSON bool
	inspectCmd := &cobra.Command{
		Use:     "inspect <file.gguf|config.json|dir>",
		Short:   "Print the calculator metadata of a GGUF file or a Hugging Face config",
		Example: "  ramcalc inspect ~/models/llama-2-7b.Q4_K_M.gguf\n  ramcalc inspect ./Llama-2-7b-hf",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := registry.Inspect(args[0])
			if err != nil {
				return err
			}
			if inspectJSON {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			return writeModel(cmd.OutOrStdout(), m)
		},
	}
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print JSON instead of text")
	root.AddCommand(inspectCmd)

	// models
	var modelsDir string
	var modelsJSON bool
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List the models found in the models directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := modelsDir
			if dir == "" {
				dir = settingsCfg.ModelsDir
			}
			if dir == "" {
				return fmt.Errorf("no models directory: pass --dir, set models_dir or %s", config.EnvModelsDir)
			}
			models, err := registry.LoadDir(dir)
			if err != nil {
				return err
			}
			logger.Debug().Str("dir", dir).Int("models", len(models)).Msg("models loaded")
			if modelsJSON {
				return writeJSON(cmd.OutOrStdout(), models)
			}
			return writeModels(cmd.OutOrStdout(), models)
		},
	}
	modelsCmd.Flags().StringVar(&modelsDir, "dir", "", "Directory to scan (defaults to models_dir)")
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "Print JSON instead of a table")
	root.AddCommand(modelsCmd)

	// serve
	var addr, serveModelsDir string
	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the calculator web page and HTTP API",
		Example: "  ramcalc serve --addr :8080 --models-dir ~/models",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := settingsCfg
			if addr != "" {
				c.Addr = addr
			}
			if serveModelsDir != "" {
				c.ModelsDir = serveModelsDir
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return fnServe(ctx, c, logger)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults RAMCALC_ADDR or "+config.DefaultAddr+")")
	serveCmd.Flags().StringVar(&serveModelsDir, "models-dir", "", "Directory of *.gguf files and config.json folders")
	root.AddCommand(serveCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	root.AddCommand(completionCmd)

	return root
}
