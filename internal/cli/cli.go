// Package cli implements the ramcalc command line: estimates and precision
// sweeps in the terminal, metadata inspection and the HTTP server.
package cli

import (
	"fmt"
	"io"
	"os"

	"ramcalc/internal/config"
)

// Config holds the persistent flags shared by every command.
type Config struct {
	ConfigPath string
	EnvFile    string
	LogLvl     string
}

// settings resolves the runtime configuration. Precedence, lowest first:
// built-in defaults, config file, environment (including the .env file),
// command line.
func settings(cfg *Config) (config.Config, error) {
	if err := config.LoadDotEnv(cfg.EnvFile); err != nil {
		return config.Config{}, err
	}
	var c config.Config
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}
	c = c.ApplyEnv()
	if cfg.LogLvl != "" {
		c.LogLevel = cfg.LogLvl
	}
	return c.WithDefaults(), nil
}

func run(args []string, stdout, stderr io.Writer) int {
	root := buildRootCmdWith(&Config{EnvFile: ".env"})
	root.SetOut(stdout)
	root.SetErr(stderr)
	if len(args) == 0 {
		_ = root.Usage()
		return 2
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}

// MainWithArgs runs the CLI and returns the process exit code: 0 on success,
// 1 on error and 2 when no command was given.
func MainWithArgs(args []string) int { return run(args, os.Stdout, os.Stderr) }

// Main returns an exit code for use by cmd/ramcalc.
func Main() int { return MainWithArgs(os.Args[1:]) }
