package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/BooleanCube/notebook/internal/config"
	"github.com/BooleanCube/notebook/internal/errors"
	"github.com/BooleanCube/notebook/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"notebook.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Compile struct {
		Root   string `short:"r" help:"Content root directory (overrides config)"`
		Output string `short:"o" help:"Output path for the compiled index (overrides config)"`
	} `cmd:"" help:"Compile content directories into a directory.json index"`

	Watch struct {
		Root        string        `short:"r" help:"Content root directory (overrides config)"`
		Output      string        `short:"o" help:"Output path for the compiled index (overrides config)"`
		Interval    time.Duration `help:"Periodic rebuild interval (overrides config, 0 disables)"`
		MetricsAddr string        `help:"Address to serve Prometheus metrics on (overrides config)"`
	} `cmd:"" help:"Recompile the index whenever content changes"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	// Execute command
	switch ctx.Command() {
	case "compile":
		cfg, err := loadConfig()
		if err != nil {
			adapter.LogError(err)
			os.Exit(adapter.ExitCodeFor(err))
		}
		applyOverrides(cfg, CLI.Compile.Root, CLI.Compile.Output)
		if err := runCompile(cfg); err != nil {
			adapter.LogError(err)
			os.Exit(adapter.ExitCodeFor(err))
		}
	case "watch":
		cfg, err := loadConfig()
		if err != nil {
			adapter.LogError(err)
			os.Exit(adapter.ExitCodeFor(err))
		}
		applyOverrides(cfg, CLI.Watch.Root, CLI.Watch.Output)
		if CLI.Watch.Interval > 0 {
			cfg.Watch.Interval = CLI.Watch.Interval.String()
		}
		if CLI.Watch.MetricsAddr != "" {
			cfg.Watch.MetricsAddr = CLI.Watch.MetricsAddr
		}
		if err := runWatch(cfg); err != nil {
			adapter.LogError(err)
			os.Exit(adapter.ExitCodeFor(err))
		}
	case "version":
		fmt.Printf("notebook %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(CLI.Config)
}

// applyOverrides lets flags win over the config file.
func applyOverrides(cfg *config.Config, root, output string) {
	if root != "" {
		cfg.Content.Root = root
	}
	if output != "" {
		cfg.Output.Path = output
	}
}
