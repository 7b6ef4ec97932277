package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Zuo-Peng/chatlog/internal/config"
	"github.com/Zuo-Peng/chatlog/internal/pipeline"
	"github.com/spf13/cobra"
)

var version = "dev"

// globals holds the persistent flags and what is derived from them before
// any command runs.
type globals struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	g := &globals{}

	rootCmd := parseCmd(g)
	rootCmd.Version = version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (.toml or .yaml); default ~/.config/chatlog/config.toml")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return g.init()
	}

	rootCmd.AddCommand(indexCmd(g))
	rootCmd.AddCommand(searchCmd(g))
	rootCmd.AddCommand(listCmd(g))
	rootCmd.AddCommand(previewCmd(g))
	rootCmd.AddCommand(openCmd(g))
	rootCmd.AddCommand(doctorCmd(g))

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, pipeline.ErrInputNotFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\nPass the exported chat file as the first argument.\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (g *globals) init() error {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	g.cfg = cfg
	g.logger = setupLogger(cfg.LogLevel)
	slog.SetDefault(g.logger)
	return nil
}

func setupLogger(logLevel string) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	switch logLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
