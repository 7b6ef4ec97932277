package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const DefaultInputPath = "NAP_chat.txt"

type Config struct {
	InputPath        string `toml:"input_path" yaml:"input_path"`
	OutputPath       string `toml:"output_path" yaml:"output_path"`
	GapThreshold     string `toml:"gap_threshold" yaml:"gap_threshold"`
	SampleSize       int    `toml:"sample_size" yaml:"sample_size"`
	KeepPlaceholders bool   `toml:"keep_placeholders" yaml:"keep_placeholders"`
	TranscriptsRoot  string `toml:"transcripts_root" yaml:"transcripts_root"`
	DBPath           string `toml:"db_path" yaml:"db_path"`
	LogLevel         string `toml:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default(home string) *Config {
	return &Config{
		InputPath:       DefaultInputPath,
		GapThreshold:    "3h",
		SampleSize:      5,
		TranscriptsRoot: filepath.Join(home, "chats"),
		DBPath:          filepath.Join(home, ".config", "chatlog", "chatlog.db"),
		LogLevel:        "info",
	}
}

// Load reads ~/.config/chatlog/config.toml, or config.yaml if there is no
// toml file, on top of the defaults. Missing files are not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, ".config", "chatlog")
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		cfgPath := filepath.Join(dir, name)
		if _, err := os.Stat(cfgPath); err == nil {
			return load(cfgPath, home)
		}
	}

	cfg := Default(home)
	return cfg, cfg.Validate()
}

// LoadFile reads an explicit config file; the decoder is picked by extension.
func LoadFile(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return load(path, home)
}

func load(cfgPath, home string) (*Config, error) {
	cfg := Default(home)

	switch strings.ToLower(filepath.Ext(cfgPath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	default:
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.InputPath = expandHome(cfg.InputPath, home)
	cfg.OutputPath = expandHome(cfg.OutputPath, home)
	cfg.TranscriptsRoot = expandHome(cfg.TranscriptsRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// Validate normalizes the log level and checks values that are parsed later.
func (c *Config) Validate() error {
	if _, err := c.Gap(); err != nil {
		return err
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("sample_size must not be negative")
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

// Gap parses GapThreshold.
func (c *Config) Gap() (time.Duration, error) {
	d, err := time.ParseDuration(c.GapThreshold)
	if err != nil {
		return 0, fmt.Errorf("invalid gap_threshold %q: %w", c.GapThreshold, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("gap_threshold must be positive, got %s", d)
	}
	return d, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
