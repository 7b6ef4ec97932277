// Package pipeline wires the transcript parser, the enricher and the CSV
// export into the single run behind the root command.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Zuo-Peng/chatlog/internal/enrich"
	"github.com/Zuo-Peng/chatlog/internal/export"
	"github.com/Zuo-Peng/chatlog/internal/parse"
	"github.com/Zuo-Peng/chatlog/internal/report"
)

var ErrInputNotFound = errors.New("input file not found")

// placeholders are bodies the exporter writes in place of content it
// left out.
var placeholders = map[string]bool{
	"<Media omitted>":          true,
	"This message was deleted": true,
}

type Options struct {
	InputPath        string
	GapThreshold     time.Duration
	OutputPath       string // defaults to <input>_parsed.csv
	SkipPlaceholders bool
	SampleSize       int
}

type Result struct {
	OutputPath string
	Parsed     *parse.Result
	Skipped    int
	Rows       []enrich.Row
	Summary    report.Summary
}

// Run parses, enriches and exports one transcript. Nothing is written unless
// the whole input was read successfully.
func Run(opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(opts.InputPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputPath)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}

	started := time.Now()
	logger.Info("parsing transcript", "path", opts.InputPath)

	parsed, err := parse.ParseFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if parsed.Undated > 0 {
		logger.Warn("messages with unparsable timestamps kept without datetime", "count", parsed.Undated)
	}
	logger.Debug("parsed transcript",
		"lines", parsed.Lines,
		"messages", len(parsed.Messages),
		"noise", parsed.Noise)

	msgs := parsed.Messages
	skipped := 0
	if opts.SkipPlaceholders {
		msgs, skipped = dropPlaceholders(msgs)
	}

	rows := enrich.Enrich(msgs, enrich.Options{GapThreshold: opts.GapThreshold})

	out := opts.OutputPath
	if out == "" {
		out = DefaultOutputPath(opts.InputPath)
	}
	if err := export.WriteFile(out, rows); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	logger.Info("transcript exported",
		"messages", len(rows),
		"skipped", skipped,
		"output", out,
		"duration", time.Since(started))

	return &Result{
		OutputPath: out,
		Parsed:     parsed,
		Skipped:    skipped,
		Rows:       rows,
		Summary:    report.Build(rows, opts.SampleSize),
	}, nil
}

// DefaultOutputPath derives the CSV path from the transcript path.
func DefaultOutputPath(input string) string {
	return strings.TrimSuffix(input, ".txt") + "_parsed.csv"
}

func dropPlaceholders(msgs []parse.Message) ([]parse.Message, int) {
	kept := make([]parse.Message, 0, len(msgs))
	for _, m := range msgs {
		if placeholders[m.Body] {
			continue
		}
		kept = append(kept, m)
	}
	return kept, len(msgs) - len(kept)
}
