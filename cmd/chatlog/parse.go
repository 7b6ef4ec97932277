package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Zuo-Peng/chatlog/internal/pipeline"
	"github.com/Zuo-Peng/chatlog/internal/report"
	"github.com/spf13/cobra"
)

func parseCmd(g *globals) *cobra.Command {
	var output, gap string
	var samples int
	var keepPlaceholders bool

	cmd := &cobra.Command{
		Use:   "chatlog [transcript]",
		Short: "Parse an exported chat transcript into CSV and print statistics",
		Long: `Parses an exported chat transcript (lines of "d/m/yy, h:mm am - Sender: text"),
writes one CSV row per message with calendar fields, a language tag and the
gap since the previous message, and prints a summary.

The transcript defaults to NAP_chat.txt in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg

			input := cfg.InputPath
			if len(args) == 1 {
				input = args[0]
			}

			opts := pipeline.Options{
				InputPath:        input,
				OutputPath:       cfg.OutputPath,
				SkipPlaceholders: !cfg.KeepPlaceholders,
				SampleSize:       cfg.SampleSize,
			}
			if cmd.Flags().Changed("output") {
				opts.OutputPath = output
			}
			if cmd.Flags().Changed("samples") {
				opts.SampleSize = samples
			}
			if cmd.Flags().Changed("keep-placeholders") {
				opts.SkipPlaceholders = !keepPlaceholders
			}

			threshold, err := cfg.Gap()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("gap") {
				threshold, err = time.ParseDuration(gap)
				if err != nil {
					return fmt.Errorf("invalid --gap: %w", err)
				}
				if threshold <= 0 {
					return fmt.Errorf("--gap must be positive, got %s", threshold)
				}
			}
			opts.GapThreshold = threshold

			res, err := pipeline.Run(opts, g.logger)
			if err != nil {
				return err
			}

			report.Print(os.Stdout, res.Summary)
			fmt.Printf("\nSaved %d messages to %s\n", len(res.Rows), res.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV output path (default <transcript>_parsed.csv)")
	cmd.Flags().StringVar(&gap, "gap", "3h", "Silence after which a message starts a new conversation")
	cmd.Flags().IntVar(&samples, "samples", 5, "Sample messages shown per period")
	cmd.Flags().BoolVar(&keepPlaceholders, "keep-placeholders", false, "Keep media-omitted and deleted-message placeholders")

	return cmd
}
