package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/scan"
	"github.com/spf13/cobra"
)

func indexCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "index [paths...]",
		Short: "Parse transcripts into the search index",
		Long: `Parses transcript files into the sqlite index used by search, list,
preview and open. Directories are scanned for *.txt files; with no arguments
the configured transcripts_root is used. Unchanged files are skipped and
transcripts whose file disappeared are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			paths := args
			if len(paths) == 0 {
				paths = []string{cfg.TranscriptsRoot}
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			files, err := scan.ScanPaths(paths...)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			g.logger.Info("scanning", "paths", paths, "files", len(files))

			bar := newIndexProgress(len(files), g.logger)
			stats, err := index.IndexFiles(db, files, bar.update)
			bar.stop()
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}
}

// refreshIndex brings the index up to date with the transcripts root before
// a query. Failures only degrade freshness, so they are logged.
func refreshIndex(g *globals, db *index.DB) {
	files, err := scan.ScanPaths(g.cfg.TranscriptsRoot)
	if err != nil {
		g.logger.Debug("skip index refresh", "err", err)
		return
	}
	stats, err := index.IndexFiles(db, files, nil)
	if err != nil {
		g.logger.Warn("index refresh failed", "err", err)
		return
	}
	g.logger.Debug("index refreshed", "stats", stats.String())
}
