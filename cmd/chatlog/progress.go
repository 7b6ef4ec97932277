package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/chatlog/internal/scan"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// indexProgress draws a progress bar while indexing when stdout is a
// terminal, and falls back to log lines otherwise.
type indexProgress struct {
	pb     *pterm.ProgressbarPrinter
	logger *slog.Logger
}

func newIndexProgress(total int, logger *slog.Logger) *indexProgress {
	p := &indexProgress{logger: logger}
	if total == 0 || !term.IsTerminal(int(os.Stdout.Fd())) {
		return p
	}

	pb, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Indexing transcripts").
		Start()
	if err == nil {
		p.pb = pb
	}
	return p
}

func (p *indexProgress) update(f scan.FileInfo, err error) {
	if err != nil {
		if p.pb != nil {
			pterm.Warning.Printfln("%s: %v", f.Path, err)
		} else {
			p.logger.Warn("index failed", "path", f.Path, "err", err)
		}
	}

	if p.pb == nil {
		p.logger.Debug("indexed", "path", f.Path)
		return
	}
	p.pb.UpdateTitle("Indexing " + filepath.Base(f.Path))
	p.pb.Increment()
}

func (p *indexProgress) stop() {
	if p.pb != nil {
		_, _ = p.pb.Stop()
	}
}
