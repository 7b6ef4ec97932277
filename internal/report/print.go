package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("12")  // bright blue
	colorDim     = lipgloss.Color("240") // gray

	styleBanner = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSection = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	styleKey = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleDim = lipgloss.NewStyle().
			Foreground(colorDim)
)

const rule = "======================================================================"

// Print writes the human-readable summary to w.
func Print(w io.Writer, s Summary) {
	fmt.Fprintln(w, styleBanner.Render(rule))
	fmt.Fprintln(w, styleBanner.Render("CHAT ANALYSIS"))
	fmt.Fprintln(w, styleBanner.Render(rule))

	section(w, "Overall Statistics")
	fmt.Fprintf(w, "   Total Messages: %d\n", s.Total)
	if !s.First.IsZero() {
		fmt.Fprintf(w, "   Date Range: %s to %s\n", s.First.Format("02 Jan 06"), s.Last.Format("02 Jan 06"))
		fmt.Fprintf(w, "   Duration: %d days\n", s.Days())
	}
	if s.Undated > 0 {
		fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("   Undated messages: %d", s.Undated)))
	}

	section(w, "Participants")
	printCounts(w, s.Senders, s.Total, "messages")

	if len(s.Years) > 0 {
		section(w, "Messages by Year")
		for _, c := range s.Years {
			fmt.Fprintf(w, "   %s: %d messages\n", styleKey.Render(c.Key), c.Count)
		}
	}

	if len(s.Hours) > 0 {
		section(w, "Most Active Hours")
		for _, h := range s.Hours {
			label := fmt.Sprintf("%02d:00 - %02d:00", h.Hour, h.Hour+1)
			fmt.Fprintf(w, "   %s: %d messages\n", styleKey.Render(label), h.Count)
		}
	}

	section(w, "Language Distribution")
	printCounts(w, s.Languages, s.Total, "messages")

	if len(s.Starters) > 0 {
		total := 0
		for _, c := range s.Starters {
			total += c.Count
		}
		section(w, "Who Starts Conversations")
		printCounts(w, s.Starters, total, "times")
	}

	if len(s.Periods) > 0 {
		section(w, "Sample Messages")
		for _, p := range s.Periods {
			fmt.Fprintln(w, styleDim.Render("--- "+p.YearMonth+" ---"))
			for _, m := range p.Samples {
				fmt.Fprintf(w, "   %s: %s\n", styleKey.Render(m.Sender), m.Text)
			}
		}
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, styleSection.Render(title+":"))
}

func printCounts(w io.Writer, counts []Count, total int, unit string) {
	for _, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(c.Count) / float64(total) * 100
		}
		key := strings.TrimSpace(c.Key)
		fmt.Fprintf(w, "   %s: %d %s (%.1f%%)\n", styleKey.Render(key), c.Count, unit, pct)
	}
}
