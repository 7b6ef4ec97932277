package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatlog/internal/search"
)

// Column widths of the message table. "08/11/21 10:59 pm" is 17 columns.
const (
	whenWidth   = 17
	senderWidth = 14
)

// header returns the column titles aligned with formatRow.
func header(width int) string {
	line := "  " + runewidth.FillRight("when", whenWidth) + " " +
		runewidth.FillRight("sender", senderWidth) + " message"
	return styleColumnHeader.Render(runewidth.Truncate(line, width, ""))
}

// formatRow renders one result as a table row: cursor, date and time,
// sender and the snippet with match markers removed.
func formatRow(r search.Result, width int, selected bool) string {
	when := strings.TrimSpace(r.DateToken + " " + r.TimeToken)
	if when == "" {
		when = "--"
	}
	when = runewidth.FillRight(runewidth.Truncate(when, whenWidth, ""), whenWidth)
	sender := runewidth.FillRight(runewidth.Truncate(r.Sender, senderWidth, "~"), senderWidth)

	textWidth := width - 2 - whenWidth - 1 - senderWidth - 1
	if textWidth < 0 {
		textWidth = 0
	}
	text := runewidth.Truncate(plainSnippet(r.Snippet), textWidth, "~")

	cursor := "  "
	if selected {
		cursor = styleCursor.Render("> ")
	}
	return cursor + styleWhen.Render(when) + " " + styleSender.Render(sender) + " " + styleSnippet.Render(text)
}

// plainSnippet flattens a snippet to one line without match markers.
func plainSnippet(s string) string {
	s = strings.NewReplacer(">>>", "", "<<<", "", "\n", " ", "\t", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// scrollTo returns the first visible row so that cursor stays within a
// window of rows lines starting at offset.
func scrollTo(cursor, offset, rows int) int {
	if rows < 1 {
		rows = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}

func (m model) renderTable(width, rows int) string {
	lines := []string{header(width)}
	if m.err != nil {
		lines = append(lines, styleError.Render("error: "+m.err.Error()))
	} else if len(m.results) == 0 {
		lines = append(lines, styleWhen.Render("  no messages"))
	}
	for i := m.offset; i < len(m.results) && i < m.offset+rows; i++ {
		lines = append(lines, formatRow(m.results[i], width, i == m.cursor))
	}
	for len(lines) < rows+1 {
		lines = append(lines, "")
	}
	return styleListFrame.Width(width).Render(strings.Join(lines, "\n"))
}
