package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/Zuo-Peng/chatlog/internal/index"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// senderColors is cycled in order of first appearance in the window.
var senderColors = []string{
	"\033[1;34m", // bold blue
	"\033[1;32m", // bold green
	"\033[1;35m", // bold magenta
	"\033[1;36m", // bold cyan
}

type Options struct {
	HitSeq  int    // -1 = no hit
	Context int    // messages before/after hit to show
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	for _, term := range strings.Fields(query) {
		text = highlightTerm(text, term)
	}
	return text
}

// highlightTerm matches rune by rune so the byte offsets always refer to
// text itself, whatever case folding does to byte lengths.
func highlightTerm(text, term string) string {
	n := utf8.RuneCountInString(term)
	var b strings.Builder
	i := 0
	for i < len(text) {
		// never match inside an escape sequence added for an earlier term
		if strings.HasPrefix(text[i:], colorBoldRed) {
			end := strings.Index(text[i:], colorReset)
			if end < 0 {
				b.WriteString(text[i:])
				break
			}
			end += i + len(colorReset)
			b.WriteString(text[i:end])
			i = end
			continue
		}
		if j := runeSpan(text[i:], n); j > 0 && strings.EqualFold(text[i:i+j], term) {
			b.WriteString(colorBoldRed + text[i:i+j] + colorReset)
			i += j
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String()
}

// runeSpan returns the byte length of the first n runes of s, or 0 when s
// is shorter.
func runeSpan(s string, n int) int {
	j := 0
	for k := 0; k < n; k++ {
		if j >= len(s) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(s[j:])
		j += size
	}
	return j
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// stamp is the header date and time as they appear in the transcript.
func stamp(m index.MessageRow) string {
	return m.DateToken + ", " + m.TimeToken
}

// RenderConversation renders a window of a transcript and returns the content,
// the 0-based line number of the hit message header (-1 if no hit), and any error.
func RenderConversation(db *index.DB, transcriptKey string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}

	tr, err := db.GetTranscriptByKey(transcriptKey)
	if err != nil {
		return "", -1, fmt.Errorf("get transcript: %w", err)
	}
	if tr == nil {
		return "", -1, fmt.Errorf("transcript not found: %s", transcriptKey)
	}

	msgs, hitIdx, startPos, totalCount, err := db.GetMessagesWindow(transcriptKey, opts.HitSeq, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get messages: %w", err)
	}

	if totalCount == 0 {
		return "(empty transcript)", -1, nil
	}

	skipAfter := totalCount - startPos - len(msgs)

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	wrapW := opts.Width

	// helper to track line count; wraps long lines if Width is set
	writeLine := func(s string) {
		wrapped := wrapLine(s, wrapW)
		for _, wl := range wrapped {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	writeLine(fmt.Sprintf("%s--- %s [%s] %s .. %s ---%s",
		colorDim, transcriptKey, tr.Participants, tr.FirstAt, tr.LastAt, colorReset))

	if startPos > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", colorDim, startPos, colorReset))
	}

	colors := make(map[string]string)
	for i, m := range msgs {
		isHit := i == hitIdx
		if isHit {
			hitLine = lineCount
		}

		color, ok := colors[m.Sender]
		if !ok {
			color = senderColors[len(colors)%len(senderColors)]
			colors[m.Sender] = color
		}

		if isHit {
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", colorHit, m.Sender, stamp(m), colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", color, m.Sender, colorReset, colorDim, stamp(m), colorReset))
		}

		text := highlightKeywords(m.Body, opts.Query)
		text = indentLines(text, "  ")
		for _, tl := range strings.Split(text, "\n") {
			writeLine(tl)
		}
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", colorDim, skipAfter, colorReset))
	}

	return b.String(), hitLine, nil
}
