package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/scan"
)

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"no wrap", "hello", 0, []string{"hello"}},
		{"fits", "hello", 10, []string{"hello"}},
		{"splits", "abcdef", 4, []string{"abcd", "ef"}},
		{"wide runes", "\u65e5\u672c\u8a9e", 4, []string{"\u65e5\u672c", "\u8a9e"}},
		{"ansi not counted", colorDim + "abcd" + colorReset, 4, []string{colorDim + "abcd" + colorReset}},
		{"empty", "", 5, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLine(tt.line, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapLine(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
			}
		})
	}
}

func TestHighlightKeywords(t *testing.T) {
	got := highlightKeywords("Match at the match", "MATCH")
	want := colorBoldRed + "Match" + colorReset + " at the " + colorBoldRed + "match" + colorReset
	if got != want {
		t.Errorf("highlightKeywords() = %q, want %q", got, want)
	}
	got = highlightKeywords("\u0130stanbul trip", "trip")
	want = "\u0130stanbul " + colorBoldRed + "trip" + colorReset
	if got != want {
		t.Errorf("highlightKeywords() after a multi-byte capital = %q, want %q", got, want)
	}
	got = highlightKeywords("red alert", "red m")
	want = colorBoldRed + "red" + colorReset + " alert"
	if got != want {
		t.Errorf("second term matched inside an escape code: %q", got)
	}
	if got := highlightKeywords("plain", ""); got != "plain" {
		t.Errorf("empty query changed text: %q", got)
	}
}

func TestRenderConversation(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	for _, line := range []string{
		"08/11/21, 7:59 pm - Ananya: one",
		"08/11/21, 8:00 pm - Rahul: two",
		"08/11/21, 8:01 pm - Ananya: three",
		"continued",
		"08/11/21, 8:02 pm - Rahul: four",
		"08/11/21, 8:03 pm - Ananya: five",
	} {
		b.WriteString(line + "\n")
	}
	if err := os.WriteFile(filepath.Join(dir, "chat.txt"), []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := index.OpenDB(filepath.Join(dir, "chatlog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	files, _ := scan.ScanPaths(dir)
	if _, err := index.IndexFiles(db, files, nil); err != nil {
		t.Fatal(err)
	}

	out, hitLine, err := RenderConversation(db, "chat", Options{HitSeq: 2, Context: 1, Query: "three"})
	if err != nil {
		t.Fatalf("RenderConversation() error = %v", err)
	}
	lines := strings.Split(out, "\n")
	if hitLine < 0 || !strings.Contains(lines[hitLine], ">> Ananya > 08/11/21, 8:01 pm <<") {
		t.Errorf("hit line %d not the hit header:\n%s", hitLine, out)
	}
	for _, want := range []string{"(1 messages before)", "(1 messages after)", "  continued", colorBoldRed + "three"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "one") || strings.Contains(out, "five") {
		t.Errorf("window leaked messages outside context:\n%s", out)
	}

	if _, _, err := RenderConversation(db, "missing", Options{HitSeq: -1}); err == nil {
		t.Error("expected error for unknown transcript")
	}
}
