package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/scan"
)

const chat = "08/11/21, 7:59 pm - Ananya: Hello there\n" +
	"08/11/21, 8:01 pm - Rahul: tournament tomorrow?\n" +
	"09/11/21, 9:00 am - Ananya: the tournament was fun\n" +
	"10/11/21, 6:30 pm - Rahul: \u0928\u092e\u0938\u094d\u0924\u0947 dost\n"

func setupDB(t *testing.T) *index.DB {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "family.txt"), []byte(chat), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := index.OpenDB(filepath.Join(dir, "chatlog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	files, err := scan.ScanPaths(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := index.IndexFiles(db, files, nil); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSearch(t *testing.T) {
	db := setupDB(t)

	tests := []struct {
		name    string
		opts    Options
		wantSeq []int
	}{
		{"fts word", Options{Query: "tournament"}, []int{1, 2}},
		{"fts punctuation", Options{Query: "tomorrow?"}, []int{1}},
		{"sender filter", Options{Query: "tournament", Sender: "ananya"}, []int{2}},
		{"since filter", Options{Query: "tournament", Since: "2021-11-09"}, []int{2}},
		{"devanagari like", Options{Query: "\u0928\u092e\u0938\u094d"}, []int{3}},
		{"no match", Options{Query: "cricket"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Search(db, tt.opts)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(results) != len(tt.wantSeq) {
				t.Fatalf("got %d results, want %d: %+v", len(results), len(tt.wantSeq), results)
			}
			seen := make(map[int]bool)
			for _, r := range results {
				seen[r.Seq] = true
				if r.TranscriptKey != "family" {
					t.Errorf("TranscriptKey = %q", r.TranscriptKey)
				}
				if !strings.Contains(r.Snippet, ">>>") {
					t.Errorf("snippet %q has no highlight", r.Snippet)
				}
			}
			for _, s := range tt.wantSeq {
				if !seen[s] {
					t.Errorf("missing seq %d", s)
				}
			}
		})
	}
}

func TestListAll(t *testing.T) {
	db := setupDB(t)

	results, err := ListAll(db, Options{Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Seq != 3 || results[2].Seq != 1 {
		t.Errorf("order = %d,%d,%d, want newest first", results[0].Seq, results[1].Seq, results[2].Seq)
	}
}

func TestMakeSnippet(t *testing.T) {
	tests := []struct {
		text, query string
		context     int
		want        string
	}{
		{"hello world", "world", 10, "hello >>>world<<<"},
		{"hello world", "WORLD", 10, "hello >>>world<<<"},
		{"say hello world again", "hello", 2, "...y >>>hello<<< w..."},
		{"abcdefghij", "zz", 2, "abcd..."},
		{"short", "zz", 3, "short"},
		// lowercasing U+0130 grows it by one byte
		{"\u0130stanbul trip", "TRIP", 20, "\u0130stanbul >>>trip<<<"},
		{"\u0130\u0130\u0130 ok then", "ok", 2, "...\u0130 >>>ok<<< t..."},
	}
	for _, tt := range tests {
		got := makeSnippet(tt.text, tt.query, tt.context)
		if got != tt.want {
			t.Errorf("makeSnippet(%q, %q) = %q, want %q", tt.text, tt.query, got, tt.want)
		}
	}
}

func TestFTSQuery(t *testing.T) {
	if got := ftsQuery(`say "hi" now?`); got != `"say" """hi""" "now?"` {
		t.Errorf("ftsQuery = %s", got)
	}
}
