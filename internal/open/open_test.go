package open

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatlog/internal/index"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   string
	}{
		{"vim", "+12 chat.txt"},
		{"/usr/bin/nvim", "+12 chat.txt"},
		{"code", "--goto chat.txt:12"},
		{"less", "+12 chat.txt"},
		{"nano", "+12 chat.txt"},
		{"ed", "chat.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			cmd := editorCommand(tt.editor, "chat.txt", 12)
			got := strings.Join(cmd.Args[1:], " ")
			if got != tt.want {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenTranscript_NotFound(t *testing.T) {
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "chatlog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	err = OpenTranscript(db, "nope", 0)
	if err == nil || !strings.Contains(err.Error(), "transcript not found") {
		t.Errorf("OpenTranscript() error = %v", err)
	}
}
