package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chatlog/internal/index"
)

// OpenTranscript opens the transcript file in $EDITOR (less by default),
// positioned on the header line of message hitSeq when the editor supports it.
func OpenTranscript(db *index.DB, transcriptKey string, hitSeq int) error {
	tr, err := db.GetTranscriptByKey(transcriptKey)
	if err != nil {
		return fmt.Errorf("get transcript: %w", err)
	}
	if tr == nil {
		return fmt.Errorf("transcript not found: %s", transcriptKey)
	}

	if _, err := os.Stat(tr.FilePath); err != nil {
		return fmt.Errorf("file not found: %s", tr.FilePath)
	}

	lineNum := 1
	if hitSeq >= 0 {
		msgs, err := db.GetMessages(transcriptKey)
		if err == nil {
			for _, m := range msgs {
				if m.Seq == hitSeq {
					lineNum = m.LineNumber
					break
				}
			}
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, tr.FilePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"), strings.Contains(editor, "nano"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
