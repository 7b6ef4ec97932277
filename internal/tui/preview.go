package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/render"
	"github.com/Zuo-Peng/chatlog/internal/search"
)

// previewContext is how many messages around the selection are rendered.
const previewContext = 30

type previewMsg struct {
	key     string
	content string
	hitLine int
	err     error
}

func previewKey(r search.Result) string {
	return fmt.Sprintf("%s:%d", r.TranscriptKey, r.Seq)
}

// renderPreview renders the conversation around r in the background.
func renderPreview(db *index.DB, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderConversation(db, r.TranscriptKey, render.Options{
			HitSeq:  r.Seq,
			Context: previewContext,
			Width:   width,
			Query:   query,
		})
		return previewMsg{key: previewKey(r), content: content, hitLine: hitLine, err: err}
	}
}

func newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}
