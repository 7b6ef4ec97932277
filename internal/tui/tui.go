// Package tui is the interactive message browser behind the search and
// list commands: a filterable message table over a conversation preview.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/open"
	"github.com/Zuo-Peng/chatlog/internal/search"
)

const debounceDelay = 200 * time.Millisecond

// action is what happens to the chosen message after the program exits.
type action int

const (
	actionNone action = iota
	actionCopy
	actionOpen
)

type resultsMsg struct {
	input   string
	results []search.Result
	err     error
}

type typedMsg struct {
	input string
}

type model struct {
	db       *index.DB
	base     search.Options
	listing  bool // an empty box lists every message instead of nothing
	box      textinput.Model
	preview  viewport.Model
	input    string
	results  []search.Result
	err      error
	cursor   int
	offset   int
	shown    string // previewKey of the conversation in the viewport
	width    int
	height   int
	chosen   *search.Result
	action   action
	quitting bool
}

func newModel(db *index.DB, input string, base search.Options, listing bool) model {
	box := textinput.New()
	box.Prompt = "> "
	box.PromptStyle = styleInput
	box.TextStyle = styleInput
	box.Placeholder = "words to find, from:name to filter by sender"
	box.CharLimit = 256
	box.SetValue(input)
	box.Focus()

	return model{
		db:      db,
		base:    base,
		listing: listing,
		box:     box,
		preview: viewport.New(0, 0),
		input:   input,
	}
}

// Run opens the browser on the results for query. Enter copies the
// selected message to the clipboard; ctrl+o opens it in $EDITOR.
func Run(db *index.DB, query string, opts search.Options) error {
	return run(db, newModel(db, query, opts, false))
}

// RunList opens the browser on every message, newest first.
func RunList(db *index.DB, opts search.Options) error {
	return run(db, newModel(db, "", opts, true))
}

func run(db *index.DB, m model) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := final.(model)
	if fm.chosen == nil {
		return nil
	}
	switch fm.action {
	case actionCopy:
		return copyMessage(db, fm.chosen.TranscriptKey, fm.chosen.Seq)
	case actionOpen:
		return open.OpenTranscript(db, fm.chosen.TranscriptKey, fm.chosen.Seq)
	}
	return nil
}

// copyMessage copies the selected message, formatted like a transcript
// line, to the clipboard. Without a clipboard it is printed instead.
func copyMessage(db *index.DB, transcriptKey string, seq int) error {
	msg, err := db.GetMessage(transcriptKey, seq)
	if err != nil {
		return fmt.Errorf("get message: %w", err)
	}
	if msg == nil {
		return fmt.Errorf("message not found: %s:%d", transcriptKey, seq)
	}

	text := formatMessage(*msg)
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Println(text)
		return nil
	}
	fmt.Printf("Copied %s's message from %s to the clipboard\n", msg.Sender, transcriptKey)
	return nil
}

func formatMessage(m index.MessageRow) string {
	return fmt.Sprintf("%s, %s - %s: %s", m.DateToken, m.TimeToken, m.Sender, m.Body)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.query(m.input))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.preview = newViewport(m.width, m.previewHeight())
		m.shown = ""
		return m, m.loadPreview()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case typedMsg:
		if msg.input != m.input {
			return m, nil // superseded by further typing
		}
		return m, m.query(msg.input)

	case resultsMsg:
		if msg.input != m.input {
			return m, nil // stale
		}
		m.results, m.err = msg.results, msg.err
		m.cursor, m.offset = 0, 0
		if len(m.results) == 0 {
			m.preview.SetContent("")
			m.shown = ""
			return m, nil
		}
		return m, m.loadPreview()

	case previewMsg:
		if sel, ok := m.selected(); !ok || previewKey(*sel) != msg.key {
			return m, nil // cursor moved on
		}
		m.shown = msg.key
		if msg.err != nil {
			m.preview.SetContent(styleError.Render(msg.err.Error()))
			return m, nil
		}
		m.preview.SetContent(msg.content)
		// keep a few lines of lead-in above the selected message
		m.preview.SetYOffset(max(msg.hitLine-3, 0))
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Copy), key.Matches(msg, keys.Open):
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.chosen = sel
		m.action = actionCopy
		if key.Matches(msg, keys.Open) {
			m.action = actionOpen
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Prev), key.Matches(msg, keys.Next):
		if key.Matches(msg, keys.Prev) && m.cursor > 0 {
			m.cursor--
		} else if key.Matches(msg, keys.Next) && m.cursor < len(m.results)-1 {
			m.cursor++
		}
		m.offset = scrollTo(m.cursor, m.offset, m.tableRows())
		return m, m.loadPreview()

	case key.Matches(msg, keys.ScrollUp):
		m.preview.LineUp(m.preview.Height / 2)
		return m, nil

	case key.Matches(msg, keys.ScrollDown):
		m.preview.LineDown(m.preview.Height / 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.box, cmd = m.box.Update(msg)
	if v := m.box.Value(); v != m.input {
		m.input = v
		input := v
		return m, tea.Batch(cmd, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
			return typedMsg{input: input}
		}))
	}
	return m, cmd
}

func (m model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}
	status := fmt.Sprintf("%d messages", len(m.results))
	if opts := parseQuery(m.input, m.base); opts.Sender != "" {
		status += " from " + opts.Sender
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.box.View(),
		m.renderTable(m.width, m.tableRows()),
		m.preview.View(),
		styleStatus.Render(strings.Join(append([]string{status}, keys.helpLine()...), " | ")),
	)
}

func (m model) selected() (*search.Result, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil, false
	}
	r := m.results[m.cursor]
	return &r, true
}

// tableRows is the number of message rows shown; the table takes about
// a third of the screen and the conversation the rest.
func (m model) tableRows() int {
	return max(m.height/3, 3)
}

func (m model) previewHeight() int {
	// input, table header, table border and status bar
	return max(m.height-m.tableRows()-4, 3)
}

// query runs the search for input in the background.
func (m model) query(input string) tea.Cmd {
	db, listing := m.db, m.listing
	opts := parseQuery(input, m.base)
	return func() tea.Msg {
		if strings.TrimSpace(input) == "" && !listing {
			return resultsMsg{input: input}
		}
		results, err := search.Search(db, opts)
		return resultsMsg{input: input, results: results, err: err}
	}
}

func (m model) loadPreview() tea.Cmd {
	sel, ok := m.selected()
	if !ok || previewKey(*sel) == m.shown || m.width == 0 {
		return nil
	}
	return renderPreview(m.db, *sel, parseQuery(m.input, m.base).Query, m.width)
}
