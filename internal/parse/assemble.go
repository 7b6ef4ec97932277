package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

const byteOrderMark = "\ufeff"

// ErrInvalidEncoding is returned when a transcript line is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// state is either noOpenMessage or openMessage.
type state interface {
	isState()
}

type noOpenMessage struct{}

type openMessage struct {
	msg   Message
	lines []string // body lines, joined when the message closes
}

func (noOpenMessage) isState() {}
func (*openMessage) isState()  {}

// Assembler turns a stream of transcript lines into messages. It holds at
// most one open message; every other message is already final.
type Assembler struct {
	state   state
	out     []Message
	lineNum int
	noise   int
	undated int
}

func NewAssembler() *Assembler {
	return &Assembler{state: noOpenMessage{}}
}

// Feed processes the next transcript line.
func (a *Assembler) Feed(line string) {
	a.lineNum++
	if a.lineNum == 1 {
		line = strings.TrimPrefix(line, byteOrderMark)
	}

	if h, ok := ClassifyLine(line); ok {
		a.flush()
		a.state = a.open(h)
		return
	}

	text := strings.TrimSpace(line)
	switch s := a.state.(type) {
	case noOpenMessage:
		if text != "" {
			a.noise++
		}
	case *openMessage:
		if text != "" {
			s.lines = append(s.lines, text)
		}
	}
}

// Close flushes the open message, if any, and returns every message in
// transcript order. The Assembler must not be fed after Close.
func (a *Assembler) Close() []Message {
	a.flush()
	a.state = noOpenMessage{}
	return a.out
}

func (a *Assembler) open(h Header) *openMessage {
	msg := Message{
		DateToken: h.DateToken,
		TimeToken: h.TimeToken,
		Sender:    h.Sender,
		Line:      a.lineNum,
	}
	if ts, ok := DecodeTimestamp(h.DateToken, h.TimeToken); ok {
		msg.Timestamp = &ts
	} else {
		a.undated++
	}
	return &openMessage{msg: msg, lines: []string{h.BodyFirstLine}}
}

func (a *Assembler) flush() {
	switch s := a.state.(type) {
	case noOpenMessage:
	case *openMessage:
		s.msg.Body = strings.Join(s.lines, "\n")
		a.out = append(a.out, s.msg)
		a.state = noOpenMessage{}
	}
}

// Parse reads a whole transcript from r.
func Parse(r io.Reader) ([]Message, error) {
	res, err := parseReader(r)
	if err != nil {
		return nil, err
	}
	return res.Messages, nil
}

// ParseFile parses the transcript at filePath.
func ParseFile(filePath string) (*Result, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	res, err := parseReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	res.Path = filePath
	res.Mtime = info.ModTime()
	res.Size = info.Size()
	return res, nil
}

func parseReader(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	a := NewAssembler()
	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", a.lineNum+1, ErrInvalidEncoding)
		}
		a.Feed(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", a.lineNum+1, err)
	}

	msgs := a.Close()
	return &Result{
		Messages: msgs,
		Lines:    a.lineNum,
		Noise:    a.noise,
		Undated:  a.undated,
	}, nil
}
