package parse

import "time"

// Header is the decoded form of a transcript line that starts a new message.
type Header struct {
	DateToken     string
	TimeToken     string
	Sender        string
	BodyFirstLine string
}

// Message is one chat entry reassembled from a header line and its
// continuation lines.
type Message struct {
	Timestamp *time.Time // nil if the date/time tokens did not decode
	DateToken string
	TimeToken string
	Sender    string
	Body      string
	Line      int // 1-based line number of the header in the transcript
}

type Result struct {
	Path     string
	Messages []Message
	Lines    int // lines read, including blank ones
	Noise    int // non-empty lines seen before the first header
	Undated  int // messages whose timestamp failed to decode
	Mtime    time.Time
	Size     int64
}
