package parse

import (
	"regexp"
	"strings"
)

// headerRe matches "08/11/21, 7:59 pm - Ananya: Hello there".
// The body group is optional so "Sender:" with nothing after it still
// starts a message.
var headerRe = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2}),\s(\d{1,2}:\d{2}\s[ap]m)\s-\s([^:]+):(?:\s(.*))?$`)

// ClassifyLine reports whether line starts a new message and, if so,
// returns its header fields. The line is trimmed before matching.
//
// Classification is purely syntactic: a body line that happens to look like
// a header is treated as one.
func ClassifyLine(line string) (Header, bool) {
	m := headerRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Header{}, false
	}

	sender := strings.TrimSpace(m[3])
	if sender == "" {
		return Header{}, false
	}

	return Header{
		DateToken:     m[1],
		TimeToken:     m[2],
		Sender:        sender,
		BodyFirstLine: strings.TrimSpace(m[4]),
	}, true
}
