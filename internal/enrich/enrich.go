// Package enrich derives per-message attributes from an assembled
// transcript: calendar fields, a language tag and the gap since the
// previous message.
package enrich

import (
	"time"

	"github.com/Zuo-Peng/chatlog/internal/parse"
)

type Options struct {
	GapThreshold time.Duration
}

// Row is a message with its derived attributes. Calendar and TimeSinceLast
// are nil when they cannot be computed.
type Row struct {
	parse.Message
	Calendar      *CalendarFields
	Language      Tag
	TimeSinceLast *time.Duration
	Starter       bool
}

// Enrich returns one row per message, in the same order as msgs.
func Enrich(msgs []parse.Message, opts Options) []Row {
	gaps := Gaps(msgs, opts.GapThreshold)

	rows := make([]Row, len(msgs))
	for i, m := range msgs {
		row := Row{
			Message:  m,
			Language: Language(m.Body),
		}
		if m.Timestamp != nil {
			cal := Calendar(*m.Timestamp)
			row.Calendar = &cal
		}
		if g, ok := gaps[i]; ok {
			since := g.Since
			row.TimeSinceLast = &since
			row.Starter = g.Starter
		}
		rows[i] = row
	}
	return rows
}
