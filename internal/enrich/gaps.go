package enrich

import (
	"sort"
	"time"

	"github.com/Zuo-Peng/chatlog/internal/parse"
)

// DefaultGapThreshold separates one conversation from the next.
const DefaultGapThreshold = 3 * time.Hour

// Gap is the time since the previous dated message, in timestamp order.
type Gap struct {
	Index   int // position in the original sequence
	Since   time.Duration
	Starter bool
}

// Gaps computes inter-arrival gaps over a timestamp-sorted copy of msgs.
// Messages without a timestamp are left out entirely, and the earliest dated
// message has no predecessor, so neither appears in the result. The result
// is keyed by the message's index in msgs.
func Gaps(msgs []parse.Message, threshold time.Duration) map[int]Gap {
	if threshold <= 0 {
		threshold = DefaultGapThreshold
	}

	dated := make([]int, 0, len(msgs))
	for i, m := range msgs {
		if m.Timestamp != nil {
			dated = append(dated, i)
		}
	}
	sort.SliceStable(dated, func(a, b int) bool {
		return msgs[dated[a]].Timestamp.Before(*msgs[dated[b]].Timestamp)
	})

	gaps := make(map[int]Gap, len(dated))
	for k := 1; k < len(dated); k++ {
		prev, cur := msgs[dated[k-1]], msgs[dated[k]]
		since := cur.Timestamp.Sub(*prev.Timestamp)
		gaps[dated[k]] = Gap{
			Index:   dated[k],
			Since:   since,
			Starter: since > threshold,
		}
	}
	return gaps
}

// Starters counts conversation starters per sender.
func Starters(msgs []parse.Message, gaps map[int]Gap) map[string]int {
	counts := make(map[string]int)
	for i, g := range gaps {
		if g.Starter {
			counts[msgs[i].Sender]++
		}
	}
	return counts
}
