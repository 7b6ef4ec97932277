// Package report aggregates enriched rows into the statistics printed after
// a transcript is parsed.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatlog/internal/enrich"
)

const (
	topHours       = 5
	sampleMaxWidth = 60
)

type Count struct {
	Key   string
	Count int
}

type HourCount struct {
	Hour  int
	Count int
}

type Sample struct {
	Sender string // first name only
	Text   string
}

type Period struct {
	YearMonth string
	Samples   []Sample
}

type Summary struct {
	Total     int
	Undated   int
	First     time.Time
	Last      time.Time
	Senders   []Count
	Years     []Count
	Hours     []HourCount
	Languages []Count
	Starters  []Count
	Periods   []Period
}

// Days is the whole number of days between the first and last message.
func (s Summary) Days() int {
	if s.First.IsZero() {
		return 0
	}
	return int(s.Last.Sub(s.First) / (24 * time.Hour))
}

// Build aggregates rows; samples holds up to n messages from the first,
// middle and last month that has dated messages.
func Build(rows []enrich.Row, n int) Summary {
	s := Summary{Total: len(rows)}

	senders := make(map[string]int)
	years := make(map[string]int)
	hours := make(map[int]int)
	languages := make(map[string]int)
	starters := make(map[string]int)
	var periods []string
	byPeriod := make(map[string][]enrich.Row)

	for _, r := range rows {
		senders[r.Sender]++
		languages[string(r.Language)]++
		if r.Starter {
			starters[r.Sender]++
		}

		if r.Timestamp == nil {
			s.Undated++
			continue
		}
		ts := *r.Timestamp
		if s.First.IsZero() || ts.Before(s.First) {
			s.First = ts
		}
		if ts.After(s.Last) {
			s.Last = ts
		}

		cal := r.Calendar
		if cal == nil {
			c := enrich.Calendar(ts)
			cal = &c
		}
		years[strconv.Itoa(cal.Year)]++
		hours[cal.Hour]++
		if _, ok := byPeriod[cal.YearMonth]; !ok {
			periods = append(periods, cal.YearMonth)
		}
		byPeriod[cal.YearMonth] = append(byPeriod[cal.YearMonth], r)
	}

	s.Senders = sortedCounts(senders, byCountDesc)
	s.Years = sortedCounts(years, byKeyAsc)
	s.Languages = sortedCounts(languages, byCountDesc)
	s.Starters = sortedCounts(starters, byCountDesc)

	for h, c := range hours {
		s.Hours = append(s.Hours, HourCount{Hour: h, Count: c})
	}
	sort.Slice(s.Hours, func(i, j int) bool {
		if s.Hours[i].Count != s.Hours[j].Count {
			return s.Hours[i].Count > s.Hours[j].Count
		}
		return s.Hours[i].Hour < s.Hours[j].Hour
	})
	if len(s.Hours) > topHours {
		s.Hours = s.Hours[:topHours]
	}

	if n > 0 && len(periods) > 0 {
		for _, p := range samplePeriods(periods) {
			period := Period{YearMonth: p}
			for i, r := range byPeriod[p] {
				if i >= n {
					break
				}
				period.Samples = append(period.Samples, Sample{
					Sender: firstName(r.Sender),
					Text:   truncate(r.Body, sampleMaxWidth),
				})
			}
			s.Periods = append(s.Periods, period)
		}
	}

	return s
}

// samplePeriods picks the first, middle and last period. Short transcripts
// repeat a period rather than invent one.
func samplePeriods(periods []string) []string {
	return []string{periods[0], periods[len(periods)/2], periods[len(periods)-1]}
}

type lessFunc func(a, b Count) bool

func byCountDesc(a, b Count) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Key < b.Key
}

func byKeyAsc(a, b Count) bool {
	return a.Key < b.Key
}

func sortedCounts(m map[string]int, less lessFunc) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func firstName(sender string) string {
	if f := strings.Fields(sender); len(f) > 0 {
		return f[0]
	}
	return sender
}

func truncate(text string, width int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if runewidth.StringWidth(text) > width {
		return runewidth.Truncate(text, width, "") + "..."
	}
	return text
}
