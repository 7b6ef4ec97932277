package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatlog/internal/enrich"
	"github.com/Zuo-Peng/chatlog/internal/parse"
)

const transcript = `08/11/21, 7:59 pm - Ananya Roomie: Hello there
08/11/21, 8:05 pm - Rahul Sharma: hi
09/11/21, 9:00 am - Rahul Sharma: good morning
15/12/21, 7:30 pm - Ananya Roomie: नमस्ते
32/13/21, 7:59 pm - Ananya Roomie: undated
02/01/22, 7:10 pm - Meera: happy new year, this is a deliberately long message that should be cut
`

func buildRows(t *testing.T) []enrich.Row {
	t.Helper()
	msgs, err := parse.Parse(strings.NewReader(transcript))
	if err != nil {
		t.Fatal(err)
	}
	return enrich.Enrich(msgs, enrich.Options{GapThreshold: 3 * time.Hour})
}

func TestBuild(t *testing.T) {
	s := Build(buildRows(t), 5)

	if s.Total != 6 || s.Undated != 1 {
		t.Errorf("Total = %d, Undated = %d", s.Total, s.Undated)
	}
	if s.Senders[0].Key != "Ananya Roomie" || s.Senders[0].Count != 3 {
		t.Errorf("top sender = %+v", s.Senders[0])
	}
	if len(s.Years) != 2 || s.Years[0].Key != "2021" || s.Years[0].Count != 4 {
		t.Errorf("Years = %+v", s.Years)
	}
	if s.Hours[0].Hour != 19 || s.Hours[0].Count != 3 {
		t.Errorf("top hour = %+v", s.Hours[0])
	}
	if s.Days() != 54 {
		t.Errorf("Days() = %d, want 54", s.Days())
	}

	starters := map[string]int{}
	for _, c := range s.Starters {
		starters[c.Key] = c.Count
	}
	// 9 am next day, 15 Dec and 2 Jan all follow gaps above 3h.
	if starters["Rahul Sharma"] != 1 || starters["Ananya Roomie"] != 1 || starters["Meera"] != 1 {
		t.Errorf("Starters = %+v", s.Starters)
	}

	langs := map[string]int{}
	for _, c := range s.Languages {
		langs[c.Key] = c.Count
	}
	if langs["hindi-heavy"] != 1 || langs["english"] != 5 {
		t.Errorf("Languages = %+v", s.Languages)
	}
}

func TestBuild_Samples(t *testing.T) {
	s := Build(buildRows(t), 1)
	if len(s.Periods) != 3 {
		t.Fatalf("expected 3 periods, got %d", len(s.Periods))
	}
	got := []string{s.Periods[0].YearMonth, s.Periods[1].YearMonth, s.Periods[2].YearMonth}
	want := []string{"2021-11", "2021-12", "2022-01"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("period %d = %s, want %s", i, got[i], want[i])
		}
	}
	first := s.Periods[0].Samples
	if len(first) != 1 || first[0].Sender != "Ananya" {
		t.Errorf("first period samples = %+v", first)
	}
	last := s.Periods[2].Samples[0].Text
	if !strings.HasSuffix(last, "...") || len(last) != 63 {
		t.Errorf("long sample not truncated: %q", last)
	}
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil, 5)
	if s.Total != 0 || s.Days() != 0 || len(s.Periods) != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Build(buildRows(t), 2))
	out := buf.String()
	for _, want := range []string{"Total Messages: 6", "Participants", "Most Active Hours", "Language Distribution", "Sample Messages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
