package enrich

import (
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatlog/internal/parse"
)

func at(s string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Tag
	}{
		{name: "empty", body: "", want: TagOther},
		{name: "latin", body: "Tournament se Room allotment ka safar", want: TagEnglish},
		{name: "devanagari only", body: "नमस्ते", want: TagHindiHeavy},
		// 2 of 20 code points = 0.10
		{name: "mixed", body: "नम" + strings.Repeat("a", 18), want: TagHinglish},
		// 1 of 20 code points = 0.05, not strictly above
		{name: "at mixed boundary", body: "न" + strings.Repeat("a", 19), want: TagEnglish},
		// 3 of 10 = 0.30, not strictly above
		{name: "at heavy boundary", body: "नमस" + strings.Repeat("a", 7), want: TagHinglish},
		{name: "emoji is not devanagari", body: "🏘️", want: TagEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Language(tt.body); got != tt.want {
				t.Errorf("Language(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestCalendar(t *testing.T) {
	got := Calendar(*at("2021-11-08 19:59"))
	want := CalendarFields{Year: 2021, Month: 11, YearMonth: "2021-11", DayOfWeek: "Monday", Hour: 19}
	if got != want {
		t.Errorf("Calendar() = %+v, want %+v", got, want)
	}
}

func TestGaps(t *testing.T) {
	msgs := []parse.Message{
		{Sender: "A", Timestamp: at("2021-11-08 10:00")},
		{Sender: "B", Timestamp: at("2021-11-08 14:00")}, // 4h later: starter
		{Sender: "C"},                                    // undated: excluded
		{Sender: "A", Timestamp: at("2021-11-08 09:00")}, // earliest after sorting
		{Sender: "B", Timestamp: at("2021-11-08 14:30")},
		{Sender: "A", Timestamp: at("2021-11-08 17:30")}, // exactly 3h: not a starter
	}

	gaps := Gaps(msgs, 0)

	if _, ok := gaps[3]; ok {
		t.Error("earliest message should have no gap")
	}
	if _, ok := gaps[2]; ok {
		t.Error("undated message should have no gap")
	}

	want := map[int]Gap{
		0: {Index: 0, Since: time.Hour},
		1: {Index: 1, Since: 4 * time.Hour, Starter: true},
		4: {Index: 4, Since: 30 * time.Minute},
		5: {Index: 5, Since: 3 * time.Hour},
	}
	if len(gaps) != len(want) {
		t.Fatalf("got %d gaps, want %d: %+v", len(gaps), len(want), gaps)
	}
	for i, w := range want {
		if gaps[i] != w {
			t.Errorf("gap[%d] = %+v, want %+v", i, gaps[i], w)
		}
	}

	starters := Starters(msgs, gaps)
	if len(starters) != 1 || starters["B"] != 1 {
		t.Errorf("Starters() = %v, want map[B:1]", starters)
	}
}

func TestGaps_CustomThreshold(t *testing.T) {
	msgs := []parse.Message{
		{Sender: "A", Timestamp: at("2021-11-08 10:00")},
		{Sender: "B", Timestamp: at("2021-11-08 10:45")},
	}
	gaps := Gaps(msgs, 30*time.Minute)
	if !gaps[1].Starter {
		t.Errorf("expected starter with 30m threshold, got %+v", gaps[1])
	}
}

func TestEnrich(t *testing.T) {
	msgs := []parse.Message{
		{Sender: "A", Body: "hello", Timestamp: at("2021-11-08 10:00")},
		{Sender: "B", Body: "नमस्ते"},
		{Sender: "A", Body: "later", Timestamp: at("2021-11-08 20:00")},
	}

	rows := Enrich(msgs, Options{GapThreshold: DefaultGapThreshold})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].Sender != "A" || rows[1].Sender != "B" || rows[2].Sender != "A" {
		t.Error("rows are not in transcript order")
	}
	if rows[0].Calendar == nil || rows[0].Calendar.Hour != 10 {
		t.Errorf("row 0 calendar = %+v", rows[0].Calendar)
	}
	if rows[0].TimeSinceLast != nil {
		t.Errorf("row 0 gap = %v, want nil", *rows[0].TimeSinceLast)
	}
	if rows[1].Calendar != nil || rows[1].TimeSinceLast != nil {
		t.Error("undated row should have no calendar or gap")
	}
	if rows[1].Language != TagHindiHeavy {
		t.Errorf("row 1 language = %q", rows[1].Language)
	}
	if rows[2].TimeSinceLast == nil || *rows[2].TimeSinceLast != 10*time.Hour || !rows[2].Starter {
		t.Errorf("row 2 gap = %v starter = %v", rows[2].TimeSinceLast, rows[2].Starter)
	}
}
