package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatlog/internal/enrich"
	"github.com/Zuo-Peng/chatlog/internal/parse"
)

func sampleRows(t *testing.T) []enrich.Row {
	t.Helper()
	msgs, err := parse.Parse(strings.NewReader(
		"08/11/21, 7:59 pm - Ananya: Line one\nLine two\n" +
			"32/13/21, 7:59 pm - Rahul: Oops\n" +
			"09/11/21, 8:00 am - Rahul: morning, all\n"))
	if err != nil {
		t.Fatal(err)
	}
	return enrich.Enrich(msgs, enrich.Options{GapThreshold: 3 * time.Hour})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows(t)); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(Columns, ",") {
		t.Errorf("header = %v", records[0])
	}

	first := records[1]
	want := []string{"2021-11-08T19:59:00", "08/11/21", "7:59 pm", "Ananya", "Line one\nLine two",
		"2021", "11", "2021-11", "Monday", "19", "english", ""}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("row 1 %s = %q, want %q", Columns[i], first[i], want[i])
		}
	}

	undated := records[2]
	if undated[0] != "" || undated[5] != "" || undated[11] != "" {
		t.Errorf("undated row should leave derived columns empty: %q", undated)
	}
	if undated[1] != "32/13/21" {
		t.Errorf("date token = %q", undated[1])
	}

	if records[3][11] != "12h1m0s" {
		t.Errorf("time_since_last = %q, want 12h1m0s", records[3][11])
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "chat_parsed.csv")

	if err := WriteFile(path, sampleRows(t)); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "datetime,date,time,sender,message,") {
		t.Errorf("unexpected content: %q", data[:40])
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}
