package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Zuo-Peng/chatlog/internal/enrich"
)

// DatetimeLayout is the ISO-8601 form used for the datetime column.
const DatetimeLayout = "2006-01-02T15:04:05"

var Columns = []string{
	"datetime", "date", "time", "sender", "message",
	"year", "month", "year_month", "day_of_week", "hour",
	"language_type", "time_since_last",
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []enrich.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV to a temporary file next to path and renames it
// into place, so path is either untouched or complete.
func WriteFile(path string, rows []enrich.Row) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".chatlog-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := WriteCSV(tmp, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod csv: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename csv: %w", err)
	}
	return nil
}

func record(r enrich.Row) []string {
	rec := make([]string, len(Columns))
	if r.Timestamp != nil {
		rec[0] = r.Timestamp.Format(DatetimeLayout)
	}
	rec[1] = r.DateToken
	rec[2] = r.TimeToken
	rec[3] = r.Sender
	rec[4] = r.Body
	if c := r.Calendar; c != nil {
		rec[5] = strconv.Itoa(c.Year)
		rec[6] = strconv.Itoa(c.Month)
		rec[7] = c.YearMonth
		rec[8] = c.DayOfWeek
		rec[9] = strconv.Itoa(c.Hour)
	}
	rec[10] = string(r.Language)
	if r.TimeSinceLast != nil {
		rec[11] = r.TimeSinceLast.String()
	}
	return rec
}
