package enrich

import "time"

// CalendarFields is the calendar breakdown of a message timestamp.
type CalendarFields struct {
	Year      int
	Month     int
	YearMonth string // "2006-01"
	DayOfWeek string
	Hour      int
}

func Calendar(ts time.Time) CalendarFields {
	return CalendarFields{
		Year:      ts.Year(),
		Month:     int(ts.Month()),
		YearMonth: ts.Format("2006-01"),
		DayOfWeek: ts.Weekday().String(),
		Hour:      ts.Hour(),
	}
}
