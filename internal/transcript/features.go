package transcript

import (
	"fmt"
	"time"
)

// DeriveFeatures populates the calendar fields of r from its timestamp.
func DeriveFeatures(r *Record) {
	ts := r.Timestamp
	r.Year = ts.Year()
	r.Month = ts.Month().String()
	r.MonthNum = int(ts.Month())
	r.DayName = ts.Weekday().String()
	r.Hour = ts.Hour()
	r.DateOnly = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	r.Period = Period(r.Hour)
}

// Period returns the hour bucket label "H-HH", wrapping 23 to "23-00".
func Period(hour int) string {
	return fmt.Sprintf("%d-%02d", hour, (hour+1)%24)
}
