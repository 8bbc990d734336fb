// Package transcript turns exported chat transcripts into structured records.
//
// A transcript is one block of text in which every message starts with a
// timestamp boundary such as "1/2/23, 10:00 AM - ". The parser splits the text
// on those boundaries, separates the sender from the message body and parses
// the timestamp; the feature deriver then attaches calendar fields used by the
// analysis engine.
package transcript

import "time"

const (
	// GroupNotification is the sender of system rows (joins, leaves, title changes).
	GroupNotification = "group_notification"

	// MediaOmitted is the body exporters write in place of attachments.
	MediaOmitted = "<Media omitted>"
)

// Record is one parsed chat entry.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`

	// Derived by DeriveFeatures, never by the parser itself.
	Year     int       `json:"year"`
	Month    string    `json:"month"`
	MonthNum int       `json:"month_num"`
	DayName  string    `json:"day_name"`
	Hour     int       `json:"hour"`
	DateOnly time.Time `json:"date_only"`
	Period   string    `json:"period"`
}

// IsNotification reports whether the record is a system row.
func (r Record) IsNotification() bool {
	return r.Sender == GroupNotification
}

// IsMedia reports whether the body is the attachment placeholder.
func (r Record) IsMedia() bool {
	return r.Body == MediaOmitted
}

// Transcript is one parsed transcript file.
type Transcript struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}
