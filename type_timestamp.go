package bitcointx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Timestamp is a local wall-clock date and time, as typed by a user, with no
// time zone attached.
//
// Converting it to UTC requires a location and is a one-way transform: the
// UTC instant does not record the offset that was used, so getting the same
// wall-clock value back is only possible with the same location.
type Timestamp civil.DateTime

// formLayout is the "datetime-local" layout, minute resolution.
const formLayout = "2006-01-02T15:04"

// NowTimestamp returns the wall-clock value of now, truncated to the minute.
func NowTimestamp(now time.Time) Timestamp {
	dt := civil.DateTimeOf(now)
	dt.Time.Second, dt.Time.Nanosecond = 0, 0
	return Timestamp(dt)
}

var errBadTimestamp = errors.New("want YYYY-MM-DDTHH:MM")

// ParseTimestamp parses a local wall-clock value such as "2025-03-01T12:00"
// or "2025-03-01T12:00:30". A space is accepted instead of the "T".
func ParseTimestamp(s string) (Timestamp, error) {
	in := strings.Replace(strings.TrimSpace(s), " ", "T", 1)
	if len(in) == len(formLayout) {
		in += ":00"
	}
	dt, err := civil.ParseDateTime(in)
	if err != nil {
		return Timestamp{}, &ParseError{Field: FieldTimestamp, Input: s, Err: errBadTimestamp}
	}
	return Timestamp(dt), nil
}

// TimestampOf returns the wall-clock value of the instant t seen in loc.
func TimestampOf(t time.Time, loc *time.Location) Timestamp {
	return Timestamp(civil.DateTimeOf(t.In(loc)))
}

// IsZero reports whether the timestamp has not been set.
func (t Timestamp) IsZero() bool { return t == Timestamp{} }

// String returns the timestamp in "datetime-local" layout, seconds are only
// shown when not zero.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	dt := civil.DateTime(t)
	s := fmt.Sprintf("%sT%02d:%02d", dt.Date, dt.Time.Hour, dt.Time.Minute)
	if dt.Time.Second != 0 {
		s += fmt.Sprintf(":%02d", dt.Time.Second)
	}
	return s
}

// UTC returns the instant designated by the wall-clock value in loc,
// expressed in UTC with second precision.
func (t Timestamp) UTC(loc *time.Location) time.Time {
	return civil.DateTime(t).In(loc).UTC().Truncate(time.Second)
}

// ISO returns the UTC ISO-8601 representation, e.g. "2025-03-01T11:00:00Z".
func (t Timestamp) ISO(loc *time.Location) string {
	return t.UTC(loc).Format(time.RFC3339)
}
