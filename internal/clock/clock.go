package clock

import (
	"fmt"
	"time"
)

// Clock returns the current instant. It exists so callers can inject a fixed
// time in tests; business code never calls time.Now directly.
type Clock interface {
	Now() time.Time
}

const dateLayout = "2006-01-02"

// Bakery renders instants and civil dates in the bakery's fixed timezone,
// independent of the host machine's zone. All date arithmetic is calendar
// arithmetic (AddDate), never elapsed-hours math, so DST transitions cannot
// shift a civil date.
type Bakery struct {
	loc *time.Location
}

func New(tzID string) (*Bakery, error) {
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tzID, err)
	}
	return &Bakery{loc: loc}, nil
}

func (b *Bakery) Location() *time.Location { return b.loc }

// Now is the current instant observed in the bakery's zone.
func (b *Bakery) Now() time.Time { return time.Now().In(b.loc) }

// Today is the civil date portion of Now.
func (b *Bakery) Today() string { return b.DateString(b.Now()) }

func (b *Bakery) DateString(t time.Time) string {
	return t.In(b.loc).Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD civil date as midnight in the bakery's zone.
func (b *Bakery) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, b.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// AddDays moves a civil date by n calendar days.
func (b *Bakery) AddDays(date time.Time, n int) time.Time {
	return date.In(b.loc).AddDate(0, 0, n)
}

// Weekday reports the day of week of a date in the bakery's zone,
// 0=Sunday .. 6=Saturday.
func (b *Bakery) Weekday(date time.Time) time.Weekday {
	return date.In(b.loc).Weekday()
}

// At pins a clock hour onto a civil date, yielding a local instant.
func (b *Bakery) At(date time.Time, hour int) time.Time {
	d := date.In(b.loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, b.loc)
}

// Fixed is a Clock stuck at one instant, for tests and dry runs.
type Fixed struct{ T time.Time }

func (f Fixed) Now() time.Time { return f.T }
