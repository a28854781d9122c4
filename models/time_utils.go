package models

import "time"

// DateLayout is the ISO calendar date used for match days
const DateLayout = "2006-01-02"

// MatchDate returns the calendar date of a kick-off in the reference zone,
// as midnight of that day in the same zone.
func MatchDate(kickoff time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := kickoff.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// ParseMatchDate parses an ISO date in the reference zone
func ParseMatchDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, value, loc)
}

// NewWindow returns the kick-off window starting at now and spanning days
func NewWindow(now time.Time, days int) Window {
	if days <= 0 {
		days = 7
	}
	from := now.UTC().Truncate(time.Second)
	return Window{
		From: from,
		To:   from.Add(time.Duration(days) * 24 * time.Hour),
		Days: days,
	}
}
