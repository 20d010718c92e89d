// Package timeline turns spreadsheet rows into an ordered, colored set of
// timeline events.
//
// The package is pure: it never touches the filesystem and never fails on
// malformed cell values. Problems with individual rows are reported as data
// (see RowReport) and replaced by documented defaults.
package timeline

import (
	"fmt"
	"time"
)

// DefaultUnknownEntity is the sentinel entity for rows without any entity.
const DefaultUnknownEntity = "Onbekend"

// Clock is a time of day, stored as the offset from midnight.
// An offset of 24h or more means the clock rolled over into the next day.
type Clock struct {
	Offset time.Duration
	Valid  bool
}

// NewClock returns a valid Clock for the given wall-clock components.
func NewClock(hour, minute, second int) Clock {
	return Clock{
		Offset: time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second,
		Valid:  true,
	}
}

// NextDay reports whether the clock lies on the day after the event date.
func (c Clock) NextDay() bool {
	return c.Valid && c.Offset >= 24*time.Hour
}

// String formats the clock as HH:MM. Invalid clocks format as "".
func (c Clock) String() string {
	if !c.Valid {
		return ""
	}
	d := c.Offset % (24 * time.Hour)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// SourceKind classifies a source reference.
type SourceKind int

const (
	// SourceText is a plain text reference, rendered verbatim.
	SourceText SourceKind = iota
	// SourceLink is a web reference, rendered as a hyperlink.
	SourceLink
)

// Source is one entry of the optional source column.
type Source struct {
	Kind SourceKind
	// Text is the raw value as written in the sheet.
	Text string
	// Href is the link target for SourceLink; empty for SourceText.
	Href string
}

// IsLink reports whether the source is a hyperlink reference.
func (s Source) IsLink() bool { return s.Kind == SourceLink }

// Event is one normalized timeline entry.
type Event struct {
	// ID is the zero-based position of the source row among the data rows.
	ID int
	// Line is the 1-based line (sheet row) the event was read from.
	Line int

	// Date is midnight UTC of the event date. Zero when DateKnown is false.
	Date      time.Time
	DateKnown bool

	Start Clock
	End   Clock

	Certain  bool
	Verified bool

	Entities    []string
	Description string
	Sources     []Source
}

// AllDay reports whether the event has a date but no start time.
func (e Event) AllDay() bool {
	return e.DateKnown && !e.Start.Valid
}

// IsRange reports whether the event spans a time range rather than a point.
func (e Event) IsRange() bool {
	return e.Start.Valid && e.End.Valid && e.End.Offset != e.Start.Offset
}

// Instant is the moment the event starts. All-day events start at midnight.
// The result is meaningless when DateKnown is false.
func (e Event) Instant() time.Time {
	if !e.Start.Valid {
		return e.Date
	}
	return e.Date.Add(e.Start.Offset)
}

// EndInstant is the moment the event ends; Instant for point events.
func (e Event) EndInstant() time.Time {
	if !e.IsRange() {
		return e.Instant()
	}
	return e.Date.Add(e.End.Offset)
}

// HasEntity reports whether name is one of the event's entities.
func (e Event) HasEntity(name string) bool {
	for _, ent := range e.Entities {
		if ent == name {
			return true
		}
	}
	return false
}
