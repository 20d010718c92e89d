package timeline

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Coerced is the outcome of converting one raw cell. OK is false when the
// cell could not be understood and Value holds the documented default.
type Coerced[T any] struct {
	Value T
	OK    bool
}

func ok[T any](v T) Coerced[T]        { return Coerced[T]{Value: v, OK: true} }
func defaulted[T any](v T) Coerced[T] { return Coerced[T]{Value: v} }

// excelEpoch is day zero of the spreadsheet serial date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial is 9999-12-31.
const maxExcelSerial = 2958465

// dateFormats are tried in order. Dates are year-first or day-first.
var dateFormats = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
}

// clockFormats are tried in order after upper-casing the input.
var clockFormats = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"15.04",
}

// ParseDate reads a date cell. A bare year, spreadsheet serial numbers and
// the layouts in dateFormats are accepted; anything else yields the
// unknown-date default.
func ParseDate(raw string) Coerced[time.Time] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return defaulted(time.Time{})
	}

	// A bare four-digit number is a year, not a serial in 1902..1927.
	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil && year >= 1000 {
			return ok(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 || serial > maxExcelSerial {
			return defaulted(time.Time{})
		}
		days := int(math.Floor(serial))
		return ok(excelEpoch.AddDate(0, 0, days))
	}

	for _, layout := range dateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return ok(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
		}
	}
	return defaulted(time.Time{})
}

// ParseClock reads a time-of-day cell. A blank cell is a valid "no time"
// (Clock.Valid false, OK true); an unreadable one is defaulted the same way
// but reported.
func ParseClock(raw string) Coerced[Clock] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ok(Clock{})
	}

	// Day fractions are below 1 and datetime serials far above 24; values in
	// between are read as HH.MM below.
	if f, err := strconv.ParseFloat(s, 64); err == nil && (f < 1 || f >= 24) {
		if f < 0 {
			return defaulted(Clock{})
		}
		// Datetime serials carry the time in the fractional part.
		_, frac := math.Modf(f)
		secs := int(math.Round(frac * 86400))
		if secs >= 86400 {
			secs = 86399
		}
		return ok(Clock{Offset: time.Duration(secs) * time.Second, Valid: true})
	}

	upper := strings.ToUpper(s)
	for _, layout := range clockFormats {
		t, err := time.Parse(layout, upper)
		if err == nil {
			return ok(NewClock(t.Hour(), t.Minute(), t.Second()))
		}
	}

	// A full datetime in a time column: keep the time part.
	for _, layout := range dateFormats {
		if !strings.Contains(layout, "15") {
			continue
		}
		t, err := time.Parse(layout, s)
		if err == nil {
			return ok(NewClock(t.Hour(), t.Minute(), t.Second()))
		}
	}
	return defaulted(Clock{})
}

// ParseBool reads a yes/no cell. Matching is case-insensitive against the
// affirmative tokens; a blank cell or a negative token is a valid false.
// Any other value is defaulted to false and reported.
func ParseBool(raw string, affirmative, negative map[string]struct{}) Coerced[bool] {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ok(false)
	}
	if _, yes := affirmative[s]; yes {
		return ok(true)
	}
	if _, no := negative[s]; no {
		return ok(false)
	}
	return defaulted(false)
}

// SplitEntities splits a pipe-delimited entity cell. Segments are trimmed,
// empty ones dropped and duplicates collapsed keeping the first occurrence.
func SplitEntities(raw string) []string {
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// SplitSources splits a pipe-delimited source cell. A segment may be wrapped
// in double quotes to carry a literal pipe.
func SplitSources(raw string) []Source {
	var (
		out     []Source
		cur     strings.Builder
		inQuote bool
	)
	flush := func() {
		item := strings.TrimSpace(cur.String())
		cur.Reset()
		if len(item) >= 2 && strings.HasPrefix(item, `"`) && strings.HasSuffix(item, `"`) {
			item = strings.TrimSpace(item[1 : len(item)-1])
		}
		if item != "" {
			out = append(out, ClassifySource(item))
		}
	}
	for _, r := range raw {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == '|' && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// ClassifySource tags a single source value as a link or plain text.
func ClassifySource(s string) Source {
	raw := strings.TrimSpace(s)
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return Source{Kind: SourceLink, Text: raw, Href: raw}
	case strings.HasPrefix(lower, "www."):
		return Source{Kind: SourceLink, Text: raw, Href: "https://" + raw}
	default:
		return Source{Kind: SourceText, Text: raw}
	}
}
