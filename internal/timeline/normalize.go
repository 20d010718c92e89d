package timeline

import (
	"strings"
	"time"
)

// Columns names the sheet columns the normalizer reads.
type Columns struct {
	Date        string
	StartTime   string
	EndTime     string
	Certain     string
	Entities    string
	Description string
	Verified    string
	// Source is optional; rows are read without sources when the sheet lacks it.
	Source string
}

// DefaultColumns returns the column names of the reference sheet layout.
func DefaultColumns() Columns {
	return Columns{
		Date:        "Datum",
		StartTime:   "Starttijd",
		EndTime:     "Eindtijd",
		Certain:     "Zekerheid (ja/nee)",
		Entities:    "Entiteit(en) (splits op met |)",
		Description: "Gebeurtenis",
		Verified:    "Geverifieerd",
		Source:      "Bron",
	}
}

// Required lists the columns that must be present, in sheet order.
func (c Columns) Required() []string {
	return []string{c.Date, c.StartTime, c.EndTime, c.Certain, c.Entities, c.Description, c.Verified}
}

// Issue describes one cell that was replaced by a default.
type Issue struct {
	Column string
	Value  string
	Reason string
}

// RowReport collects the issues found while normalizing one row.
type RowReport struct {
	ID     int
	Line   int
	Issues []Issue
}

// OK reports whether the row was fully well-formed.
func (r RowReport) OK() bool { return len(r.Issues) == 0 }

func (r *RowReport) add(column, value, reason string) {
	r.Issues = append(r.Issues, Issue{Column: column, Value: value, Reason: reason})
}

// Options configures a Normalizer.
type Options struct {
	Columns       Columns
	Affirmative   []string
	Negative      []string
	UnknownEntity string
}

// DefaultOptions returns the options matching the reference sheet layout.
func DefaultOptions() Options {
	return Options{
		Columns:       DefaultColumns(),
		Affirmative:   []string{"ja", "j", "yes", "y", "true", "1", "x"},
		Negative:      []string{"nee", "n", "no", "false", "0"},
		UnknownEntity: DefaultUnknownEntity,
	}
}

// Normalizer converts raw rows into events. It holds no per-row state and may
// be reused.
type Normalizer struct {
	cols          Columns
	affirmative   map[string]struct{}
	negative      map[string]struct{}
	unknownEntity string
}

// NewNormalizer builds a Normalizer; empty option fields fall back to
// DefaultOptions.
func NewNormalizer(opts Options) *Normalizer {
	def := DefaultOptions()
	if opts.Columns == (Columns{}) {
		opts.Columns = def.Columns
	}
	if len(opts.Affirmative) == 0 {
		opts.Affirmative = def.Affirmative
	}
	if len(opts.Negative) == 0 {
		opts.Negative = def.Negative
	}
	if strings.TrimSpace(opts.UnknownEntity) == "" {
		opts.UnknownEntity = def.UnknownEntity
	}
	return &Normalizer{
		cols:          opts.Columns,
		affirmative:   tokenSet(opts.Affirmative),
		negative:      tokenSet(opts.Negative),
		unknownEntity: opts.UnknownEntity,
	}
}

// UnknownEntity returns the sentinel entity name.
func (n *Normalizer) UnknownEntity() string { return n.unknownEntity }

// Columns returns the configured column names.
func (n *Normalizer) Columns() Columns { return n.cols }

// Normalize converts one row. Missing keys are treated as blank cells.
func (n *Normalizer) Normalize(id, line int, row map[string]string) (Event, RowReport) {
	report := RowReport{ID: id, Line: line}
	ev := Event{ID: id, Line: line}

	rawDate := row[n.cols.Date]
	if date := ParseDate(rawDate); date.OK {
		ev.Date = date.Value
		ev.DateKnown = true
	} else {
		report.add(n.cols.Date, rawDate, "unparseable date, using unknown date")
	}

	rawStart := row[n.cols.StartTime]
	start := ParseClock(rawStart)
	if !start.OK {
		report.add(n.cols.StartTime, rawStart, "unparseable time, treating as untimed")
	}
	ev.Start = start.Value

	rawEnd := row[n.cols.EndTime]
	end := ParseClock(rawEnd)
	if !end.OK {
		report.add(n.cols.EndTime, rawEnd, "unparseable time, ignoring end")
	}
	ev.End = normalizeEnd(ev.Start, end.Value)
	if end.Value.Valid && !ev.Start.Valid {
		report.add(n.cols.EndTime, rawEnd, "end time without start time, ignoring end")
	}

	rawCertain := row[n.cols.Certain]
	certain := ParseBool(rawCertain, n.affirmative, n.negative)
	if !certain.OK {
		report.add(n.cols.Certain, rawCertain, "unrecognized yes/no value, assuming uncertain")
	}
	ev.Certain = certain.Value

	rawVerified := row[n.cols.Verified]
	verified := ParseBool(rawVerified, n.affirmative, n.negative)
	if !verified.OK {
		report.add(n.cols.Verified, rawVerified, "unrecognized yes/no value, assuming unverified")
	}
	ev.Verified = verified.Value

	rawEntities := row[n.cols.Entities]
	ev.Entities = SplitEntities(rawEntities)
	if len(ev.Entities) == 0 {
		ev.Entities = []string{n.unknownEntity}
		report.add(n.cols.Entities, rawEntities, "no entities, using "+n.unknownEntity)
	}

	ev.Description = strings.TrimSpace(row[n.cols.Description])
	if ev.Description == "" {
		report.add(n.cols.Description, "", "empty description")
	}

	if n.cols.Source != "" {
		ev.Sources = SplitSources(row[n.cols.Source])
	}

	return ev, report
}

// normalizeEnd drops an end without a start and rolls an end that lies
// before the start over to the next day.
func normalizeEnd(start, end Clock) Clock {
	if !start.Valid || !end.Valid {
		return Clock{}
	}
	if end.Offset < start.Offset {
		end.Offset += 24 * time.Hour
	}
	return end
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
