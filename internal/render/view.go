package render

import (
	"strings"
	"unicode/utf8"

	"timeline2html/internal/timeline"
)

const ellipsis = "…"

// chip is an entity label with its color.
type chip struct {
	Name  string
	Color string
}

// eventView is the template-facing form of one event.
type eventView struct {
	ID          int
	Date        string
	Time        string
	Description string
	Short       string
	Truncated   bool
	Color       string
	Entities    []chip
	Range       bool
	Certain     bool
	Verified    bool
	Sources     []timeline.Source
}

// Classes returns the CSS modifier classes of the event.
func (v eventView) Classes() string {
	var c []string
	if v.Range {
		c = append(c, "range")
	}
	if !v.Certain {
		c = append(c, "uncertain")
	}
	if !v.Verified {
		c = append(c, "unverified")
	}
	return strings.Join(c, " ")
}

func newEventView(ev timeline.Event, tl *timeline.Timeline, opts Options) eventView {
	chips := make([]chip, len(ev.Entities))
	for i, name := range ev.Entities {
		chips[i] = chip{Name: name, Color: tl.Color(name)}
	}
	color := tl.Color(tl.UnknownEntity)
	if len(chips) > 0 {
		color = chips[0].Color
	}
	short, cut := truncate(ev.Description, opts.TruncateAt)
	return eventView{
		ID:          ev.ID,
		Date:        dateLabel(ev, opts.Labels),
		Time:        timeLabel(ev, opts.Labels),
		Description: ev.Description,
		Short:       short,
		Truncated:   cut,
		Color:       color,
		Entities:    chips,
		Range:       ev.IsRange(),
		Certain:     ev.Certain,
		Verified:    ev.Verified,
		Sources:     ev.Sources,
	}
}

func dateLabel(ev timeline.Event, l Labels) string {
	if !ev.DateKnown {
		return l.UnknownDate
	}
	return ev.Date.Format("2006-01-02")
}

func timeLabel(ev timeline.Event, l Labels) string {
	switch {
	case !ev.Start.Valid && ev.DateKnown:
		return l.AllDay
	case !ev.Start.Valid:
		return l.UnknownTime
	case ev.IsRange():
		end := ev.End.String()
		if ev.End.NextDay() {
			end += " (+1)"
		}
		return ev.Start.String() + " - " + end
	default:
		return ev.Start.String()
	}
}

// truncate shortens s to at most n runes, the last being an ellipsis.
// n <= 0 disables truncation.
func truncate(s string, n int) (string, bool) {
	s = strings.TrimSpace(s)
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s, false
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n-1])) + ellipsis, true
}
