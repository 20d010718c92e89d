package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"timeline2html/internal/timeline"
)

var verticalTemplate = template.Must(template.New("vertical").Parse(tmplVertical))

// day groups consecutive events sharing a date label.
type day struct {
	Label  string
	Blocks []*block
}

// block is either a range wrapper or a stack of events sharing one start.
// A wrapper holds the blocks of the events that start inside its range.
type block struct {
	Range    *eventView
	Children []*block

	Date  string
	Time  string
	Stack []eventView

	key string
}

type openRange struct {
	ev timeline.Event
	b  *block
}

// payloadEntity and payloadEvent are embedded as JSON for the filter script.
type payloadEntity struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type payloadEvent struct {
	ID       int      `json:"id"`
	Entities []string `json:"entities"`
	Certain  bool     `json:"certain"`
	Verified bool     `json:"verified"`
	// Text is the lower-cased searchable text of the event.
	Text string `json:"text"`
}

type payload struct {
	Entities []payloadEntity `json:"entities"`
	Events   []payloadEvent  `json:"events"`
}

type verticalPage struct {
	Title    string
	Lang     string
	Entities []timeline.EntityInfo
	Days     []day
	Total    int
	Issues   int
	Payload  payload
}

// Vertical writes the filterable vertical view. All event data is embedded
// in the document; filtering toggles the hidden attribute of rendered events.
func Vertical(w io.Writer, tl *timeline.Timeline, opts Options) error {
	return verticalTemplate.Execute(w, newVerticalPage(tl, opts))
}

func newVerticalPage(tl *timeline.Timeline, opts Options) verticalPage {
	p := verticalPage{
		Title:    opts.Title,
		Lang:     opts.Lang,
		Entities: tl.Entities,
		Total:    len(tl.Events),
		Issues:   len(tl.Reports),
	}

	p.Payload.Entities = make([]payloadEntity, 0, len(tl.Entities))
	for _, e := range tl.Entities {
		p.Payload.Entities = append(p.Payload.Entities, payloadEntity{Name: e.Name, Color: e.Color, Count: e.Count})
	}

	p.Payload.Events = make([]payloadEvent, 0, len(tl.Events))
	var open []openRange
	for _, ev := range tl.Events {
		v := newEventView(ev, tl, opts)
		if n := len(p.Days); n == 0 || p.Days[n-1].Label != v.Date {
			p.Days = append(p.Days, day{Label: v.Date})
			open = open[:0]
		}
		d := &p.Days[len(p.Days)-1]

		for len(open) > 0 && !startsWithin(ev, open[len(open)-1].ev) {
			open = open[:len(open)-1]
		}
		target := &d.Blocks
		if len(open) > 0 {
			target = &open[len(open)-1].b.Children
		}
		if b := place(target, ev, v); b.Range != nil {
			open = append(open, openRange{ev: ev, b: b})
		}

		p.Payload.Events = append(p.Payload.Events, payloadEvent{
			ID:       ev.ID,
			Entities: ev.Entities,
			Certain:  ev.Certain,
			Verified: ev.Verified,
			Text:     searchText(ev, v),
		})
	}
	return p
}

// place appends ev to the blocks in target and returns the block holding it.
// A dated range opens a wrapper; any other event joins the preceding stack
// when both start at the same moment.
func place(target *[]*block, ev timeline.Event, v eventView) *block {
	if ev.DateKnown && ev.IsRange() {
		b := &block{Range: &v}
		*target = append(*target, b)
		return b
	}
	key := stackKey(ev)
	if n := len(*target); n > 0 {
		if last := (*target)[n-1]; last.Range == nil && last.key == key {
			last.Stack = append(last.Stack, v)
			return last
		}
	}
	b := &block{Date: v.Date, Time: v.Time, Stack: []eventView{v}, key: key}
	*target = append(*target, b)
	return b
}

func stackKey(ev timeline.Event) string {
	var end time.Duration
	if ev.IsRange() {
		end = ev.End.Offset
	}
	return fmt.Sprintf("%t/%d/%t/%d/%d", ev.DateKnown, ev.Date.Unix(), ev.Start.Valid, ev.Start.Offset, end)
}

func searchText(ev timeline.Event, v eventView) string {
	parts := []string{v.Date, v.Time, ev.Description}
	parts = append(parts, ev.Entities...)
	for _, s := range ev.Sources {
		parts = append(parts, s.Text)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
