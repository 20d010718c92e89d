package render

import (
	"math"
	"unicode/utf8"

	"timeline2html/internal/timeline"
)

// span is the horizontal extent of an event on the shared axis.
type span struct {
	X, W int
}

func (s span) end() int { return s.X + s.W }

// axis holds the x extent of every event, keyed by event ID. All lanes share it.
type axis struct {
	spans map[int]span
	width int
}

// estimateCardWidth sizes a card from its text: 140px plus 5px per rune,
// clamped to [minW, maxW].
func estimateCardWidth(text string, minW, maxW int) int {
	w := 140 + 5*utf8.RuneCountInString(text)
	return max(minW, min(w, maxW))
}

func cardText(ev timeline.Event, l Labels) string {
	return dateLabel(ev, l) + " " + timeLabel(ev, l) + " " + ev.Description
}

// layoutAxis dispatches on the configured scale.
func layoutAxis(events []timeline.Event, opts Options) axis {
	if opts.Horizontal.Scale == ScaleProportional {
		return proportionalAxis(events, opts)
	}
	return packedAxis(events, opts)
}

// packedAxis gives every event its own slot in sorted order. A range card
// grows to cover every slot whose event starts inside the range.
func packedAxis(events []timeline.Event, opts Options) axis {
	h := opts.Horizontal
	ax := axis{spans: make(map[int]span, len(events))}
	if len(events) == 0 {
		return ax
	}

	slots := make([]span, len(events))
	x := 0
	for i, ev := range events {
		w := estimateCardWidth(cardText(ev, opts.Labels), h.MinCardWidth, h.MaxCardWidth)
		slots[i] = span{X: x, W: w}
		x += w + h.SlotGap
	}

	for i, ev := range events {
		s := slots[i]
		if ev.DateKnown && ev.IsRange() {
			last := i
			for j := i + 1; j < len(events); j++ {
				if startsWithin(events[j], ev) {
					last = j
				}
			}
			s.W = max(s.W, slots[last].end()-s.X)
		}
		ax.spans[ev.ID] = s
		ax.width = max(ax.width, s.end())
	}
	return ax
}

// startsWithin reports whether ev has a dated, timed start inside the
// closed interval of range r.
func startsWithin(ev, r timeline.Event) bool {
	if !ev.DateKnown || !ev.Start.Valid || !r.DateKnown || !r.IsRange() {
		return false
	}
	at := ev.Instant()
	return !at.Before(r.Instant()) && !at.After(r.EndInstant())
}

// proportionalAxis maps start instants linearly onto AxisWidth pixels. Ranges
// span their duration but never shrink below MarkerWidth; undated events are
// appended after the axis end.
func proportionalAxis(events []timeline.Event, opts Options) axis {
	h := opts.Horizontal
	ax := axis{spans: make(map[int]span, len(events))}

	var lo, hi int64
	first := true
	for _, ev := range events {
		if !ev.DateKnown {
			continue
		}
		a, b := ev.Instant().Unix(), ev.EndInstant().Unix()
		if first {
			lo, hi, first = a, b, false
			continue
		}
		lo = min(lo, a)
		hi = max(hi, b)
	}
	scale := 0.0
	if hi > lo {
		scale = float64(h.AxisWidth) / float64(hi-lo)
	}

	next := h.AxisWidth + h.SlotGap
	for _, ev := range events {
		var s span
		if ev.DateKnown {
			x0 := float64(ev.Instant().Unix()-lo) * scale
			s = span{X: int(math.Round(x0)), W: h.MarkerWidth}
			if ev.IsRange() {
				x1 := float64(ev.EndInstant().Unix()-lo) * scale
				s.W = max(h.MarkerWidth, int(math.Round(x1-x0)))
			}
		} else {
			s = span{X: next, W: h.MarkerWidth}
			next += h.MarkerWidth + h.SlotGap
		}
		ax.spans[ev.ID] = s
		ax.width = max(ax.width, s.end())
	}
	return ax
}

// card is an event placed in a lane.
type card struct {
	eventView
	X, W int
}

// lane holds the cards of one entity, split into sub-rows without overlap.
type lane struct {
	Name    string
	Color   string
	Unknown bool
	Rows    [][]card
}

// buildLanes assigns the events of every entity to sub-rows. A card goes into
// the first sub-row whose last card ends, plus the slot gap, at or before its x.
func buildLanes(tl *timeline.Timeline, ax axis, views map[int]eventView, gap int) []lane {
	lanes := make([]lane, 0, len(tl.Entities))
	for _, info := range tl.Entities {
		l := lane{Name: info.Name, Color: info.Color, Unknown: info.Unknown}
		var rowEnd []int
		for _, ev := range tl.Events {
			if !ev.HasEntity(info.Name) {
				continue
			}
			s := ax.spans[ev.ID]
			c := card{eventView: views[ev.ID], X: s.X, W: s.W}
			c.Color = info.Color

			placed := false
			for r := range l.Rows {
				if rowEnd[r]+gap <= s.X {
					l.Rows[r] = append(l.Rows[r], c)
					rowEnd[r] = s.end()
					placed = true
					break
				}
			}
			if !placed {
				l.Rows = append(l.Rows, []card{c})
				rowEnd = append(rowEnd, s.end())
			}
		}
		lanes = append(lanes, l)
	}
	return lanes
}
