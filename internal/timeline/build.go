package timeline

import "sort"

// EntityInfo summarizes one entity across the timeline.
type EntityInfo struct {
	Name    string
	Color   string
	Count   int
	Unknown bool
}

// Timeline is the in-memory model of one generation run. It is built once
// and shared read-only by all renderers.
type Timeline struct {
	Events []Event
	// Entities are in palette order with the sentinel last.
	Entities []EntityInfo
	Colors   map[string]string
	// Reports holds the rows that were not fully well-formed.
	Reports       []RowReport
	UnknownEntity string
}

// Color returns the color of an entity, or the sentinel color when the
// entity is not part of the timeline.
func (t *Timeline) Color(entity string) string {
	if c, ok := t.Colors[entity]; ok {
		return c
	}
	return t.Colors[t.UnknownEntity]
}

// Issues counts the replaced cells over all rows.
func (t *Timeline) Issues() int {
	n := 0
	for _, r := range t.Reports {
		n += len(r.Issues)
	}
	return n
}

// Less orders events for display:
//   - known dates before the unknown-date sentinel, then by date;
//   - within a date, untimed (all-day) events first, then by start time;
//   - for an equal start, a range before a point event;
//   - finally by row order.
func Less(a, b Event) bool {
	if a.DateKnown != b.DateKnown {
		return a.DateKnown
	}
	if a.DateKnown && !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Start.Valid != b.Start.Valid {
		return !a.Start.Valid
	}
	if a.Start.Offset != b.Start.Offset {
		return a.Start.Offset < b.Start.Offset
	}
	if a.IsRange() != b.IsRange() {
		return a.IsRange()
	}
	return a.ID < b.ID
}

// SortEvents sorts events in place using Less. The sort is stable.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(events[i], events[j])
	})
}

// Build assembles a Timeline from normalized events. The events slice is
// copied before sorting; reports of well-formed rows are dropped.
func Build(events []Event, reports []RowReport, unknownEntity string, scheme ColorScheme) *Timeline {
	if unknownEntity == "" {
		unknownEntity = DefaultUnknownEntity
	}
	if scheme.Unknown == "" {
		scheme.Unknown = DefaultColorScheme().Unknown
	}
	sorted := make([]Event, len(events))
	copy(sorted, events)
	SortEvents(sorted)

	counts := make(map[string]int)
	var names []string
	for _, ev := range sorted {
		for _, ent := range ev.Entities {
			if _, seen := counts[ent]; !seen {
				names = append(names, ent)
			}
			counts[ent]++
		}
	}

	colors := AssignColors(names, unknownEntity, scheme)
	ordered := OrderEntities(names, unknownEntity)
	infos := make([]EntityInfo, 0, len(ordered))
	for _, name := range ordered {
		infos = append(infos, EntityInfo{
			Name:    name,
			Color:   colors[name],
			Count:   counts[name],
			Unknown: name == unknownEntity,
		})
	}
	if _, ok := colors[unknownEntity]; !ok {
		colors[unknownEntity] = scheme.Unknown
	}

	var bad []RowReport
	for _, r := range reports {
		if !r.OK() {
			bad = append(bad, r)
		}
	}

	return &Timeline{
		Events:        sorted,
		Entities:      infos,
		Colors:        colors,
		Reports:       bad,
		UnknownEntity: unknownEntity,
	}
}

// NormalizeAll normalizes rows in order and builds the timeline.
// lines[i] is the sheet line of rows[i]; it may be nil.
func NormalizeAll(n *Normalizer, rows []map[string]string, lines []int, scheme ColorScheme) *Timeline {
	events := make([]Event, 0, len(rows))
	reports := make([]RowReport, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		if i < len(lines) {
			line = lines[i]
		}
		ev, rep := n.Normalize(i, line, row)
		events = append(events, ev)
		reports = append(reports, rep)
	}
	return Build(events, reports, n.UnknownEntity(), scheme)
}
