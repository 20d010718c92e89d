package timeline

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(date, start, end, certain, entities, desc, verified string) map[string]string {
	c := DefaultColumns()
	return map[string]string{
		c.Date:        date,
		c.StartTime:   start,
		c.EndTime:     end,
		c.Certain:     certain,
		c.Entities:    entities,
		c.Description: desc,
		c.Verified:    verified,
	}
}

func TestNormalizeWellFormedRow(t *testing.T) {
	n := NewNormalizer(DefaultOptions())
	r := row("2024-03-05", "09:00", "10:30", "ja", "Politie | OM", "Overleg op bureau", "Ja")
	r["Bron"] = "https://example.com | Proces-verbaal 12"

	ev, rep := n.Normalize(3, 5, r)

	want := Event{
		ID:          3,
		Line:        5,
		Date:        day(2024, time.March, 5),
		DateKnown:   true,
		Start:       NewClock(9, 0, 0),
		End:         NewClock(10, 30, 0),
		Certain:     true,
		Verified:    true,
		Entities:    []string{"Politie", "OM"},
		Description: "Overleg op bureau",
		Sources: []Source{
			{Kind: SourceLink, Text: "https://example.com", Href: "https://example.com"},
			{Kind: SourceText, Text: "Proces-verbaal 12"},
		},
	}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, rep.OK(), "issues: %+v", rep.Issues)
	assert.True(t, ev.IsRange())
}

func TestNormalizeMissingCells(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	ev, rep := n.Normalize(0, 2, map[string]string{})

	assert.False(t, ev.DateKnown)
	assert.False(t, ev.Certain)
	assert.False(t, ev.Verified)
	assert.Equal(t, []string{DefaultUnknownEntity}, ev.Entities)
	assert.Equal(t, "", ev.Description)
	assert.Nil(t, ev.Sources)
	assert.False(t, rep.OK())

	var cols []string
	for _, is := range rep.Issues {
		cols = append(cols, is.Column)
	}
	c := DefaultColumns()
	assert.ElementsMatch(t, []string{c.Date, c.Entities, c.Description}, cols)
}

func TestNormalizeBadValuesDegrade(t *testing.T) {
	n := NewNormalizer(DefaultOptions())
	ev, rep := n.Normalize(1, 3, row("gisteren", "laat", "ook laat", "misschien", "", "Iets", "wie weet"))

	assert.False(t, ev.DateKnown)
	assert.False(t, ev.Start.Valid)
	assert.False(t, ev.End.Valid)
	assert.False(t, ev.Certain)
	assert.False(t, ev.Verified)
	assert.Equal(t, []string{DefaultUnknownEntity}, ev.Entities)
	assert.Equal(t, "Iets", ev.Description)
	assert.Len(t, rep.Issues, 6)
}

func TestNormalizeEndBeforeStartRollsOver(t *testing.T) {
	n := NewNormalizer(DefaultOptions())
	ev, rep := n.Normalize(0, 2, row("2024-03-05", "23:00", "01:30", "ja", "A", "Nachtdienst", "ja"))

	require.True(t, rep.OK())
	assert.True(t, ev.End.NextDay())
	assert.Equal(t, "01:30", ev.End.String())
	assert.Equal(t, 2*time.Hour+30*time.Minute, ev.EndInstant().Sub(ev.Instant()))
}

func TestNormalizeEndWithoutStartIsDropped(t *testing.T) {
	n := NewNormalizer(DefaultOptions())
	ev, rep := n.Normalize(0, 2, row("2024-03-05", "", "12:00", "ja", "A", "x", "ja"))

	assert.False(t, ev.End.Valid)
	assert.True(t, ev.AllDay())
	require.Len(t, rep.Issues, 1)
	assert.Equal(t, DefaultColumns().EndTime, rep.Issues[0].Column)
}

func TestNormalizeCustomOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Columns.Date = "Date"
	opts.Columns.Source = ""
	opts.Affirmative = []string{"oui"}
	opts.UnknownEntity = "?"
	n := NewNormalizer(opts)

	ev, _ := n.Normalize(0, 2, map[string]string{
		"Date":                   "2024-01-02",
		opts.Columns.Certain:     "OUI",
		opts.Columns.Verified:    "ja",
		"Bron":                   "https://ignored.example",
		opts.Columns.Entities:    "",
		opts.Columns.StartTime:   "",
		opts.Columns.EndTime:     "",
		opts.Columns.Description: "d",
	})

	assert.True(t, ev.DateKnown)
	assert.True(t, ev.Certain)
	assert.False(t, ev.Verified)
	assert.Equal(t, []string{"?"}, ev.Entities)
	assert.Nil(t, ev.Sources)
}
