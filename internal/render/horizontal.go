package render

import (
	"html/template"
	"io"

	"timeline2html/internal/timeline"
)

var horizontalTemplate = template.Must(template.New("horizontal").Parse(tmplHorizontal))

type horizontalPage struct {
	Title   string
	Lang    string
	Width   int
	Lanes   []lane
	Legend  []timeline.EntityInfo
	Events  int
	Issues  int
	Minimap bool
}

// Horizontal writes the horizontal view: one lane per entity (the sentinel
// lane last) on one shared x axis. An event with several entities appears in
// each of their lanes.
func Horizontal(w io.Writer, tl *timeline.Timeline, opts Options) error {
	return horizontalTemplate.Execute(w, newHorizontalPage(tl, opts))
}

func newHorizontalPage(tl *timeline.Timeline, opts Options) horizontalPage {
	views := make(map[int]eventView, len(tl.Events))
	for _, ev := range tl.Events {
		views[ev.ID] = newEventView(ev, tl, opts)
	}
	ax := layoutAxis(tl.Events, opts)
	return horizontalPage{
		Title:   opts.Title,
		Lang:    opts.Lang,
		Width:   ax.width,
		Lanes:   buildLanes(tl, ax, views, opts.Horizontal.SlotGap),
		Legend:  tl.Entities,
		Events:  len(tl.Events),
		Issues:  len(tl.Reports),
		Minimap: opts.Horizontal.Minimap && len(tl.Events) > 0,
	}
}
