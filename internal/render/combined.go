package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"timeline2html/internal/timeline"
)

var combinedTemplate = template.Must(template.New("combined").Parse(tmplCombined))

// View container ids of the combined document.
const (
	HorizontalViewID = "view-horizontal"
	VerticalViewID   = "view-vertical"
)

type combinedPage struct {
	Title string
	Lang  string
	// Horizontal and Vertical are complete documents, loaded via srcdoc.
	Horizontal string
	Vertical   string
}

// Combined writes a document holding both views with a toggle. Both are
// rendered from tl; the horizontal view is visible initially.
func Combined(w io.Writer, tl *timeline.Timeline, opts Options) error {
	var h, v bytes.Buffer
	if err := Horizontal(&h, tl, opts); err != nil {
		return fmt.Errorf("horizontal view: %w", err)
	}
	if err := Vertical(&v, tl, opts); err != nil {
		return fmt.Errorf("vertical view: %w", err)
	}
	return combinedTemplate.Execute(w, combinedPage{
		Title:      opts.Title,
		Lang:       opts.Lang,
		Horizontal: h.String(),
		Vertical:   v.String(),
	})
}
