// Package render turns a timeline.Timeline into self-contained HTML
// documents. Every document carries its styling and script inline and
// fetches nothing at view time.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"timeline2html/internal/timeline"
)

// Mode selects a renderer.
type Mode string

const (
	ModeHorizontal Mode = "horizontal"
	ModeVertical   Mode = "vertical"
	ModeCombined   Mode = "combined"
)

// Modes lists every mode in CLI order.
func Modes() []Mode { return []Mode{ModeHorizontal, ModeVertical, ModeCombined} }

// ErrUnknownMode is returned by ParseMode and Render for an unsupported mode.
var ErrUnknownMode = errors.New("unknown render mode")

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Scale selects how the horizontal axis maps events to x positions.
type Scale string

const (
	// ScalePacked gives every event its own slot in sorted order.
	ScalePacked Scale = "packed"
	// ScaleProportional places events by their start instant.
	ScaleProportional Scale = "proportional"
)

// Labels holds the display text of sentinel values.
type Labels struct {
	UnknownDate string
	UnknownTime string
	AllDay      string
}

// HorizontalOptions controls the horizontal layout. Sizes are in pixels.
type HorizontalOptions struct {
	Scale        Scale
	SlotGap      int
	MinCardWidth int
	MaxCardWidth int
	MarkerWidth  int
	AxisWidth    int
	Minimap      bool
}

// Options controls all renderers.
type Options struct {
	Title string
	Lang  string
	// TruncateAt caps card text in runes; 0 disables truncation.
	TruncateAt int
	Labels     Labels
	Horizontal HorizontalOptions
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Title:      "Tijdlijn",
		Lang:       "nl",
		TruncateAt: 140,
		Labels: Labels{
			UnknownDate: "Onbekende datum",
			UnknownTime: "Onbekende tijd",
			AllDay:      "Hele dag",
		},
		Horizontal: HorizontalOptions{
			Scale:        ScalePacked,
			SlotGap:      24,
			MinCardWidth: 180,
			MaxCardWidth: 320,
			MarkerWidth:  180,
			AxisWidth:    2400,
			Minimap:      true,
		},
	}
}

// Render writes the document for mode to w.
func Render(w io.Writer, mode Mode, tl *timeline.Timeline, opts Options) error {
	switch mode {
	case ModeHorizontal:
		return Horizontal(w, tl, opts)
	case ModeVertical:
		return Vertical(w, tl, opts)
	case ModeCombined:
		return Combined(w, tl, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// String renders mode into a string.
func String(mode Mode, tl *timeline.Timeline, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, mode, tl, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}
