package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"timeline2html/internal/timeline"
)

func renderHorizontal(t *testing.T, tl *timeline.Timeline, opts Options) *html.Node {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Horizontal(&b, tl, opts))
	return parse(t, b.String())
}

func cardsByEvent(root *html.Node, id string) []*html.Node {
	return findAll(root, func(n *html.Node) bool {
		v, ok := attr(n, "data-event-id")
		return ok && v == id && hasClass(n, "card")
	})
}

func TestHorizontalLanes(t *testing.T) {
	tl := fixture()
	root := renderHorizontal(t, tl, DefaultOptions())

	lanes := findAll(root, byClass("entity"))
	require.Len(t, lanes, 3)
	var names []string
	for _, l := range lanes {
		v, _ := attr(l, "data-entity")
		names = append(names, v)
	}
	assert.Equal(t, []string{"OM", "Politie", "Onbekend"}, names)

	assert.Len(t, findAll(root, byClass("card")), 5)
	// The two-entity event appears in both of its lanes.
	assert.Len(t, cardsByEvent(root, "1"), 2)

	style, _ := attr(lanes[1], "style")
	assert.Contains(t, style, tl.Color("Politie"))
}

func TestHorizontalCardMarkers(t *testing.T) {
	root := renderHorizontal(t, fixture(), DefaultOptions())

	rng := cardsByEvent(root, "0")[0]
	assert.True(t, hasClass(rng, "range"))
	assert.False(t, hasClass(rng, "uncertain"))
	assert.False(t, hasClass(rng, "unverified"))

	uncertain := cardsByEvent(root, "1")[0]
	assert.True(t, hasClass(uncertain, "uncertain"))
	assert.False(t, hasClass(uncertain, "range"))

	unverified := cardsByEvent(root, "2")[0]
	assert.True(t, hasClass(unverified, "unverified"))

	style, _ := attr(rng, "style")
	assert.Contains(t, style, "left:304px")
	assert.Contains(t, style, "width:629px")
}

func TestHorizontalSources(t *testing.T) {
	root := renderHorizontal(t, fixture(), DefaultOptions())

	links := findAll(root, byClass("source-link"))
	require.Len(t, links, 1)
	assert.Equal(t, "a", links[0].Data)
	href, _ := attr(links[0], "href")
	assert.Equal(t, "https://example.com/pv", href)
	target, _ := attr(links[0], "target")
	assert.Equal(t, "_blank", target)
	rel, _ := attr(links[0], "rel")
	assert.Equal(t, "noopener", rel)

	// Plain text sources become copy buttons, once per lane of the event.
	copies := findAll(root, byClass("source-copy"))
	require.Len(t, copies, 2)
	v, _ := attr(copies[0], "data-copy")
	assert.Equal(t, "PV 12", v)
	assert.Equal(t, "button", copies[0].Data)
}

func TestHorizontalEscapesDescriptions(t *testing.T) {
	root := renderHorizontal(t, fixture(), DefaultOptions())

	card := cardsByEvent(root, "1")[0]
	assert.Empty(t, findAll(card, byTag("b")))
	body := findAll(card, byClass("card-body"))[0]
	assert.Equal(t, "Verhoor <b>1</b>", text(body))
}

func TestHorizontalTruncation(t *testing.T) {
	opts := DefaultOptions()
	opts.TruncateAt = 5
	root := renderHorizontal(t, fixture(), opts)

	body := findAll(cardsByEvent(root, "0")[0], byClass("card-body"))[0]
	assert.Equal(t, "Over…", text(body))
	assert.True(t, hasClass(body, "truncated"))
	full, _ := attr(body, "data-full")
	assert.Equal(t, "Overleg", full)
}

func TestHorizontalMinimap(t *testing.T) {
	root := renderHorizontal(t, fixture(), DefaultOptions())
	assert.Len(t, findAll(root, byID("minimap-canvas")), 1)

	opts := DefaultOptions()
	opts.Horizontal.Minimap = false
	root = renderHorizontal(t, fixture(), opts)
	assert.Empty(t, findAll(root, byID("minimap")))
}

func TestHorizontalEmpty(t *testing.T) {
	tl := timeline.Build(nil, nil, "", timeline.DefaultColorScheme())
	root := renderHorizontal(t, tl, DefaultOptions())

	assert.Empty(t, findAll(root, byClass("card")))
	assert.Len(t, findAll(root, byClass("empty")), 1)
	assert.Empty(t, findAll(root, byID("minimap")))
}
