package timeline

import (
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
)

// goldenAngle spreads consecutive hues as far apart as possible.
const goldenAngle = 137.508

// ColorScheme parameterizes the entity palette.
type ColorScheme struct {
	BaseHue    float64
	Saturation float64
	Lightness  float64
	// Unknown is the fixed color of the sentinel entity.
	Unknown string
}

// DefaultColorScheme returns a light pastel palette with a grey sentinel.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		BaseHue:    24,
		Saturation: 0.60,
		Lightness:  0.68,
		Unknown:    "#9aa0a6",
	}
}

// OrderEntities returns the distinct names in palette order: case-folded
// alphabetical, ties broken by the raw name, with the sentinel last.
// The result does not depend on the input order.
func OrderEntities(names []string, unknown string) []string {
	seen := make(map[string]struct{}, len(names))
	ordered := make([]string, 0, len(names))
	hasUnknown := false
	for _, name := range names {
		if name == unknown {
			hasUnknown = true
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
	}
	folder := cases.Fold()
	sort.Slice(ordered, func(i, j int) bool {
		fi, fj := folder.String(ordered[i]), folder.String(ordered[j])
		if fi != fj {
			return fi < fj
		}
		return ordered[i] < ordered[j]
	})
	if hasUnknown {
		ordered = append(ordered, unknown)
	}
	return ordered
}

// AssignColors maps every distinct entity to a #rrggbb color. It is a pure
// function of the set of names: the i-th entity in OrderEntities order gets
// hue BaseHue + i*goldenAngle. The sentinel gets scheme.Unknown, which is
// never handed to a real entity.
func AssignColors(names []string, unknown string, scheme ColorScheme) map[string]string {
	if scheme.Unknown == "" {
		scheme.Unknown = DefaultColorScheme().Unknown
	}
	ordered := OrderEntities(names, unknown)
	colors := make(map[string]string, len(ordered))
	reserved := strings.ToLower(scheme.Unknown)

	i := 0
	for _, name := range ordered {
		if name == unknown {
			colors[name] = scheme.Unknown
			continue
		}
		hue := math.Mod(scheme.BaseHue+float64(i)*goldenAngle, 360)
		c := hslHex(hue, scheme.Saturation, scheme.Lightness)
		if c == reserved {
			c = hslHex(math.Mod(hue+1, 360), scheme.Saturation, scheme.Lightness)
		}
		colors[name] = c
		i++
	}
	return colors
}

func hslHex(h, s, l float64) string {
	return colorful.Hsl(math.Floor(h), s, l).Clamped().Hex()
}
