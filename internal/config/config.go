// Package config holds the settings of a timeline2html run.
//
// Settings come from three layers, lowest precedence first: Default(), an
// optional YAML file and TIMELINE_ environment variables. See Load.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"timeline2html/internal/timeline"
)

// Horizontal axis scales.
const (
	ScalePacked       = "packed"
	ScaleProportional = "proportional"
)

// Config is the complete configuration. The yaml tags mirror the koanf tags
// so that `timeline2html config` prints a file Load can read back.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	// MetricsFile receives prometheus text exposition after each run when set.
	MetricsFile string `koanf:"metrics_file" yaml:"metrics_file"`
	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace" yaml:"metrics_namespace"`

	Input  InputConfig  `koanf:"input" yaml:"input"`
	Render RenderConfig `koanf:"render" yaml:"render"`
	Watch  WatchConfig  `koanf:"watch" yaml:"watch"`
}

// InputConfig controls how rows are read and normalized.
type InputConfig struct {
	Sheet         string        `koanf:"sheet" yaml:"sheet"` // worksheet name, empty = first
	Columns       ColumnsConfig `koanf:"columns" yaml:"columns"`
	Affirmative   []string      `koanf:"affirmative" yaml:"affirmative"`
	Negative      []string      `koanf:"negative" yaml:"negative"`
	UnknownEntity string        `koanf:"unknown_entity" yaml:"unknown_entity"`
}

// ColumnsConfig names the input columns. Source may be empty to ignore sources.
type ColumnsConfig struct {
	Date        string `koanf:"date" yaml:"date"`
	StartTime   string `koanf:"start_time" yaml:"start_time"`
	EndTime     string `koanf:"end_time" yaml:"end_time"`
	Certain     string `koanf:"certain" yaml:"certain"`
	Entities    string `koanf:"entities" yaml:"entities"`
	Description string `koanf:"description" yaml:"description"`
	Verified    string `koanf:"verified" yaml:"verified"`
	Source      string `koanf:"source" yaml:"source"`
}

// RenderConfig controls the generated documents.
type RenderConfig struct {
	Title      string           `koanf:"title" yaml:"title"`
	Lang       string           `koanf:"lang" yaml:"lang"`
	TruncateAt int              `koanf:"truncate_at" yaml:"truncate_at"` // runes; 0 disables truncation
	Labels     LabelsConfig     `koanf:"labels" yaml:"labels"`
	Colors     ColorsConfig     `koanf:"colors" yaml:"colors"`
	Horizontal HorizontalConfig `koanf:"horizontal" yaml:"horizontal"`
}

// LabelsConfig holds the display text of sentinel values.
type LabelsConfig struct {
	UnknownDate string `koanf:"unknown_date" yaml:"unknown_date"`
	UnknownTime string `koanf:"unknown_time" yaml:"unknown_time"`
	AllDay      string `koanf:"all_day" yaml:"all_day"`
}

// ColorsConfig parameterizes the entity palette.
type ColorsConfig struct {
	BaseHue    float64 `koanf:"base_hue" yaml:"base_hue"`
	Saturation float64 `koanf:"saturation" yaml:"saturation"`
	Lightness  float64 `koanf:"lightness" yaml:"lightness"`
	Unknown    string  `koanf:"unknown" yaml:"unknown"`
}

// HorizontalConfig controls the horizontal layout, in pixels.
type HorizontalConfig struct {
	Scale        string `koanf:"scale" yaml:"scale"`
	SlotGap      int    `koanf:"slot_gap" yaml:"slot_gap"`
	MinCardWidth int    `koanf:"min_card_width" yaml:"min_card_width"`
	MaxCardWidth int    `koanf:"max_card_width" yaml:"max_card_width"`
	MarkerWidth  int    `koanf:"marker_width" yaml:"marker_width"`
	AxisWidth    int    `koanf:"axis_width" yaml:"axis_width"`
	Minimap      bool   `koanf:"minimap" yaml:"minimap"`
}

// WatchConfig controls --watch.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms" yaml:"debounce_ms"`
}

// Default returns the configuration used when nothing else is given. It
// matches the reference sheet layout and its Dutch labels.
func Default() *Config {
	opts := timeline.DefaultOptions()
	cols := opts.Columns
	scheme := timeline.DefaultColorScheme()
	return &Config{
		LogLevel:         "info",
		MetricsNamespace: "timeline2html",
		Input: InputConfig{
			Columns: ColumnsConfig{
				Date:        cols.Date,
				StartTime:   cols.StartTime,
				EndTime:     cols.EndTime,
				Certain:     cols.Certain,
				Entities:    cols.Entities,
				Description: cols.Description,
				Verified:    cols.Verified,
				Source:      cols.Source,
			},
			Affirmative:   opts.Affirmative,
			Negative:      opts.Negative,
			UnknownEntity: opts.UnknownEntity,
		},
		Render: RenderConfig{
			Title:      "Tijdlijn",
			Lang:       "nl",
			TruncateAt: 140,
			Labels: LabelsConfig{
				UnknownDate: "Onbekende datum",
				UnknownTime: "Onbekende tijd",
				AllDay:      "Hele dag",
			},
			Colors: ColorsConfig{
				BaseHue:    scheme.BaseHue,
				Saturation: scheme.Saturation,
				Lightness:  scheme.Lightness,
				Unknown:    scheme.Unknown,
			},
			Horizontal: HorizontalConfig{
				Scale:        ScalePacked,
				SlotGap:      24,
				MinCardWidth: 180,
				MaxCardWidth: 320,
				MarkerWidth:  180,
				AxisWidth:    2400,
				Minimap:      true,
			},
		},
		Watch: WatchConfig{DebounceMS: 300},
	}
}

var (
	hexColor   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Validate reports every invalid setting at once. The returned error wraps
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		add("log_level: %q is not a log level", c.LogLevel)
	}
	if !metricName.MatchString(c.MetricsNamespace) {
		add("metrics_namespace: %q is not a valid metric name prefix", c.MetricsNamespace)
	}

	cols := c.Input.Columns
	for key, v := range map[string]string{
		"date":        cols.Date,
		"start_time":  cols.StartTime,
		"end_time":    cols.EndTime,
		"certain":     cols.Certain,
		"entities":    cols.Entities,
		"description": cols.Description,
		"verified":    cols.Verified,
	} {
		if strings.TrimSpace(v) == "" {
			add("input.columns.%s must not be empty", key)
		}
	}
	if strings.TrimSpace(c.Input.UnknownEntity) == "" {
		add("input.unknown_entity must not be empty")
	}
	if len(c.Input.Affirmative) == 0 {
		add("input.affirmative must list at least one token")
	}

	r := c.Render
	if r.TruncateAt < 0 {
		add("render.truncate_at must not be negative")
	}
	if r.Colors.Saturation < 0 || r.Colors.Saturation > 1 {
		add("render.colors.saturation must be within [0, 1]")
	}
	if r.Colors.Lightness < 0 || r.Colors.Lightness > 1 {
		add("render.colors.lightness must be within [0, 1]")
	}
	if !hexColor.MatchString(r.Colors.Unknown) {
		add("render.colors.unknown: %q is not a #rrggbb color", r.Colors.Unknown)
	}

	h := r.Horizontal
	if h.Scale != ScalePacked && h.Scale != ScaleProportional {
		add("render.horizontal.scale: %q is not one of %s, %s", h.Scale, ScalePacked, ScaleProportional)
	}
	if h.SlotGap < 0 {
		add("render.horizontal.slot_gap must not be negative")
	}
	if h.MinCardWidth <= 0 || h.MaxCardWidth < h.MinCardWidth {
		add("render.horizontal card widths must satisfy 0 < min_card_width <= max_card_width")
	}
	if h.MarkerWidth <= 0 {
		add("render.horizontal.marker_width must be positive")
	}
	if h.AxisWidth <= 0 {
		add("render.horizontal.axis_width must be positive")
	}

	if c.Watch.DebounceMS < 0 {
		add("watch.debounce_ms must not be negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// NormalizerOptions converts the input settings for timeline.NewNormalizer.
func (c *Config) NormalizerOptions() timeline.Options {
	cols := c.Input.Columns
	return timeline.Options{
		Columns: timeline.Columns{
			Date:        cols.Date,
			StartTime:   cols.StartTime,
			EndTime:     cols.EndTime,
			Certain:     cols.Certain,
			Entities:    cols.Entities,
			Description: cols.Description,
			Verified:    cols.Verified,
			Source:      cols.Source,
		},
		Affirmative:   c.Input.Affirmative,
		Negative:      c.Input.Negative,
		UnknownEntity: c.Input.UnknownEntity,
	}
}

// ColorScheme converts the palette settings.
func (c *Config) ColorScheme() timeline.ColorScheme {
	return timeline.ColorScheme{
		BaseHue:    c.Render.Colors.BaseHue,
		Saturation: c.Render.Colors.Saturation,
		Lightness:  c.Render.Colors.Lightness,
		Unknown:    strings.ToLower(c.Render.Colors.Unknown),
	}
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
