// Package generate runs one timeline generation: read a sheet, normalize its
// rows, render a document and write it to disk.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"timeline2html/internal/config"
	"timeline2html/internal/metrics"
	"timeline2html/internal/render"
	"timeline2html/internal/sheet"
	"timeline2html/internal/timeline"
)

// Generator turns sheets into HTML documents using one configuration.
// It keeps no state between runs.
type Generator struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Manager
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithMetrics records every run on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// New creates a Generator. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Generator{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request describes one generation.
type Request struct {
	Mode  render.Mode
	Input string
	// Output defaults to OutputPath(Input, "", Mode).
	Output string
}

// Result summarizes a successful generation.
type Result struct {
	Path           string
	Events         int
	RowsWithIssues int
	Issues         int
	Bytes          int
}

// Load reads input and builds its timeline. Row problems end up in the
// timeline's reports; only file and column problems are errors.
func (g *Generator) Load(ctx context.Context, input string) (*timeline.Timeline, error) {
	return g.load(ctx, g.log.With(zap.String("input", input)), input)
}

func (g *Generator) load(ctx context.Context, log *zap.Logger, input string) (*timeline.Timeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl, err := sheet.Read(input, sheet.Options{Sheet: g.cfg.Input.Sheet})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	norm := timeline.NewNormalizer(g.cfg.NormalizerOptions())
	if err := tbl.Require(norm.Columns().Required()...); err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	if src := norm.Columns().Source; src != "" && !tbl.Has(src) {
		log.Debug("Source column absent, reading rows without sources", zap.String("column", src))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tl := timeline.NormalizeAll(norm, tbl.Cells(), tbl.Lines(), g.cfg.ColorScheme())
	for _, rep := range tl.Reports {
		for _, is := range rep.Issues {
			log.Debug("Cell replaced by default",
				zap.Int("line", rep.Line),
				zap.String("column", is.Column),
				zap.String("value", is.Value),
				zap.String("reason", is.Reason))
		}
	}
	g.metrics.ObserveRows(len(tbl.Rows), len(tl.Reports), tl.Issues())
	log.Info("Sheet loaded",
		zap.Int("rows", len(tbl.Rows)),
		zap.Int("events", len(tl.Events)),
		zap.Int("entities", len(tl.Entities)),
		zap.Int("rows_with_issues", len(tl.Reports)),
		zap.Int("issues", tl.Issues()))
	return tl, nil
}

// Generate performs req. The output file is replaced only when every step
// succeeds.
func (g *Generator) Generate(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	log := g.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("mode", string(req.Mode)),
		zap.String("input", req.Input))
	defer func() {
		g.metrics.ObserveGeneration(string(req.Mode), time.Since(start), err)
		if err != nil {
			log.Debug("Generation failed", zap.Error(err))
		}
	}()

	mode, err := render.ParseMode(string(req.Mode))
	if err != nil {
		return Result{}, err
	}
	req.Mode = mode
	tl, err := g.load(ctx, log, req.Input)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, req.Mode, tl, g.RenderOptions()); err != nil {
		return Result{}, fmt.Errorf("render %s: %w", req.Mode, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	path := OutputPath(req.Input, req.Output, req.Mode)
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return Result{}, err
	}
	g.metrics.ObserveRendered(string(req.Mode), len(tl.Events), buf.Len())

	res = Result{
		Path:           path,
		Events:         len(tl.Events),
		RowsWithIssues: len(tl.Reports),
		Issues:         tl.Issues(),
		Bytes:          buf.Len(),
	}
	log.Info("Timeline written",
		zap.String("output", path),
		zap.Int("events", res.Events),
		zap.Int("bytes", res.Bytes),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

// RenderOptions maps the configuration onto render.Options.
func (g *Generator) RenderOptions() render.Options {
	r := g.cfg.Render
	return render.Options{
		Title:      r.Title,
		Lang:       r.Lang,
		TruncateAt: r.TruncateAt,
		Labels: render.Labels{
			UnknownDate: r.Labels.UnknownDate,
			UnknownTime: r.Labels.UnknownTime,
			AllDay:      r.Labels.AllDay,
		},
		Horizontal: render.HorizontalOptions{
			Scale:        render.Scale(r.Horizontal.Scale),
			SlotGap:      r.Horizontal.SlotGap,
			MinCardWidth: r.Horizontal.MinCardWidth,
			MaxCardWidth: r.Horizontal.MaxCardWidth,
			MarkerWidth:  r.Horizontal.MarkerWidth,
			AxisWidth:    r.Horizontal.AxisWidth,
			Minimap:      r.Horizontal.Minimap,
		},
	}
}

// OutputPath returns output when set, otherwise "<input base>_<mode>.html"
// in the working directory.
func OutputPath(input, output string, mode render.Mode) string {
	if output != "" {
		return output
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + string(mode) + ".html"
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never see a partial document.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
