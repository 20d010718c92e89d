package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"timeline2html/internal/config"
	"timeline2html/internal/metrics"
	"timeline2html/internal/render"
	"timeline2html/internal/sheet"
)

const header = "Datum,Starttijd,Eindtijd,Zekerheid (ja/nee),Entiteit(en) (splits op met |),Gebeurtenis,Geverifieerd,Bron\n"

const sample = header +
	"2024-03-01,09:00,11:00,ja,OM|Politie,Zitting,ja,https://example.org/a\n" +
	"2024-03-01,,,nee,Politie,Aangifte,nee,PV 12\n" +
	"morgen,10:00,,ja,,Onduidelijk,ja,\n"

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateWritesDocument(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.NewManager()
	g := New(config.Default(), WithLogger(zap.New(core)), WithMetrics(m))

	input := writeInput(t, "zaak.csv", sample)
	out := filepath.Join(t.TempDir(), "nested", "zaak.html")

	res, err := g.Generate(context.Background(), Request{Mode: render.ModeVertical, Input: input, Output: out})
	require.NoError(t, err)

	assert.Equal(t, out, res.Path)
	assert.Equal(t, 3, res.Events)
	assert.Equal(t, 1, res.RowsWithIssues)
	assert.Equal(t, 2, res.Issues)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, res.Bytes, len(data))
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "Aangifte")

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	assert.Equal(t, 2, logs.FilterMessage("Cell replaced by default").Len())
	written := logs.FilterMessage("Timeline written").All()
	require.Len(t, written, 1)
	assert.Equal(t, zapcore.InfoLevel, written[0].Level)
	assert.NotEmpty(t, written[0].ContextMap()["run_id"])

	assert.Equal(t, 1, countFamilies(t, m, "timeline2html_generations_total"))
}

func TestGenerateMissingColumns(t *testing.T) {
	g := New(nil)
	input := writeInput(t, "kapot.csv", "Datum,Gebeurtenis\n2024-03-01,x\n")
	out := filepath.Join(t.TempDir(), "kapot.html")

	_, err := g.Generate(context.Background(), Request{Mode: render.ModeHorizontal, Input: input, Output: out})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sheet.ErrMissingColumns))

	missing, ok := sheet.IsMissingColumns(err)
	require.True(t, ok)
	assert.Contains(t, missing, "Starttijd")
	assert.Contains(t, missing, "Geverifieerd")
	assert.NotContains(t, missing, "Bron")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateKeepsOldOutputOnFailure(t *testing.T) {
	g := New(nil)
	out := filepath.Join(t.TempDir(), "zaak.html")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	_, err := g.Generate(context.Background(), Request{
		Mode:   render.ModeCombined,
		Input:  filepath.Join(t.TempDir(), "missing.csv"),
		Output: out,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestGenerateUnwritableOutput(t *testing.T) {
	g := New(nil)
	input := writeInput(t, "zaak.csv", sample)
	blocker := writeInput(t, "file", "not a directory")

	_, err := g.Generate(context.Background(), Request{
		Mode:   render.ModeHorizontal,
		Input:  input,
		Output: filepath.Join(blocker, "zaak.html"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteOutput))
}

func TestGenerateUnknownMode(t *testing.T) {
	g := New(nil)
	_, err := g.Generate(context.Background(), Request{Mode: "diagonal", Input: "x.csv"})
	assert.True(t, errors.Is(err, render.ErrUnknownMode))
}

func TestGenerateModeIsCaseInsensitive(t *testing.T) {
	m := metrics.NewManager()
	g := New(nil, WithMetrics(m))
	input := writeInput(t, "zaak.csv", sample)
	out := filepath.Join(t.TempDir(), "zaak.html")

	res, err := g.Generate(context.Background(), Request{Mode: " Horizontal", Input: input, Output: out})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Events)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Zitting")
	assert.Equal(t, 1, countFamilies(t, m, "timeline2html_events_rendered_total"))
}

func TestGenerateCanceled(t *testing.T) {
	g := New(nil)
	input := writeInput(t, "zaak.csv", sample)
	out := filepath.Join(t.TempDir(), "zaak.html")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, Request{Mode: render.ModeVertical, Input: input, Output: out})
	assert.True(t, errors.Is(err, context.Canceled))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadSharesOneTimelineForAllModes(t *testing.T) {
	g := New(nil)
	tl, err := g.Load(context.Background(), writeInput(t, "zaak.csv", sample))
	require.NoError(t, err)

	var names []string
	for _, e := range tl.Entities {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"OM", "Politie", "Onbekend"}, names)

	for _, mode := range render.Modes() {
		doc, err := render.String(mode, tl, g.RenderOptions())
		require.NoError(t, err, mode)
		assert.NotEmpty(t, doc)
	}
}

func TestRenderOptionsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Title = "Dossier"
	cfg.Render.Horizontal.Scale = config.ScaleProportional
	cfg.Render.Labels.AllDay = "All day"

	opts := New(cfg).RenderOptions()
	assert.Equal(t, "Dossier", opts.Title)
	assert.Equal(t, render.ScaleProportional, opts.Horizontal.Scale)
	assert.Equal(t, "All day", opts.Labels.AllDay)

	def := New(nil).RenderOptions()
	assert.Equal(t, render.DefaultOptions(), def)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, output string
		mode          render.Mode
		want          string
	}{
		{"data/zaak.xlsx", "", render.ModeHorizontal, "zaak_horizontal.html"},
		{"zaak.csv", "", render.ModeCombined, "zaak_combined.html"},
		{"/tmp/tijdlijn", "", render.ModeVertical, "tijdlijn_vertical.html"},
		{"zaak.csv", "out/x.html", render.ModeVertical, "out/x.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.input, tt.output, tt.mode), tt.input)
	}
}

func countFamilies(t *testing.T, m *metrics.Manager, name string) int {
	t.Helper()
	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	n := 0
	for _, f := range families {
		if f.GetName() == name {
			n += len(f.GetMetric())
		}
	}
	return n
}
