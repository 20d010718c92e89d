package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"timeline2html/internal/generate"
	"timeline2html/internal/render"
	"timeline2html/internal/watch"
)

var (
	// Per-command flags
	inputFile  string
	outputFile string
	watchInput bool
)

var horizontalCmd = newRenderCmd(render.ModeHorizontal,
	"Write a horizontal timeline with one lane per entity",
	`Every event becomes a card in the lane of each of its entities. Cards are
placed along a shared axis, either one slot per event (scale: packed) or by
start time (scale: proportional). Long texts are shortened; clicking a card
shows the full text.`)

var verticalCmd = newRenderCmd(render.ModeVertical,
	"Write a vertical event list with filters",
	`Events are listed per day in display order. The sidebar filters by entity,
certainty, verification and free text without leaving the page.`)

var combinedCmd = newRenderCmd(render.ModeCombined,
	"Write both views in one document with a view switch",
	`The horizontal view is shown first; the toolbar switches between the two
views. Both are rendered from the same rows.`)

// entitiesCmd prints the entity table of a sheet
var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List the entities of a sheet with their colors and event counts",
	Args:  cobra.NoArgs,
	RunE:  runEntities,
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Prints the configuration after applying defaults, the --config file,
TIMELINE_ environment variables and flags. The output is a valid --config file.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	for _, c := range []*cobra.Command{horizontalCmd, verticalCmd, combinedCmd} {
		c.Flags().StringVarP(&inputFile, "input", "i", "", "Sheet with timeline data, .xlsx or .csv (required)")
		c.Flags().StringVarP(&outputFile, "output", "o", "", "Output HTML file (default <input>_<mode>.html)")
		c.Flags().BoolVarP(&watchInput, "watch", "w", false, "Regenerate whenever the input changes")
		_ = c.MarkFlagRequired("input")
	}
	entitiesCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Sheet with timeline data, .xlsx or .csv (required)")
	_ = entitiesCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(horizontalCmd, verticalCmd, combinedCmd, entitiesCmd, configCmd)
}

func newRenderCmd(mode render.Mode, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode),
		Short: short,
		Long:  long,
		Example: fmt.Sprintf("  timeline2html %s -i tijdlijn.xlsx\n  timeline2html %s -i tijdlijn.csv -o out/%s.html --watch",
			mode, mode, mode),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, mode)
		},
	}
}

func newGenerator() *generate.Generator {
	return generate.New(cfg, generate.WithLogger(logger), generate.WithMetrics(metricsManager))
}

// runGenerate writes one document and, with --watch, keeps regenerating it.
func runGenerate(cmd *cobra.Command, mode render.Mode) error {
	ctx := commandContext(cmd)
	gen := newGenerator()
	req := generate.Request{Mode: mode, Input: inputFile, Output: outputFile}

	once := func() error {
		res, err := gen.Generate(ctx, req)
		flushMetrics()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Timeline HTML generated successfully: %s (%d events", res.Path, res.Events)
		if res.Issues > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", %d cells defaulted in %d rows", res.Issues, res.RowsWithIssues)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ")")
		return nil
	}

	err := once()
	if !watchInput {
		return err
	}
	if err != nil {
		logger.Error("Generation failed, waiting for changes", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(inputFile, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, func(ctx context.Context) error { return once() })
}

func runEntities(cmd *cobra.Command, args []string) error {
	tl, err := newGenerator().Load(commandContext(cmd), inputFile)
	if err != nil {
		return err
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ENTITY", "COLOR", "EVENTS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 1 && row >= 0 && row < len(tl.Entities) {
				return cell.Foreground(lipgloss.Color(tl.Entities[row].Color))
			}
			return cell
		})
	for _, e := range tl.Entities {
		t.Row(e.Name, "■ "+e.Color, strconv.Itoa(e.Count))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d events, %d entities", len(tl.Events), len(tl.Entities))
	if n := tl.Issues(); n > 0 {
		fmt.Fprintf(out, ", %d cells defaulted in %d rows", n, len(tl.Reports))
	}
	fmt.Fprintln(out)
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
