// Command chartkit runs the chart statistics, axis and touch algorithms over a
// CSV or XLSX chart file.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/chartkit/axis"
	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/render"
	"git.sr.ht/~whereswaldon/chartkit/stats"
	"git.sr.ht/~whereswaldon/chartkit/touch"
)

const (
	envVariant = "CHARTKIT_VARIANT"
	envLabels  = "CHARTKIT_LABELS"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed loading .env file: %v", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// envInt returns the integer value of the named environment variable, or def
// if it is unset or malformed.
func envInt(name string, def int) int {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", name, raw, err)
		return def
	}
	return v
}

func envString(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var variantName string
	root := &cobra.Command{
		Use:          "chartkit",
		Short:        "Inspect chart files with the chartkit core",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&variantName, "variant", envString(envVariant, chart.StackedBar.String()),
		"Chart variant: line, multiline, bar, grouped, stacked, pie, doughnut")

	load := func(path string) (*chart.Data, error) {
		variant, err := chart.ParseVariant(variantName)
		if err != nil {
			return nil, err
		}
		return backend.LoadChart(path, variant)
	}

	root.AddCommand(newStatsCmd(load), newLabelsCmd(load), newLocateCmd(load), newRenderCmd(load))
	return root
}

type loader func(path string) (*chart.Data, error)

func newStatsCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Print summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := load(args[0])
			if err != nil {
				return err
			}
			s, err := stats.Compute(d.Sets)
			if err != nil {
				return fmt.Errorf("failed computing statistics: %w", err)
			}
			return writeSummary(cmd.OutOrStdout(), s, stats.IsGreaterThanTwo(d.Sets))
		},
	}
}

func writeSummary(w io.Writer, s stats.Summary, greaterThanTwo bool) error {
	_, err := fmt.Fprintf(w, "max: %s\nmin: %s\naverage: %s\nrange: %s\nstack max: %s\nstack average: %s\ngreater than two: %t\n",
		formatValue(s.Max), formatValue(s.Min), formatValue(s.Average), formatValue(s.Range),
		formatValue(s.StackMax), formatValue(s.StackAverage), greaterThanTwo)
	return err
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newLabelsCmd(load loader) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "labels FILE",
		Short: "Print Y-axis labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := load(args[0])
			if err != nil {
				return err
			}
			s, err := stats.Compute(d.Sets)
			if err != nil {
				return fmt.Errorf("failed computing statistics: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, l := range axis.YLabels(s, n, axis.DefaultBaseline(d.Variant)) {
				if _, err := fmt.Fprintln(out, formatValue(l)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "intervals", "n", envInt(envLabels, 5), "Number of label intervals")
	return cmd
}

func newLocateCmd(load loader) *cobra.Command {
	var x, y, width, height float64
	cmd := &cobra.Command{
		Use:   "locate FILE",
		Short: "Resolve a touch position to data points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := load(args[0])
			if err != nil {
				return err
			}
			r := touch.Size(width, height)
			touch.Resolve(d, touch.Pt(x, y), r)
			return writeOverlay(cmd.OutOrStdout(), d, r)
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Touch X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Touch Y coordinate")
	cmd.Flags().Float64Var(&width, "width", 300, "Plot width")
	cmd.Flags().Float64Var(&height, "height", 300, "Plot height")
	return cmd
}

func writeOverlay(w io.Writer, d *chart.Data, r touch.Rect) error {
	if len(d.Overlay.Points) == 0 {
		_, err := fmt.Fprintln(w, "no match")
		return err
	}
	for _, p := range d.Overlay.Points {
		loc, ok := touch.PointLocation(d, p, r)
		if !ok {
			continue
		}
		label := p.PointLabel
		if label == "" {
			label = p.XAxisLabel
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t(%.2f, %.2f)\n", label, formatValue(p.Value), loc.X, loc.Y); err != nil {
			return err
		}
	}
	return nil
}

func newRenderCmd(load loader) *cobra.Command {
	var output string
	var width, height int
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a chart to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := load(args[0])
			if err != nil {
				return err
			}
			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			return render.PNG(out, d, width, height)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&width, "width", 800, "Image width")
	cmd.Flags().IntVar(&height, "height", 600, "Image height")
	return cmd
}
