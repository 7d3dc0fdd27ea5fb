package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bbtree/gen"
	"github.com/katalvlaran/bbtree/knapsack"
	"github.com/katalvlaran/bbtree/render"
	"github.com/katalvlaran/bbtree/trace"
)

type solveFlags struct {
	weights  string
	values   string
	capacity int64
	random   int
	seed     int64
	format   string
	output   string
	quiet    bool
}

func (a *app) solveCommand() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build and render the search tree of one instance",
		Example: `  bbtree solve --weights "2 3 4" --values "3 4 5" --capacity 5
  bbtree solve --random 8 --seed 42 --format pdf --output tree.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.weights, "weights", "", "Item weights, separated by spaces or commas")
	flags.StringVar(&f.values, "values", "", "Item values, separated by spaces or commas")
	flags.Int64Var(&f.capacity, "capacity", 0, "Knapsack capacity")
	flags.IntVar(&f.random, "random", 0, "Generate a random instance with this many items")
	flags.Int64Var(&f.seed, "seed", 0, "Seed for --random (0 uses the fixed default)")
	flags.StringVarP(&f.format, "format", "f", "text", "Output format: text, dot, json, pdf, svg, png")
	flags.StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Do not print the summary")
	cmd.MarkFlagsMutuallyExclusive("random", "weights")
	cmd.MarkFlagsMutuallyExclusive("random", "values")

	return cmd
}

func (a *app) solve(cmd *cobra.Command, f solveFlags) (err error) {
	// 1. Resolve the instance
	inst, err := f.instance(a.cfg.Limits.MaxItems)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(f.format)
	if err != nil {
		return err
	}

	// 2. Build while recording
	rec := trace.NewRecorder(64)
	tree, err := knapsack.Build(inst, knapsack.WithSink(rec), knapsack.WithObserver(func(e knapsack.Event) {
		a.log.Debug().Int("node", e.Node).Float64("incumbent", e.Value).Str("event", e.Kind.String()).Msg("incumbent")
	}))
	if err != nil {
		return err
	}

	// 3. Render
	r := render.New(render.Graphviz{Binary: a.cfg.Render.Graphviz, Timeout: a.cfg.Render.Timeout})
	var out io.Writer = cmd.OutOrStdout()
	if f.output != "" {
		file, ferr := os.Create(f.output)
		if ferr != nil {
			return ferr
		}
		defer closeInto(file, &err)
		out = file
	}
	if err := r.Render(cmd.Context(), out, rec, format); err != nil {
		return err
	}

	// 4. Summarize
	stats := tree.Stats()
	a.log.Info().
		Int("items", inst.Len()).
		Int("nodes", stats.Nodes).
		Int("pruned", stats.Pruned).
		Int("infeasible", stats.Infeasible).
		Str("format", format.String()).
		Msg("tree built")
	if f.quiet {
		return nil
	}

	return printSummary(cmd.ErrOrStderr(), tree)
}

// instance resolves the flags to an instance of at most limit items.
func (f solveFlags) instance(limit int) (*knapsack.Instance, error) {
	if f.random > limit {
		return nil, tooManyItems(f.random, limit)
	}
	if f.random > 0 {
		sample, err := gen.Random(f.random, gen.WithSeed(f.seed))
		if err != nil {
			return nil, err
		}

		return sample.Instance()
	}
	if f.weights == "" || f.values == "" {
		return nil, fmt.Errorf("either --random or both --weights and --values are required")
	}
	weights, err := parseInts(f.weights)
	if err != nil {
		return nil, fmt.Errorf("--weights: %w", err)
	}
	values, err := parseInts(f.values)
	if err != nil {
		return nil, fmt.Errorf("--values: %w", err)
	}
	if n := max(len(weights), len(values)); n > limit {
		return nil, tooManyItems(n, limit)
	}

	return knapsack.New(weights, values, f.capacity)
}

func tooManyItems(n, limit int) error {
	return fmt.Errorf("%d items exceed limits.max_items (%d)", n, limit)
}

// closeInto closes c and stores its error in *err unless *err is already set.
func closeInto(c io.Closer, err *error) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}

// parseInts splits on whitespace and commas.
func parseInts(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]int64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", field)
		}
		out = append(out, v)
	}

	return out, nil
}

func printSummary(w io.Writer, tree *knapsack.Tree) error {
	stats := tree.Stats()
	data := pterm.TableData{
		{"nodes", strconv.Itoa(stats.Nodes)},
		{"branches", strconv.Itoa(stats.Branches)},
		{"exhausted", strconv.Itoa(stats.Exhausted)},
		{"infeasible", strconv.Itoa(stats.Infeasible)},
		{"pruned", strconv.Itoa(stats.Pruned)},
		{"max depth", strconv.Itoa(stats.MaxDepth)},
	}
	if sol, ok := tree.Solution(); ok {
		data = append(data,
			[]string{"incumbent", trace.FormatPotential(sol.Incumbent, -1)},
			[]string{"best node", strconv.Itoa(sol.Node)},
			[]string{"items", formatItems(sol.Items)},
			[]string{"weight / score", fmt.Sprintf("%d / %d", sol.Weight, sol.Score)},
		)
	}
	s, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)

	return err
}

// formatItems prints 1-based item numbers, matching the edge labels.
func formatItems(items []int) string {
	if len(items) == 0 {
		return "-"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = strconv.Itoa(it + 1)
	}

	return strings.Join(parts, " ")
}
