package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bbtree/batch"
	"github.com/katalvlaran/bbtree/render"
	"github.com/katalvlaran/bbtree/trace"
)

func (a *app) batchCommand() *cobra.Command {
	var (
		parallel int
		outdir   string
		format   string
	)
	cmd := &cobra.Command{
		Use:   "batch <jobs.yaml>",
		Short: "Build many trees concurrently from a YAML job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			jobs, err := batch.Parse(file)
			if err != nil {
				return err
			}

			opts := batch.Options{Parallel: parallel, MaxItems: a.cfg.Limits.MaxItems}
			if outdir != "" {
				f, err := render.ParseFormat(format)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(outdir, 0o755); err != nil {
					return err
				}
				r := render.New(render.Graphviz{Binary: a.cfg.Render.Graphviz, Timeout: a.cfg.Render.Timeout})
				opts.Emit = func(ctx context.Context, job batch.Job, rec *trace.Recorder) error {
					return writeRendered(ctx, r, filepath.Join(outdir, job.Name+"."+f.Ext()), rec, f)
				}
			}

			a.log.Info().Int("jobs", len(jobs)).Int("parallel", parallel).Msg("batch started")
			results, err := batch.Run(cmd.Context(), jobs, opts)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					a.log.Warn().Str("job", r.Job.Name).Err(r.Err).Msg("job failed")
				}
			}
			if err := printResults(cmd, results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(results))
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", runtime.NumCPU(), "Maximum concurrent builds")
	cmd.Flags().StringVar(&outdir, "outdir", "", "Write one rendered file per job into this directory")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "Format of files written to --outdir")

	return cmd
}

func writeRendered(ctx context.Context, r *render.Renderer, path string, rec *trace.Recorder, f render.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(ctx, file, rec, f); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func printResults(cmd *cobra.Command, results []batch.Result) error {
	data := pterm.TableData{{"job", "nodes", "pruned", "incumbent", "items", "elapsed", "error"}}
	for _, r := range results {
		row := []string{r.Job.Name, "-", "-", "-", "-", r.Elapsed.String(), ""}
		if r.Err != nil {
			row[6] = r.Err.Error()
		} else {
			row[1] = strconv.Itoa(r.Stats.Nodes)
			row[2] = strconv.Itoa(r.Stats.Pruned)
			if r.Solved {
				row[3] = trace.FormatPotential(r.Solution.Incumbent, -1)
				row[4] = formatItems(r.Solution.Items)
			}
		}
		data = append(data, row)
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)

	return err
}
