// Package batch builds many search trees concurrently from a YAML job file.
//
// File layout:
//
//	jobs:
//	  - name: reference
//	    weights: [2, 3, 4]
//	    values: [3, 4, 5]
//	    capacity: 5
//	  - name: random-8
//	    random: 8
//	    seed: 3
//
// A job either lists its items or asks for a random instance of Random items.
// Job failures are recorded per result and never abort the other jobs.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bbtree/gen"
	"github.com/katalvlaran/bbtree/knapsack"
	"github.com/katalvlaran/bbtree/trace"
)

var (
	// ErrNoJobs is returned by Parse for a file without jobs.
	ErrNoJobs = errors.New("batch: no jobs")

	// ErrAmbiguousJob marks a job that sets both items and Random.
	ErrAmbiguousJob = errors.New("batch: job sets both items and random")

	// ErrTooManyItems marks a job above Options.MaxItems.
	ErrTooManyItems = errors.New("batch: too many items")
)

// Job is one entry of a batch file.
type Job struct {
	Name     string  `yaml:"name" json:"name"`
	Weights  []int64 `yaml:"weights,omitempty" json:"weights,omitempty"`
	Values   []int64 `yaml:"values,omitempty" json:"values,omitempty"`
	Capacity int64   `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	Random   int     `yaml:"random,omitempty" json:"random,omitempty"`
	Seed     int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// File is the top-level YAML document.
type File struct {
	Jobs []Job `yaml:"jobs"`
}

// Parse decodes a batch file. Unknown keys are rejected; unnamed jobs are
// named "job-<n>" (1-based). Random jobs without a seed get one derived from
// their position, so they differ from each other but not between runs.
func Parse(r io.Reader) ([]Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoJobs
		}

		return nil, fmt.Errorf("batch: parse: %w", err)
	}
	if len(f.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	for i := range f.Jobs {
		if f.Jobs[i].Name == "" {
			f.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
		if f.Jobs[i].Random > 0 && f.Jobs[i].Seed == 0 {
			f.Jobs[i].Seed = gen.DeriveSeed(0, uint64(i+1))
		}
	}

	return f.Jobs, nil
}

// Len returns the number of items the job asks for.
func (j Job) Len() int {
	if j.Random > 0 {
		return j.Random
	}

	return max(len(j.Weights), len(j.Values))
}

// Instance resolves the job to a validated instance.
func (j Job) Instance() (*knapsack.Instance, error) {
	if j.Random > 0 {
		if len(j.Weights) > 0 || len(j.Values) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousJob, j.Name)
		}
		sample, err := gen.Random(j.Random, gen.WithSeed(j.Seed))
		if err != nil {
			return nil, err
		}

		return sample.Instance()
	}

	return knapsack.New(j.Weights, j.Values, j.Capacity)
}

// Result is the outcome of one job.
type Result struct {
	Job      Job
	Stats    knapsack.Stats
	Solution knapsack.Solution
	Solved   bool
	Elapsed  time.Duration
	Err      error
}

// EmitFunc receives every successfully built tree, e.g. to render it.
type EmitFunc func(ctx context.Context, job Job, rec *trace.Recorder) error

// Options tunes Run.
type Options struct {
	// Parallel caps concurrent builds; values below 1 mean one.
	Parallel int

	// MaxItems rejects larger jobs with ErrTooManyItems before building;
	// values below 1 leave only knapsack.MaxItems in force.
	MaxItems int

	// Emit, if set, is called once per built tree from the worker goroutine.
	Emit EmitFunc
}

// Run builds every job and returns results in job order. The returned error
// is non-nil only when ctx is cancelled.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Job: job, Err: err}
				return err
			}
			results[i] = runOne(gctx, job, opts)

			return nil
		})
	}
	err := g.Wait()

	return results, err
}

func runOne(ctx context.Context, job Job, opts Options) (res Result) {
	res.Job = job
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	if opts.MaxItems > 0 && job.Len() > opts.MaxItems {
		res.Err = fmt.Errorf("%w: %s has %d, limit %d", ErrTooManyItems, job.Name, job.Len(), opts.MaxItems)
		return res
	}

	inst, err := job.Instance()
	if err != nil {
		res.Err = err
		return res
	}
	rec := trace.NewRecorder(64)
	tree, err := knapsack.Build(inst, knapsack.WithSink(rec))
	if err != nil {
		res.Err = err
		return res
	}
	res.Stats = tree.Stats()
	res.Solution, res.Solved = tree.Solution()

	if opts.Emit != nil {
		if err := opts.Emit(ctx, job, rec); err != nil {
			res.Err = fmt.Errorf("emit %s: %w", job.Name, err)
		}
	}

	return res
}
