package batch_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bbtree/batch"
	"github.com/katalvlaran/bbtree/knapsack"
	"github.com/katalvlaran/bbtree/trace"
)

const jobFile = `
jobs:
  - name: reference
    weights: [2, 3, 4]
    values: [3, 4, 5]
    capacity: 5
  - random: 6
    seed: 3
  - name: broken
    weights: [1, 0]
    values: [1, 1]
    capacity: 2
`

func TestParse(t *testing.T) {
	jobs, err := batch.Parse(strings.NewReader(jobFile))
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "reference", jobs[0].Name)
	assert.Equal(t, "job-2", jobs[1].Name)
	assert.Equal(t, 6, jobs[1].Random)
	assert.Equal(t, int64(3), jobs[1].Seed)
}

func TestParse_Errors(t *testing.T) {
	_, err := batch.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, batch.ErrNoJobs)

	_, err = batch.Parse(strings.NewReader("jobs: []\n"))
	assert.ErrorIs(t, err, batch.ErrNoJobs)

	_, err = batch.Parse(strings.NewReader("jobs:\n  - name: x\n    colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestJob_Instance(t *testing.T) {
	_, err := batch.Job{Name: "x", Random: 3, Weights: []int64{1}}.Instance()
	assert.ErrorIs(t, err, batch.ErrAmbiguousJob)

	a, err := batch.Job{Random: 5, Seed: 9}.Instance()
	require.NoError(t, err)
	b, err := batch.Job{Random: 5, Seed: 9}.Instance()
	require.NoError(t, err)
	assert.Equal(t, a.Items(), b.Items(), "random jobs are reproducible")
}

func TestRun(t *testing.T) {
	jobs, err := batch.Parse(strings.NewReader(jobFile))
	require.NoError(t, err)

	var emitted atomic.Int32
	results, err := batch.Run(context.Background(), jobs, batch.Options{
		Parallel: 2,
		Emit: func(_ context.Context, job batch.Job, rec *trace.Recorder) error {
			emitted.Add(1)
			assert.Positive(t, rec.Len(), job.Name)
			return nil
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	ref := results[0]
	require.NoError(t, ref.Err)
	assert.True(t, ref.Solved)
	assert.Equal(t, 7, ref.Stats.Nodes)
	assert.Equal(t, []int{0, 1}, ref.Solution.Items)

	assert.NoError(t, results[1].Err)
	assert.Equal(t, "job-2", results[1].Job.Name)

	assert.ErrorIs(t, results[2].Err, knapsack.ErrInvalidInstance)
	assert.Equal(t, int32(2), emitted.Load())
}

func TestRun_EmitErrorIsPerJob(t *testing.T) {
	jobs := []batch.Job{{Name: "a", Random: 3}, {Name: "b", Random: 4}}
	boom := errors.New("boom")
	results, err := batch.Run(context.Background(), jobs, batch.Options{
		Emit: func(_ context.Context, job batch.Job, _ *trace.Recorder) error {
			if job.Name == "a" {
				return boom
			}
			return nil
		},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.NoError(t, results[1].Err)
}

func TestRun_MaxItems(t *testing.T) {
	jobs := []batch.Job{
		{Name: "small", Random: 4},
		{Name: "big", Random: 30},
		{Name: "listed", Weights: []int64{1, 2, 3}, Values: []int64{1, 2, 3}, Capacity: 3},
	}
	var emitted atomic.Int32
	results, err := batch.Run(context.Background(), jobs, batch.Options{
		Parallel: 2,
		MaxItems: 3,
		Emit: func(context.Context, batch.Job, *trace.Recorder) error {
			emitted.Add(1)
			return nil
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results[:2] {
		assert.ErrorIs(t, r.Err, batch.ErrTooManyItems, r.Job.Name)
		assert.Zero(t, r.Stats.Nodes, r.Job.Name)
	}
	assert.Contains(t, results[1].Err.Error(), "big has 30, limit 3")
	assert.NoError(t, results[2].Err, "limit is inclusive")
	assert.Equal(t, int32(1), emitted.Load())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := batch.Run(ctx, []batch.Job{{Random: 3}, {Random: 4}}, batch.Options{Parallel: 1})
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestParse_DerivesSeeds(t *testing.T) {
	jobs, err := batch.Parse(strings.NewReader("jobs:\n  - random: 4\n  - random: 4\n"))
	require.NoError(t, err)
	assert.NotZero(t, jobs[0].Seed)
	assert.NotEqual(t, jobs[0].Seed, jobs[1].Seed)

	again, err := batch.Parse(strings.NewReader("jobs:\n  - random: 4\n  - random: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, jobs, again)
}
