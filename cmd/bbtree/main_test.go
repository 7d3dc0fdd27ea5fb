package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	pterm.DisableStyling()
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--loglevel", "error"}, args...))
	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "bbtree "+Version))
}

func TestSolve_Text(t *testing.T) {
	out, summary, err := run(t, "solve", "--weights", "2 3 4", "--values", "3,4,5", "--capacity", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "#1  w=0 s=0 p=7.5")
	assert.Contains(t, out, "+3 #4  w=9 s=12 p=12 [infeasible]")

	assert.Contains(t, summary, "incumbent")
	assert.Contains(t, summary, "1 2")
	assert.Contains(t, summary, "5 / 7")
}

func TestSolve_DOTToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.dot")
	out, _, err := run(t, "solve", "--weights", "2 3 4", "--values", "3 4 5", "--capacity", "5",
		"--format", "dot", "--output", path, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("digraph structs {")))
	assert.Equal(t, 3, bytes.Count(data, []byte("fillcolor=deeppink")))
}

func TestSolve_RandomJSON(t *testing.T) {
	out, _, err := run(t, "solve", "--random", "6", "--seed", "11", "-f", "json", "-q")
	require.NoError(t, err)

	var doc struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.Nodes)
	assert.Len(t, doc.Edges, len(doc.Nodes)-1)

	again, _, err := run(t, "solve", "--random", "6", "--seed", "11", "-f", "json", "-q")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed, same tree")
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := run(t, "solve", "--weights", "1 2")
	assert.ErrorContains(t, err, "--random or both")

	_, _, err = run(t, "solve", "--weights", "1 x", "--values", "1 2", "--capacity", "2")
	assert.ErrorContains(t, err, "--weights")

	_, _, err = run(t, "solve", "--weights", "1", "--values", "1", "--format", "gif")
	assert.Error(t, err)

	_, _, err = run(t, "solve", "--random", "3", "--weights", "1")
	assert.Error(t, err)

	_, _, err = run(t, "solve", "--weights", "1 2", "--values", "1", "--capacity", "2")
	assert.ErrorContains(t, err, "invalid instance")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(jobs, []byte(`
jobs:
  - name: reference
    weights: [2, 3, 4]
    values: [3, 4, 5]
    capacity: 5
  - name: random
    random: 5
    seed: 2
`), 0o600))
	outdir := filepath.Join(dir, "out")

	out, _, err := run(t, "batch", jobs, "--parallel", "2", "--outdir", outdir)
	require.NoError(t, err)
	assert.Contains(t, out, "reference")
	assert.Contains(t, out, "random")
	assert.Contains(t, out, "incumbent")

	data, err := os.ReadFile(filepath.Join(outdir, "reference.dot"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("digraph structs {")))
	assert.FileExists(t, filepath.Join(outdir, "random.dot"))
}

func TestBatch_FailedJob(t *testing.T) {
	jobs := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(jobs, []byte(`
jobs:
  - name: ok
    random: 3
  - name: broken
    weights: [0]
    values: [1]
    capacity: 1
`), 0o600))

	out, _, err := run(t, "batch", jobs)
	assert.EqualError(t, err, "1 of 2 jobs failed")
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "invalid instance")
}

func TestSolve_MaxItems(t *testing.T) {
	_, _, err := run(t, "solve", "--random", "11")
	assert.EqualError(t, err, "11 items exceed limits.max_items (10)")

	_, _, err = run(t, "solve", "--weights", "1 1 1 1 1 1 1 1 1 1 1", "--values", "1", "--capacity", "3")
	assert.ErrorContains(t, err, "11 items exceed")

	t.Setenv("BBTREE_LIMITS_MAX_ITEMS", "2")
	_, _, err = run(t, "solve", "--weights", "1 2 3", "--values", "1 2 3", "--capacity", "3", "-q")
	assert.ErrorContains(t, err, "3 items exceed limits.max_items (2)")
	_, _, err = run(t, "solve", "--weights", "1 2", "--values", "1 2", "--capacity", "3", "-q")
	assert.NoError(t, err)
}

func TestBatch_MaxItems(t *testing.T) {
	jobs := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(jobs, []byte(`
jobs:
  - name: ok
    random: 4
  - name: huge
    random: 30
`), 0o600))

	out, _, err := run(t, "batch", jobs)
	assert.EqualError(t, err, "1 of 2 jobs failed")
	assert.Contains(t, out, "huge has 30, limit 10")
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestCloseInto(t *testing.T) {
	flush := errors.New("flush failed")

	var err error
	closeInto(closer{flush}, &err)
	assert.ErrorIs(t, err, flush)

	renderErr := errors.New("render failed")
	err = renderErr
	closeInto(closer{flush}, &err)
	assert.ErrorIs(t, err, renderErr, "the first error wins")

	err = nil
	closeInto(closer{}, &err)
	assert.NoError(t, err)
}

func TestParseInts(t *testing.T) {
	got, err := parseInts(" 2, 3\t4 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, got)

	_, err = parseInts("2 three")
	assert.Error(t, err)
}
