package render_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bbtree/knapsack"
	"github.com/katalvlaran/bbtree/render"
	"github.com/katalvlaran/bbtree/trace"
)

func init() {
	pterm.DisableStyling()
}

func recorded(t *testing.T) *trace.Recorder {
	t.Helper()
	inst, err := knapsack.New([]int64{2, 3, 4}, []int64{3, 4, 5}, 5)
	require.NoError(t, err)
	rec := trace.NewRecorder(8)
	_, err = knapsack.Build(inst, knapsack.WithSink(rec))
	require.NoError(t, err)

	return rec
}

// fakeDot writes an executable shell script standing in for graphviz.
func fakeDot(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "dot")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}

func TestParseFormat(t *testing.T) {
	cases := map[string]render.Format{
		"pdf":   render.FormatPDF,
		" SVG ": render.FormatSVG,
		"png":   render.FormatPNG,
		"dot":   render.FormatDOT,
		"json":  render.FormatJSON,
		"text":  render.FormatText,
		"txt":   render.FormatText,
	}
	for in, want := range cases {
		got, err := render.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := render.ParseFormat("gif")
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestFormat_Properties(t *testing.T) {
	assert.True(t, render.FormatPDF.External())
	assert.False(t, render.FormatDOT.External())
	assert.Equal(t, "txt", render.FormatText.Ext())
	assert.Equal(t, "pdf", render.FormatPDF.Ext())
	assert.Equal(t, "application/pdf", render.FormatPDF.ContentType())
	assert.Equal(t, "image/svg+xml", render.FormatSVG.ContentType())
}

func TestRenderer_InProcessFormats(t *testing.T) {
	rec := recorded(t)
	r := render.New(render.Graphviz{Binary: "definitely-not-a-graphviz-binary"})

	dot, err := r.Bytes(context.Background(), rec, render.FormatDOT)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(dot, []byte("digraph structs {")))

	js, err := r.Bytes(context.Background(), rec, render.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"nodes":[`)

	txt, err := r.Bytes(context.Background(), rec, render.FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(txt), "[infeasible]")
}

func TestRenderer_MissingGraphviz(t *testing.T) {
	rec := recorded(t)
	r := render.New(render.Graphviz{Binary: "definitely-not-a-graphviz-binary"})
	assert.False(t, r.Graphviz.Available())

	_, err := r.Bytes(context.Background(), rec, render.FormatPDF)
	assert.ErrorIs(t, err, render.ErrGraphvizNotFound)
}

func TestRenderer_PipesDOTThroughGraphviz(t *testing.T) {
	// The fake echoes its flag and then its input.
	bin := fakeDot(t, `echo "$1"; cat`)
	rec := recorded(t)
	r := render.New(render.Graphviz{Binary: bin, Timeout: 5 * time.Second})
	assert.True(t, r.Graphviz.Available())

	out, err := r.Bytes(context.Background(), rec, render.FormatSVG)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "-Tsvg\ndigraph structs {\n"))
}

func TestGraphviz_Failure(t *testing.T) {
	bin := fakeDot(t, `echo "syntax error in line 1" >&2; exit 1`)
	_, err := render.Graphviz{Binary: bin}.Render(context.Background(), []byte("digraph {"), render.FormatPNG)
	assert.ErrorIs(t, err, render.ErrRenderFailed)
	assert.Contains(t, err.Error(), "syntax error in line 1")
}

func TestGraphviz_Timeout(t *testing.T) {
	bin := fakeDot(t, `exec sleep 5`)
	g := render.Graphviz{Binary: bin, Timeout: 50 * time.Millisecond}
	_, err := g.Render(context.Background(), nil, render.FormatPDF)
	assert.ErrorIs(t, err, render.ErrRenderFailed)
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestGraphviz_RejectsInProcessFormats(t *testing.T) {
	_, err := render.Graphviz{}.Render(context.Background(), nil, render.FormatDOT)
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}
