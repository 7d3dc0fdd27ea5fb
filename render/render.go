package render

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/katalvlaran/bbtree/trace"
)

// Renderer writes recorded trees in any Format.
type Renderer struct {
	Graphviz Graphviz
	DOT      trace.DOTOptions
}

// New returns a Renderer with the default DOT options.
func New(g Graphviz) *Renderer {
	return &Renderer{Graphviz: g, DOT: trace.DefaultDOTOptions()}
}

// Render writes rec to w in format f.
func (r *Renderer) Render(ctx context.Context, w io.Writer, rec *trace.Recorder, f Format) error {
	switch f {
	case FormatDOT:
		return errors.Wrap(trace.WriteDOT(w, rec, r.DOT), "write dot")
	case FormatJSON:
		return errors.Wrap(trace.WriteJSON(w, rec), "write json")
	case FormatText:
		out, err := trace.Text(rec)
		if err != nil {
			return errors.Wrap(err, "render text")
		}
		_, err = io.WriteString(w, out)

		return errors.Wrap(err, "write text")
	}

	if !f.External() {
		return errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
	var src bytes.Buffer
	if err := trace.WriteDOT(&src, rec, r.DOT); err != nil {
		return errors.Wrap(err, "write dot")
	}
	out, err := r.Graphviz.Render(ctx, src.Bytes(), f)
	if err != nil {
		return err
	}
	_, err = w.Write(out)

	return errors.Wrap(err, "write output")
}

// Bytes is Render into a fresh buffer.
func (r *Renderer) Bytes(ctx context.Context, rec *trace.Recorder, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, rec, f); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
