package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrGraphvizNotFound is returned when the dot binary cannot be located.
	ErrGraphvizNotFound = errors.New("render: graphviz dot binary not found")

	// ErrRenderFailed is returned when dot fails on valid input.
	ErrRenderFailed = errors.New("render: graphviz failed")
)

// DefaultBinary is the graphviz layout program looked up on PATH.
const DefaultBinary = "dot"

// Graphviz runs the dot binary. The zero value uses DefaultBinary and no
// timeout beyond the caller's context.
type Graphviz struct {
	Binary  string
	Timeout time.Duration
}

// LookupGraphviz resolves name (DefaultBinary if empty) to an executable path.
func LookupGraphviz(name string) (string, error) {
	if name == "" {
		name = DefaultBinary
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(ErrGraphvizNotFound, "%s: %v", name, err)
	}

	return path, nil
}

// Available reports whether the configured binary can be found.
func (g Graphviz) Available() bool {
	_, err := LookupGraphviz(g.Binary)

	return err == nil
}

// Render pipes src into "dot -T<format>" and returns its stdout.
// Only external formats are accepted.
func (g Graphviz) Render(ctx context.Context, src []byte, f Format) ([]byte, error) {
	if !f.External() {
		return nil, errors.Wrapf(ErrUnknownFormat, "graphviz cannot produce %q", f)
	}
	bin, err := LookupGraphviz(g.Binary)
	if err != nil {
		return nil, err
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-T"+string(f))
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrapf(ErrRenderFailed, "%s -T%s: %v", bin, f, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}

		return nil, errors.Wrapf(ErrRenderFailed, "%s -T%s: %s", bin, f, msg)
	}

	return stdout.Bytes(), nil
}
