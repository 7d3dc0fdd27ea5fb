package knapsack

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilTree is returned by Walk when the tree pointer is nil.
var ErrNilTree = errors.New("knapsack: tree is nil")

// WalkOption configures Walk.
type WalkOption func(*WalkOptions)

// WalkOptions holds the hooks and limits of a Walk.
type WalkOptions struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is called when a node is entered (pre-order).
	// Returning an error aborts the walk.
	OnVisit func(n *Node) error

	// OnExit, if non-nil, is called after both subtrees of a node were
	// walked (post-order). Returning an error aborts the walk.
	OnExit func(n *Node) error

	// MaxDepth, if non-negative, skips nodes deeper than the limit.
	// Default is -1 (no limit).
	MaxDepth int
}

// DefaultWalkOptions returns WalkOptions with a background context, no hooks
// and no depth limit.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		Ctx:      context.Background(),
		OnVisit:  nil,
		OnExit:   nil,
		MaxDepth: -1,
	}
}

// WithContext sets the context used for cancellation. Nil is ignored.
func WithContext(ctx context.Context) WalkOption {
	return func(o *WalkOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as the pre-order hook.
func WithOnVisit(fn func(n *Node) error) WalkOption {
	return func(o *WalkOptions) {
		o.OnVisit = fn
	}
}

// WithOnExit installs fn as the post-order hook.
func WithOnExit(fn func(n *Node) error) WalkOption {
	return func(o *WalkOptions) {
		o.OnExit = fn
	}
}

// WithMaxDepth limits the walk to nodes at depth <= limit.
func WithMaxDepth(limit int) WalkOption {
	return func(o *WalkOptions) {
		o.MaxDepth = limit
	}
}

type walker struct {
	tree *Tree
	opts WalkOptions
}

// Walk visits t depth-first, include child before exclude child, which is
// the order nodes were created in. Pre-order visits therefore see IDs in
// ascending order.
//
// Errors:
//   - ErrNilTree if t is nil.
//   - context errors if the context is done.
//   - hook errors, wrapped with the node ID.
func Walk(t *Tree, opts ...WalkOption) error {
	if t == nil {
		return ErrNilTree
	}
	wopts := DefaultWalkOptions()
	for _, fn := range opts {
		fn(&wopts)
	}
	w := &walker{tree: t, opts: wopts}

	return w.traverse(1)
}

func (w *walker) traverse(id int) error {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	n := w.tree.Node(id)

	// 2. Depth limit
	if w.opts.MaxDepth >= 0 && n.Depth > w.opts.MaxDepth {
		return nil
	}

	// 3. Pre-order hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(n); err != nil {
			return fmt.Errorf("knapsack: OnVisit hook for node %d: %w", id, err)
		}
	}

	// 4. Children, include first
	var child int
	for _, child = range [2]int{n.Include, n.Exclude} {
		if child == 0 {
			continue
		}
		if err := w.traverse(child); err != nil {
			return err
		}
	}

	// 5. Post-order hook
	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(n); err != nil {
			return fmt.Errorf("knapsack: OnExit hook for node %d: %w", id, err)
		}
	}

	return nil
}
