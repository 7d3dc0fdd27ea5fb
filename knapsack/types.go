package knapsack

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxItems is the largest number of items an Instance can hold.
// Decided items are tracked in a 64-bit Set.
const MaxItems = 64

// NoItem is returned by DensityRank when every item has been decided.
const NoItem = -1

var (
	// ErrInvalidInstance is returned by New for malformed inputs: mismatched
	// weight/value lengths, a non-positive weight, a negative capacity, or
	// more than MaxItems items. Detailed errors wrap it.
	ErrInvalidInstance = errors.New("knapsack: invalid instance")

	// ErrNilInstance is returned by Build when the instance pointer is nil.
	ErrNilInstance = errors.New("knapsack: instance is nil")
)

// Item is a single knapsack item.
type Item struct {
	// Weight is strictly positive; it is the divisor of the item's density.
	Weight int64

	// Value is the score gained by including the item.
	Value int64
}

// Set is a bitset of item indexes already decided (included or excluded).
type Set uint64

// Has reports whether item i is in the set.
func (s Set) Has(i int) bool { return i >= 0 && i < MaxItems && s&(1<<uint(i)) != 0 }

// With returns a copy of s with item i added.
func (s Set) With(i int) Set { return s | 1<<uint(i) }

// Len returns the number of items in the set.
func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }

// Indexes returns the items in the set in ascending order.
func (s Set) Indexes() []int {
	out := make([]int, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros64(v))
	}

	return out
}

// Kind classifies a node by what happened when it was evaluated.
type Kind uint8

const (
	// KindBranch nodes were expanded into an include and an exclude child.
	KindBranch Kind = iota
	// KindExhausted nodes had no undecided items left; they feed the incumbent.
	KindExhausted
	// KindInfeasible nodes exceed the capacity.
	KindInfeasible
	// KindPruned nodes have a potential strictly below the incumbent.
	KindPruned
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindExhausted:
		return "exhausted"
	case KindInfeasible:
		return "infeasible"
	case KindPruned:
		return "pruned"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for _, c := range []Kind{KindBranch, KindExhausted, KindInfeasible, KindPruned} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}

	return fmt.Errorf("knapsack: unknown kind %q", b)
}

// Leaf reports whether nodes of this kind never get children.
func (k Kind) Leaf() bool { return k != KindBranch }

// Style returns the rendering style of the kind. Infeasible and pruned nodes
// share the dominated style.
func (k Kind) Style() Style {
	if k == KindInfeasible || k == KindPruned {
		return StyleDominated
	}

	return StyleNormal
}

// Style is the visual style a renderer applies to a node.
type Style uint8

const (
	// StyleNormal nodes render unfilled.
	StyleNormal Style = iota
	// StyleDominated nodes render filled with the highlight color.
	StyleDominated
)

// String returns "normal" or "dominated".
func (s Style) String() string {
	if s == StyleDominated {
		return "dominated"
	}

	return "normal"
}

// MarshalText encodes the style by name.
func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes "normal" or "dominated".
func (s *Style) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*s = StyleNormal
	case "dominated":
		*s = StyleDominated
	default:
		return fmt.Errorf("knapsack: unknown style %q", b)
	}

	return nil
}

// NodeRecord is what a Sink learns about a node when it is created.
type NodeRecord struct {
	ID        int     `json:"id"`
	Weight    int64   `json:"weight"`
	Score     int64   `json:"score"`
	Potential float64 `json:"potential"`
	Bounded   bool    `json:"bounded"`
	Style     Style   `json:"style"`
	Kind      Kind    `json:"kind"`
}

// EdgeRecord links a parent to a child. Label is "+k" for the include branch
// and "-k" for the exclude branch, with k the 1-based item index.
type EdgeRecord struct {
	Parent int    `json:"parent"`
	Child  int    `json:"child"`
	Label  string `json:"label"`
}

// Node is one state of the search tree.
//
// Everything except Include and Exclude is fixed when the node is created.
type Node struct {
	// ID is 1-based and follows creation order (depth-first, include first).
	ID int

	// Parent is the ID of the parent node, 0 for the root.
	Parent int

	// Weight and Score are the cumulative weight and value of included items.
	Weight int64
	Score  int64

	// Used holds every item decided on the path from the root.
	Used Set

	// Potential is the bound of this partial state.
	Potential float64

	// Bounded is set when Potential adds a remaining item's density to the
	// score; otherwise Potential equals Score.
	Bounded bool

	// Chosen is the item this node branches on, NoItem if none remain.
	Chosen int

	// Kind is the outcome of evaluating the node.
	Kind Kind

	// Label is the incoming edge label ("" for the root).
	Label string

	// Depth is the distance from the root; it always equals Used.Len().
	Depth int

	// Include and Exclude are the child IDs, 0 when absent.
	Include int
	Exclude int
}

// Record returns the sink view of n.
func (n *Node) Record() NodeRecord {
	return NodeRecord{
		ID:        n.ID,
		Weight:    n.Weight,
		Score:     n.Score,
		Potential: n.Potential,
		Bounded:   n.Bounded,
		Style:     n.Kind.Style(),
		Kind:      n.Kind,
	}
}

// Leaf reports whether n has no children.
func (n *Node) Leaf() bool { return n.Include == 0 && n.Exclude == 0 }
