package knapsack

// Incumbent is the greatest potential seen on an exhausted node during one
// build. The zero value is unset.
//
// The original tool carried a comment claiming the search kept a minimum;
// the code kept the maximum and so does Incumbent.
type Incumbent struct {
	value float64
	set   bool
}

// Value returns the incumbent and whether one has been observed.
func (c Incumbent) Value() (float64, bool) { return c.value, c.set }

// Dominates reports whether a node with potential p must be pruned.
// An unset incumbent dominates nothing.
func (c Incumbent) Dominates(p float64) bool { return c.set && p < c.value }

// Observe offers the potential of an exhausted node. The first offer sets
// the incumbent; later offers replace it only when strictly greater.
// It reports whether the incumbent changed.
func (c *Incumbent) Observe(p float64) bool {
	if !c.set {
		c.value, c.set = p, true

		return true
	}
	if p > c.value {
		c.value = p

		return true
	}

	return false
}
