// Package bitmask implements the per-unit keep/delete bit vector of
// spec.md §4.2, backed by github.com/willf/bitset for word-at-a-time
// bulk operations (IsFull via popcount, Increment via a ripple carry)
// instead of a hand-rolled []bool.
package bitmask

import (
	"strings"

	"github.com/willf/bitset"

	"autopie/internal/depgraph"
)

// Mode selects how Validate treats a 0-bit's dependents (spec.md §4.2).
type Mode int

const (
	// Strict requires that no descendant (by either edge relation) of a
	// deleted node survives in the mask.
	Strict Mode = iota
	// Lax ignores descendants entirely: the printing pass is responsible
	// for not double-deleting (spec.md's non-heuristic mode).
	Lax
)

// Mask is a fixed-length bit vector; bit i = 1 means "keep unit i", 0
// means "delete". Bit 0 is the most significant bit for Increment and
// Stringify purposes (spec.md §4.2).
type Mask struct {
	bits *bitset.BitSet
	n    uint
}

// New returns an all-zero mask of length n.
func New(n int) *Mask {
	return &Mask{bits: bitset.New(uint(n)), n: uint(n)}
}

// Full returns an all-one mask of length n.
func Full(n int) *Mask {
	m := New(n)
	for i := uint(0); i < m.n; i++ {
		m.bits.Set(i)
	}
	return m
}

// Len returns the mask's bit length.
func (m *Mask) Len() int { return int(m.n) }

// Get returns bit i (1 = keep).
func (m *Mask) Get(i int) bool { return m.bits.Test(uint(i)) }

// Set assigns bit i.
func (m *Mask) Set(i int, keep bool) {
	if keep {
		m.bits.Set(uint(i))
	} else {
		m.bits.Clear(uint(i))
	}
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	return &Mask{bits: m.bits.Clone(), n: m.n}
}

// IsFull reports whether every bit is 1 (spec.md §4.2).
func (m *Mask) IsFull() bool {
	return m.bits.All()
}

// Increment treats the mask as a big-endian binary integer (bit 0 is the
// most significant) and adds one, wrapping silently to all-zero on
// overflow (spec.md §4.2, testable property 9).
func (m *Mask) Increment() {
	for i := int(m.n) - 1; i >= 0; i-- {
		if !m.bits.Test(uint(i)) {
			m.bits.Set(uint(i))
			return
		}
		m.bits.Clear(uint(i))
	}
	// Carried out of bit 0: overflow, mask is now all-zero.
}

// Stringify renders the mask as '0'/'1' characters from most- to
// least-significant bit (spec.md §4.2).
func (m *Mask) Stringify() string {
	var b strings.Builder
	b.Grow(int(m.n))
	for i := uint(0); i < m.n; i++ {
		if m.bits.Test(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Validate checks a mask against a dependency graph (spec.md §4.2):
// criterion bits must always be 1; in Strict mode, every 0-bit's
// statement- and variable-descendants must also be 0; in Lax mode,
// descendants are ignored. It returns validity and the surviving
// character ratio (the fraction of the graph's corrected characters kept
// — spec.md §3 "ratio").
func Validate(m *Mask, g *depgraph.Graph, mode Mode) (bool, float64) {
	for _, idx := range g.CriterionIndices() {
		if idx < m.Len() && !m.Get(idx) {
			return false, 0
		}
	}

	if mode == Strict {
		for i := 0; i < m.Len(); i++ {
			if m.Get(i) {
				continue
			}
			for _, dep := range g.DescendantsUnion(i) {
				if dep < m.Len() && m.Get(dep) {
					return false, 0
				}
			}
		}
	}

	total := g.TotalCharacterCount()
	if total == 0 {
		return true, 0
	}

	kept := 0
	for i := 0; i < m.Len(); i++ {
		if m.Get(i) {
			kept += g.NodeInfo(i).CharCount
		}
	}
	return true, float64(kept) / float64(total)
}
