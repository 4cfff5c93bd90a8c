package search

import (
	"context"
	"os"
	"path/filepath"

	"autopie/internal/bitmask"
	"autopie/internal/oracle"
	"autopie/internal/reduce/variant"
)

// Delta implements spec.md §4.7: 1-minimal n-ary partition delta
// debugging. It starts from the all-ones mask (which trivially
// reproduces the crash, since it is the original program) and repeatedly
// tries to shrink it by testing partitions and their complements,
// growing the partition count when neither shrinks the mask.
type Delta struct{}

// Run implements Strategy.
func (d *Delta) Run(ctx context.Context, deps Deps) (string, error) {
	length := deps.MapResult.Len
	mask := bitmask.Full(length)
	n := 2
	iteration := 0

	for {
		ones := countOnes(mask)
		if n > ones {
			break // 1-minimal relative to code-unit granularity
		}

		removable := removableBits(mask, deps.Graph)
		partitions := partition(removable, n)

		shrunk, err := d.tryPartitions(ctx, deps, mask, partitions, &iteration)
		if err != nil {
			return "", err
		}
		if shrunk != nil {
			mask = shrunk
			n = 2
			continue
		}

		shrunk, err = d.tryComplements(ctx, deps, mask, partitions, &iteration)
		if err != nil {
			return "", err
		}
		if shrunk != nil {
			mask = shrunk
			n = max(n-1, 2)
			continue
		}

		if n >= ones {
			break // every single-unit partition tried: 1-minimal
		}
		n = min(2*n, ones)
	}

	return d.finalize(ctx, deps, mask, &iteration)
}

func (d *Delta) tryPartitions(ctx context.Context, deps Deps, m *bitmask.Mask, partitions [][]int, iteration *int) (*bitmask.Mask, error) {
	for _, p := range partitions {
		candidate := maskKeeping(m.Len(), deps.Graph, p)
		confirmed, err := d.test(ctx, deps, candidate, iteration)
		if err != nil {
			return nil, err
		}
		if confirmed {
			return candidate, nil
		}
	}
	return nil, nil
}

func (d *Delta) tryComplements(ctx context.Context, deps Deps, m *bitmask.Mask, partitions [][]int, iteration *int) (*bitmask.Mask, error) {
	for _, p := range partitions {
		complement := complementOf(m, deps.Graph, p)
		confirmed, err := d.test(ctx, deps, complement, iteration)
		if err != nil {
			return nil, err
		}
		if confirmed {
			return complement, nil
		}
	}
	return nil, nil
}

// test materializes a candidate mask (if lax-valid) and asks the oracle
// whether it still reproduces the crash.
func (d *Delta) test(ctx context.Context, deps Deps, candidate *bitmask.Mask, iteration *int) (bool, error) {
	if valid, _ := bitmask.Validate(candidate, deps.Graph, bitmask.Lax); !valid {
		return false, nil
	}
	src, lines, err := variant.Print(deps.TU, deps.Src, deps.Graph, deps.MapResult, candidate)
	if err != nil {
		deps.RC.Tracef("delta: iteration %d: printing failed: %v", *iteration, err)
		return false, nil
	}
	name := oracle.CandidateName(*iteration, deps.BaseName, deps.Ext)
	path := filepath.Join(deps.RC.TempDir, name)
	*iteration++
	if err := os.WriteFile(path, src, 0644); err != nil {
		deps.RC.Tracef("delta: writing %s failed: %v", path, err)
		return false, nil
	}
	dumpDot(deps, *iteration-1)
	return deps.Oracle.Confirm(ctx, path, lines)
}

func (d *Delta) finalize(ctx context.Context, deps Deps, m *bitmask.Mask, iteration *int) (string, error) {
	src, lines, err := variant.Print(deps.TU, deps.Src, deps.Graph, deps.MapResult, m)
	if err != nil {
		return "", err
	}
	name := oracle.CandidateName(*iteration, deps.BaseName, deps.Ext)
	path := filepath.Join(deps.RC.TempDir, name)
	*iteration++
	if err := os.WriteFile(path, src, 0644); err != nil {
		return "", err
	}
	confirmed, err := deps.Oracle.Confirm(ctx, path, lines)
	if err != nil {
		return "", err
	}
	if !confirmed {
		return "", oracle.ErrNoConfirmation
	}
	if err := os.Rename(path, deps.OutputPath); err != nil {
		return "", err
	}
	return deps.OutputPath, nil
}

func countOnes(m *bitmask.Mask) int {
	n := 0
	for i := 0; i < m.Len(); i++ {
		if m.Get(i) {
			n++
		}
	}
	return n
}

// removableBits returns the indices of m's 1-bits that are not criterion
// units: only these are ever candidates for partitioning, since
// criterion bits must stay set in every mask tested (spec.md §4.7
// "still respecting the criterion").
func removableBits(m *bitmask.Mask, g interface{ IsCriterion(int) bool }) []int {
	var out []int
	for i := 0; i < m.Len(); i++ {
		if m.Get(i) && !g.IsCriterion(i) {
			out = append(out, i)
		}
	}
	return out
}

// partition splits bits into n roughly-equal, contiguous groups.
func partition(bits []int, n int) [][]int {
	if n <= 0 || len(bits) == 0 {
		return nil
	}
	if n > len(bits) {
		n = len(bits)
	}
	out := make([][]int, n)
	base := len(bits) / n
	extra := len(bits) % n
	pos := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		out[i] = append([]int(nil), bits[pos:pos+size]...)
		pos += size
	}
	return out
}

// maskKeeping returns a mask that keeps every criterion bit plus the
// bits named in group, nothing else.
func maskKeeping(length int, g interface {
	IsCriterion(int) bool
	CriterionIndices() []int
}, group []int) *bitmask.Mask {
	m := bitmask.New(length)
	for _, idx := range g.CriterionIndices() {
		m.Set(idx, true)
	}
	for _, idx := range group {
		m.Set(idx, true)
	}
	return m
}

// complementOf returns a copy of m with every bit in group cleared
// (group is always composed of removable, non-criterion bits, so the
// criterion survives untouched).
func complementOf(m *bitmask.Mask, g interface{ IsCriterion(int) bool }, group []int) *bitmask.Mask {
	c := m.Clone()
	for _, idx := range group {
		c.Set(idx, false)
	}
	return c
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
