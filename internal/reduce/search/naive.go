package search

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"autopie/internal/bitmask"
	"autopie/internal/oracle"
	"autopie/internal/reduce/variant"
)

// Naive implements spec.md §4.6: enumerate every bitmask once, bucket
// the strict-valid ones by surviving ratio into EpochCount equal-width
// bins over (0, Ratio] plus two overflow bins, then test bins smallest
// ratio first, validating the whole bin against the oracle before moving
// on.
type Naive struct {
	Ratio      float64 // target ratio r ∈ (0,1]
	EpochCount int      // E, default 5
}

type binnedMask struct {
	mask  *bitmask.Mask
	ratio float64
}

// Run implements Strategy.
func (n *Naive) Run(ctx context.Context, deps Deps) (string, error) {
	epochs := n.EpochCount
	if epochs <= 0 {
		epochs = 5
	}
	ratio := n.Ratio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	bins, overflowAboveTarget, overflowDegenerate := n.bucket(deps, epochs, ratio)
	deps.RC.Tracef("naive: %d above-target masks, %d degenerate masks set aside (never searched)",
		len(overflowAboveTarget), len(overflowDegenerate))

	for epoch := 0; epoch < epochs; epoch++ {
		bin := bins[epoch]
		if len(bin) == 0 {
			continue
		}
		sort.Slice(bin, func(i, j int) bool { return bin[i].ratio < bin[j].ratio })

		if !deps.RC.KeepTemp {
			clearDir(deps.RC.TempDir)
		}

		var candidates []oracle.Candidate
		for i, bm := range bin {
			src, lines, err := variant.Print(deps.TU, deps.Src, deps.Graph, deps.MapResult, bm.mask)
			if err != nil {
				deps.RC.Tracef("naive: epoch %d variant %d: printing failed: %v", epoch, i, err)
				continue
			}
			name := oracle.CandidateName(i, deps.BaseName, deps.Ext)
			path := filepath.Join(deps.RC.TempDir, name)
			if err := os.WriteFile(path, src, 0644); err != nil {
				deps.RC.Tracef("naive: epoch %d variant %d: write failed: %v", epoch, i, err)
				continue
			}
			candidates = append(candidates, oracle.Candidate{Path: path, Lines: lines})
			dumpDot(deps, epoch*len(bin)+i)
		}

		deps.RC.Tracef("naive: epoch %d submitting %d candidates", epoch, len(candidates))
		out, err := deps.Oracle.ValidateResults(ctx, candidates, deps.OutputPath)
		if err == nil {
			return out, nil
		}
	}

	return "", oracle.ErrNoConfirmation
}

// bucket enumerates every bitmask of length deps.MapResult.Len exactly
// once (spec.md §4.6 "O(2^n) in the worst case"), keeping the strict-valid
// ones bucketed by ratio.
func (n *Naive) bucket(deps Deps, epochs int, ratio float64) (bins [][]binnedMask, aboveTarget, degenerate []binnedMask) {
	length := deps.MapResult.Len
	bins = make([][]binnedMask, epochs)
	binWidth := ratio / float64(epochs)

	total := deps.Graph.TotalCharacterCount()

	mask := bitmask.New(length)
	for {
		valid, r := bitmask.Validate(mask, deps.Graph, bitmask.Strict)
		if valid {
			bm := binnedMask{mask: mask.Clone(), ratio: r}
			switch {
			case total == 0:
				degenerate = append(degenerate, bm)
			case r > ratio:
				aboveTarget = append(aboveTarget, bm)
			default:
				idx := int(r / binWidth)
				if idx >= epochs {
					idx = epochs - 1
				}
				bins[idx] = append(bins[idx], bm)
			}
		}

		wasFull := mask.IsFull()
		mask.Increment()
		if wasFull {
			break // wrapped back to all-zero: every mask enumerated once
		}
	}
	return bins, aboveTarget, degenerate
}

func clearDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		os.RemoveAll(filepath.Join(dir, e.Name())) //nolint:errcheck
	}
}
