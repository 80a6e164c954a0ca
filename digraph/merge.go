// SPDX-License-Identifier: MIT
package digraph

import "github.com/lvlath-labs/pbtgroup/internal/xhash"

// Merge folds each source digraph's edges into a single accumulator
// digraph, one source at a time, salting each contribution's colours with
// the stable hash of (colour, depth) where depth = baseDepth + i for the
// i-th source (spec §4.4 merge). The result is order-dependent: merging
// [a, b] differs from merging [b, a].
//
// All sources must share the same vertex count n; the result has n
// vertices.
func Merge(sources []*Digraph, baseDepth int) *Digraph {
	if len(sources) == 0 {
		return nil
	}
	n := sources[0].n
	acc := make([]map[int]uint64, n)
	for i := range acc {
		acc[i] = make(map[int]uint64)
	}

	for i, src := range sources {
		depth := baseDepth + i
		for u, row := range src.rows {
			for _, arc := range row {
				acc[u][arc.Neighbour] += xhash.Pair(arc.Colour, uint64(depth))
			}
		}
	}

	return fromAccumulator(n, acc)
}

// mergeOne folds a single source digraph into base at the given depth,
// returning a new Digraph (base is never mutated). Used by Stack to grow
// its history one contribution at a time so that AtDepth can address any
// intermediate point within a multi-source AddGraphs call.
func mergeOne(base, src *Digraph, depth int) *Digraph {
	acc := make([]map[int]uint64, base.n)
	for u, row := range base.rows {
		m := make(map[int]uint64, len(row))
		for _, arc := range row {
			m[arc.Neighbour] = arc.Colour
		}
		acc[u] = m
	}
	for u, row := range src.rows {
		for _, arc := range row {
			acc[u][arc.Neighbour] += xhash.Pair(arc.Colour, uint64(depth))
		}
	}
	return fromAccumulator(base.n, acc)
}
