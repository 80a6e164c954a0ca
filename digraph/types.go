// SPDX-License-Identifier: MIT
//
// Package digraph implements the edge-coloured digraph and its
// shared-ownership, copy-on-write stack (spec §4.4).
//
// A Digraph is immutable once built: every transform (Permute,
// RemapVertices, merge into a Stack) returns a new value. Rows are kept as
// neighbour-sorted slices, never maps, so that equality and ordering are
// well-defined (spec: "neighbour lists are required to be strictly
// increasing").
package digraph

import (
	"sort"

	"github.com/lvlath-labs/pbtgroup/internal/xhash"
	"github.com/lvlath-labs/pbtgroup/permutation"
)

// Fixed colour constants distinguishing edge direction when a digraph is
// built from an undirected-looking adjacency list (spec §4.4 construction:
// "hash_out and hash_in are two distinct fixed constants").
const (
	hashOut uint64 = 0xA24BAED4963EE407
	hashIn  uint64 = 0x9FB21C651E98DF25
)

// Arc is one coloured out-edge: (Neighbour, Colour).
type Arc struct {
	Neighbour int
	Colour    uint64
}

// Digraph is an immutable edge-coloured digraph on [0, n).
type Digraph struct {
	n    int
	rows [][]Arc // rows[u] sorted strictly increasing by Neighbour
}

// NumVertices returns n.
func (d *Digraph) NumVertices() int { return d.n }

// Neighbours returns vertex u's out-arcs, sorted by neighbour. The
// returned slice must not be mutated by callers.
func (d *Digraph) Neighbours(u int) []Arc { return d.rows[u] }

// Empty returns the n-vertex digraph with no edges.
func Empty(n int) *Digraph {
	return &Digraph{n: n, rows: make([][]Arc, n)}
}

// FromEdges builds a Digraph on n vertices from a plain directed adjacency
// list (edges[u] is the list of v such that there is an edge u->v),
// colouring each direction with its own fixed hash constant so that
// Permute/compare treat "u->v" and "v->u" as distinguishable (spec §4.4
// construction rule).
func FromEdges(n int, edges [][]int) (*Digraph, error) {
	acc := make([]map[int]uint64, n)
	for i := range acc {
		acc[i] = make(map[int]uint64)
	}
	for u, nbrs := range edges {
		if u < 0 || u >= n {
			return nil, ErrVertexOutOfRange
		}
		for _, v := range nbrs {
			if v < 0 || v >= n {
				return nil, ErrVertexOutOfRange
			}
			acc[u][v] += hashOut
			acc[v][u] += hashIn
		}
	}
	return fromAccumulator(n, acc), nil
}

func fromAccumulator(n int, acc []map[int]uint64) *Digraph {
	d := &Digraph{n: n, rows: make([][]Arc, n)}
	for u, m := range acc {
		row := make([]Arc, 0, len(m))
		for v, c := range m {
			row = append(row, Arc{Neighbour: v, Colour: c})
		}
		sort.Slice(row, func(i, j int) bool { return row[i].Neighbour < row[j].Neighbour })
		d.rows[u] = row
	}
	return d
}

// Permute returns the digraph obtained by relabelling every vertex u as
// p.Apply(u): row p(u) contains (p(v), colour) for each (v, colour) in
// row u of d.
func (d *Digraph) Permute(p *permutation.Permutation) *Digraph {
	acc := make([]map[int]uint64, d.n)
	for i := range acc {
		acc[i] = make(map[int]uint64, len(d.rows[i]))
	}
	for u, row := range d.rows {
		pu := p.Apply(u)
		for _, arc := range row {
			acc[pu][p.Apply(arc.Neighbour)] = arc.Colour
		}
	}
	return fromAccumulator(d.n, acc)
}

// RemapVertices renames vertices according to mapping (mapping[u] is u's
// new id), possibly enlarging the vertex set to accommodate the largest
// new id, preserving edge colours.
func (d *Digraph) RemapVertices(mapping []int) *Digraph {
	newN := d.n
	for _, m := range mapping {
		if m+1 > newN {
			newN = m + 1
		}
	}
	acc := make([]map[int]uint64, newN)
	for i := range acc {
		acc[i] = make(map[int]uint64)
	}
	for u, row := range d.rows {
		nu := mapping[u]
		for _, arc := range row {
			nv := arc.Neighbour
			if nv < len(mapping) {
				nv = mapping[nv]
			}
			acc[nu][nv] = arc.Colour
		}
	}
	return fromAccumulator(newN, acc)
}

// Equal reports whether d and other have identical vertex counts and
// identical (sorted) edge rows.
func (d *Digraph) Equal(other *Digraph) bool {
	if d.n != other.n {
		return false
	}
	for u := 0; u < d.n; u++ {
		if len(d.rows[u]) != len(other.rows[u]) {
			return false
		}
		for i, arc := range d.rows[u] {
			o := other.rows[u][i]
			if arc.Neighbour != o.Neighbour || arc.Colour != o.Colour {
				return false
			}
		}
	}
	return true
}

// Hash returns a stable 64-bit digest of the whole digraph, used for the
// trace's FullGraph{hash} event (spec §3 Trace event).
func (d *Digraph) Hash() uint64 {
	h := uint64(d.n)
	for u, row := range d.rows {
		for _, arc := range row {
			h = xhash.Combine(h, xhash.Ints(uint64(u), uint64(arc.Neighbour), arc.Colour))
		}
	}
	return h
}
