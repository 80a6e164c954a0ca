// Package refine hosts the backtrackable "how much of the partition has
// been WL-refined" bookkeeping that glues partstack's graph-colouring step
// to the refiner store's fixed-point loop (spec §4.5
// "state.refine_graphs()").
//
// Steps:
//  1. Read the backtrackable cursor (how many extended cells were already
//     seeded for WL refinement).
//  2. For every extended cell created since, run one WL wave from it.
//  3. Advance the cursor to the current extended-cell count.
//
// Re-reading the extended-cell count on every loop iteration is
// deliberate: a WL wave seeded from cell i can itself create new extended
// cells that must also be seeded before this call returns.
package refine

import (
	"github.com/lvlath-labs/pbtgroup/cell"
	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/partstack"
)

// GraphRefiner tracks, across backtracking, how many cells have already
// been used as WL seeds.
type GraphRefiner struct {
	refined *cell.Value[int]
}

// New returns a GraphRefiner with its cursor at zero.
func New() *GraphRefiner {
	return &GraphRefiner{refined: cell.NewValue(0)}
}

// RefineGraphs runs RefinePartitionCellsByGraph from every not-yet-seeded
// extended cell forward, against the current digraph dg, then advances
// the cursor.
func (g *GraphRefiner) RefineGraphs(ps *partstack.PartitionStack, dg *digraph.Digraph, tr partstack.Tracer) {
	for i := g.refined.Get(); i < ps.NumCells(); i++ {
		ps.RefinePartitionCellsByGraph(dg, i, tr)
	}
	g.refined.Set(ps.NumCells())
}

// SaveState snapshots the cursor.
func (g *GraphRefiner) SaveState() { g.refined.Save() }

// RestoreState reverts the cursor to the matching SaveState.
func (g *GraphRefiner) RestoreState() error { return g.refined.Restore() }
