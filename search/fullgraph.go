package search

import (
	"github.com/lvlath-labs/pbtgroup/engine"
	"github.com/lvlath-labs/pbtgroup/internal/xhash"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/solutions"
	"github.com/lvlath-labs/pbtgroup/store"
)

// fullGraphRefine runs the repository's signature "refine by running a
// full sub-search" trick (spec §4.7 "sub_simple_search / sub_full_refine"):
// a fresh engine whose only refiners are a digraph stabiliser over the
// current digraph and one set-stabiliser per current cell. The orbit
// partition of the automorphisms the sub-search discovers refines the
// outer partition, and a FullGraph{hash} event is pushed into the
// outer trace. Disabled unless FullGraphRefine is set, and never nested:
// the sub-search's own Driver has sub=true and skips this step entirely.
func (d *Driver) fullGraphRefine(side refiner.Side) error {
	if d.sub || !d.FullGraphRefine {
		return nil
	}

	ps := d.st.Partition(side)
	dg := d.st.Digraphs(side).Current()
	n := ps.ExtendedSize()

	subRefiners := make([]refiner.Refiner, 0, 1+ps.NumCells())
	subRefiners = append(subRefiners, refiner.NewDigraphRefiner(dg, dg))
	for _, c := range ps.ExtendedCells() {
		cellVals := append([]int(nil), ps.Cell(c)...)
		subRefiners = append(subRefiners, refiner.NewSetRefiner(cellVals, cellVals))
	}

	subState := engine.New(n, subRefiners)
	sub := New(subState, d.canon)
	sub.Mode = Canonical
	sub.Select = d.Select
	sub.sub = true
	if err := sub.Run(); err != nil {
		return err
	}

	d.st.Stats.FullGraphRefines++

	// The orbit partition comes from whatever automorphisms the
	// sub-search's symmetry discipline recorded, which RecordGenerator
	// populates independent of d.canon; gating on Canonical() instead
	// made this a no-op whenever no host channel was attached.
	if len(subState.Sols.Generators()) == 0 {
		return nil
	}

	// The sub-search's own union-find is restored along with every state it
	// saved, so the orbits are rebuilt here from the generators it kept.
	orbits := solutions.NewUnionFind(n)
	for _, g := range subState.Sols.Generators() {
		for x := 0; x <= g.LargestMovedPoint(); x++ {
			orbits.Union(x, g.Apply(x))
		}
	}
	orbitRank := make(map[int]int, n)
	for v := 0; v < n; v++ {
		root := orbits.Find(v)
		if _, ok := orbitRank[root]; !ok {
			orbitRank[root] = len(orbitRank)
		}
	}
	key := func(v int) uint64 { return xhash.Int(uint64(orbitRank[orbits.Find(v)])) }
	ps.ExtendedRefinePartitionBy(key, d.st.TraceImpl())

	_ = d.st.TraceImpl().AddFullGraph(dg.Hash())
	if d.st.TraceImpl().Failed() {
		return store.ErrTraceFailure
	}
	return nil
}
