// Package store drives the refiner set to a fixed point on one side of
// the search (spec §4.5 "the store drives them to fixed point") and owns
// the once-only R-base snapshot (spec §4.6).
package store

import (
	"errors"

	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/partstack"
	"github.com/lvlath-labs/pbtgroup/refine"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/trace"
)

// asTraceFailure normalises any error that is, or wraps, trace.ErrFailure
// into the store's own ErrTraceFailure sentinel. A refiner hook can reach
// the tracer several calls deep (e.g. SetRefiner.RefineBegin calling
// Tracer.AddFact) and returns trace.ErrFailure verbatim; every exit point
// of this package that might surface that needs to funnel through here so
// callers only ever have to check errors.Is(err, store.ErrTraceFailure)
// to recognize a recoverable prune.
func asTraceFailure(err error) error {
	if errors.Is(err, trace.ErrFailure) {
		return ErrTraceFailure
	}
	return err
}

// RBaseSnapshot is the deep copy of the LEFT partition and digraph taken
// the first time a discrete partition is reached.
type RBaseSnapshot struct {
	Partition *partstack.PartitionStack
	Digraph   *digraph.Digraph
}

// Store holds the active refiner set and the per-side graph-refinement
// cursors (spec §4.2 "refine_graphs keeps a backtrackable cursor").
type Store struct {
	refiners []refiner.Refiner

	graphLeft  *refine.GraphRefiner
	graphRight *refine.GraphRefiner

	rbase *RBaseSnapshot
}

// New returns a Store driving refiners, with independent graph-refine
// cursors for each side.
func New(refiners []refiner.Refiner) *Store {
	return &Store{
		refiners:   refiners,
		graphLeft:  refine.New(),
		graphRight: refine.New(),
	}
}

// Refiners returns the active refiner set, in order.
func (s *Store) Refiners() []refiner.Refiner { return s.refiners }

func (s *Store) graphRefiner(side refiner.Side) *refine.GraphRefiner {
	if side == refiner.Left {
		return s.graphLeft
	}
	return s.graphRight
}

func baseFixedCount(st refiner.RefineState, side refiner.Side) int {
	return len(st.Partition(side).BaseFixedValues())
}

func baseCellsCount(st refiner.RefineState, side refiner.Side) int {
	return st.Partition(side).NumCells()
}

// InitRefine runs refine_begin on every refiner for side, then drives
// the fixed-point loop (spec §4.5 init_refine / do_refine). Returns
// ErrTraceFailure if the shared tracer is exhausted at any point.
func (s *Store) InitRefine(st refiner.RefineState, side refiner.Side) error {
	fixedSnap := make([]int, len(s.refiners))
	cellsSnap := make([]int, len(s.refiners))

	for i, r := range s.refiners {
		if err := r.RefineBegin(st, side); err != nil {
			return asTraceFailure(err)
		}
		if st.Trace().Failed() {
			return ErrTraceFailure
		}
		fixedSnap[i] = baseFixedCount(st, side)
		cellsSnap[i] = baseCellsCount(st, side)
	}
	return s.doRefine(st, side, fixedSnap, cellsSnap)
}

func (s *Store) doRefine(st refiner.RefineState, side refiner.Side, fixedSnap, cellsSnap []int) error {
	for {
		fp0 := baseFixedCount(st, side)
		cells0 := baseCellsCount(st, side)

		for i, r := range s.refiners {
			cur := baseFixedCount(st, side)
			if cur > fixedSnap[i] {
				fixedSnap[i] = cur
				if err := r.RefineFixedPoints(st, side); err != nil {
					return asTraceFailure(err)
				}
				if st.Trace().Failed() {
					return ErrTraceFailure
				}
			}
		}

		for i, r := range s.refiners {
			cur := baseCellsCount(st, side)
			if cur > cellsSnap[i] {
				cellsSnap[i] = cur
				if err := r.RefineChangedCells(st, side); err != nil {
					return asTraceFailure(err)
				}
				if st.Trace().Failed() {
					return ErrTraceFailure
				}
			}
		}

		s.graphRefiner(side).RefineGraphs(st.Partition(side), st.Digraphs(side).Current(), st.Trace())
		if st.Trace().Failed() {
			return ErrTraceFailure
		}

		fp1 := baseFixedCount(st, side)
		cells1 := baseCellsCount(st, side)
		if fp1 == fp0 && cells1 == cells0 {
			if err := st.Trace().AddEndRefine(); err != nil {
				return asTraceFailure(err)
			}
			if st.Trace().Failed() {
				return ErrTraceFailure
			}
			return nil
		}
	}
}

// SaveState snapshots both graph-refine cursors.
func (s *Store) SaveState() {
	s.graphLeft.SaveState()
	s.graphRight.SaveState()
}

// RestoreState reverts both graph-refine cursors to the matching
// SaveState.
func (s *Store) RestoreState() error {
	if err := s.graphLeft.RestoreState(); err != nil {
		return err
	}
	return s.graphRight.RestoreState()
}

// RBase returns the R-base snapshot, or nil if SnapshotRBase has not run
// yet.
func (s *Store) RBase() *RBaseSnapshot { return s.rbase }

// SnapshotRBase stores a deep copy of the LEFT partition and digraph,
// and tells every refiner via SnapshotRBase, the first time it is
// called; later calls are no-ops (spec §4.6: "called once, when the
// first discrete partition is reached").
func (s *Store) SnapshotRBase(st refiner.RefineState) {
	if s.rbase != nil {
		return
	}
	s.rbase = &RBaseSnapshot{
		Partition: st.Partition(refiner.Left).Clone(),
		Digraph:   st.Digraphs(refiner.Left).Current(),
	}
	for _, r := range s.refiners {
		r.SnapshotRBase(st)
	}
}
