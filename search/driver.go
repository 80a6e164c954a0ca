package search

import (
	"errors"
	"sort"

	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/selector"
	"github.com/lvlath-labs/pbtgroup/store"
	"github.com/lvlath-labs/pbtgroup/trace"
)

// Run executes the configured mode from the root of the domain (spec
// §4.7). Returns a fatal error for anything other than a trace failure,
// which is always pruned locally.
func (d *Driver) Run() error {
	if d.Select == nil {
		d.Select = selector.Smallest{}
	}
	if err := d.applyRootSearch(); err != nil {
		return err
	}
	if err := d.st.TraceImpl().AddStart(); err != nil {
		return err
	}

	var err error
	switch d.Mode {
	case Stabiliser:
		err = d.stabNode(0, true)
	case Coset:
		if err = d.buildRBase(0); err == nil {
			err = d.cosetNode(0)
		}
	case Canonical:
		err = d.canonNode(0)
	default:
		err = ErrNoCellToBranch
	}
	if err != nil {
		return err
	}
	return d.st.TraceImpl().AddEnd()
}

// applyRootSearch pre-fixes every point outside RootSearch as its own
// singleton base cell on both sides, before the first refinement round
// (SPEC_FULL.md §4 "--root-search / restricted search domain").
func (d *Driver) applyRootSearch() error {
	if len(d.RootSearch) == 0 {
		return nil
	}
	inRoot := make(map[int]bool, len(d.RootSearch))
	for _, v := range d.RootSearch {
		inRoot[v] = true
	}
	for v := 0; v < d.st.N(); v++ {
		if inRoot[v] {
			continue
		}
		if _, err := d.st.Partition(refiner.Left).FixPoint(v); err != nil {
			return err
		}
		if _, err := d.st.Partition(refiner.Right).FixPoint(v); err != nil {
			return err
		}
	}
	return nil
}

// refine drives side to a fixed point, then (outside a sub-search, when
// enabled) runs the full-graph-refine trick on top of it.
func (d *Driver) refine(side refiner.Side) error {
	d.st.Stats.RefinerCalls++
	if err := d.st.Store.InitRefine(d.st, side); err != nil {
		return err
	}
	return d.fullGraphRefine(side)
}

// refineRBaseSpine drives the LEFT side to a fixed point while it is
// still building the R-base (stabiliser mode's first branch), through a
// throwaway tracer. Only the RIGHT side's events ever occupy the shared
// comparison trace in stabiliser mode (spec §4.7: the mirror is compared
// against itself across branches); writing the left refine's events into
// that same stream would make every non-first branch, which refines the
// right side alone, get compared against a reference built out of the
// left side's events at the same position.
func (d *Driver) refineRBaseSpine() error {
	saved := d.st.SwapTrace(trace.New())
	defer d.st.SwapTrace(saved)
	return d.refine(refiner.Left)
}

// prune classifies err: a trace failure is a local prune (nil, node
// abandoned), anything else is fatal and propagates.
func (d *Driver) prune(err error) error {
	if errors.Is(err, store.ErrTraceFailure) {
		d.st.Stats.TraceFailures++
		return nil
	}
	return err
}

// checkLeaf runs the store's leaf handler and updates run-level stats
// and the find_single flag.
func (d *Driver) checkLeaf(side refiner.Side) error {
	before := len(d.st.Sols.Generators())
	beforeCanon := d.st.Sols.Canonical()

	if err := d.st.Store.CheckSolution(d.st, side, d.st.Sols, d.canon); err != nil {
		if errors.Is(err, store.ErrTraceFailure) {
			d.st.Stats.TraceFailures++
			return nil
		}
		return err
	}

	if len(d.st.Sols.Generators()) > before {
		d.st.Stats.Good++
		d.st.Stats.Solutions++
		d.found = true
	} else {
		d.st.Stats.Bad++
	}

	if c := d.st.Sols.Canonical(); c != nil && c != beforeCanon {
		d.st.Stats.ImprovedCanon++
	} else {
		d.st.Stats.Equal++
	}
	return nil
}

func branchValues(cell []int) []int {
	out := append([]int(nil), cell...)
	sort.Ints(out)
	return out
}

func (d *Driver) recordRBaseCell(depth, cellIdx int) {
	if depth == len(d.rbaseCells) {
		d.rbaseCells = append(d.rbaseCells, cellIdx)
		d.rbaseBranches = append(d.rbaseBranches, 0)
	}
}

// --- Stabiliser mode --------------------------------------------------

// stabNode implements simple_group_search (spec §4.7): while
// onFirstBranch the left side is still refined and the first (smallest)
// branch value continues to build the R-base; every other branch value
// refines only the right side and is orbit-pruned.
func (d *Driver) stabNode(depth int, onFirstBranch bool) error {
	d.st.Stats.Nodes++

	if onFirstBranch {
		if err := d.refineRBaseSpine(); err != nil {
			return d.prune(err)
		}
	}
	if err := d.refine(refiner.Right); err != nil {
		return d.prune(err)
	}

	rightPS := d.st.Partition(refiner.Right)
	if rightPS.IsDiscrete() {
		return d.checkLeaf(refiner.Right)
	}

	cellIdx, ok := d.Select.Select(rightPS)
	if !ok {
		return ErrNoCellToBranch
	}
	if onFirstBranch {
		d.recordRBaseCell(depth, cellIdx)
	}

	points := branchValues(rightPS.Cell(cellIdx))

	for i, c := range points {
		branchFirst := onFirstBranch && i == 0
		if !branchFirst && !d.st.Sols.OrbitNeedsSearching(c, depth) {
			continue
		}

		d.st.SaveState()
		if onFirstBranch && depth < len(d.rbaseBranches) {
			d.rbaseBranches[depth]++
		}

		var err error
		if branchFirst {
			if _, e := d.st.Partition(refiner.Left).FixPoint(c); e != nil {
				err = e
			}
		}
		if err == nil {
			if _, e := rightPS.FixPoint(c); e != nil {
				err = e
			}
		}
		if err == nil {
			err = d.stabNode(depth+1, branchFirst)
		}

		if rErr := d.st.RestoreState(); err == nil {
			err = rErr
		}
		if err != nil {
			return err
		}

		if !branchFirst {
			d.st.Sols.MarkSearched(c, depth)
		}
		if d.FindSingle && d.found {
			return nil
		}
	}
	return nil
}

// --- Coset mode -------------------------------------------------------

// buildRBase walks the left side alone, always branching the smallest
// value of the selected cell, down to a discrete leaf, recording the
// R-base's cell shape and snapshotting it there (spec §4.7 "the R-base
// tree is built once"). The left partition is left at the leaf; nothing
// restores it, since the frozen RBaseSnapshot (a deep copy) is all later
// reconstruction needs.
func (d *Driver) buildRBase(depth int) error {
	if err := d.refine(refiner.Left); err != nil {
		return d.prune(err)
	}
	leftPS := d.st.Partition(refiner.Left)
	if leftPS.IsDiscrete() {
		d.st.Store.SnapshotRBase(d.st)
		return nil
	}

	cellIdx, ok := d.Select.Select(leftPS)
	if !ok {
		return ErrNoCellToBranch
	}
	d.recordRBaseCell(depth, cellIdx)

	points := branchValues(leftPS.Cell(cellIdx))
	v := points[0]
	d.rbaseBranches[depth]++
	if _, err := leftPS.FixPoint(v); err != nil {
		return err
	}
	return d.buildRBase(depth + 1)
}

// cosetNode implements simple_coset_search (spec §4.7): every branch is
// on the right, mirroring the cell shape recorded by buildRBase. The
// first solution found below a node marks it special; find_single then
// short-circuits the remaining branches at every level on the way back
// up (SPEC_FULL.md §4 "special subtree short-circuit").
func (d *Driver) cosetNode(depth int) error {
	d.st.Stats.Nodes++

	if err := d.refine(refiner.Right); err != nil {
		return d.prune(err)
	}
	rightPS := d.st.Partition(refiner.Right)
	if rightPS.IsDiscrete() {
		return d.checkLeaf(refiner.Right)
	}
	if depth >= len(d.rbaseCells) {
		return ErrNoCellToBranch
	}
	cellIdx := d.rbaseCells[depth]
	points := branchValues(rightPS.Cell(cellIdx))

	for _, c := range points {
		d.st.SaveState()
		foundBefore := d.found

		_, err := rightPS.FixPoint(c)
		if err == nil {
			err = d.cosetNode(depth + 1)
		}
		if rErr := d.st.RestoreState(); err == nil {
			err = rErr
		}
		if err != nil {
			return err
		}

		if d.FindSingle && d.found && !foundBefore {
			return nil
		}
	}
	return nil
}

// --- Canonical mode -----------------------------------------------------

// canonNode walks the full left tree (every branch value, not just the
// smallest), recording canonical candidates at each discrete leaf (spec
// §4.7 "canonical mode").
func (d *Driver) canonNode(depth int) error {
	d.st.Stats.Nodes++

	if err := d.refine(refiner.Left); err != nil {
		return d.prune(err)
	}
	leftPS := d.st.Partition(refiner.Left)
	if leftPS.IsDiscrete() {
		return d.checkLeaf(refiner.Left)
	}

	cellIdx, ok := d.Select.Select(leftPS)
	if !ok {
		return ErrNoCellToBranch
	}
	d.recordRBaseCell(depth, cellIdx)

	for _, c := range branchValues(leftPS.Cell(cellIdx)) {
		d.st.SaveState()
		if depth < len(d.rbaseBranches) {
			d.rbaseBranches[depth]++
		}

		_, err := leftPS.FixPoint(c)
		if err == nil {
			err = d.canonNode(depth + 1)
		}
		if rErr := d.st.RestoreState(); err == nil {
			err = rErr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
