// SPDX-License-Identifier: MIT
//
// Package search implements the driver (spec §4.7): the R-base build on
// the left side, the mirror tree walked on the right (or, in canonical
// mode, the full tree walked on the left), and the full-graph-refine
// sub-search trick. One Driver runs one of three modes; a sub-search
// spins up a fresh, nested-disabled Driver over a throwaway engine.State.
package search

import (
	"github.com/lvlath-labs/pbtgroup/engine"
	"github.com/lvlath-labs/pbtgroup/selector"
	"github.com/lvlath-labs/pbtgroup/solutions"
)

// Mode selects the tree shape the driver walks (spec GLOSSARY "Coset vs
// stabiliser vs canonical mode").
type Mode int

const (
	// Stabiliser runs simple_group_search: first branch on the left
	// (building the R-base), every other branch on the right, pruned by
	// the orbit tracker.
	Stabiliser Mode = iota
	// Coset runs simple_coset_search: the R-base is built once on the
	// left, then every branch of the mirror tree is walked on the right.
	Coset
	// Canonical walks the full tree on the left, recording canonical
	// candidates at every discrete leaf.
	Canonical
)

// Driver walks one of the three search trees over a shared engine.State.
type Driver struct {
	Mode            Mode
	FindSingle      bool
	FullGraphRefine bool
	RootSearch      []int // restricted domain, 0-indexed; nil/empty = full domain
	Select          selector.Selector

	st    *engine.State
	canon solutions.CanonicalMinClient

	sub bool // true inside a full-graph-refine sub-search; disables re-entry

	rbaseCells    []int // cell index branched at each R-base depth
	rbaseBranches []int // branch values tried at each R-base depth

	found bool // a solution was recorded since the last check (find_single)
}

// New returns a Driver over st, reporting canonical-min queries to canon
// (may be nil if find_canonical was not requested).
func New(st *engine.State, canon solutions.CanonicalMinClient) *Driver {
	return &Driver{st: st, canon: canon, Select: selector.Smallest{}}
}

// RBaseBranches reports, per R-base level, how many branch values were
// tried (SPEC_FULL.md §4 "rbase_branches reporting").
func (d *Driver) RBaseBranches() []int { return d.rbaseBranches }
