// SPDX-License-Identifier: MIT
package partstack

import "fmt"

// Check validates the structural invariants listed in spec §4.2: sum of
// cell lengths equals N_ext; starts are distinct; every value's mark
// points to the cell containing it; base_fixed matches the set of
// size-1 base cells exactly. Intended for debug builds and tests, not
// the hot search path.
func (ps *PartitionStack) Check() error {
	total := 0
	starts := make(map[int]bool, len(ps.cells))
	for i, cr := range ps.cells {
		if starts[cr.start] {
			return fmt.Errorf("%w: duplicate cell start %d (cell %d)", ErrInvariant, cr.start, i)
		}
		starts[cr.start] = true
		total += cr.length
	}
	if total != ps.extSize {
		return fmt.Errorf("%w: cell lengths sum to %d, want %d", ErrInvariant, total, ps.extSize)
	}

	for pos := 0; pos < ps.extSize; pos++ {
		c := ps.marks[pos]
		cr := ps.cells[c]
		if pos < cr.start || pos >= cr.start+cr.length {
			return fmt.Errorf("%w: mark[%d]=%d does not contain position %d", ErrInvariant, pos, c, pos)
		}
		if ps.invValues[ps.values[pos]] != pos {
			return fmt.Errorf("%w: values/invValues mismatch at position %d", ErrInvariant, pos)
		}
	}

	fixedSet := make(map[int]bool, len(ps.baseFixed))
	for _, c := range ps.baseFixed {
		fixedSet[c] = true
	}
	for _, c := range ps.baseCellIdx {
		isFixed := ps.cells[c].length == 1
		if isFixed != fixedSet[c] {
			return fmt.Errorf("%w: base cell %d fixed-state mismatch", ErrInvariant, c)
		}
	}
	if len(ps.baseFixed) != len(ps.baseFixedValues) {
		return fmt.Errorf("%w: baseFixed/baseFixedValues length mismatch", ErrInvariant)
	}

	return nil
}
