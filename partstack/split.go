// SPDX-License-Identifier: MIT
package partstack

// SplitCell splits cell c at offset (0 < offset < length(c)): the new
// cell holds positions [start(c)+offset, start(c)+length(c)), c itself is
// shortened to [start(c), start(c)+offset). base_fixed/base_fixed_values
// are updated for any newly-fixed size-1 base cell, with the new cell
// appended before the old one if both became fixed by this split (spec
// §4.2 tie-break rule).
func (ps *PartitionStack) SplitCell(c, offset int) (newCell int, err error) {
	cr := ps.cells[c]
	if offset <= 0 || offset >= cr.length {
		return 0, ErrBadOffset
	}

	newCell = len(ps.cells)
	newRange := cellRange{start: cr.start + offset, length: cr.length - offset}
	ps.cells = append(ps.cells, newRange)
	ps.cellIsBase = append(ps.cellIsBase, ps.cellIsBase[c])
	ps.cells[c].length = offset

	for pos := newRange.start; pos < newRange.start+newRange.length; pos++ {
		ps.marks[pos] = newCell
	}

	rec := undoRecord{kind: int(undoSplit), cell: c, oldLength: cr.length}

	if ps.cellIsBase[newCell] {
		rec.baseCellPush = true
		ps.baseCellIdx = append(ps.baseCellIdx, newCell)
	}

	// Tie-break: new cell first, then old cell, if both became fixed.
	if ps.cellIsBase[newCell] && newRange.length == 1 {
		ps.pushFixed(newCell)
		rec.fixedPushed++
	}
	if ps.cellIsBase[c] && ps.cells[c].length == 1 {
		ps.pushFixed(c)
		rec.fixedPushed++
	}

	ps.undo = append(ps.undo, rec)
	return newCell, nil
}

func (ps *PartitionStack) pushFixed(c int) {
	ps.baseFixed = append(ps.baseFixed, c)
	ps.baseFixedValues = append(ps.baseFixedValues, ps.Cell(c)[0])
}

// Extend allocates k fresh points [N_ext, N_ext+k) and places them in one
// new extended cell.
func (ps *PartitionStack) Extend(k int) (newCell int, err error) {
	if k <= 0 {
		return 0, ErrBadExtendCount
	}

	start := ps.extSize
	newCell = len(ps.cells)
	for i := 0; i < k; i++ {
		v := start + i
		ps.values = append(ps.values, v)
		ps.invValues = append(ps.invValues, 0) // placeholder; set below
		ps.invValues[v] = start + i
		ps.marks = append(ps.marks, newCell)
	}
	ps.cells = append(ps.cells, cellRange{start: start, length: k})
	ps.cellIsBase = append(ps.cellIsBase, false)
	ps.extSize += k

	ps.undo = append(ps.undo, undoRecord{kind: int(undoExtend), k: k})
	return newCell, nil
}

// SaveState remembers the current cell count for a matching RestoreState.
func (ps *PartitionStack) SaveState() {
	ps.saveMarks = append(ps.saveMarks, len(ps.cells))
}

// RestoreState pops the undo stack down to the cell count recorded by the
// matching SaveState, reverting each split or extend sentinel as it goes.
func (ps *PartitionStack) RestoreState() error {
	n := len(ps.saveMarks)
	if n == 0 {
		return ErrUnbalancedRestore
	}
	target := ps.saveMarks[n-1]
	ps.saveMarks = ps.saveMarks[:n-1]

	for len(ps.cells) > target {
		if len(ps.undo) == 0 {
			return ErrUnbalancedRestore
		}
		rec := ps.undo[len(ps.undo)-1]
		ps.undo = ps.undo[:len(ps.undo)-1]

		switch undoKind(rec.kind) {
		case undoSplit:
			ps.unsplit(rec)
		case undoExtend:
			ps.unextend(rec)
		}
	}
	return nil
}

func (ps *PartitionStack) unsplit(rec undoRecord) {
	last := len(ps.cells) - 1 // the cell created by this split

	if rec.fixedPushed > 0 {
		ps.baseFixed = ps.baseFixed[:len(ps.baseFixed)-rec.fixedPushed]
		ps.baseFixedValues = ps.baseFixedValues[:len(ps.baseFixedValues)-rec.fixedPushed]
	}
	if rec.baseCellPush {
		ps.baseCellIdx = ps.baseCellIdx[:len(ps.baseCellIdx)-1]
	}

	ps.cells[rec.cell].length = rec.oldLength
	cr := ps.cells[rec.cell]
	for pos := cr.start; pos < cr.start+cr.length; pos++ {
		ps.marks[pos] = rec.cell
	}

	if rec.swapped {
		ps.values[cr.start], ps.values[rec.swapPos] = ps.values[rec.swapPos], ps.values[cr.start]
		ps.invValues[rec.swapA] = rec.swapPos
		ps.invValues[rec.swapB] = cr.start
	}

	ps.cells = ps.cells[:last]
	ps.cellIsBase = ps.cellIsBase[:last]
}

func (ps *PartitionStack) unextend(rec undoRecord) {
	ps.extSize -= rec.k
	ps.values = ps.values[:ps.extSize]
	ps.invValues = ps.invValues[:ps.extSize]
	ps.marks = ps.marks[:ps.extSize]
	ps.cells = ps.cells[:len(ps.cells)-1]
	ps.cellIsBase = ps.cellIsBase[:len(ps.cellIsBase)-1]
}
