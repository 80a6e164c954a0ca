package partstack

// FixPoint isolates point v into its own singleton cell: if v's cell
// already has length 1 this is a no-op, otherwise v is swapped to the
// front of its cell's window and the cell is split at offset 1. This is
// the search driver's branching primitive (spec §4.7 "branch on the
// numerically smallest value of the chosen cell").
func (ps *PartitionStack) FixPoint(v int) (newCell int, err error) {
	c := ps.CellOf(v)
	cr := ps.cells[c]
	if cr.length == 1 {
		return c, nil
	}

	pos := ps.invValues[v]
	swapped := false
	other := 0
	if pos != cr.start {
		other = ps.values[cr.start]
		ps.values[cr.start], ps.values[pos] = ps.values[pos], ps.values[cr.start]
		ps.invValues[v] = cr.start
		ps.invValues[other] = pos
		swapped = true
	}

	newCell, err = ps.SplitCell(c, 1)
	if err != nil {
		return 0, err
	}
	if swapped {
		rec := &ps.undo[len(ps.undo)-1]
		rec.swapped = true
		rec.swapA = v
		rec.swapB = other
		rec.swapPos = pos
	}
	return c, nil
}
