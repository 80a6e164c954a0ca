package partstack

// Clone returns a deep copy of ps, independent of any future Save/Restore
// or split/extend performed on either copy. Used to snapshot the R-base
// partition once the first discrete leaf is reached.
func (ps *PartitionStack) Clone() *PartitionStack {
	clone := &PartitionStack{
		values:          append([]int(nil), ps.values...),
		invValues:       append([]int(nil), ps.invValues...),
		cells:           append([]cellRange(nil), ps.cells...),
		cellIsBase:      append([]bool(nil), ps.cellIsBase...),
		marks:           append([]int(nil), ps.marks...),
		baseSize:        ps.baseSize,
		extSize:         ps.extSize,
		baseCellIdx:     append([]int(nil), ps.baseCellIdx...),
		baseFixed:       append([]int(nil), ps.baseFixed...),
		baseFixedValues: append([]int(nil), ps.baseFixedValues...),
		undo:            append([]undoRecord(nil), ps.undo...),
		saveMarks:       append([]int(nil), ps.saveMarks...),
	}
	return clone
}
