// SPDX-License-Identifier: MIT
//
// Package partstack implements the ordered partition stack (spec §3, §4.2):
// an ordered partition of the extended domain [0, N_ext) into contiguous
// cells, stored as one permutation array plus its inverse, a vector of
// (start, length) per cell, and a mark array mapping array positions to
// cell index. Base cells (content in [0, N_base)) and extended cells (all
// cells) are tracked separately; a stack of split records (or extend
// sentinels) supports undoing.
//
// AI-HINT (file):
//   - values/invValues are mutual inverses at all times outside of the
//     brief window inside RefinePartitionCellBy while a cell is being
//     re-sorted.
//   - Every new cell is appended at the end of ps.cells; SplitCell and
//     Extend never insert in the middle. This is what makes RestoreState's
//     "pop from the end" discipline correct.
package partstack

// cellRange is the (start, length) window of a cell within values/marks.
type cellRange struct {
	start  int
	length int
}

// Tracer is the narrow event sink partition-stack refinement emits
// through (spec §4.3 Split/NoSplit events). trace.Tracer satisfies this
// interface; partstack does not import the trace package so that either
// side can be tested in isolation.
type Tracer interface {
	AddSplit(cell, size int, reason uint64)
	AddNoSplit(cell int, reason uint64)
}

// nopTracer discards every event; used when callers do not need trace
// integration (e.g. unit tests of partstack in isolation).
type nopTracer struct{}

func (nopTracer) AddSplit(int, int, uint64)   {}
func (nopTracer) AddNoSplit(int, uint64)      {}

// NopTracer returns a Tracer that discards all events.
func NopTracer() Tracer { return nopTracer{} }

// undoKind distinguishes a real split from an extend sentinel on the undo
// stack (spec: "A stack of split records (or the sentinel 'created by
// extend')").
type undoKind int

const (
	undoSplit undoKind = iota
	undoExtend
)

type undoRecord struct {
	kind int // undoKind

	// undoSplit fields.
	cell         int // cell that was shrunk
	oldLength    int // its length before the split
	fixedPushed  int // how many baseFixed/baseFixedValues entries this split pushed
	baseCellPush bool // whether the new cell was appended to baseCellIdx

	// set by FixPoint when it swapped a value to the front of the cell
	// before splitting; unsplit must undo that swap too.
	swapped bool
	swapA   int // value swapped to cell.start
	swapB   int // value that had been at cell.start
	swapPos int // swapA's position before the swap

	// undoExtend fields.
	k int // number of points appended
}

// PartitionStack is the ordered partition over [0, N_ext).
type PartitionStack struct {
	values    []int // values[pos] = point id at position pos
	invValues []int // invValues[point] = pos

	cells      []cellRange
	cellIsBase []bool
	marks      []int // marks[pos] = cell index

	baseSize int // N_base, fixed at construction
	extSize  int // N_ext, grows via Extend

	baseCellIdx     []int // indices into cells that are base cells
	baseFixed       []int // cell indices, in the order they became fixed (size-1 base cells)
	baseFixedValues []int // matching point values

	undo      []undoRecord
	saveMarks []int // each entry is the cell count recorded by SaveState
}

// New constructs a partition stack over [0, n) with one initial cell
// containing every point in natural order.
func New(n int) *PartitionStack {
	ps := &PartitionStack{
		values:     make([]int, n),
		invValues:  make([]int, n),
		cells:      []cellRange{{start: 0, length: n}},
		cellIsBase: []bool{true},
		marks:      make([]int, n),
		baseSize:   n,
		extSize:    n,
	}
	for i := 0; i < n; i++ {
		ps.values[i] = i
		ps.invValues[i] = i
	}
	ps.baseCellIdx = []int{0}
	if n == 1 {
		ps.baseFixed = []int{0}
		ps.baseFixedValues = []int{0}
	}
	return ps
}

// BaseSize returns N_base.
func (ps *PartitionStack) BaseSize() int { return ps.baseSize }

// ExtendedSize returns N_ext.
func (ps *PartitionStack) ExtendedSize() int { return ps.extSize }

// NumCells returns the total number of cells (base and extended).
func (ps *PartitionStack) NumCells() int { return len(ps.cells) }

// BaseCells returns the live list of base-cell indices. The returned
// slice aliases internal storage and must not be retained across any
// mutating call.
func (ps *PartitionStack) BaseCells() []int { return ps.baseCellIdx }

// ExtendedCells returns every cell index (base and extended), in creation
// order.
func (ps *PartitionStack) ExtendedCells() []int {
	all := make([]int, len(ps.cells))
	for i := range all {
		all[i] = i
	}
	return all
}

// Cell returns the slice of point values belonging to cell i. The
// returned slice aliases internal storage.
func (ps *PartitionStack) Cell(i int) []int {
	cr := ps.cells[i]
	return ps.values[cr.start : cr.start+cr.length]
}

// CellLen returns the size of cell i.
func (ps *PartitionStack) CellLen(i int) int { return ps.cells[i].length }

// CellIsBase reports whether cell i's content lies in [0, N_base).
func (ps *PartitionStack) CellIsBase(i int) bool { return ps.cellIsBase[i] }

// CellOf returns the index of the cell currently containing point v.
func (ps *PartitionStack) CellOf(v int) int { return ps.marks[ps.invValues[v]] }

// BaseFixedValues returns, in the order cells became fixed, the sole
// value of each size-1 base cell — this is the R-base's raw material
// (spec §4.6 "base_fixed_values of R-base").
func (ps *PartitionStack) BaseFixedValues() []int { return ps.baseFixedValues }

// IsDiscrete reports whether every base cell has size 1 (a leaf of the
// search tree).
func (ps *PartitionStack) IsDiscrete() bool {
	for _, c := range ps.baseCellIdx {
		if ps.cells[c].length != 1 {
			return false
		}
	}
	return true
}
