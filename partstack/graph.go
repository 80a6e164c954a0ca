// SPDX-License-Identifier: MIT
package partstack

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/internal/xhash"
)

// RefinePartitionCellsByGraph runs one Weisfeiler-Leman-style colouring
// wave starting at firstCell, repeating while new extended cells appear
// (spec §4.2). For every vertex v, the accumulator sums hash(c)*colour
// (wrapping) over every cell c visited in the current wave and every
// coloured arc (p, v) with p in c; every cell touched by a nonzero
// contribution is then refined by that shared accumulator. The "touched"
// set is a roaring.Bitmap, giving O(1) insert and sorted iteration
// exactly as the sort-and-split contract requires.
func (ps *PartitionStack) RefinePartitionCellsByGraph(dg *digraph.Digraph, firstCell int, tr Tracer) {
	wave := []int{firstCell}

	for len(wave) > 0 {
		accum := make([]uint64, ps.extSize)
		touched := roaring.New()

		for _, c := range wave {
			cHash := xhash.Int(uint64(c))
			for _, p := range ps.Cell(c) {
				for _, arc := range dg.Neighbours(p) {
					accum[arc.Neighbour] += cHash * arc.Colour
					touched.Add(uint32(ps.CellOf(arc.Neighbour)))
				}
			}
		}

		if touched.IsEmpty() {
			return
		}

		beforeLen := len(ps.cells)
		key := func(point int) uint64 { return accum[point] }

		it := touched.Iterator()
		for it.HasNext() {
			tc := int(it.Next())
			ps.RefinePartitionCellBy(tc, key, tr)
		}

		wave = wave[:0]
		for i := beforeLen; i < len(ps.cells); i++ {
			wave = append(wave, i)
		}
	}
}
