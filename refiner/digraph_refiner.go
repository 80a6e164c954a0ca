package refiner

import (
	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/permutation"
)

// DigraphRefiner transports a left digraph onto a right digraph under the
// Weisfeiler-Leman colour refinement carried by the engine's digraph
// stack; this type itself only contributes the graphs and the final
// equality check, the colour propagation happens in partstack/refine.
type DigraphRefiner struct {
	l, r *digraph.Digraph
}

// NewDigraphRefiner builds a DigraphRefiner transporting l onto r. A
// digraph-stabiliser is expressed by passing the same graph for both
// sides.
func NewDigraphRefiner(l, r *digraph.Digraph) *DigraphRefiner {
	return &DigraphRefiner{l: l, r: r}
}

func (d *DigraphRefiner) Name() string { return "digraph" }

func (d *DigraphRefiner) IsGroup() bool { return d.l.Equal(d.r) }

func (d *DigraphRefiner) Check(p *permutation.Permutation) bool {
	return d.l.Permute(p).Equal(d.r)
}

func (d *DigraphRefiner) Image(p *permutation.Permutation, side Side) ImageToken {
	g := d.l
	if side == Right {
		g = d.r
	}
	return ImageToken{Kind: DigraphToken, Digraph: g.Permute(p)}
}

func (d *DigraphRefiner) Compare(a, b ImageToken) int { return Compare(a, b) }

func (d *DigraphRefiner) RefineBegin(st RefineState, side Side) error {
	g := d.l
	if side == Right {
		g = d.r
	}
	st.Digraphs(side).AddGraph(g)
	return st.Trace().AddFact(g.Hash())
}

func (d *DigraphRefiner) RefineFixedPoints(st RefineState, side Side) error { return nil }

func (d *DigraphRefiner) RefineChangedCells(st RefineState, side Side) error { return nil }

func (d *DigraphRefiner) SnapshotRBase(st RefineState) {}

func (d *DigraphRefiner) SaveState() {}

func (d *DigraphRefiner) RestoreState() error { return nil }
