// Package refiner implements the Refiner capability record (spec §3
// "Refiner", §4.5 refinement protocol, §4.5 built-ins) as a small set of
// concrete types behind one interface, with the opaque "image token" used
// for canonical comparison modelled as a single tagged struct rather than
// an open interface hierarchy (spec §9 "Open trait object for refiners ->
// tagged variant").
package refiner

import (
	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/partstack"
	"github.com/lvlath-labs/pbtgroup/permutation"
)

// Side distinguishes the left (R-base) domain from the right (mirror
// tree) domain a refiner hook is being asked to act on.
type Side int

const (
	Left Side = iota
	Right
)

// String renders Side the way the wire protocol spells it (spec §6: "Left"/"Right").
func (s Side) String() string {
	if s == Left {
		return "Left"
	}
	return "Right"
}

// RefineState is the narrow surface a refiner hook needs from the engine:
// the per-side partition and digraph stack, the shared tracer, and the
// ability to extend a side's partition with auxiliary points (spec
// §4.5c: "extend_partition(k) to introduce auxiliary vertices").
//
// Defined here (the consumer) rather than in engine (the provider) so
// that refiner has no dependency on engine, store, or search.
type RefineState interface {
	Partition(side Side) *partstack.PartitionStack
	Digraphs(side Side) *digraph.Stack
	Trace() Tracer
	ExtendPartition(side Side, k int) (int, error)
}

// TokenKind tags the concrete payload carried by an ImageToken.
type TokenKind int

const (
	SortedVecToken TokenKind = iota
	DigraphToken
	HostRefToken
	IntToken
)

// ImageToken is the opaque, comparable value a refiner's Image hook
// returns; Compare is only ever called between tokens produced by the
// same refiner, so the concrete Kind is always consistent within one
// comparison.
type ImageToken struct {
	Kind      TokenKind
	SortedVec []int
	Digraph   *digraph.Digraph
	HostRef   string // opaque host-side reference id (see hostchan.HostRef)
	Int       int
}

// Compare orders two tokens of the same Kind; -1, 0, or 1.
func Compare(a, b ImageToken) int {
	switch a.Kind {
	case SortedVecToken:
		return compareIntSlices(a.SortedVec, b.SortedVec)
	case DigraphToken:
		return compareDigraphs(a.Digraph, b.Digraph)
	case HostRefToken:
		return compareStrings(a.HostRef, b.HostRef)
	case IntToken:
		return compareInts(a.Int, b.Int)
	default:
		return 0
	}
}

func compareIntSlices(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return compareInts(a[i], b[i])
		}
	}
	return compareInts(len(a), len(b))
}

func compareDigraphs(a, b *digraph.Digraph) int {
	if a.Equal(b) {
		return 0
	}
	if a.Hash() < b.Hash() {
		return -1
	}
	return 1
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Refiner is the capability record every constraint variant implements
// (spec §3 "Refiner").
type Refiner interface {
	Name() string
	IsGroup() bool
	Check(p *permutation.Permutation) bool
	Image(p *permutation.Permutation, side Side) ImageToken
	Compare(a, b ImageToken) int

	RefineBegin(st RefineState, side Side) error
	RefineFixedPoints(st RefineState, side Side) error
	RefineChangedCells(st RefineState, side Side) error

	SnapshotRBase(st RefineState)
	SaveState()
	RestoreState() error
}
