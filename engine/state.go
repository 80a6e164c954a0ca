// Package engine aggregates the domain (a left and right partition/digraph
// pair sharing one trace), the refiner store, and the run's solution
// accumulator into the single State the search driver walks (spec §3
// "State").
package engine

import (
	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/partstack"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/solutions"
	"github.com/lvlath-labs/pbtgroup/store"
	"github.com/lvlath-labs/pbtgroup/trace"
)

// Stats mirrors the counters the host channel's final "end" send reports
// (spec §6 "stats").
type Stats struct {
	Nodes            int64 `json:"nodes"`
	TraceFailures    int64 `json:"trace_failures"`
	RefinerCalls     int64 `json:"refiner_calls"`
	Good             int64 `json:"good"`
	Bad              int64 `json:"bad"`
	Equal            int64 `json:"equal"`
	ImprovedCanon    int64 `json:"improved_canonical"`
	Solutions        int64 `json:"solutions"`
	RBaseBranches    int64 `json:"rbase_branches"`
	FullGraphRefines int64 `json:"full_graph_refines"`
}

// State is the narrow domain every refiner hook mutates through, plus
// the bookkeeping the search driver needs on top (store, solutions,
// stats). It satisfies refiner.RefineState.
type State struct {
	n int

	left, right   *partstack.PartitionStack
	leftDg, rightDg *digraph.Stack
	tr            *trace.Tracer

	Store *store.Store
	Sols  *solutions.Solutions
	Stats Stats
}

// New builds a fresh State over a domain of n points driven by refiners.
func New(n int, refiners []refiner.Refiner) *State {
	return &State{
		n:       n,
		left:    partstack.New(n),
		right:   partstack.New(n),
		leftDg:  digraph.NewStack(n),
		rightDg: digraph.NewStack(n),
		tr:      trace.New(),
		Store:   store.New(refiners),
		Sols:    solutions.New(n),
	}
}

// N returns the domain size.
func (s *State) N() int { return s.n }

// Partition satisfies refiner.RefineState.
func (s *State) Partition(side refiner.Side) *partstack.PartitionStack {
	if side == refiner.Left {
		return s.left
	}
	return s.right
}

// Digraphs satisfies refiner.RefineState.
func (s *State) Digraphs(side refiner.Side) *digraph.Stack {
	if side == refiner.Left {
		return s.leftDg
	}
	return s.rightDg
}

// Trace satisfies refiner.RefineState.
func (s *State) Trace() refiner.Tracer { return s.tr }

// TraceImpl exposes the concrete tracer for callers that need the
// version counter or raw event vectors (e.g. the canonical protocol's
// caller in search).
func (s *State) TraceImpl() *trace.Tracer { return s.tr }

// SwapTrace installs t as the tracer every refiner hook writes through
// from now on, and returns the tracer it replaced. The search driver
// uses this to keep one side's refinement from writing into the shared
// comparison trace at nodes where both sides refine (spec §4.7
// stabiliser mode: only the mirror side's events are ever compared).
func (s *State) SwapTrace(t *trace.Tracer) *trace.Tracer {
	old := s.tr
	s.tr = t
	return old
}

// ExtendPartition satisfies refiner.RefineState.
func (s *State) ExtendPartition(side refiner.Side, k int) (int, error) {
	return s.Partition(side).Extend(k)
}

// SaveState snapshots every backtrackable piece of domain state: both
// partitions, both digraph stacks, the trace, the refiner store's graph
// cursors, and the orbit tracker.
func (s *State) SaveState() {
	s.left.SaveState()
	s.right.SaveState()
	s.leftDg.Save()
	s.rightDg.Save()
	s.tr.SaveState()
	s.Store.SaveState()
	s.Sols.Save()
}

// RestoreState reverts every piece saved by the matching SaveState, in
// reverse order.
func (s *State) RestoreState() error {
	if err := s.Sols.Restore(); err != nil {
		return err
	}
	if err := s.Store.RestoreState(); err != nil {
		return err
	}
	if err := s.tr.RestoreState(); err != nil {
		return err
	}
	if err := s.rightDg.Restore(); err != nil {
		return err
	}
	if err := s.leftDg.Restore(); err != nil {
		return err
	}
	if err := s.right.RestoreState(); err != nil {
		return err
	}
	return s.left.RestoreState()
}
