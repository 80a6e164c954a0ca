// SPDX-License-Identifier: MIT
package digraph

// Stack holds the current digraph under shared-ownership copy-on-write
// semantics: reads never clone, and every mutation (AddGraph/AddGraphs)
// produces a brand-new immutable Digraph rather than editing one in
// place (spec §5 "the current digraph is under shared-ownership
// copy-on-write; reads never clone; any mutation upgrades to a uniquely
// owned copy").
//
// history[d] is the digraph as it stood after exactly d merged
// contributions; AtDepth(d) serves "compare left/right digraphs at
// identical positions" (spec §4.4). Save/Restore bound the history back
// to a remembered length, so backtracking out of a search node undoes
// every digraph contributed within it.
type Stack struct {
	n       int
	history []*Digraph // history[0] is the empty digraph at depth 0
	marks   []int
}

// NewStack returns a Stack seeded with the n-vertex empty digraph at
// depth 0.
func NewStack(n int) *Stack {
	return &Stack{n: n, history: []*Digraph{Empty(n)}}
}

// Depth returns the number of merged contributions so far.
func (s *Stack) Depth() int { return len(s.history) - 1 }

// Current returns the digraph at the current depth. Safe to retain: the
// returned value is immutable.
func (s *Stack) Current() *Digraph { return s.history[len(s.history)-1] }

// AtDepth returns the digraph as it stood at depth d (0 <= d <= Depth()).
func (s *Stack) AtDepth(d int) (*Digraph, error) {
	if d < 0 || d >= len(s.history) {
		return nil, ErrDepthOutOfRange
	}
	return s.history[d], nil
}

// AddGraph merges a single digraph into the stack at the current depth,
// advancing the depth by one.
func (s *Stack) AddGraph(g *Digraph) {
	s.history = append(s.history, mergeOne(s.Current(), g, s.Depth()))
}

// AddGraphs merges a sequence of digraphs, one contribution at a time, so
// that AtDepth addresses every intermediate state (spec: "depth = d per
// contribution").
func (s *Stack) AddGraphs(gs []*Digraph) {
	for _, g := range gs {
		s.AddGraph(g)
	}
}

// Save remembers the current depth for a later Restore.
func (s *Stack) Save() { s.marks = append(s.marks, len(s.history)) }

// Restore truncates the history back to the length remembered by the
// matching Save, returning ErrDepthOutOfRange if there is no outstanding
// Save (an assertion failure at the call site).
func (s *Stack) Restore() error {
	n := len(s.marks)
	if n == 0 {
		return ErrDepthOutOfRange
	}
	mark := s.marks[n-1]
	s.marks = s.marks[:n-1]
	s.history = s.history[:mark]
	return nil
}
