// SPDX-License-Identifier: MIT
package trace

import "github.com/lvlath-labs/pbtgroup/cell"

// Mode is a bitmask over the two trace disciplines.
type Mode uint8

const (
	Symmetry Mode = 1 << iota
	Canonical
)

// Tracer holds two append-only event vectors (symmetry and canonical), a
// backtrackable position counter, and a backtrackable mode bitmask (spec
// §3 Tracer). The canonical-trace version counter increments whenever the
// canonical trace is truncated-and-replaced by a lex-lesser event,
// letting consumers (the canonical image protocol, §4.8) detect that a
// previously stored candidate is now stale.
type Tracer struct {
	symmetry []Event
	canon    []Event

	pos  *cell.Value[int]
	mode *cell.Value[Mode]

	canonicalVersion int
}

// New returns a Tracer with both disciplines live and position 0.
func New() *Tracer {
	return &Tracer{
		pos:  cell.NewValue(0),
		mode: cell.NewValue(Symmetry | Canonical),
	}
}

// Mode returns the currently live discipline bitmask.
func (t *Tracer) Mode() Mode { return t.mode.Get() }

// SymmetryLive reports whether the symmetry discipline is still active.
func (t *Tracer) SymmetryLive() bool { return t.mode.Get()&Symmetry != 0 }

// CanonicalLive reports whether the canonical discipline is still
// active.
func (t *Tracer) CanonicalLive() bool { return t.mode.Get()&Canonical != 0 }

// Position returns the current event position.
func (t *Tracer) Position() int { return t.pos.Get() }

// CanonicalTraceVersion returns the monotonically increasing counter that
// ticks every time the canonical trace is truncated and replaced.
func (t *Tracer) CanonicalTraceVersion() int { return t.canonicalVersion }

// SymmetryTrace returns the live symmetry event vector (read-only view).
func (t *Tracer) SymmetryTrace() []Event { return t.symmetry }

// CanonicalTrace returns the live canonical event vector (read-only view).
func (t *Tracer) CanonicalTrace() []Event { return t.canon }

// Add records one event against both live disciplines, per spec §4.3:
//
//   - Symmetry: compare to symmetry[pos] if in range; mismatch clears
//     SYMMETRY (never truncates). Out of range: append.
//   - Canonical: compare to canon[pos] if in range; Less truncates canon
//     to pos, appends, and bumps CanonicalTraceVersion; Equal is a no-op;
//     Greater clears CANONICAL. Out of range: append.
//
// Returns ErrFailure if, after this event, neither discipline remains
// live.
func (t *Tracer) Add(e Event) error {
	pos := t.pos.Get()
	mode := t.mode.Get()

	if mode&Symmetry != 0 {
		if pos < len(t.symmetry) {
			if !t.symmetry[pos].Equal(e) {
				mode &^= Symmetry
			}
		} else {
			t.symmetry = append(t.symmetry, e)
		}
	}

	if mode&Canonical != 0 {
		if pos < len(t.canon) {
			switch e.Compare(t.canon[pos]) {
			case -1:
				t.canon = t.canon[:pos]
				t.canon = append(t.canon, e)
				t.canonicalVersion++
			case 0:
				// no-op
			case 1:
				mode &^= Canonical
			}
		} else {
			t.canon = append(t.canon, e)
		}
	}

	t.mode.Set(mode)
	t.pos.Set(pos + 1)

	if mode == 0 {
		return ErrFailure
	}
	return nil
}

// AddSplit records a Split event (satisfies partstack.Tracer).
func (t *Tracer) AddSplit(cellIdx, size int, reason uint64) {
	_ = t.Add(Event{Kind: Split, Cell: cellIdx, Size: size, Reason: reason})
}

// AddNoSplit records a NoSplit event (satisfies partstack.Tracer).
func (t *Tracer) AddNoSplit(cellIdx int, reason uint64) {
	_ = t.Add(Event{Kind: NoSplit, Cell: cellIdx, Reason: reason})
}

// AddFact records an invariant-fact hash pushed by a refiner hook (spec
// §4.5d).
func (t *Tracer) AddFact(reason uint64) error {
	return t.Add(Event{Kind: Fact, Reason: reason})
}

// AddStart records the Start sentinel.
func (t *Tracer) AddStart() error { return t.Add(Event{Kind: Start}) }

// AddEnd records the End sentinel.
func (t *Tracer) AddEnd() error { return t.Add(Event{Kind: End}) }

// AddEndRefine records the EndRefine sentinel emitted when a refinement
// round reaches a fixed point (spec §4.5).
func (t *Tracer) AddEndRefine() error { return t.Add(Event{Kind: EndRefine}) }

// AddEndTrace records the EndTrace sentinel emitted at a discrete leaf
// (spec §4.6).
func (t *Tracer) AddEndTrace() error { return t.Add(Event{Kind: EndTrace}) }

// AddFullGraph records a FullGraph{hash} event, emitted by the
// full-graph-refine sub-search trick (spec §4.7).
func (t *Tracer) AddFullGraph(hash uint64) error {
	return t.Add(Event{Kind: FullGraph, Hash: hash})
}

// SaveState snapshots position and mode for a later RestoreState. The
// event vectors themselves are never truncated by Save/Restore (spec:
// "event vectors are not [backtrackable]").
func (t *Tracer) SaveState() {
	t.pos.Save()
	t.mode.Save()
}

// RestoreState reverts position and mode to the matching SaveState.
func (t *Tracer) RestoreState() error {
	if err := t.pos.Restore(); err != nil {
		return err
	}
	return t.mode.Restore()
}

// Live reports whether at least one discipline remains active.
func (t *Tracer) Live() bool { return t.mode.Get() != 0 }

// Failed reports whether both disciplines have been exhausted, i.e. the
// current node must be pruned. AddSplit/AddNoSplit swallow ErrFailure (to
// satisfy partstack.Tracer's signature); callers that drive partition
// refinement must poll Failed() after each refinement call to notice it.
func (t *Tracer) Failed() bool { return t.mode.Get() == 0 }
