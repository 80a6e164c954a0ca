package refiner

import (
	"errors"

	"github.com/lvlath-labs/pbtgroup/partstack"
)

var (
	// ErrLengthMismatch is returned by NewTupleRefiner when left and right
	// sequences differ in length (no permutation can ever satisfy Check).
	ErrLengthMismatch = errors.New("refiner: tuple sequences have different lengths")

	// ErrHostChannel names the host channel error class (spec §7: fatal,
	// not a trace failure). HostRefiner returns HostClient errors as they
	// come, without wrapping them in ErrHostChannel, and no function in
	// this module returns it.
	ErrHostChannel = errors.New("refiner: host channel error")
)

// Tracer is the event sink a refiner hook may push invariant facts
// through, extending partstack.Tracer with the events and queries the
// refinement protocol (store, search) needs beyond raw Split/NoSplit.
type Tracer interface {
	partstack.Tracer
	AddFact(reason uint64) error
	AddEndRefine() error
	AddEndTrace() error
	AddFullGraph(hash uint64) error
	Failed() bool
	SymmetryLive() bool
	CanonicalLive() bool
	CanonicalTraceVersion() int
}
