package probinput

import "errors"

// ErrTooFewPoints is returned when config.points < 2 (spec §7
// "Inconsistent input", §8 "Empty problem (points = 2 minimum)").
var ErrTooFewPoints = errors.New("probinput: points must be >= 2")

// ErrUnknownTag is returned for a constraint record whose tag does not
// match any refiner variant in spec §4.5.
var ErrUnknownTag = errors.New("probinput: unknown constraint tag")

// ErrBadConstraint is returned when a constraint record is missing the
// fields its tag requires, or its point indices fall outside
// [1, config.points].
var ErrBadConstraint = errors.New("probinput: malformed constraint")

// ErrNoHostClient is returned when a "Host" constraint is present but
// the caller did not supply a refiner.HostClient to resolve it against.
var ErrNoHostClient = errors.New("probinput: host constraint without a host channel")
