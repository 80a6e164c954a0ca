package hostchan

import (
	"errors"
	"fmt"

	"github.com/lvlath-labs/pbtgroup/trace"
)

// ErrChannel wraps every failure reading or writing the wire: a closed
// pipe, a malformed reply, an I/O error. Spec §7 classifies this as a
// "Host channel error" — not locally recoverable, the run aborts.
var ErrChannel = errors.New("hostchan: channel error")

// ErrBadAck is returned by End when the host's reply to the final send
// is not the literal string "goodbye" (spec §6 "Final send").
var ErrBadAck = errors.New("hostchan: bad end acknowledgement")

// ErrHookFailed is returned by Hook when the host replies with
// {failed: true} for a "begin"/"fixed"/"changed" request (spec §6: the
// reply list may contain a failure marker instead of graph
// contributions). The caller (refiner.HostRefiner) returns it from the
// hook; it wraps trace.ErrFailure, so the store turns it into a local
// trace-failure prune the same way it does trace.ErrFailure.
var ErrHookFailed = fmt.Errorf("hostchan: host refiner hook failed: %w", trace.ErrFailure)
