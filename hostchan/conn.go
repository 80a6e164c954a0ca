// Package hostchan implements the engine side of the newline-delimited
// JSON host channel (spec §6 "Host channel"): a full-duplex
// request/reply conversation over a pair of pipes or a TCP socket,
// serialised behind one mutex so a refiner hook triggered deep inside
// the search can never interleave two in-flight requests (spec §9
// "Shared host channel").
package hostchan

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// GapID identifies a host-side constraint object across the channel
// (spec §6 "refiner" messages). Host constraints take their gap_id from
// the input file (probinput rejects one without it); NewGapID has no
// caller in this module.
type GapID string

// NewGapID mints a fresh correlation id.
func NewGapID() GapID { return GapID(uuid.NewString()) }

// Conn is a newline-delimited JSON request/reply channel. r and w may be
// the two ends of one pipe pair or a single TCP connection used for
// both directions; they are read and written independently of one
// another.
type Conn struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// New wraps r/w as a host channel.
func New(r io.Reader, w io.Writer) *Conn {
	return &Conn{in: bufio.NewReaderSize(r, 64*1024), out: w}
}

// call sends req as one JSON line and, if reply is non-nil, decodes the
// single JSON-line response into it. The whole round trip holds the
// channel lock, matching the "one conversation at a time" contract.
func (c *Conn) call(req, reply any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callLocked(req, reply)
}

func (c *Conn) callLocked(req, reply any) error {
	line, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("hostchan: encode request: %w", err)
	}
	line = append(line, '\n')
	if _, err := c.out.Write(line); err != nil {
		return fmt.Errorf("%w: write: %v", ErrChannel, err)
	}

	resp, err := c.in.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("%w: read: %v", ErrChannel, err)
	}
	if reply == nil {
		return nil
	}
	if err := json.Unmarshal(resp, reply); err != nil {
		return fmt.Errorf("%w: malformed reply %q: %v", ErrChannel, resp, err)
	}
	return nil
}

// SendError sends a terminal ["error", message] frame (spec §7
// "Inconsistent input" / "Host channel error"). The caller exits right
// after; no reply is expected.
func (c *Conn) SendError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, _ := json.Marshal([]any{"error", message})
	_, _ = c.out.Write(append(line, '\n'))
}

// End sends the final ["end", report] frame and blocks for the literal
// "goodbye" acknowledgement (spec §6 "Final send").
func (c *Conn) End(report EndReport) error {
	var ack string
	if err := c.call([]any{"end", report}, &ack); err != nil {
		return err
	}
	if ack != "goodbye" {
		return fmt.Errorf("%w: got %q", ErrBadAck, ack)
	}
	return nil
}

// StringGapRef renders ref for debug formatting (spec §6
// "stringGapRef").
func (c *Conn) StringGapRef(ref string) (string, error) {
	var out string
	err := c.call([]any{"stringGapRef", ref}, &out)
	return out, err
}

// DropGapRef releases a host-ref that will never be read again
// (SPEC_FULL.md §4 "GAP reference dropping"). Errors are intentionally
// ignored by HostRef.Release; this exported form lets probinput/store
// surface them if it cares to.
func (c *Conn) DropGapRef(ref string) error {
	var ack []any
	return c.call([]any{"dropGapRef", ref}, &ack)
}

// HostRef pairs a host-side reference id with the channel it belongs to,
// so Release can drop it. Conn.Image returns the bare id string, not a
// HostRef, and nothing in this package builds a non-zero HostRef; the
// zero value is the "no reference" sentinel.
type HostRef struct {
	conn *Conn
	id   string
}

func (r HostRef) String() string { return r.id }

// Release drops the reference on the host side, matching the Rust
// engine's explicit (non-GC-timed) drop discipline: Go finalizers are
// not a safe place to issue a blocking host call (SPEC_FULL.md §4 "GAP
// reference dropping"). Safe to call on the zero value.
func (r HostRef) Release() {
	if r.conn == nil || r.id == "" {
		return
	}
	_ = r.conn.DropGapRef(r.id)
}
