package probinput

import (
	"encoding/json"
	"fmt"

	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/refiner"
)

// HostQuerier is the wider surface probinput needs to resolve a "Host"
// constraint: the narrow refiner.HostClient plus the one-time
// declaration query "is_group" (spec §6 "is_group") used to pick the
// HostRefiner's IsGroup() answer at construction time.
type HostQuerier interface {
	refiner.HostClient
	IsGroup(gapID string) (bool, error)
}

// Problem is a fully parsed input document: a domain size, the
// constructed refiner set, and the search.Driver knobs it implies.
type Problem struct {
	Points          int
	Refiners        []refiner.Refiner
	RootSearch      []int // 0-indexed, nil if config.root_search was absent
	FindSingle      bool
	FindCanonical   bool
	FindCoset       bool
	FullGraphRefine bool
}

// Parse decodes one input line per spec §6 "Input format". host may be
// nil if the input contains no "Host" constraint; Parse returns
// ErrNoHostClient if one is present without a host to resolve it.
func Parse(line []byte, host HostQuerier) (*Problem, error) {
	var in Input
	if err := json.Unmarshal(line, &in); err != nil {
		return nil, fmt.Errorf("probinput: decode input: %w", err)
	}
	if in.Config.Points < 2 {
		return nil, ErrTooFewPoints
	}
	n := in.Config.Points

	refiners := make([]refiner.Refiner, 0, len(in.Constraints))
	for _, c := range in.Constraints {
		r, err := buildRefiner(n, c, host)
		if err != nil {
			return nil, err
		}
		refiners = append(refiners, r)
	}

	return &Problem{
		Points:          n,
		Refiners:        refiners,
		RootSearch:      to0IndexedPoints(in.Config.RootSearch),
		FindSingle:      in.Config.FindSingle,
		FindCanonical:   in.Config.FindCanonical,
		FindCoset:       in.Config.FindCoset,
		FullGraphRefine: in.Config.SearchConfig.FullGraphRefine,
	}, nil
}

func buildRefiner(n int, c Constraint, host HostQuerier) (refiner.Refiner, error) {
	switch c.Tag {
	case "SetStab":
		pts := to0IndexedPoints(c.Points)
		if len(pts) == 0 {
			return nil, fmt.Errorf("%w: SetStab needs points", ErrBadConstraint)
		}
		return refiner.NewSetRefiner(pts, pts), nil

	case "SetTransport":
		l, r := to0IndexedPoints(c.Left), to0IndexedPoints(c.Right)
		if len(l) == 0 || len(r) == 0 {
			return nil, fmt.Errorf("%w: SetTransport needs left and right", ErrBadConstraint)
		}
		return refiner.NewSetRefiner(l, r), nil

	case "TupleStab":
		t := to0IndexedPoints(c.Points)
		if len(t) == 0 {
			return nil, fmt.Errorf("%w: TupleStab needs points", ErrBadConstraint)
		}
		return refiner.NewTupleRefiner(t, t)

	case "TupleTransport":
		l, r := to0IndexedPoints(c.Left), to0IndexedPoints(c.Right)
		if len(l) == 0 || len(r) == 0 {
			return nil, fmt.Errorf("%w: TupleTransport needs left and right", ErrBadConstraint)
		}
		return refiner.NewTupleRefiner(l, r)

	case "DigraphStab":
		dg, err := digraphFromEdges(n, c.Edges)
		if err != nil {
			return nil, err
		}
		return refiner.NewDigraphRefiner(dg, dg), nil

	case "DigraphTransport":
		left, err := digraphFromEdges(n, c.Edges)
		if err != nil {
			return nil, err
		}
		right, err := digraphFromEdges(n, c.RightEdges)
		if err != nil {
			return nil, err
		}
		return refiner.NewDigraphRefiner(left, right), nil

	case "InSymmetricGroup":
		s := to0IndexedPoints(c.Points)
		if len(s) == 0 {
			return nil, fmt.Errorf("%w: InSymmetricGroup needs points", ErrBadConstraint)
		}
		return refiner.NewSymmetricGroupRefiner(n, s), nil

	case "Host":
		if host == nil {
			return nil, ErrNoHostClient
		}
		if c.GapID == "" {
			return nil, fmt.Errorf("%w: Host needs gap_id", ErrBadConstraint)
		}
		isGroup, err := host.IsGroup(c.GapID)
		if err != nil {
			return nil, fmt.Errorf("probinput: query host constraint %s: %w", c.GapID, err)
		}
		return refiner.NewHostRefiner(host, c.GapID, isGroup, 0), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, c.Tag)
	}
}

// digraphFromEdges converts the wire's 1-indexed adjacency rows
// (rows[u] lists u's out-neighbours, spec §8 "edges=[[2],[3],[1]]") into
// the 0-indexed row shape digraph.FromEdges expects.
func digraphFromEdges(n int, rows [][]int) (*digraph.Digraph, error) {
	if len(rows) > n {
		return nil, fmt.Errorf("%w: %d edge rows for %d points", ErrBadConstraint, len(rows), n)
	}
	conv := make([][]int, n)
	for u, neighbours := range rows {
		row := make([]int, len(neighbours))
		for i, v := range neighbours {
			if v < 1 || v > n {
				return nil, fmt.Errorf("%w: edge endpoint %d out of range", ErrBadConstraint, v)
			}
			row[i] = v - 1
		}
		conv[u] = row
	}
	dg, err := digraph.FromEdges(n, conv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConstraint, err)
	}
	return dg, nil
}

func to0IndexedPoints(pts []int) []int {
	if len(pts) == 0 {
		return nil
	}
	out := make([]int, len(pts))
	for i, v := range pts {
		out[i] = v - 1
	}
	return out
}
