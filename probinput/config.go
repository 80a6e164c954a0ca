// Package probinput parses the engine's single-line JSON input (spec §6
// "Input format") into constructed refiners and a ready-to-run
// search.Driver configuration. All point indices on the wire are
// 1-indexed and are converted to 0-indexed here, at the boundary,
// before anything downstream ever sees them.
package probinput

// SearchConfig mirrors the input's "search_config" object
// (SPEC_FULL.md §5 "full_graph_refine defaults off").
type SearchConfig struct {
	FullGraphRefine bool `json:"full_graph_refine"`
}

// Config mirrors the input's "config" object (spec §6 "Input format").
type Config struct {
	Points        int          `json:"points"`
	FindSingle    bool         `json:"find_single"`
	FindCanonical bool         `json:"find_canonical"`
	FindCoset     bool         `json:"find_coset"`
	RootSearch    []int        `json:"root_search,omitempty"` // 1-indexed
	SearchConfig  SearchConfig `json:"search_config"`
}

// Constraint is one tagged constraint record (spec §6 "tagged variant
// whose tag matches the refiner variants in §4.5"). Exactly one of the
// payload fields is populated per Tag value; json.Unmarshal leaves the
// others at their zero value, which parse.go treats as "absent" since
// every populated field here is non-empty on a well-formed record.
type Constraint struct {
	Tag string `json:"tag"`

	// SetStab / SetTransport
	Points []int `json:"points,omitempty"` // 1-indexed, SetStab/TupleStab/InSymmetricGroup
	Left   []int `json:"left,omitempty"`   // 1-indexed, SetTransport/TupleTransport
	Right  []int `json:"right,omitempty"`  // 1-indexed, SetTransport/TupleTransport

	// DigraphStab / DigraphTransport: edges[u] lists u's 1-indexed
	// out-neighbours; a DigraphTransport record carries both.
	Edges      [][]int `json:"edges,omitempty"`
	RightEdges [][]int `json:"right_edges,omitempty"`

	// Host: an opaque constraint the host channel resolves by name.
	GapID string `json:"gap_id,omitempty"`
}

// Input is the whole single-line document (spec §6 "Input format").
type Input struct {
	Config      Config       `json:"config"`
	Constraints []Constraint `json:"constraints"`
}
