package hostchan

import "github.com/lvlath-labs/pbtgroup/engine"

// EndReport is the payload of the final ["end", report] send (spec §6
// "Final send": "{sols, canonical, search_fix_order, stats,
// rbase_branches}"). Permutation images are 1-indexed, as on the wire
// throughout.
type EndReport struct {
	Sols           [][]int      `json:"sols"`
	Canonical      []int        `json:"canonical,omitempty"`
	SearchFixOrder []int        `json:"search_fix_order,omitempty"`
	Stats          engine.Stats `json:"stats"`
	RBaseBranches  []int        `json:"rbase_branches"`
}
