package hostchan

import (
	"github.com/lvlath-labs/pbtgroup/refiner"
)

// wirePhase maps refiner.HookPhase onto the wire's hook names (spec §6:
// `"begin" | "fixed" | "changed" | "rBaseFinished"`); the refiner
// package names its constants after the refinement-protocol hooks
// themselves (spec §4.5), which read better in Go but don't match the
// wire spelling byte for byte.
func wirePhase(p refiner.HookPhase) string {
	switch p {
	case refiner.HookFixedPoints:
		return "fixed"
	case refiner.HookChangedCells:
		return "changed"
	default:
		return "begin"
	}
}

// hookReply is one element of a "begin"/"fixed"/"changed" reply list
// (spec §6: "list of {graph?: int[][] (1-indexed), vertlabels?: int[]}
// OR {failed: true}").
type hookReply struct {
	Graph      [][]int  `json:"graph,omitempty"`
	VertLabels []uint64 `json:"vertlabels,omitempty"`
	Failed     bool     `json:"failed,omitempty"`
}

// Hook implements refiner.HostClient. It asks the host for whatever
// graphs or vertex labels the named hook contributes for side, in the
// constraint identified by gapID.
func (c *Conn) Hook(gapID string, phase refiner.HookPhase, side refiner.Side) ([]refiner.GraphHookRecord, []uint64, error) {
	var reply []hookReply
	req := []any{"refiner", gapID, wirePhase(phase), side.String()}
	if err := c.call(req, &reply); err != nil {
		return nil, nil, err
	}

	var graphs []refiner.GraphHookRecord
	var labels []uint64
	for _, r := range reply {
		if r.Failed {
			return nil, nil, ErrHookFailed
		}
		if len(r.Graph) > 0 {
			edges := make([][2]int, len(r.Graph))
			for i, e := range r.Graph {
				if len(e) != 2 {
					continue
				}
				edges[i] = [2]int{e[0] - 1, e[1] - 1}
			}
			graphs = append(graphs, refiner.GraphHookRecord{Edges: edges})
		}
		if len(r.VertLabels) > 0 {
			labels = append(labels, r.VertLabels...)
		}
	}
	return graphs, labels, nil
}

// Check implements refiner.HostClient (spec §6 "check").
func (c *Conn) Check(gapID string, images []int) (bool, error) {
	var ok bool
	err := c.call([]any{"refiner", gapID, "check", to1Indexed(images)}, &ok)
	return ok, err
}

// Image implements refiner.HostClient (spec §6 "image"), returning the
// opaque host-ref's string id so the caller (refiner.HostRefiner) can
// cache and later re-present it in Compare.
func (c *Conn) Image(gapID string, side refiner.Side, images []int) (string, error) {
	var ref string
	err := c.call([]any{"refiner", gapID, "image", side.String(), to1Indexed(images)}, &ref)
	return ref, err
}

// Compare sends a "compare" request for two previously-minted host
// refs, wrapping the result as a HostRef-aware convenience on top of
// the narrower refiner.HostClient surface.
func (c *Conn) Compare(gapID string, a, b HostRef) (int, error) {
	var cmp int
	err := c.call([]any{"refiner", gapID, "compare", a.id, b.id}, &cmp)
	return cmp, err
}

// SnapshotRBase implements refiner.HostClient (spec §6 "rBaseFinished").
func (c *Conn) SnapshotRBase(gapID string) error {
	var ack []any
	return c.call([]any{"refiner", gapID, "rBaseFinished"}, &ack)
}

// SaveState implements refiner.HostClient (spec §6 "save_state").
func (c *Conn) SaveState(gapID string) error {
	var ok bool
	return c.call([]any{"refiner", gapID, "save_state"}, &ok)
}

// RestoreState implements refiner.HostClient (spec §6 "restore_state").
func (c *Conn) RestoreState(gapID string) error {
	var ok bool
	return c.call([]any{"refiner", gapID, "restore_state"}, &ok)
}

// Name asks the host for the constraint's display name (spec §6
// "name"), used by probinput when logging an opaque constraint's
// declaration.
func (c *Conn) Name(gapID string) (string, error) {
	var name string
	err := c.call([]any{"refiner", gapID, "name"}, &name)
	return name, err
}

// IsGroup asks the host whether the constraint is group-valued (spec §6
// "is_group"), used by probinput to construct the matching
// refiner.HostRefiner.
func (c *Conn) IsGroup(gapID string) (bool, error) {
	var isGroup bool
	err := c.call([]any{"refiner", gapID, "is_group"}, &isGroup)
	return isGroup, err
}

func to1Indexed(vs []int) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v + 1
	}
	return out
}
