// Host refiner: an opaque constraint implemented on the other end of the
// GAP host channel (spec §6 "refiner" constraint kind, §4.5 "host
// variant"). Every hook is a round trip; Image results are cached by
// permutation hash since the mirror-tree search re-images the same
// handful of coset representatives repeatedly.
package refiner

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lvlath-labs/pbtgroup/digraph"
	"github.com/lvlath-labs/pbtgroup/internal/xhash"
	"github.com/lvlath-labs/pbtgroup/permutation"
)

// HookPhase names which refinement hook triggered a host round trip.
type HookPhase string

const (
	HookBegin        HookPhase = "begin"
	HookFixedPoints  HookPhase = "fixed_points"
	HookChangedCells HookPhase = "changed_cells"
)

// GraphHookRecord is one digraph contribution a host hook may return, to
// be merged into the side's digraph stack (spec §4.5 "hook may push
// graphs").
type GraphHookRecord struct {
	Edges         [][2]int
	VertexColours []uint64
}

// HostClient is the narrow surface HostRefiner needs from the host
// channel transport; defined here (the consumer) so this package has no
// dependency on hostchan.
type HostClient interface {
	Hook(gapID string, phase HookPhase, side Side) (graphs []GraphHookRecord, extendLabels []uint64, err error)
	Check(gapID string, images []int) (bool, error)
	Image(gapID string, side Side, images []int) (string, error)
	SnapshotRBase(gapID string) error
	SaveState(gapID string) error
	RestoreState(gapID string) error
}

// HostRefiner forwards every Refiner hook across the host channel to a
// GAP-side constraint, identified by its GapID.
type HostRefiner struct {
	client  HostClient
	gapID   string
	isGroup bool

	cache   *lru.Cache[uint64, string]
	lastErr error
}

// NewHostRefiner builds a HostRefiner bound to gapID. isGroup is supplied
// by the caller (probinput), which learns it once from the host's
// "refiner" declaration message.
func NewHostRefiner(client HostClient, gapID string, isGroup bool, imageCacheSize int) *HostRefiner {
	if imageCacheSize <= 0 {
		imageCacheSize = 256
	}
	c, _ := lru.New[uint64, string](imageCacheSize)
	return &HostRefiner{client: client, gapID: gapID, isGroup: isGroup, cache: c}
}

// LastError returns the error from the most recent host round trip, if
// any; the Refiner interface's hooks that don't return an error (Check,
// Image) record it here for the caller to poll, mirroring
// trace.Tracer.Failed().
func (h *HostRefiner) LastError() error { return h.lastErr }

func (h *HostRefiner) Name() string { return "host:" + h.gapID }

func (h *HostRefiner) IsGroup() bool { return h.isGroup }

func (h *HostRefiner) Check(p *permutation.Permutation) bool {
	ok, err := h.client.Check(h.gapID, p.Images())
	h.lastErr = err
	return err == nil && ok
}

func (h *HostRefiner) imageKey(p *permutation.Permutation, side Side) uint64 {
	acc := xhash.Pair(uint64(side), uint64(p.Len()))
	for _, v := range p.Images() {
		acc = xhash.Combine(acc, uint64(v))
	}
	return acc
}

func (h *HostRefiner) Image(p *permutation.Permutation, side Side) ImageToken {
	key := h.imageKey(p, side)
	if tok, ok := h.cache.Get(key); ok {
		return ImageToken{Kind: HostRefToken, HostRef: tok}
	}
	tok, err := h.client.Image(h.gapID, side, p.Images())
	h.lastErr = err
	if err != nil {
		return ImageToken{Kind: HostRefToken, HostRef: ""}
	}
	h.cache.Add(key, tok)
	return ImageToken{Kind: HostRefToken, HostRef: tok}
}

func (h *HostRefiner) Compare(a, b ImageToken) int { return Compare(a, b) }

func (h *HostRefiner) runHook(st RefineState, side Side, phase HookPhase) error {
	graphs, labels, err := h.client.Hook(h.gapID, phase, side)
	h.lastErr = err
	if err != nil {
		return err
	}
	for _, g := range graphs {
		n := 0
		for _, e := range g.Edges {
			if e[0] < 0 || e[1] < 0 {
				return digraph.ErrVertexOutOfRange
			}
			if e[0]+1 > n {
				n = e[0] + 1
			}
			if e[1]+1 > n {
				n = e[1] + 1
			}
		}
		edges := make([][]int, n)
		for _, e := range g.Edges {
			edges[e[0]] = append(edges[e[0]], e[1])
		}
		dg, err := digraph.FromEdges(n, edges)
		if err != nil {
			return err
		}
		st.Digraphs(side).AddGraph(dg)
	}
	if len(labels) > 0 {
		if _, err := st.ExtendPartition(side, len(labels)); err != nil {
			return err
		}
		ps := st.Partition(side)
		offset := ps.ExtendedSize() - len(labels)
		labelOf := make(map[int]uint64, len(labels))
		for i, l := range labels {
			labelOf[offset+i] = l
		}
		ps.ExtendedRefinePartitionBy(func(point int) uint64 {
			if l, ok := labelOf[point]; ok {
				return l
			}
			return xhash.Pair(0xB057, uint64(point))
		}, st.Trace())
	}
	return nil
}

func (h *HostRefiner) RefineBegin(st RefineState, side Side) error {
	return h.runHook(st, side, HookBegin)
}

func (h *HostRefiner) RefineFixedPoints(st RefineState, side Side) error {
	return h.runHook(st, side, HookFixedPoints)
}

func (h *HostRefiner) RefineChangedCells(st RefineState, side Side) error {
	return h.runHook(st, side, HookChangedCells)
}

func (h *HostRefiner) SnapshotRBase(st RefineState) {
	h.lastErr = h.client.SnapshotRBase(h.gapID)
}

func (h *HostRefiner) SaveState() {
	h.lastErr = h.client.SaveState(h.gapID)
}

func (h *HostRefiner) RestoreState() error {
	return h.client.RestoreState(h.gapID)
}
