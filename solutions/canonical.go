package solutions

import (
	"github.com/lvlath-labs/pbtgroup/permutation"
	"github.com/lvlath-labs/pbtgroup/refiner"
)

// CanonicalMinClient is the narrow surface the canonical protocol needs
// from the host channel: the lex-least image of a preimage vector under
// the stabiliser discovered so far (spec §6 "canonicalmin"). Defined
// here (the consumer) to keep this package independent of hostchan.
type CanonicalMinClient interface {
	CanonicalMin(preimage1Indexed []int) (image1Indexed []int, err error)
}

// CanonicalRecord is the best candidate discovered so far: the
// permutation realising it, the refiner images it was compared by, and
// the trace version it was recorded against (spec §4.8 "drop the stored
// canonical if stale").
type CanonicalRecord struct {
	Version int
	Perm    *permutation.Permutation
	Images  []refiner.ImageToken
}

// Canonical returns the current best candidate, or nil if none has been
// recorded yet.
func (s *Solutions) Canonical() *CanonicalRecord { return s.canonical }

// UpdateCanonical runs the canonical image protocol (spec §4.8) at a
// discrete leaf: preimage is [cell(c)[0] for c in base_cells], refiners
// is the active refiner set in order, and currentVersion is the trace's
// live CanonicalTraceVersion.
func (s *Solutions) UpdateCanonical(preimage []int, refiners []refiner.Refiner, client CanonicalMinClient, currentVersion int) error {
	image1, err := client.CanonicalMin(to1Indexed(preimage))
	if err != nil {
		return err
	}
	image := to0Indexed(image1)

	p, err := buildPermFromMapping(preimage, image)
	if err != nil {
		return err
	}

	if s.canonical != nil && s.canonical.Version < currentVersion {
		s.canonical = nil
	}

	newImages := make([]refiner.ImageToken, len(refiners))
	for i, r := range refiners {
		newImages[i] = r.Image(p, refiner.Left)
	}

	if s.canonical == nil {
		s.canonical = &CanonicalRecord{Version: currentVersion, Perm: p, Images: newImages}
		return nil
	}

	for i, r := range refiners {
		switch r.Compare(newImages[i], s.canonical.Images[i]) {
		case -1:
			s.canonical = &CanonicalRecord{Version: currentVersion, Perm: p, Images: newImages}
			return nil
		case 1:
			return nil
		}
	}
	return nil
}

func buildPermFromMapping(preimage, image []int) (*permutation.Permutation, error) {
	n := len(preimage)
	if n != len(image) {
		return nil, ErrBadMapping
	}
	images := make([]int, n)
	for i, v := range preimage {
		if v < 0 || v >= n {
			return nil, ErrBadMapping
		}
		images[v] = image[i]
	}
	return permutation.New(images)
}

func to1Indexed(vs []int) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v + 1
	}
	return out
}

func to0Indexed(vs []int) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v - 1
	}
	return out
}
