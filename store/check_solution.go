package store

import (
	"github.com/lvlath-labs/pbtgroup/permutation"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/solutions"
)

// reconstruct builds the permutation p with p(preimage[i]) = image[i]
// for i in range, identity elsewhere, over a domain of size n.
func reconstruct(n int, preimage, image []int) (*permutation.Permutation, error) {
	if len(preimage) != len(image) {
		return nil, ErrBadReconstruction
	}
	images := make([]int, n)
	for i := range images {
		images[i] = i
	}
	for i, v := range preimage {
		if v < 0 || v >= n {
			return nil, ErrBadReconstruction
		}
		images[v] = image[i]
	}
	return permutation.New(images)
}

// CheckSolution is the leaf handler of the mirror tree (spec §4.6
// "check_solution"): it emits EndTrace, snapshots the R-base on first
// call, reconstructs a candidate permutation against the R-base and
// checks it against every refiner when the symmetry discipline is
// still live, and runs the canonical protocol on side when the
// canonical discipline is still live.
func (s *Store) CheckSolution(st refiner.RefineState, side refiner.Side, sols *solutions.Solutions, canon solutions.CanonicalMinClient) error {
	if err := st.Trace().AddEndTrace(); err != nil {
		return asTraceFailure(err)
	}
	if st.Trace().Failed() {
		return ErrTraceFailure
	}

	s.SnapshotRBase(st)
	if s.rbase == nil {
		return ErrNoRBase
	}

	if st.Trace().SymmetryLive() {
		preimage := s.rbase.Partition.BaseFixedValues()
		image := st.Partition(side).BaseFixedValues()
		p, err := reconstruct(s.rbase.Partition.BaseSize(), preimage, image)
		if err == nil {
			ok := true
			for _, r := range s.refiners {
				if !r.Check(p) {
					ok = false
					break
				}
			}
			if ok {
				sols.RecordGenerator(p)
			}
		}
	}

	if st.Trace().CanonicalLive() && canon != nil {
		ps := st.Partition(side)
		baseCells := ps.BaseCells()
		preimage := make([]int, len(baseCells))
		for i, c := range baseCells {
			preimage[i] = ps.Cell(c)[0]
		}
		if err := sols.UpdateCanonical(preimage, s.refiners, canon, st.Trace().CanonicalTraceVersion()); err != nil {
			return err
		}
	}

	return nil
}
