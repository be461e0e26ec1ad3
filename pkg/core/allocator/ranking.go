package allocator

import (
	"math/rand"
	"slices"
	"sort"
)

// RankCandidates returns a copy of candidates ordered by the tie-break policy.
// Candidates are expected in roster order; the input slice is not modified.
//
//   - TieBreakRosterOrder: unchanged
//   - TieBreakLeastLoaded: ascending load, equal loads keep roster order
//   - TieBreakRandom: uniform shuffle from rng
func RankCandidates(candidates []string, loads LoadCounter, tieBreak TieBreak, rng *rand.Rand) []string {
	ranked := slices.Clone(candidates)

	switch tieBreak {
	case TieBreakLeastLoaded:
		sort.SliceStable(ranked, func(i, j int) bool {
			return loads.Get(ranked[i]) < loads.Get(ranked[j])
		})
	case TieBreakRandom:
		rng.Shuffle(len(ranked), func(i, j int) {
			ranked[i], ranked[j] = ranked[j], ranked[i]
		})
	}

	return ranked
}
