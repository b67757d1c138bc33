package matching

import "sort"

// Allocate selects a conflict-free subset of the candidates: each student is
// used at most once, each volunteer's tracked remaining capacity is respected
// and the result is capped at limit. Candidates are taken in descending score
// order using a stable sort, so the output is reproducible for a given input.
//
// This is a greedy allocation, not a maximum-weight matching: a pair committed
// early can take a volunteer slot that a later pair for a different student
// would have scored higher with. That trade-off is intentional.
//
// remaining maps volunteer ID to remaining capacity (capacity minus current
// matches) and is mutated in place as advisory, run-local bookkeeping. The
// authoritative capacity check happens again at approval time.
func Allocate(candidates []Candidate, remaining map[string]int, limit int) []Candidate {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	allocated := make([]Candidate, 0, len(sorted))
	usedStudents := make(map[string]bool)

	for _, candidate := range sorted {
		if limit > 0 && len(allocated) >= limit {
			break
		}
		if usedStudents[candidate.StudentID] {
			continue
		}
		if remaining[candidate.VolunteerID] <= 0 {
			continue
		}

		usedStudents[candidate.StudentID] = true
		remaining[candidate.VolunteerID]--
		allocated = append(allocated, candidate)
	}

	return allocated
}
