package engine

import "sort"

// Shuffler permutes n elements in place via swap, with rand.Shuffle's contract.
type Shuffler func(n int, swap func(i, j int))

// RankPopular orders available, non-excluded animals by view count descending,
// keeping catalog order among equal counts. If every eligible animal has zero
// views the order is shuffled instead. At most limit ids are returned.
func RankPopular(available []Animal, counts map[string]int, limit int, exclude map[string]struct{}, shuffle Shuffler) []string {
	if limit <= 0 {
		return []string{}
	}
	eligible := make([]Animal, 0, len(available))
	anyViews := false
	for _, a := range available {
		if _, skip := exclude[a.ID]; skip {
			continue
		}
		eligible = append(eligible, a)
		if counts[a.ID] > 0 {
			anyViews = true
		}
	}

	if anyViews {
		sort.SliceStable(eligible, func(i, j int) bool {
			return counts[eligible[i].ID] > counts[eligible[j].ID]
		})
	} else if shuffle != nil {
		shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})
	}

	if len(eligible) > limit {
		eligible = eligible[:limit]
	}
	out := make([]string, 0, len(eligible))
	for _, a := range eligible {
		out = append(out, a.ID)
	}
	return out
}
