package news

import "sort"

// Deduplicate clusters candidates that describe the same story and keeps the
// best-scoring representative of each cluster. Grouping is the transitive
// closure of the title-similarity relation (union-find), so the result does
// not depend on input order and two groups never need a later merge.
//
// The kept candidate records how many sources covered the story and absorbs
// the source names/URLs of the folded duplicates. Independently corroborated
// stories rank higher: +8 for two sources, +15 for three or more.
func Deduplicate(candidates []Candidate) []Candidate {
	n := len(candidates)
	if n <= 1 {
		out := make([]Candidate, n)
		copy(out, candidates)
		for i := range out {
			if out[i].CoverageCount == 0 {
				out[i].CoverageCount = 1
			}
		}
		return out
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			// Anchor on the smaller index to keep grouping deterministic.
			if ra < rb {
				parent[rb] = ra
			} else {
				parent[ra] = rb
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if SimilarTitles(candidates[i].Title, candidates[j].Title) {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	roots := make([]int, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	out := make([]Candidate, 0, len(groups))
	for _, root := range roots {
		out = append(out, mergeGroup(candidates, groups[root]))
	}
	return out
}

// mergeGroup keeps the highest-scoring member and folds the rest into it.
func mergeGroup(candidates []Candidate, members []int) Candidate {
	best := members[0]
	for _, i := range members[1:] {
		if candidates[i].Score > candidates[best].Score {
			best = i
		}
	}
	kept := candidates[best]

	if len(members) == 1 {
		// Already-deduplicated input passes through unchanged.
		if kept.CoverageCount == 0 {
			kept.CoverageCount = 1
		}
		return kept
	}

	sources := map[string]bool{}
	urls := map[string]bool{}
	for _, s := range kept.Sources {
		sources[s] = true
	}
	for _, u := range kept.SourceURLs {
		urls[u] = true
	}
	for _, i := range members {
		if i == best {
			continue
		}
		for _, s := range candidates[i].Sources {
			if !sources[s] {
				sources[s] = true
				kept.Sources = append(kept.Sources, s)
			}
		}
		for _, u := range candidates[i].SourceURLs {
			if !urls[u] {
				urls[u] = true
				kept.SourceURLs = append(kept.SourceURLs, u)
			}
		}
	}

	kept.CoverageCount = len(members)
	switch {
	case kept.CoverageCount >= 3:
		kept.Score += 15
	case kept.CoverageCount == 2:
		kept.Score += 8
	}
	if kept.Score > 100 {
		kept.Score = 100
	}
	return kept
}
