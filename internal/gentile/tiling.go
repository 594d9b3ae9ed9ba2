package gentile

import (
	"sort"

	"github.com/biogo/store/interval"
)

// rankByScore returns the candidates sorted best score first. The sort is
// stable so candidates with equal scores keep their input order, which
// keeps repeated runs identical.
func rankByScore(cands []*Candidate, lowerIsBetter bool) []*Candidate {
	ranked := make([]*Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		if lowerIsBetter {
			return ranked[i].Score < ranked[j].Score
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// selectTiling greedily picks non-conflicting guides across a target
// region, best score first. Each accepted guide claims an exclusion zone,
// its footprint grown by radius on both sides, and any later candidate
// whose own zone would intersect a claimed zone on the same chromosome
// is rejected. Accepted zones are therefore mutually disjoint. Greedy by
// score, so the result is not necessarily the maximum cardinality packing.
//
// Zone state lives for one call and one target only. A target's rows can
// come from regions on several chromosomes, so the trees are keyed by
// chromosome: coordinates never conflict across chromosomes.
func selectTiling(cands []*Candidate, radius int, lowerIsBetter bool) []*Candidate {
	zones := make(map[string]*interval.IntTree)
	var picked []*Candidate

	for i, c := range rankByScore(cands, lowerIsBetter) {
		zoneStart := c.AbsStart - radius
		if zoneStart < 0 {
			zoneStart = 0
		}
		zone := span{start: zoneStart, end: c.AbsEnd + radius, id: uintptr(i)}

		tree, ok := zones[c.Chrom]
		if !ok {
			tree = &interval.IntTree{}
			zones[c.Chrom] = tree
		}
		if len(tree.Get(zone)) > 0 {
			continue
		}

		tree.Insert(zone, false)
		picked = append(picked, c)
	}

	return picked
}
