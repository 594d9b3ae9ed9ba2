package gentile

import (
	"testing"

	"github.com/biogo/store/interval"
)

// cand builds a minimal selectable candidate for strategy tests.
func cand(id string, start, end int, score float64, offset int) *Candidate {
	return &Candidate{
		ID:        id,
		Target:    "GENE1",
		Chrom:     "chr1",
		AbsStart:  start,
		AbsEnd:    end,
		Strand:    "+",
		Score:     score,
		TSSOffset: offset,
	}
}

// ids collapses candidates to their ids for comparisons.
func ids(cands []*Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

// sameIDs compares two id slices in order.
func sameIDs(t *testing.T, got []*Candidate, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("selected %v, want %v", ids(got), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("selected %v, want %v", ids(got), want)
		}
	}
}

// mustTree builds a single interval variant tree for filter tests.
func mustTree(t *testing.T, chrom string, start, end int) map[string]*interval.IntTree {
	t.Helper()
	tree := &interval.IntTree{}
	if err := tree.Insert(span{start: start, end: end}, false); err != nil {
		t.Fatal(err)
	}
	return map[string]*interval.IntTree{chrom: tree}
}
