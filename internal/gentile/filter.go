package gentile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"
)

// inGenomeOnce is what the scorer writes when the guide's site was found
// exactly once in the genome it was scored against.
const inGenomeOnce = "IN_GENOME=1"

// passesQuality reports whether a candidate clears the scorer's static
// quality flags: no dangerous GC content, no poly-T stretch, and a
// confirmed single site in the genome.
func passesQuality(c *Candidate) bool {
	return c.GCFlag == "NONE" && c.PolyTFlag == "NONE" && c.InGenome == inGenomeOnce
}

// motifFilter rejects candidates whose target sequence contains any of a
// set of banned motifs. Motifs arrive pre-expanded (both strands, no
// ambiguity codes), so containment is a plain substring test.
type motifFilter struct {
	motifs []string
}

// newMotifFilter uppercases and keeps the non-empty motifs.
func newMotifFilter(motifs []string) *motifFilter {
	f := &motifFilter{}
	for _, m := range motifs {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			f.motifs = append(f.motifs, m)
		}
	}
	return f
}

// readMotifs loads one motif per line, ignoring blanks and # comments.
func readMotifs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("cannot read banned motif file: %v", err)}
	}
	defer f.Close()

	var motifs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		motifs = append(motifs, line)
	}
	return motifs, scanner.Err()
}

// bans returns true on the first motif contained in seq.
func (f *motifFilter) bans(seq string) bool {
	seq = strings.ToUpper(seq)
	for _, m := range f.motifs {
		if strings.Contains(seq, m) {
			return true
		}
	}
	return false
}

// span is a half-open genomic interval in a per-chromosome tree.
type span struct {
	start, end int
	id         uintptr
}

// Overlap reports whether b intersects the span, half-open on both sides.
func (s span) Overlap(b interval.IntRange) bool {
	return s.start < b.End && b.Start < s.end
}

func (s span) ID() uintptr { return s.id }

func (s span) Range() interval.IntRange {
	return interval.IntRange{Start: s.start, End: s.end}
}

// variantFilter holds the intervals of a variant BED, one tree per
// chromosome, and answers overlap queries for candidate footprints.
type variantFilter struct {
	trees map[string]*interval.IntTree
}

// readVariantBED builds a variantFilter from a BED file (first three
// columns used, the rest ignored).
func readVariantBED(path string) (*variantFilter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("cannot read variant BED: %v", err)}
	}
	defer f.Close()

	vf := &variantFilter{trees: make(map[string]*interval.IntTree)}
	scanner := bufio.NewScanner(f)
	var id uintptr
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "track") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			return nil, &ConfigError{Reason: fmt.Sprintf("variant BED line %d has %d columns, expecting at least 3", line, len(fields))}
		}
		start, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("variant BED line %d: bad start: %v", line, err)}
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("variant BED line %d: bad end: %v", line, err)}
		}

		tree, ok := vf.trees[fields[0]]
		if !ok {
			tree = &interval.IntTree{}
			vf.trees[fields[0]] = tree
		}
		if err := tree.Insert(span{start: start, end: end, id: id}, true); err != nil {
			return nil, fmt.Errorf("inserting variant interval: %v", err)
		}
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, tree := range vf.trees {
		tree.AdjustRanges()
	}
	return vf, nil
}

// overlaps reports whether the footprint intersects any variant interval.
func (vf *variantFilter) overlaps(chrom string, start, end int) bool {
	tree, ok := vf.trees[chrom]
	if !ok {
		return false
	}
	return len(tree.Get(span{start: start, end: end})) > 0
}

// filterCandidates applies the quality predicates and the optional motif
// and variant filters. Candidates are never mutated, order is preserved.
func filterCandidates(cands []*Candidate, motifs *motifFilter, variants *variantFilter) (kept []*Candidate, dropped int) {
	for _, c := range cands {
		if !passesQuality(c) {
			dropped++
			continue
		}
		if motifs != nil && motifs.bans(c.Seq) {
			dropped++
			continue
		}
		if variants != nil && variants.overlaps(c.Chrom, c.AbsStart, c.AbsEnd) {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	return kept, dropped
}
