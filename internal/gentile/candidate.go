// Package gentile selects spaced CRISPR guide libraries around gene
// transcription start sites from a scored candidate table.
package gentile

import (
	"fmt"
)

// guide orientation relative to the extracted input sequence
const (
	fwd = "FWD"
	rvs = "RVS"
)

// Candidate is one scored guide, parsed out of the scorer's table and
// anchored to absolute genome coordinates.
type Candidate struct {
	// ID is stable across runs, unique per target, position, strand and orientation
	ID string

	// Target is the gene or region this guide was designed against
	Target string

	// genomic footprint, half-open
	Chrom    string
	AbsStart int
	AbsEnd   int

	// Strand the guide sits on, "+" or "-"
	Strand string

	// Orientation relative to the extracted sequence, FWD or RVS
	Orientation string

	// Score under the configured metric
	Score float64

	// TSSOffset is guide start minus the TSS anchor. The sign convention
	// does not depend on strand.
	TSSOffset int

	// quality flag columns from the scorer, kept verbatim
	GCFlag    string
	PolyTFlag string
	InGenome  string

	// Seq is the guide target sequence with PAM context, used by the
	// banned motif filter
	Seq string

	// Row is the original table row, preserved for output
	Row string
}

// guideID builds a Candidate ID. It is injective over (target, absStart,
// strand, orientation) so repeated runs produce identical ids.
func guideID(target, chrom string, absStart int, strand, orientation string) string {
	return fmt.Sprintf("%s|%s:%d:%s:%s", target, chrom, absStart, strand, orientation)
}

// MergedGuide is a selected Candidate plus one flag per strategy that
// picked it. Flags are only ever OR-ed after creation.
type MergedGuide struct {
	*Candidate

	Tiling       bool
	Interference bool
	Activation   bool
}
