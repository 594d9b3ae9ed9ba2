package gentile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// contigRx is the grammar of the contig column:
// target::chr:start-end(strand) with an optional ::TSS_chr:pos anchor
// appended by the extraction step.
var contigRx = regexp.MustCompile(`^(.+?)::(.+?):(\d+)-(\d+)\(([+-])\)(?:::TSS_(.+?):(\d+))?$`)

// region is the extracted genomic window a guide's relative coordinates
// refer back to.
type region struct {
	target string
	chrom  string
	start  int
	end    int
	strand string

	// anchor is the absolute TSS position offsets are measured from.
	// Without an explicit TSS the region start stands in.
	anchor int
}

// parseContig decodes the contig identifier string into its region.
func parseContig(contig string) (region, error) {
	m := contigRx.FindStringSubmatch(contig)
	if m == nil {
		return region{}, fmt.Errorf("contig %q does not match target::chr:start-end(strand)", contig)
	}

	start, err := strconv.Atoi(m[3])
	if err != nil {
		return region{}, fmt.Errorf("contig %q: bad region start: %v", contig, err)
	}
	end, err := strconv.Atoi(m[4])
	if err != nil {
		return region{}, fmt.Errorf("contig %q: bad region end: %v", contig, err)
	}
	if start >= end {
		return region{}, fmt.Errorf("contig %q: empty region %d-%d", contig, start, end)
	}

	r := region{
		target: m[1],
		chrom:  m[2],
		start:  start,
		end:    end,
		strand: m[5],
		anchor: start,
	}

	if m[6] != "" {
		anchor, err := strconv.Atoi(m[7])
		if err != nil {
			return region{}, fmt.Errorf("contig %q: bad TSS position: %v", contig, err)
		}
		if m[6] != r.chrom {
			return region{}, fmt.Errorf("contig %q: TSS on %s but region on %s", contig, m[6], r.chrom)
		}
		r.anchor = anchor
	}

	return r, nil
}

// columns the scorer must have written, beyond the configured score column
var requiredCols = []string{
	"contig",
	"start",
	"stop",
	"target",
	"orientation",
	"dangerous_GC",
	"dangerous_polyT",
	"dangerous_in_genome",
}

// tableHeader maps the scorer's header row to column indexes.
type tableHeader struct {
	line string
	cols map[string]int
}

// parseHeader checks the required columns and the score column are all
// present. A missing column is a configuration problem, not a row problem.
func parseHeader(line, scoreCol string) (*tableHeader, error) {
	h := &tableHeader{line: line, cols: make(map[string]int)}
	for i, name := range strings.Split(line, "\t") {
		h.cols[name] = i
	}

	for _, name := range append(append([]string{}, requiredCols...), scoreCol) {
		if _, ok := h.cols[name]; !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("scored guide table is missing column %q", name)}
		}
	}
	return h, nil
}

// field returns the named column of a split row.
func (h *tableHeader) field(fields []string, name string) (string, error) {
	i := h.cols[name]
	if i >= len(fields) {
		return "", fmt.Errorf("row has %d columns, %q is column %d", len(fields), name, i+1)
	}
	return fields[i], nil
}

// parseRow turns one data row into a Candidate.
func (h *tableHeader) parseRow(line, scoreCol string) (*Candidate, error) {
	fields := strings.Split(line, "\t")

	get := func(name string) string {
		f, _ := h.field(fields, name)
		return f
	}
	for _, name := range append(append([]string{}, requiredCols...), scoreCol) {
		if _, err := h.field(fields, name); err != nil {
			return nil, err
		}
	}

	reg, err := parseContig(get("contig"))
	if err != nil {
		return nil, err
	}

	relStart, err := strconv.Atoi(get("start"))
	if err != nil {
		return nil, fmt.Errorf("bad relative start %q: %v", get("start"), err)
	}
	relEnd, err := strconv.Atoi(get("stop"))
	if err != nil {
		return nil, fmt.Errorf("bad relative stop %q: %v", get("stop"), err)
	}
	if relStart >= relEnd {
		return nil, fmt.Errorf("empty guide footprint %d-%d", relStart, relEnd)
	}

	orientation := get("orientation")
	if orientation != fwd && orientation != rvs {
		return nil, fmt.Errorf("orientation %q is neither %s nor %s", orientation, fwd, rvs)
	}

	score, err := strconv.ParseFloat(get(scoreCol), 64)
	if err != nil {
		return nil, fmt.Errorf("bad %s score %q: %v", scoreCol, get(scoreCol), err)
	}

	// relative coordinates count from the region start
	absStart := reg.start + relStart
	absEnd := reg.start + relEnd

	// a reverse oriented guide sits on the opposite strand of its region
	strand := reg.strand
	if orientation == rvs {
		if strand == "+" {
			strand = "-"
		} else {
			strand = "+"
		}
	}

	return &Candidate{
		ID:          guideID(reg.target, reg.chrom, absStart, strand, orientation),
		Target:      reg.target,
		Chrom:       reg.chrom,
		AbsStart:    absStart,
		AbsEnd:      absEnd,
		Strand:      strand,
		Orientation: orientation,
		Score:       score,
		TSSOffset:   absStart - reg.anchor,
		GCFlag:      get("dangerous_GC"),
		PolyTFlag:   get("dangerous_polyT"),
		InGenome:    get("dangerous_in_genome"),
		Seq:         get("target"),
		Row:         line,
	}, nil
}

// parseTable reads the whole scored guide table. Malformed rows are
// logged and counted, never fatal; a bad header is fatal.
func parseTable(r io.Reader, scoreCol string) (cands []*Candidate, header string, malformed int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var h *tableHeader
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if text == "" {
			continue
		}

		if h == nil {
			if h, err = parseHeader(text, scoreCol); err != nil {
				return nil, "", 0, err
			}
			header = text
			continue
		}

		c, rowErr := h.parseRow(text, scoreCol)
		if rowErr != nil {
			malformed++
			logrus.Warn(&MalformedRecordError{Line: line, Reason: rowErr.Error()})
			continue
		}
		cands = append(cands, c)
	}
	if err = scanner.Err(); err != nil {
		return nil, "", 0, fmt.Errorf("reading scored guide table: %v", err)
	}

	if h == nil {
		return nil, "", 0, &ConfigError{Reason: "scored guide table is empty"}
	}

	return cands, header, malformed, nil
}
