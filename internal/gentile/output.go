package gentile

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

// extra columns appended to the scorer's header in the annotated table
const flagHeader = "tiling_guide\tinterference_guide\tactivation_guide"

// sortByPosition orders merged guides chromosome lexical, then start
// ascending, with the id as a final tie break so the order is total.
func sortByPosition(guides []*MergedGuide) {
	sort.SliceStable(guides, func(i, j int) bool {
		if guides[i].Chrom != guides[j].Chrom {
			return guides[i].Chrom < guides[j].Chrom
		}
		if guides[i].AbsStart != guides[j].AbsStart {
			return guides[i].AbsStart < guides[j].AbsStart
		}
		return guides[i].ID < guides[j].ID
	})
}

// writeReport writes the annotated guide table and the interval listing.
// Both files are written only after every target finished, so a consumer
// never sees a truncated report.
func writeReport(tablePath, bedPath, header string, guides []*MergedGuide) error {
	if len(guides) == 0 {
		return ErrNoGuidesSelected
	}

	sortByPosition(guides)

	if err := writeTable(tablePath, header, guides); err != nil {
		return err
	}
	if bedPath != "" {
		if err := writeIntervals(bedPath, guides); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"guides": len(guides),
		"table":  tablePath,
	}).Info("wrote guide report")
	return nil
}

// writeTable emits one row per merged guide: the original scorer row
// plus the three mode flags.
func writeTable(path, header string, guides []*MergedGuide) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating annotated table: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\t%s\n", header, flagHeader)
	for _, g := range guides {
		fmt.Fprintf(w, "%s\t%t\t%t\t%t\n", g.Row, g.Tiling, g.Interference, g.Activation)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing annotated table: %v", err)
	}
	return nil
}

// writeIntervals emits the headerless six column listing for genome
// browsers: chrom, start, end, id, score, strand.
func writeIntervals(path string, guides []*MergedGuide) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating interval listing: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, g := range guides {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			g.Chrom, g.AbsStart, g.AbsEnd, g.ID,
			strconv.FormatFloat(g.Score, 'g', -1, 64), g.Strand)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing interval listing: %v", err)
	}
	return nil
}
