package gentile

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/nathanaelandrews/genTile/config"
)

// DesignCmd takes a cobra command (with its flags) and runs Design.
func DesignCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)
	if err := Design(flags, conf); err != nil {
		logrus.Fatal(err)
	}
}

// Design is the end to end selection run: parse the scored guide table,
// filter, run the configured strategies per target, merge, and write the
// report. Row problems are recovered, empty targets are skipped, an
// empty run fails.
func Design(flags *Flags, conf *config.Config) error {
	start := time.Now()

	if err := conf.Validate(); err != nil {
		return &ConfigError{Reason: err.Error()}
	}
	metric, _ := conf.ScoreMetric()

	in := flags.in
	if in == "" {
		// no table yet: have the external tool score the FASTA first
		if flags.scorerJar == "" || flags.scorerDB == "" {
			return &ConfigError{Reason: "scoring a FASTA needs --scorer-jar and --database"}
		}
		s := &scorer{
			jar:      flags.scorerJar,
			database: flags.scorerDB,
			timeout:  time.Duration(flags.timeout) * time.Minute,
		}
		scored, err := s.scoreFasta(flags.fasta, flags.outTable+".scored")
		if err != nil {
			return err
		}
		in = scored
	}

	f, err := os.Open(in)
	if err != nil {
		return &ConfigError{Reason: fmt.Sprintf("cannot read scored guide table: %v", err)}
	}
	defer f.Close()

	cands, header, malformed, err := parseTable(f, metric.Column)
	if err != nil {
		return err
	}

	motifs, variants, err := buildFilters(flags)
	if err != nil {
		return err
	}
	kept, dropped := filterCandidates(cands, motifs, variants)

	strategies, err := buildStrategies(conf, metric.LowerIsBetter)
	if err != nil {
		return err
	}

	merged := processTargets(kept, strategies, conf.Selection.Count, conf.Threads)

	if err := writeReport(flags.outTable, flags.outBED, header, merged); err != nil {
		return err
	}

	logSummary(merged, len(cands), malformed, dropped, time.Since(start))
	return nil
}

// buildFilters loads the optional banned motif set and variant BED.
func buildFilters(flags *Flags) (*motifFilter, *variantFilter, error) {
	p := inputParser{}

	var motifs *motifFilter
	banned, err := p.bannedMotifs(flags)
	if err != nil {
		return nil, nil, err
	}
	if len(banned) > 0 {
		motifs = newMotifFilter(banned)
	}

	var variants *variantFilter
	if flags.variants != "" {
		if variants, err = readVariantBED(flags.variants); err != nil {
			return nil, nil, err
		}
	}

	return motifs, variants, nil
}

// groupByTarget buckets candidates by target id, keeping both the
// per-target input order and the order targets first appear in.
func groupByTarget(cands []*Candidate) (map[string][]*Candidate, []string) {
	byTarget := make(map[string][]*Candidate)
	var targets []string
	for _, c := range cands {
		if _, ok := byTarget[c.Target]; !ok {
			targets = append(targets, c.Target)
		}
		byTarget[c.Target] = append(byTarget[c.Target], c)
	}
	return byTarget, targets
}

// processTargets fans targets out over a bounded worker pool. Each
// worker owns all state for the targets it draws, so there is nothing to
// lock; results land in a slot per target and are flattened after the
// join.
func processTargets(cands []*Candidate, strategies []strategy, count, threads int) []*MergedGuide {
	byTarget, targets := groupByTarget(cands)

	// 0 (or anything negative) means one worker per CPU
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	if threads > len(targets) {
		threads = len(targets)
	}

	results := make([][]*MergedGuide, len(targets))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = designTarget(targets[i], byTarget[targets[i]], strategies, count)
			}
		}()
	}
	for i := range targets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var merged []*MergedGuide
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}

// designTarget runs every strategy over one target's candidates and
// merges their picks. A target yielding nothing is a notice, not an
// error: the run continues with the other targets.
func designTarget(target string, cands []*Candidate, strategies []strategy, count int) []*MergedGuide {
	selections := make(map[string][]*Candidate)
	for _, s := range strategies {
		picked := s.Select(cands)
		selections[s.Name()] = picked

		if _, proximal := s.(*windowStrategy); proximal && len(picked) < count {
			logrus.WithFields(logrus.Fields{
				"target": target,
				"mode":   s.Name(),
				"picked": len(picked),
				"wanted": count,
			}).Info("fewer guides in window than requested")
		}
	}

	merged := mergeTarget(selections)
	if len(merged) == 0 {
		logrus.WithField("target", target).Info("no guides selected for target")
	}
	return merged
}

// logSummary reports run counts and the score spread of the final set.
func logSummary(merged []*MergedGuide, parsed, malformed, filtered int, elapsed time.Duration) {
	var tiling, interference, activation int
	scores := make([]float64, len(merged))
	for i, g := range merged {
		scores[i] = g.Score
		if g.Tiling {
			tiling++
		}
		if g.Interference {
			interference++
		}
		if g.Activation {
			activation++
		}
	}

	logrus.WithFields(logrus.Fields{
		"parsed":       parsed,
		"malformed":    malformed,
		"filtered":     filtered,
		"tiling":       tiling,
		"interference": interference,
		"activation":   activation,
		"merged":       len(merged),
		"scoreMean":    fmt.Sprintf("%.3f", stat.Mean(scores, nil)),
		"scoreMin":     fmt.Sprintf("%.3f", floats.Min(scores)),
		"scoreMax":     fmt.Sprintf("%.3f", floats.Max(scores)),
		"elapsed":      elapsed.Round(time.Millisecond).String(),
	}).Info("guide selection finished")
}
