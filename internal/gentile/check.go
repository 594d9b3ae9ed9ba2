package gentile

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nathanaelandrews/genTile/config"
)

// CheckCmd parses and filters a scored guide table without selecting,
// for inspecting what the selection would have to work with.
func CheckCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)
	if err := Check(flags, conf); err != nil {
		logrus.Fatal(err)
	}
}

// Check logs per-target candidate counts after the quality filters.
func Check(flags *Flags, conf *config.Config) error {
	metric, err := conf.ScoreMetric()
	if err != nil {
		return &ConfigError{Reason: err.Error()}
	}

	f, err := os.Open(flags.in)
	if err != nil {
		return &ConfigError{Reason: fmt.Sprintf("cannot read scored guide table: %v", err)}
	}
	defer f.Close()

	cands, _, malformed, err := parseTable(f, metric.Column)
	if err != nil {
		return err
	}

	motifs, variants, err := buildFilters(flags)
	if err != nil {
		return err
	}
	kept, _ := filterCandidates(cands, motifs, variants)

	keptByTarget, _ := groupByTarget(kept)
	allByTarget, targets := groupByTarget(cands)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "target\tcandidates\tpassing\t\n")
	for _, t := range targets {
		fmt.Fprintf(writer, "%s\t%d\t%d\t\n", t, len(allByTarget[t]), len(keptByTarget[t]))
	}
	writer.Flush()

	if malformed > 0 {
		logrus.Warnf("%d malformed rows were skipped", malformed)
	}
	return nil
}
