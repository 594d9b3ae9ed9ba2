package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nathanaelandrews/genTile/internal/gentile"
)

// designCmd represents the design command
var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Select a guide library from a scored candidate table",
	Long: `Select a spaced, non-redundant guide library for each target in a
scored candidate table.

Up to three selection strategies run per target:

1. tiling: non-conflicting guides across the whole region, best score
   first, each accepted guide excluding its neighborhood by --radius
2. interference: the --count best guides starting inside the CRISPRi
   window relative to the TSS
3. activation: the --count best guides starting inside the CRISPRa
   window relative to the TSS

A guide picked by several strategies is reported once, with one flag
column per strategy. Without --in, a FASTA of extracted target regions
is first scored by the external scorer (--fasta, --scorer-jar,
--database).`,
	Run: gentile.DesignCmd,
}

// set flags
func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().StringP("in", "i", "", "path to the scored guide table")
	designCmd.Flags().StringP("out", "o", "", "path to write the annotated guide table to")
	designCmd.Flags().StringP("bed", "b", "", "path to write the position sorted interval listing to")
	designCmd.Flags().StringP("metric", "m", "doench2014", "scoring metric used to rank candidates")
	designCmd.Flags().String("modes", "tiling,interference,activation", "comma separated selection modes to run")
	designCmd.Flags().IntP("count", "n", 5, "guides each proximal strategy returns per target")
	designCmd.Flags().IntP("radius", "r", 50, "bp excluded on both sides of an accepted tiling guide")
	designCmd.Flags().String("banned", "", "comma separated motifs that disqualify a guide")
	designCmd.Flags().String("banned-file", "", "file with one banned motif per line")
	designCmd.Flags().String("variants", "", "BED of intervals that disqualify overlapping guides")
	designCmd.Flags().IntP("threads", "t", 0, "targets processed concurrently (0 = all CPUs)")
	designCmd.Flags().String("fasta", "", "FASTA of extracted target regions to score and select from")
	designCmd.Flags().String("scorer-jar", "", "path to the external scorer jar")
	designCmd.Flags().String("database", "", "path to the scorer's off-target database")
	designCmd.Flags().Int("timeout", 60, "minutes the external scorer may run")

	viper.BindPFlag("metric", designCmd.Flags().Lookup("metric"))
	viper.BindPFlag("modes", designCmd.Flags().Lookup("modes"))
	viper.BindPFlag("threads", designCmd.Flags().Lookup("threads"))
	viper.BindPFlag("selection.count", designCmd.Flags().Lookup("count"))
	viper.BindPFlag("selection.radius", designCmd.Flags().Lookup("radius"))
}
