package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nathanaelandrews/genTile/internal/gentile"
)

// checkCmd is for inspecting a scored guide table before designing:
// how many candidates each target has and how many survive the filters
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Count usable candidates per target without selecting",
	Long: `Parse and filter a scored guide table, then list how many candidates
each target has and how many pass the quality, banned motif, and
variant filters. Nothing is selected and nothing is written.`,
	Run: gentile.CheckCmd,
}

// set flags
func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("in", "i", "", "path to the scored guide table")
	checkCmd.Flags().StringP("metric", "m", "doench2014", "scoring metric used to rank candidates")
	checkCmd.Flags().String("banned", "", "comma separated motifs that disqualify a guide")
	checkCmd.Flags().String("banned-file", "", "file with one banned motif per line")
	checkCmd.Flags().String("variants", "", "BED of intervals that disqualify overlapping guides")

	viper.BindPFlag("metric", checkCmd.Flags().Lookup("metric"))
}
