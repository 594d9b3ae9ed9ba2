// Package cmd is for command line interactions with the genTile application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "genTile",
	Short: `Design spaced CRISPR guide RNA libraries around gene transcription start sites.
Guides are picked from an externally scored candidate table by tiling and
TSS-proximal selection strategies`,
	Version: "0.2.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
