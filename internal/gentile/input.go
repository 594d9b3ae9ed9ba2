package gentile

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nathanaelandrews/genTile/config"
)

// Flags contains parsed cobra flags like "in", "out", "banned", etc that
// are used by multiple commands.
type Flags struct {
	// the path to the scored guide table to select from
	in string

	// the path to write the annotated guide table to
	outTable string

	// the path to write the interval listing to (optional)
	outBED string

	// comma separated banned motifs passed directly on the command line
	banned string

	// path to a file with one banned motif per line
	bannedFile string

	// path to a variant BED whose intervals exclude overlapping guides
	variants string

	// FASTA of extracted target regions, scored before selection when
	// no table was given
	fasta string

	// path to the external scorer jar and its off-target database
	scorerJar string
	scorerDB  string

	// minutes the external scorer may run before being killed
	timeout int
}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(in, outTable, outBED, banned, bannedFile, variants string) *Flags {
	return &Flags{
		in:         in,
		outTable:   outTable,
		outBED:     outBED,
		banned:     banned,
		bannedFile: bannedFile,
		variants:   variants,
	}
}

// inputParser contains methods for parsing flags from the input &cobra.Command.
type inputParser struct{}

// guessOutput derives an annotated table path next to the input.
func (p *inputParser) guessOutput(in string) string {
	base := strings.TrimSuffix(in, filepath.Ext(in))
	if base == "" {
		base = "guides"
	}
	return base + ".guides.tsv"
}

// parseBanned splits the comma separated motif flag. Empty entries are
// dropped, case is normalized by the filter.
func (p *inputParser) parseBanned(flag string) []string {
	var motifs []string
	for _, m := range strings.Split(flag, ",") {
		if m = strings.TrimSpace(m); m != "" {
			motifs = append(motifs, m)
		}
	}
	return motifs
}

// bannedMotifs gathers motifs from the flag list and the motif file.
func (p *inputParser) bannedMotifs(flags *Flags) ([]string, error) {
	motifs := p.parseBanned(flags.banned)
	if flags.bannedFile != "" {
		fromFile, err := readMotifs(flags.bannedFile)
		if err != nil {
			return nil, err
		}
		motifs = append(motifs, fromFile...)
	}
	return motifs, nil
}

// parseCmdFlags gathers the in path, out path, etc from a cobra cmd
// object. Returns Flags and a Config for Design or Check.
func parseCmdFlags(cmd *cobra.Command) (*Flags, *config.Config) {
	fs := &Flags{}
	p := inputParser{}
	c := config.New()

	fs.in, _ = cmd.Flags().GetString("in")
	fs.outTable, _ = cmd.Flags().GetString("out")
	fs.outBED, _ = cmd.Flags().GetString("bed")
	fs.banned, _ = cmd.Flags().GetString("banned")
	fs.bannedFile, _ = cmd.Flags().GetString("banned-file")
	fs.variants, _ = cmd.Flags().GetString("variants")
	fs.fasta, _ = cmd.Flags().GetString("fasta")
	fs.scorerJar, _ = cmd.Flags().GetString("scorer-jar")
	fs.scorerDB, _ = cmd.Flags().GetString("database")
	fs.timeout, _ = cmd.Flags().GetInt("timeout")

	if fs.in == "" && fs.fasta == "" {
		cmd.Help()
		logrus.Fatal("no scored guide table (--in) and no FASTA to score (--fasta)")
	}

	if fs.outTable == "" {
		source := fs.in
		if source == "" {
			source = fs.fasta
		}
		fs.outTable = p.guessOutput(source)
	}

	return fs, c
}
