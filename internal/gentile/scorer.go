package gentile

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// scorer wraps the external Java guide design tool that finds candidate
// sites in extracted target FASTA and scores their off-target activity.
// Scoring itself is entirely the tool's concern; this only builds its
// command lines and enforces a timeout.
type scorer struct {
	// path to the scorer jar
	jar string

	// path to the prebuilt off-target database for the genome
	database string

	// how long the two steps together may run
	timeout time.Duration
}

// metrics requested from the scorer. "dangerous" produces the quality
// flag columns the filter depends on.
const scoringMetrics = "doench2014ontarget,doench2016cfd,hsu2013,dangerous,minot"

// run executes one scorer subcommand, returning its combined output in
// the error when it fails.
func (s *scorer) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "java", append([]string{"-Xmx4000m", "-jar", s.jar}, args...)...)

	logrus.WithField("args", cmd.Args).Debug("running external scorer")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("external scorer failed: %v: %s", err, string(out))
	}
	return nil
}

// scoreFasta discovers candidate guides in the FASTA and scores them,
// returning the path of the scored guide table.
func (s *scorer) scoreFasta(fasta, out string) (string, error) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	discovered := out + ".sites"
	if err := s.run(ctx,
		"discover",
		"--fasta", fasta,
		"--database", s.database,
		"--output", discovered,
	); err != nil {
		return "", err
	}

	if err := s.run(ctx,
		"score",
		"--input", discovered,
		"--database", s.database,
		"--output", out,
		"--scoringMetrics", scoringMetrics,
	); err != nil {
		return "", err
	}

	return out, nil
}
