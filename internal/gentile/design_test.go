package gentile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/nathanaelandrews/genTile/config"
)

// testConfig is the default selection setup used across design tests.
func testConfig() *config.Config {
	return &config.Config{
		Metric:  "doench2014",
		Modes:   "tiling,interference,activation",
		Threads: 2,
		Selection: config.SelectionConfig{
			Radius:       50,
			Count:        3,
			Interference: config.WindowConfig{Min: -50, Max: 300},
			Activation:   config.WindowConfig{Min: -400, Max: -50},
		},
	}
}

func defaultStrategies(t *testing.T, conf *config.Config) []strategy {
	t.Helper()
	strategies, err := buildStrategies(conf, false)
	if err != nil {
		t.Fatal(err)
	}
	return strategies
}

func Test_processTargets(t *testing.T) {
	conf := testConfig()

	// two independent targets, far apart
	var cands []*Candidate
	g1 := []*Candidate{
		cand("g1a", 10000, 10023, 90, -10),
		cand("g1b", 10200, 10223, 80, 190),
		cand("g1c", 10400, 10423, 70, 390),
	}
	for _, c := range g1 {
		cands = append(cands, c)
	}
	g2a := cand("g2a", 50000, 50023, 60, -100)
	g2a.Target = "GENE2"
	g2a.Chrom = "chr2"
	cands = append(cands, g2a)

	merged := processTargets(cands, defaultStrategies(t, conf), conf.Selection.Count, conf.Threads)

	targets := make(map[string]int)
	for _, g := range merged {
		targets[g.Target]++
	}
	if targets["GENE1"] != 3 || targets["GENE2"] != 1 {
		t.Errorf("per-target counts = %v, want GENE1:3 GENE2:1", targets)
	}
}

func Test_processTargets_deterministic(t *testing.T) {
	conf := testConfig()

	var cands []*Candidate
	for i := 0; i < 40; i++ {
		c := cand(string(rune('a'+i%26))+"x", 10000+i*37, 10023+i*37, float64((i*13)%29), (i*37)-500)
		c.ID = c.ID + string(rune('0'+i%10))
		if i%2 == 1 {
			c.Target = "GENE2"
		}
		cands = append(cands, c)
	}

	run := func(threads int) []string {
		conf.Threads = threads
		merged := processTargets(cands, defaultStrategies(t, conf), conf.Selection.Count, threads)
		sortByPosition(merged)
		out := make([]string, len(merged))
		for i, g := range merged {
			out[i] = g.ID
		}
		return out
	}

	first := run(1)
	// 0 maps to one worker per CPU
	for _, threads := range []int{0, 1, 2, 8} {
		for i := 0; i < 5; i++ {
			if got := run(threads); !reflect.DeepEqual(got, first) {
				t.Fatalf("selection with %d threads differs from single threaded run", threads)
			}
		}
	}
}

func Test_designTarget_windowsDisjoint(t *testing.T) {
	conf := testConfig()

	var cands []*Candidate
	offsets := []int{-450, -350, -200, -100, -60, -40, 0, 150, 290, 450}
	for i, off := range offsets {
		cands = append(cands, cand(string(rune('a'+i)), 10000+off, 10023+off, float64(10+i), off))
	}

	merged := designTarget("GENE1", cands, defaultStrategies(t, conf), conf.Selection.Count)
	for _, g := range merged {
		if g.Interference && g.Activation {
			t.Errorf("%s carries both proximal flags under default windows", g.ID)
		}
		if g.Interference && (g.TSSOffset < -50 || g.TSSOffset > 300) {
			t.Errorf("%s interference flag outside window, offset %d", g.ID, g.TSSOffset)
		}
		if g.Activation && (g.TSSOffset < -400 || g.TSSOffset > -50) {
			t.Errorf("%s activation flag outside window, offset %d", g.ID, g.TSSOffset)
		}
	}
}

// writeFixture builds a small scored table on disk with two designable
// targets and one whose rows all fail the quality filter.
func writeFixture(t *testing.T, dir string) string {
	t.Helper()

	rows := []string{scoredHeader}
	// GENE1: spaced candidates around an explicit TSS
	contig1 := "GENE1::chr1:10000-12000(+)::TSS_chr1:10500"
	rows = append(rows,
		row(contig1, 400, 423, "FWD", 0.90), // offset -100
		row(contig1, 520, 543, "FWD", 0.80), // offset 20
		row(contig1, 700, 723, "RVS", 0.70), // offset 200
		row(contig1, 1400, 1423, "FWD", 0.60),
	)
	// GENE2: one good candidate
	rows = append(rows, row("GENE2::chr2:500-900(-)", 40, 63, "FWD", 0.55))
	// GENE3: poly-T disqualifies everything
	bad := strings.Replace(
		row("GENE3::chr3:100-600(+)", 40, 63, "FWD", 0.99),
		"NONE\tNONE", "NONE\tIsDangerousPolyT", 1)
	rows = append(rows, bad)

	path := filepath.Join(dir, "scored.tsv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_Design(t *testing.T) {
	dir := t.TempDir()
	in := writeFixture(t, dir)
	out := filepath.Join(dir, "guides.tsv")
	bed := filepath.Join(dir, "guides.bed")

	flags := NewFlags(in, out, bed, "", "", "")
	if err := Design(flags, testConfig()); err != nil {
		t.Fatal(err)
	}

	table, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(table), "\n"), "\n")
	if lines[0] != scoredHeader+"\t"+flagHeader {
		t.Errorf("annotated header wrong: %s", lines[0])
	}

	// the filtered-out GENE3 target is skipped, not fatal
	for _, l := range lines {
		if strings.Contains(l, "GENE3") {
			t.Errorf("guide for fully filtered target in output: %s", l)
		}
	}
	if !strings.Contains(string(table), "GENE2") {
		t.Error("designable GENE2 missing from output")
	}

	bedBytes, err := os.ReadFile(bed)
	if err != nil {
		t.Fatal(err)
	}
	bedLines := strings.Split(strings.TrimRight(string(bedBytes), "\n"), "\n")
	if len(bedLines) != len(lines)-1 {
		t.Errorf("interval listing has %d rows, table has %d", len(bedLines), len(lines)-1)
	}
	// position sorted: chromosome lexical, then start ascending
	for i := 1; i < len(bedLines); i++ {
		prev := strings.Split(bedLines[i-1], "\t")
		cur := strings.Split(bedLines[i], "\t")
		if prev[0] > cur[0] {
			t.Errorf("interval listing chromosomes out of order at row %d", i)
		}
		if prev[0] == cur[0] {
			prevStart, _ := strconv.Atoi(prev[1])
			curStart, _ := strconv.Atoi(cur[1])
			if prevStart > curStart {
				t.Errorf("interval listing starts out of order at row %d", i)
			}
		}
	}
}

func Test_Design_repeatable(t *testing.T) {
	dir := t.TempDir()
	in := writeFixture(t, dir)

	var outputs []string
	for i := 0; i < 3; i++ {
		out := filepath.Join(dir, "guides.tsv")
		if err := Design(NewFlags(in, out, "", "", "", ""), testConfig()); err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, string(b))
	}

	if outputs[0] != outputs[1] || outputs[1] != outputs[2] {
		t.Error("repeated runs produced different reports")
	}
}

func Test_Design_noGuides(t *testing.T) {
	dir := t.TempDir()

	// every row fails the quality filter
	bad := strings.Replace(
		row("GENE1::chr1:10000-12000(+)", 400, 423, "FWD", 0.9),
		"IN_GENOME=1", "IN_GENOME=0", 1)
	in := filepath.Join(dir, "scored.tsv")
	if err := os.WriteFile(in, []byte(scoredHeader+"\n"+bad+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Design(NewFlags(in, filepath.Join(dir, "guides.tsv"), "", "", "", ""), testConfig())
	if !errors.Is(err, ErrNoGuidesSelected) {
		t.Fatalf("error = %v, want ErrNoGuidesSelected", err)
	}
}

func Test_Design_badMetric(t *testing.T) {
	dir := t.TempDir()
	in := writeFixture(t, dir)

	conf := testConfig()
	conf.Metric = "doench1999"

	err := Design(NewFlags(in, filepath.Join(dir, "guides.tsv"), "", "", "", ""), conf)
	var confErr *ConfigError
	if !errors.As(err, &confErr) {
		t.Fatalf("error = %v, want a ConfigError", err)
	}
}

func Test_groupByTarget(t *testing.T) {
	a1 := cand("a1", 1, 24, 1, 0)
	b1 := cand("b1", 1, 24, 1, 0)
	b1.Target = "GENE2"
	a2 := cand("a2", 100, 123, 1, 0)

	byTarget, targets := groupByTarget([]*Candidate{a1, b1, a2})
	if !reflect.DeepEqual(targets, []string{"GENE1", "GENE2"}) {
		t.Errorf("target order = %v, want first-seen order", targets)
	}
	if len(byTarget["GENE1"]) != 2 || len(byTarget["GENE2"]) != 1 {
		t.Errorf("grouping wrong: %v", byTarget)
	}
}
