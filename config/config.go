// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// selection mode names, as passed via the "modes" setting
const (
	ModeTiling       = "tiling"
	ModeInterference = "interference"
	ModeActivation   = "activation"
)

// Metric is one scoring column the external scorer may have written.
type Metric struct {
	// Column is the column name in the scored guide table
	Column string

	// LowerIsBetter flips the sort so the smallest score ranks first
	LowerIsBetter bool
}

// metrics maps a metric name, as passed on the command line, to its
// table column and sort direction
var metrics = map[string]Metric{
	"doench2014": {Column: "Doench2014OnTarget"},
	"doench2016": {Column: "Doench2016CFDScore"},
	"hsu2013":    {Column: "Hsu2013"},
	"moreno2015": {Column: "MorenoMateos2015OnTarget"},
	// aggregated off-target activity, closer to zero is more specific
	"cfd-maxot": {Column: "DoenchCFD_maxOT", LowerIsBetter: true},
}

// WindowConfig is one TSS-relative eligibility window, bounds inclusive.
type WindowConfig struct {
	// smallest accepted offset of guide start from the TSS anchor
	Min int `mapstructure:"min"`

	// largest accepted offset of guide start from the TSS anchor
	Max int `mapstructure:"max"`
}

// SelectionConfig holds the per-strategy selection parameters.
type SelectionConfig struct {
	// bp added on both sides of an accepted tiling guide's footprint
	// when building its exclusion zone
	Radius int `mapstructure:"radius"`

	// the number of guides each proximal strategy aims to return per target
	Count int `mapstructure:"count"`

	// eligibility window for CRISPRi guides
	Interference WindowConfig `mapstructure:"interference"`

	// eligibility window for CRISPRa guides
	Activation WindowConfig `mapstructure:"activation"`
}

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// name of the scoring metric used to rank candidates
	Metric string `mapstructure:"metric"`

	// selection modes to run, comma separated
	Modes string `mapstructure:"modes"`

	// number of targets processed concurrently
	Threads int `mapstructure:"threads"`

	// selection parameters
	Selection SelectionConfig `mapstructure:"selection"`
}

// setDefaults stores the stock selection parameters in viper. Flags
// bound by cmd and a local settings.yaml both override these.
func setDefaults() {
	viper.SetDefault("metric", "doench2014")
	viper.SetDefault("modes", strings.Join([]string{ModeTiling, ModeInterference, ModeActivation}, ","))
	viper.SetDefault("threads", runtime.NumCPU())
	viper.SetDefault("selection.radius", 50)
	viper.SetDefault("selection.count", 5)
	viper.SetDefault("selection.interference.min", -50)
	viper.SetDefault("selection.interference.max", 300)
	viper.SetDefault("selection.activation.min", -400)
	viper.SetDefault("selection.activation.max", -50)
}

// New returns a new Config struct populated by Viper settings (either
// from a local settings.yaml) and/or command line arguments
func New() *Config {
	setDefaults()

	viper.SetConfigName("settings")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // a missing settings.yaml is fine, defaults apply

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into config: %v", err)
	}

	return &c
}

// Validate checks the numeric parameters and the metric name before any
// processing starts. Every problem found here is fatal to the run.
func (c *Config) Validate() error {
	if _, err := c.ScoreMetric(); err != nil {
		return err
	}

	if c.Selection.Count < 1 {
		return fmt.Errorf("selection count must be positive: %d", c.Selection.Count)
	}

	if c.Selection.Radius < 0 {
		return fmt.Errorf("exclusion radius cannot be negative: %d", c.Selection.Radius)
	}

	windows := []struct {
		name   string
		window WindowConfig
	}{
		{ModeInterference, c.Selection.Interference},
		{ModeActivation, c.Selection.Activation},
	}
	for _, w := range windows {
		if w.window.Min > w.window.Max {
			return fmt.Errorf("%s window is inverted: [%d, %d]", w.name, w.window.Min, w.window.Max)
		}
	}

	if _, err := c.ModeList(); err != nil {
		return err
	}

	return nil
}

// ScoreMetric resolves the configured metric name to its table column
// and sort direction.
func (c *Config) ScoreMetric() (Metric, error) {
	m, ok := metrics[strings.ToLower(c.Metric)]
	if !ok {
		known := make([]string, 0, len(metrics))
		for name := range metrics {
			known = append(known, name)
		}
		return Metric{}, fmt.Errorf("unknown scoring metric %q, expecting one of: %s", c.Metric, strings.Join(known, ", "))
	}
	return m, nil
}

// ModeList splits and checks the comma separated modes setting.
func (c *Config) ModeList() ([]string, error) {
	var modes []string
	for _, m := range strings.Split(c.Modes, ",") {
		m = strings.TrimSpace(strings.ToLower(m))
		if m == "" {
			continue
		}
		switch m {
		case ModeTiling, ModeInterference, ModeActivation:
			modes = append(modes, m)
		default:
			return nil, fmt.Errorf("unknown selection mode %q", m)
		}
	}

	if len(modes) == 0 {
		return nil, fmt.Errorf("no selection modes set")
	}
	return modes, nil
}
