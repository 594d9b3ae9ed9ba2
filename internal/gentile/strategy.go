package gentile

import (
	"github.com/nathanaelandrews/genTile/config"
)

// strategy is one of the three fixed selection modes. Select never
// mutates its input and owns no state across calls.
type strategy interface {
	// Name is the mode name used in config and report flags
	Name() string

	// Select returns the chosen subset in acceptance order
	Select(cands []*Candidate) []*Candidate
}

// tilingStrategy spaces guides across the whole extracted region.
type tilingStrategy struct {
	radius        int
	lowerIsBetter bool
}

func (s *tilingStrategy) Name() string { return config.ModeTiling }

func (s *tilingStrategy) Select(cands []*Candidate) []*Candidate {
	return selectTiling(cands, s.radius, s.lowerIsBetter)
}

// windowStrategy picks the top guides inside a fixed TSS-relative window.
// It backs both the interference and the activation mode.
type windowStrategy struct {
	name          string
	min, max      int
	count         int
	lowerIsBetter bool
}

func (s *windowStrategy) Name() string { return s.name }

func (s *windowStrategy) Select(cands []*Candidate) []*Candidate {
	return selectWindow(cands, s.min, s.max, s.count, s.lowerIsBetter)
}

// buildStrategies instantiates the configured modes. The mode list was
// validated with the rest of the config, so unknown names cannot reach
// this point.
func buildStrategies(conf *config.Config, lowerIsBetter bool) ([]strategy, error) {
	modes, err := conf.ModeList()
	if err != nil {
		return nil, err
	}

	sel := conf.Selection
	var strategies []strategy
	for _, mode := range modes {
		switch mode {
		case config.ModeTiling:
			strategies = append(strategies, &tilingStrategy{
				radius:        sel.Radius,
				lowerIsBetter: lowerIsBetter,
			})
		case config.ModeInterference:
			strategies = append(strategies, &windowStrategy{
				name:          config.ModeInterference,
				min:           sel.Interference.Min,
				max:           sel.Interference.Max,
				count:         sel.Count,
				lowerIsBetter: lowerIsBetter,
			})
		case config.ModeActivation:
			strategies = append(strategies, &windowStrategy{
				name:          config.ModeActivation,
				min:           sel.Activation.Min,
				max:           sel.Activation.Max,
				count:         sel.Count,
				lowerIsBetter: lowerIsBetter,
			})
		}
	}
	return strategies, nil
}
