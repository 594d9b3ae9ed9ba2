package gentile

import (
	"github.com/nathanaelandrews/genTile/config"
)

// mergeTarget unions the per-strategy selections for one target. Each
// unique candidate id appears once; the mode flags record which
// strategies picked it. A guide picked by several modes keeps one row
// with several flags set, so overlapping window configurations are fine.
//
// Guides come back in first-seen order across the strategies. The report
// re-sorts by position, so callers must not rely on this order.
func mergeTarget(selections map[string][]*Candidate) []*MergedGuide {
	byID := make(map[string]*MergedGuide)
	var order []*MergedGuide

	// fixed mode order keeps the union walk deterministic
	for _, mode := range []string{config.ModeTiling, config.ModeInterference, config.ModeActivation} {
		for _, c := range selections[mode] {
			g, ok := byID[c.ID]
			if !ok {
				g = &MergedGuide{Candidate: c}
				byID[c.ID] = g
				order = append(order, g)
			}

			switch mode {
			case config.ModeTiling:
				g.Tiling = true
			case config.ModeInterference:
				g.Interference = true
			case config.ModeActivation:
				g.Activation = true
			}
		}
	}

	return order
}
