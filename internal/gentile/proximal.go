package gentile

// selectWindow picks the best count guides whose TSS offset falls inside
// [min, max], bounds inclusive. Candidates outside the window are not
// considered at all. No spacing logic: proximal guides may overlap.
func selectWindow(cands []*Candidate, min, max, count int, lowerIsBetter bool) []*Candidate {
	var inWindow []*Candidate
	for _, c := range cands {
		if c.TSSOffset >= min && c.TSSOffset <= max {
			inWindow = append(inWindow, c)
		}
	}

	ranked := rankByScore(inWindow, lowerIsBetter)
	if len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked
}
