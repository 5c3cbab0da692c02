package secondary

// classifyPatterns walks the resolved hydrogen bonds and sets the
// per-residue turn and bridge flags, recording beta partners as it
// goes.
func (a *assignment) classifyPatterns() {
	a.classifyTurns()
	a.classifyAntiparallelBridges()
	a.classifyParallelBridges()
	a.canonicalizeBetaPartners()
}

// classifyTurns flags an n-turn on every residue whose carbonyl bonds
// to the amide of a residue three, four or five positions downstream.
func (a *assignment) classifyTurns() {
	for i := 0; i < a.aaCount; i++ {
		j := a.coHBonds[i]
		if j < 0 {
			continue
		}
		switch a.resPointers[j] - a.resPointers[i] {
		case 3:
			a.pattern[i] |= threeTurn
		case 4:
			a.pattern[i] |= fourTurn
		case 5:
			a.pattern[i] |= fiveTurn
		}
	}
}

// classifyAntiparallelBridges flags the two antiparallel bridge
// patterns: mutual carbonyl-amide bonds, and the offset pattern where
// the bond two residues downstream closes a two-residue ladder rung.
func (a *assignment) classifyAntiparallelBridges() {
	for i := 0; i < a.aaCount; i++ {
		j := a.coHBonds[i]
		if j < 0 {
			continue
		}
		if a.coHBonds[j] == i {
			a.pattern[i] |= antiparallel
			a.pattern[j] |= antiparallel
			a.recordBetaPartner(i, j)
			a.recordBetaPartner(j, i)
		}
		if i+2 < a.aaCount {
			k := a.hnHBonds[i+2]
			if k >= 0 && k+1 < a.aaCount && a.resPointers[j]-a.resPointers[k] == 2 {
				a.pattern[i+1] |= antiparallel
				a.pattern[k+1] |= antiparallel
				a.recordBetaPartner(i+1, k+1)
				a.recordBetaPartner(k+1, i+1)
			}
		}
	}
}

// classifyParallelBridges flags the two parallel bridge patterns.
func (a *assignment) classifyParallelBridges() {
	for i := 0; i < a.aaCount; i++ {
		if i >= 1 {
			k := a.coHBonds[i-1]
			if k >= 0 && a.coHBonds[k] >= 0 && a.resPointers[a.coHBonds[k]]-a.resPointers[i] == 1 {
				a.pattern[i] |= parallel
				a.pattern[k] |= parallel
				a.recordBetaPartner(i, k)
				a.recordBetaPartner(k, i)
			}
		}
		if a.hnHBonds[i] >= 0 && a.coHBonds[i] >= 0 &&
			a.resPointers[a.coHBonds[i]]-a.resPointers[a.hnHBonds[i]] == 2 {
			k := a.hnHBonds[i] + 1
			if k < a.aaCount {
				a.pattern[i] |= parallel
				a.pattern[k] |= parallel
				a.recordBetaPartner(i, k)
				a.recordBetaPartner(k, i)
			}
		}
	}
}

// recordBetaPartner stores the partner's global residue index for
// amino acid i in the first free beta slot: beta1 when empty, otherwise
// beta2 when the partner differs from beta1. Further partners are
// dropped.
func (a *assignment) recordBetaPartner(i, partner int) {
	g := a.resPointers[i]
	pg := a.resPointers[partner]
	switch {
	case a.beta1[g] < 0:
		a.beta1[g] = pg
	case a.beta1[g] != pg && a.beta2[g] < 0:
		a.beta2[g] = pg
	}
}

// canonicalizeBetaPartners keeps beta1 pointing at the same strand side
// across a sheet. For each residue with a beta1 partner, the partner is
// compared against the nearest preceding residue with beta information
// (one back, or two back when the immediate neighbor has none): if the
// neighbor's beta1 is set and the partners lie more than two residues
// apart, or only the neighbor's beta2 is set and the partners lie
// within two, the residue's beta slots are exchanged.
func (a *assignment) canonicalizeBetaPartners() {
	for i := 1; i < a.aaCount; i++ {
		g := a.resPointers[i]
		if a.beta1[g] < 0 {
			continue
		}
		swap, decided := a.betaSwap(g, a.resPointers[i-1])
		if !decided && i >= 2 {
			swap, decided = a.betaSwap(g, a.resPointers[i-2])
		}
		if decided && swap {
			a.beta1[g], a.beta2[g] = a.beta2[g], a.beta1[g]
		}
	}
}

// betaSwap applies the distance rule against one neighbor, reporting
// whether the neighbor carried any beta information at all.
func (a *assignment) betaSwap(g, neighbor int) (swap, decided bool) {
	if a.beta1[neighbor] >= 0 {
		return abs(a.beta1[g]-a.beta1[neighbor]) > 2, true
	}
	if a.beta2[neighbor] >= 0 {
		return abs(a.beta1[g]-a.beta2[neighbor]) <= 2, true
	}
	return false, false
}
