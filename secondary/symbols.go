package secondary

// Extended symbol alphabet. Lowercase marks the first residue of a run,
// uppercase a continuation.
const (
	symUnassigned byte = ' '
	symNonAA      byte = '-'

	symHelix4First byte = 'h'
	symHelix4Cont  byte = 'H'
	symStrandFirst byte = 'e'
	symStrandCont  byte = 'E'
	symHelix3First byte = 'g'
	symHelix3Cont  byte = 'G'
	symHelix5First byte = 'i'
	symHelix5Cont  byte = 'I'
	symTurnFirst   byte = 't'
	symTurnCont    byte = 'T'
)

// assignSymbols converts the pattern flags into the extended symbol
// alphabet. The passes run in a fixed order so that four-helices take
// precedence over strands, strands over the minor helices, and isolated
// turns fill in last.
func (a *assignment) assignSymbols() {
	a.markHelices(fourTurn, 4, symHelix4First, symHelix4Cont)
	a.markStrands(a.beta1, 2)
	a.markStrands(a.beta2, 3)
	a.markHelices(fiveTurn, 5, symHelix5First, symHelix5Cont)
	a.markHelices(threeTurn, 3, symHelix3First, symHelix3Cont)
	a.demoteSingletHelices(symHelix3First, symHelix3Cont)
	a.demoteSingletHelices(symHelix5First, symHelix5Cont)
	a.markSingleTurns(fiveTurn, 5)
	a.markSingleTurns(fourTurn, 4)
	a.markSingleTurns(threeTurn, 3)
}

// markHelices paints an n-helix wherever two consecutive residues carry
// the same n-turn flag: the residue after the first gets the running
// symbol, the following width-1 residues the continuation symbol. The
// running symbol starts over outside a run. Only unassigned cells are
// written, which keeps the earlier passes' symbols in place.
func (a *assignment) markHelices(flag uint8, width int, first, cont byte) {
	sym := first
	for i := 0; i+1 < a.aaCount; i++ {
		if a.pattern[i]&a.pattern[i+1]&flag == 0 {
			sym = first
			continue
		}
		a.paint(i+1, sym)
		for k := 2; k <= width && i+k < a.aaCount; k++ {
			a.paint(i+k, cont)
		}
		sym = cont
	}
}

// paint writes sym at amino acid i when the cell is still unassigned.
func (a *assignment) paint(i int, sym byte) {
	g := a.resPointers[i]
	if a.ssFlags[g] == symUnassigned {
		a.ssFlags[g] = sym
	}
}

// markStrands walks one beta-partner array and paints ladders as
// strand. From each residue with a partner, the walk extends while
// partnered residues continue, tolerating single unpartnered cells, and
// while the partner index moves by at most dist per step. Painted cells
// promote ' ' to 'e' and 'e' to 'E'; other symbols are kept.
func (a *assignment) markStrands(beta []int, dist int) {
	for i := 0; i < a.aaCount; {
		if beta[a.resPointers[i]] < 0 {
			i++
			continue
		}
		j := i
		for {
			next := -1
			if j+1 < a.aaCount && beta[a.resPointers[j+1]] >= 0 {
				next = j + 1
			} else if j+2 < a.aaCount && beta[a.resPointers[j+2]] >= 0 {
				next = j + 2
			}
			if next < 0 || abs(beta[a.resPointers[next]]-beta[a.resPointers[j]]) > dist {
				break
			}
			j = next
		}
		for k := i; k <= j; k++ {
			g := a.resPointers[k]
			switch a.ssFlags[g] {
			case symUnassigned:
				a.ssFlags[g] = symStrandFirst
			case symStrandFirst:
				a.ssFlags[g] = symStrandCont
			}
		}
		i = j + 1
	}
}

// demoteSingletHelices turns a minor-helix residue into a turn when
// neither global neighbor belongs to the same helix class. Past either
// end of the array the neighbor counts as not matching.
func (a *assignment) demoteSingletHelices(first, cont byte) {
	n := a.s.ResidueCount()
	for g := 0; g < n; g++ {
		if a.ssFlags[g] != first && a.ssFlags[g] != cont {
			continue
		}
		left := g > 0 && (a.ssFlags[g-1] == first || a.ssFlags[g-1] == cont)
		right := g+1 < n && (a.ssFlags[g+1] == first || a.ssFlags[g+1] == cont)
		if !left && !right {
			a.ssFlags[g] = symTurnFirst
		}
	}
}

// markSingleTurns paints the residues enclosed by an isolated n-turn.
// A turn is isolated when neither amino-acid neighbor carries the same
// flag; past the last amino acid the flag counts as unset. Only
// unassigned cells receive the turn symbols.
func (a *assignment) markSingleTurns(flag uint8, width int) {
	for i := 0; i < a.aaCount; i++ {
		if a.pattern[i]&flag == 0 {
			continue
		}
		if i > 0 && a.pattern[i-1]&flag != 0 {
			continue
		}
		if i+1 < a.aaCount && a.pattern[i+1]&flag != 0 {
			continue
		}
		sym := symTurnFirst
		for k := 1; k < width && i+k < a.aaCount; k++ {
			a.paint(i+k, sym)
			sym = symTurnCont
		}
	}
}
