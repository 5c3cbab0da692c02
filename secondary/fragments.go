package secondary

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/dssp/structure"
)

// coarsen lossily reinterprets the extended alphabet in place so that
// only coil, turn, helix, strand and gap symbols remain.
func (a *assignment) coarsen() {
	n := len(a.ssFlags)

	// Minor helices and isolated bridges lose their own identity:
	// five-helices dissolve into coil, three-helices count as helix.
	for g := 0; g < n; g++ {
		switch a.ssFlags[g] {
		case symHelix5First, symHelix5Cont, 'b', 'B':
			a.ssFlags[g] = symUnassigned
		case symHelix3First:
			a.ssFlags[g] = symHelix4First
		case symHelix3Cont:
			a.ssFlags[g] = symHelix4Cont
		}
	}

	// A coil cell between turns joins the turn; the array ends are
	// tested against their single neighbor.
	for g := 0; g < n; g++ {
		if a.ssFlags[g] != symUnassigned {
			continue
		}
		left := g == 0 || isTurn(a.ssFlags[g-1])
		right := g == n-1 || isTurn(a.ssFlags[g+1])
		if left && right && n > 1 {
			a.ssFlags[g] = symTurnCont
		}
	}

	// A turn start directly after a turn continuation is itself a
	// continuation.
	for g := 1; g < n; g++ {
		if a.ssFlags[g] == symTurnFirst && a.ssFlags[g-1] == symTurnCont {
			a.ssFlags[g] = symTurnCont
		}
	}

	// Helix and strand runs too short to be real are reset.
	a.resetShortRuns(symHelix4First, symHelix4Cont)
	a.resetShortRuns(symStrandFirst, symStrandCont)

	// An amino acid walled in by non-amino-acid residues is absorbed
	// into the gap.
	flanked := make([]bool, n)
	for g := 1; g < n-1; g++ {
		flanked[g] = a.ssFlags[g] != symNonAA &&
			a.ssFlags[g-1] == symNonAA && a.ssFlags[g+1] == symNonAA
	}
	for g := range flanked {
		if flanked[g] {
			a.ssFlags[g] = symNonAA
		}
	}
}

func isTurn(sym byte) bool { return sym == symTurnFirst || sym == symTurnCont }

// resetShortRuns clears every run of the given class shorter than the
// minimum secondary-structure length.
func (a *assignment) resetShortRuns(first, cont byte) {
	n := len(a.ssFlags)
	for g := 0; g < n; {
		if a.ssFlags[g] != first && a.ssFlags[g] != cont {
			g++
			continue
		}
		end := g
		for end+1 < n && (a.ssFlags[end+1] == first || a.ssFlags[end+1] == cont) {
			end++
		}
		if end-g+1 < minSecondaryLength {
			for k := g; k <= end; k++ {
				a.ssFlags[k] = symUnassigned
			}
		}
		g = end + 1
	}
}

// fragmentClass groups the coarsened symbols for fragment extraction.
type fragmentClass int

const (
	classCoil fragmentClass = iota
	classTurn
	classHelix
	classStrand
	classGap
)

func classOf(sym byte) fragmentClass {
	switch sym {
	case symTurnFirst, symTurnCont:
		return classTurn
	case symHelix4First, symHelix4Cont:
		return classHelix
	case symStrandFirst, symStrandCont:
		return classStrand
	case symNonAA:
		return classGap
	default:
		return classCoil
	}
}

func (c fragmentClass) componentType() structure.ComponentType {
	switch c {
	case classTurn:
		return structure.Turn
	case classHelix:
		return structure.Helix
	case classStrand:
		return structure.Strand
	default:
		return structure.Coil
	}
}

// extractFragments walks each amino-acid chain and emits a fragment
// whenever the symbol class changes, the chain ends, or a gap stretch
// interrupts. Gap stretches are skipped, never emitted.
func (a *assignment) extractFragments() []Fragment {
	var frags []Fragment
	for _, chain := range a.chains {
		start := -1
		var cur fragmentClass
		for g := chain[0]; g <= chain[1]; g++ {
			cl := classOf(a.ssFlags[g])
			if start < 0 {
				if cl != classGap {
					start, cur = g, cl
				}
				continue
			}
			if cl == cur {
				continue
			}
			frags = append(frags, Fragment{
				ChainID: a.s.Residue(start).ChainID,
				Start:   start,
				End:     g - 1,
				Type:    cur.componentType(),
			})
			if cl == classGap {
				start = -1
			} else {
				start, cur = g, cl
			}
		}
		if start >= 0 {
			frags = append(frags, Fragment{
				ChainID: a.s.Residue(start).ChainID,
				Start:   start,
				End:     chain[1],
				Type:    cur.componentType(),
			})
		}
	}
	return frags
}

// splitAtGaps opens every fragment at bonds whose alpha-carbon distance
// exceeds the gap threshold. The prefix keeps its type; the far side
// continues as a new fragment of the same type when at least two
// residues remain, and otherwise the lone residue is absorbed into the
// following fragment or marked None when no neighbor exists.
func (a *assignment) splitAtGaps(frags []Fragment) []Fragment {
	out := make([]Fragment, 0, len(frags))
	orphan := -1
	orphanChain := ""
	for _, f := range frags {
		if orphan >= 0 {
			if f.ChainID == orphanChain && f.Start == orphan+1 {
				f.Start = orphan
			} else {
				out = append(out, Fragment{ChainID: orphanChain, Start: orphan, End: orphan, Type: structure.None})
			}
			orphan = -1
		}
		start := f.Start
		closed := false
		for g := f.Start; g < f.End && !closed; g++ {
			if !a.caGap(g, g+1) {
				continue
			}
			out = append(out, Fragment{ChainID: f.ChainID, Start: start, End: g, Type: f.Type})
			if f.End-g >= 2 {
				start = g + 1
			} else {
				orphan, orphanChain = f.End, f.ChainID
				closed = true
			}
		}
		if !closed {
			out = append(out, Fragment{ChainID: f.ChainID, Start: start, End: f.End, Type: f.Type})
		}
	}
	if orphan >= 0 {
		out = append(out, Fragment{ChainID: orphanChain, Start: orphan, End: orphan, Type: structure.None})
	}
	return out
}

// caGap reports whether the alpha carbons of adjacent global residues
// lie further apart than the gap threshold.
func (a *assignment) caGap(g1, g2 int) bool {
	i1, i2 := a.aaIndex[g1], a.aaIndex[g2]
	if i1 < 0 || i2 < 0 {
		return false
	}
	return r3.Norm(r3.Sub(a.caCoord[i1], a.caCoord[i2])) > gapSplitThreshold
}

// demoteShortSecondary rewrites helix and strand fragments shorter than
// the minimum secondary-structure length as coil.
func demoteShortSecondary(frags []Fragment) {
	for i := range frags {
		f := &frags[i]
		if f.Type != structure.Helix && f.Type != structure.Strand {
			continue
		}
		if f.End-f.Start+1 < minSecondaryLength {
			f.Type = structure.Coil
		}
	}
}

// nucleicFragments emits one strand fragment per contiguous same-chain
// run of nucleic-acid residues.
func (a *assignment) nucleicFragments() []Fragment {
	var frags []Fragment
	n := a.s.ResidueCount()
	for g := 0; g < n; {
		res := a.s.Residue(g)
		if res.Classification != structure.NucleicAcid {
			g++
			continue
		}
		start := g
		for g+1 < n {
			next := a.s.Residue(g + 1)
			if next.Classification != structure.NucleicAcid || next.ChainID != res.ChainID {
				break
			}
			g++
		}
		frags = append(frags, Fragment{ChainID: res.ChainID, Start: start, End: g, Type: structure.Strand})
		g++
	}
	return frags
}
