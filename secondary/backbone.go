package secondary

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// resolveBackbone locates the N, CA, C and O atoms of every amino acid
// and infers the amide hydrogen position. Residues missing a backbone
// atom keep the corresponding has* flag false and drop out of the
// matching hydrogen-bond role.
func (a *assignment) resolveBackbone() {
	for i := 0; i < a.aaCount; i++ {
		a.resolveResidue(i)
	}
	for i := 0; i < a.aaCount; i++ {
		a.inferAmideHydrogen(i)
	}
}

// resolveResidue scans the residue's atom list around the alpha carbon:
// N is the first atom named "N" at or before the alpha carbon, C and O
// the first so named after it. A residue classified as an amino acid
// without an alpha carbon falls back to its first atom.
func (a *assignment) resolveResidue(i int) {
	g := a.resPointers[i]
	res := a.s.Residue(g)
	if len(res.Atoms) == 0 {
		return
	}

	alpha := res.AlphaAtomIndex
	if alpha < 0 || alpha >= len(res.Atoms) {
		alpha = 0
		a.log.Warn("amino acid without alpha carbon, substituting first atom",
			zap.Int("residue", g),
			zap.String("chain", res.ChainID))
	}
	a.caCoord[i] = res.Atoms[alpha].Coordinate

	for k := 0; k <= alpha && k < len(res.Atoms); k++ {
		if res.Atoms[k].Name == "N" {
			a.nCoord[i] = res.Atoms[k].Coordinate
			a.hasN[i] = true
			break
		}
	}
	for k := alpha + 1; k < len(res.Atoms); k++ {
		switch res.Atoms[k].Name {
		case "C":
			if !a.hasC[i] {
				a.cCoord[i] = res.Atoms[k].Coordinate
				a.hasC[i] = true
			}
		case "O":
			if !a.hasO[i] {
				a.oCoord[i] = res.Atoms[k].Coordinate
				a.hasO[i] = true
			}
		}
		if a.hasC[i] && a.hasO[i] {
			break
		}
	}
}

// inferAmideHydrogen places the amide hydrogen 1.008 Angstroms from the
// nitrogen. For the first amino acid, and whenever the previous
// residue's carbonyl carbon lies further than 2.0 Angstroms from the
// nitrogen, the direction comes from the residue's own carbonyl;
// otherwise it opposes the preceding carbonyl.
func (a *assignment) inferAmideHydrogen(i int) {
	if !a.hasN[i] {
		return
	}
	n := a.nCoord[i]

	if i > 0 && a.hasC[i-1] && a.hasO[i-1] {
		cp, op := a.cCoord[i-1], a.oCoord[i-1]
		if r3.Norm(r3.Sub(cp, n)) <= previousCarbonTrigger {
			dir := r3.Sub(cp, op)
			if r3.Norm(dir) > 0 {
				a.hCoord[i] = r3.Add(n, r3.Scale(amideBondLength, r3.Unit(dir)))
				a.hasH[i] = true
			}
			return
		}
	}
	if a.hasC[i] && a.hasO[i] {
		dir := r3.Sub(a.oCoord[i], a.cCoord[i])
		if r3.Norm(dir) > 0 {
			a.hCoord[i] = r3.Add(n, r3.Scale(amideBondLength, r3.Unit(dir)))
			a.hasH[i] = true
		}
	}
}
