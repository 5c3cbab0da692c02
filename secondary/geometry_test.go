package secondary

// Test fixtures: backbone chains built from torsion angles with
// standard bond lengths and angles, extended atom by atom in the
// natural reference frame, and bare alpha-carbon traces for driving
// the classifier stages directly.

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/dssp/structure"
)

const (
	bondNCA = 1.458
	bondCAC = 1.525
	bondCN  = 1.329
	bondCO  = 1.231

	angleNCAC = 111.2
	angleCACN = 116.2
	angleCNCA = 121.7
	angleCACO = 120.8
)

// placeAtom positions a new atom at the given bond length from c, with
// the bond angle b-c-new and the dihedral a-b-c-new, using the IUPAC
// sign convention for torsions.
func placeAtom(a, b, c r3.Vec, bond, angleDeg, torsionDeg float64) r3.Vec {
	theta := angleDeg * math.Pi / 180
	phi := torsionDeg * math.Pi / 180

	bc := r3.Unit(r3.Sub(c, b))
	n := r3.Unit(r3.Cross(r3.Sub(b, a), bc))
	m := r3.Cross(n, bc)

	d := r3.Scale(-bond*math.Cos(theta), bc)
	d = r3.Add(d, r3.Scale(bond*math.Sin(theta)*math.Cos(phi), m))
	d = r3.Add(d, r3.Scale(bond*math.Sin(theta)*math.Sin(phi), n))
	return r3.Add(c, d)
}

// torsion holds the backbone dihedrals of one residue.
type torsion struct {
	phi, psi float64
}

// helixTorsions returns n ideal alpha-helix torsion pairs.
func helixTorsions(n int) []torsion {
	torsions := make([]torsion, n)
	for i := range torsions {
		torsions[i] = torsion{phi: -57, psi: -47}
	}
	return torsions
}

// buildBackbone constructs amino-acid residues with N, CA, C and O
// atoms from torsions, trans peptide bonds throughout. The first
// residue's phi is unused.
func buildBackbone(chainID string, torsions []torsion) []structure.Residue {
	n := len(torsions)
	nPos := make([]r3.Vec, n)
	caPos := make([]r3.Vec, n)
	cPos := make([]r3.Vec, n)
	oPos := make([]r3.Vec, n)

	theta := angleNCAC * math.Pi / 180
	nPos[0] = r3.Vec{}
	caPos[0] = r3.Vec{X: bondNCA}
	cPos[0] = r3.Add(caPos[0], r3.Scale(bondCAC, r3.Vec{X: -math.Cos(theta), Y: math.Sin(theta)}))

	for i := 0; i+1 < n; i++ {
		nPos[i+1] = placeAtom(nPos[i], caPos[i], cPos[i], bondCN, angleCACN, torsions[i].psi)
		caPos[i+1] = placeAtom(caPos[i], cPos[i], nPos[i+1], bondNCA, angleCNCA, 180)
		cPos[i+1] = placeAtom(cPos[i], nPos[i+1], caPos[i+1], bondCAC, angleNCAC, torsions[i+1].phi)
		oPos[i] = placeAtom(nPos[i+1], caPos[i], cPos[i], bondCO, angleCACO, 180)
	}
	oPos[n-1] = placeAtom(nPos[n-1], caPos[n-1], cPos[n-1], bondCO, angleCACO, torsions[n-1].psi+180)

	residues := make([]structure.Residue, n)
	for i := range residues {
		residues[i] = structure.Residue{
			ChainID:        chainID,
			Classification: structure.AminoAcid,
			Atoms: []structure.Atom{
				{Name: "N", ChainID: chainID, Coordinate: nPos[i]},
				{Name: "CA", ChainID: chainID, Coordinate: caPos[i]},
				{Name: "C", ChainID: chainID, Coordinate: cPos[i]},
				{Name: "O", ChainID: chainID, Coordinate: oPos[i]},
			},
			AlphaAtomIndex: 1,
		}
	}
	return residues
}

// translateResidues shifts the atoms of residues[from:] by offset.
func translateResidues(residues []structure.Residue, from int, offset r3.Vec) {
	for i := from; i < len(residues); i++ {
		for k := range residues[i].Atoms {
			residues[i].Atoms[k].Coordinate = r3.Add(residues[i].Atoms[k].Coordinate, offset)
		}
	}
}

// caTrace builds n amino acids carrying only alpha carbons spaced 3.8
// Angstroms apart, enough to drive the classifier and fragmenter when
// hydrogen bonds are injected directly.
func caTrace(chainID string, n int, origin r3.Vec) []structure.Residue {
	residues := make([]structure.Residue, n)
	for i := range residues {
		residues[i] = structure.Residue{
			ChainID:        chainID,
			Classification: structure.AminoAcid,
			Atoms: []structure.Atom{{
				Name:       "CA",
				ChainID:    chainID,
				Coordinate: r3.Add(origin, r3.Vec{X: 3.8 * float64(i)}),
			}},
			AlphaAtomIndex: 0,
		}
	}
	return residues
}

// nucleicChain builds n nucleic-acid residues on one chain.
func nucleicChain(chainID string, n int) []structure.Residue {
	residues := make([]structure.Residue, n)
	for i := range residues {
		residues[i] = structure.Residue{
			ChainID:        chainID,
			Classification: structure.NucleicAcid,
			Atoms: []structure.Atom{{
				Name:       "P",
				ChainID:    chainID,
				Coordinate: r3.Vec{X: 6.0 * float64(i)},
			}},
			AlphaAtomIndex: -1,
		}
	}
	return residues
}

// bond records a carbonyl-to-amide hydrogen bond for injection into an
// assignment: the carbonyl of co bonds the amide of nh.
type bond struct {
	co, nh int
}

// prepared builds an assignment over s with the backbone resolved and
// the given hydrogen bonds injected, ready for the classifier passes.
func prepared(s *structure.Structure, bonds []bond) *assignment {
	a := newAssignment(s, zap.NewNop())
	a.projectAminoAcids()
	a.resolveBackbone()
	for _, b := range bonds {
		a.coHBonds[b.co] = b.nh
		a.hnHBonds[b.nh] = b.co
		a.coEnergy[b.co] = -1.0
		a.hnEnergy[b.nh] = -1.0
	}
	return a
}
