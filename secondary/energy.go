package secondary

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/dssp/octree"
)

// hbondEnergy computes the Kabsch-Sander electrostatic energy in
// kcal/mol of the hydrogen bond from the carbonyl group of amino acid
// co to the amide group of amino acid nh. The second return is false
// when either residue lacks the required atoms or the groups overlap.
func (a *assignment) hbondEnergy(nh, co int) (float64, bool) {
	if !a.hasN[nh] || !a.hasH[nh] || !a.hasC[co] || !a.hasO[co] {
		return 0, false
	}
	dON := r3.Norm(r3.Sub(a.oCoord[co], a.nCoord[nh]))
	dCH := r3.Norm(r3.Sub(a.cCoord[co], a.hCoord[nh]))
	dOH := r3.Norm(r3.Sub(a.oCoord[co], a.hCoord[nh]))
	dCN := r3.Norm(r3.Sub(a.cCoord[co], a.nCoord[nh]))
	if dON == 0 || dCH == 0 || dOH == 0 || dCN == 0 {
		return 0, false
	}
	return charge1 * charge2 * energyFactor * (1/dON + 1/dCH - 1/dOH - 1/dCN), true
}

// resolveHBonds enumerates candidate residue pairs through the octree
// and retains, for each carbonyl and each amide slot, the single
// lowest-energy qualifying bond. The reduction per slot is commutative,
// so the result does not depend on pair order.
func (a *assignment) resolveHBonds() {
	items := make([]octree.Item, a.aaCount)
	for i := 0; i < a.aaCount; i++ {
		items[i] = octree.Item{Index: i, Position: a.caCoord[i]}
	}
	tree, err := octree.Build(items, octreeMargin)
	if err != nil {
		a.log.Warn("octree subdivision exceeded depth cap, continuing with enumerated pairs",
			zap.Error(err))
	}

	for _, pair := range tree.CandidatePairs(hBondCutoffDistance) {
		i, j := pair[0], pair[1]
		// Amide units adjacent in sequence pass the electrostatic test
		// on covalent geometry alone; they are not hydrogen bonds.
		if j-i < 2 {
			continue
		}
		if e, ok := a.hbondEnergy(j, i); ok && e < hBondEnergyThreshold && e < a.coEnergy[i] {
			a.coHBonds[i] = j
			a.hnHBonds[j] = i
			a.coEnergy[i] = e
		}
		if e, ok := a.hbondEnergy(i, j); ok && e < hBondEnergyThreshold && e < a.hnEnergy[i] {
			a.hnHBonds[i] = j
			a.coHBonds[j] = i
			a.hnEnergy[i] = e
		}
	}
}
