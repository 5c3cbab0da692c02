package secondary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/dssp/structure"
)

// energyFixture builds a two-residue assignment with fully controlled
// amide and carbonyl geometry and returns it: residue 0 is the
// carbonyl side, residue 1 the amide side.
func energyFixture(t *testing.T, c, o, n, h r3.Vec) *assignment {
	t.Helper()
	s := structure.New([]structure.Residue{
		residueWith("A", atomAt("N", -5, 0, 0), atomAt("CA", -4, 0, 0)),
		residueWith("A", atomAt("N", -5, 5, 0), atomAt("CA", -4, 5, 0)),
	})
	a := newAssignment(s, zap.NewNop())
	a.projectAminoAcids()
	a.resolveBackbone()

	a.cCoord[0], a.oCoord[0] = c, o
	a.hasC[0], a.hasO[0] = true, true
	a.nCoord[1], a.hCoord[1] = n, h
	a.hasN[1], a.hasH[1] = true, true
	return a
}

func TestHBondEnergyValue(t *testing.T) {
	a := energyFixture(t,
		r3.Vec{X: 3, Y: 0, Z: 0},     // C
		r3.Vec{X: 3, Y: 0, Z: 1.2},   // O
		r3.Vec{X: 0, Y: 0, Z: 0},     // N
		r3.Vec{X: 0, Y: 0, Z: 1.008}, // H
	)
	e, ok := a.hbondEnergy(1, 0)
	require.True(t, ok)
	// 27.888 * (1/3.23110 + 1/3.16482 - 1/3.00614 - 1/3) by hand.
	assert.InDelta(t, -1.130, e, 0.005)
}

func TestHBondEnergyRequiresAtoms(t *testing.T) {
	a := energyFixture(t,
		r3.Vec{X: 3}, r3.Vec{X: 3, Z: 1.2}, r3.Vec{}, r3.Vec{Z: 1.008})

	a.hasO[0] = false
	_, ok := a.hbondEnergy(1, 0)
	assert.False(t, ok)

	a.hasO[0] = true
	a.hasH[1] = false
	_, ok = a.hbondEnergy(1, 0)
	assert.False(t, ok)
}

func TestHBondEnergyRejectsOverlappingGroups(t *testing.T) {
	// A zero donor-acceptor distance must not divide by zero.
	a := energyFixture(t,
		r3.Vec{}, r3.Vec{Z: 1.2}, r3.Vec{}, r3.Vec{Z: 1.008})
	_, ok := a.hbondEnergy(1, 0)
	assert.False(t, ok)
}

func TestResolveHBondsKeepsBestEnergyPerSlot(t *testing.T) {
	// An ideal helix resolved end to end: every stored bond qualifies,
	// and every slot retains an energy at or below the threshold.
	s := structure.New(buildBackbone("A", helixTorsions(12)))
	a := newAssignment(s, zap.NewNop())
	a.projectAminoAcids()
	a.resolveBackbone()
	a.resolveHBonds()

	stored := 0
	for i := 0; i < a.aaCount; i++ {
		if a.coHBonds[i] >= 0 {
			assert.LessOrEqual(t, a.coEnergy[i], hBondEnergyThreshold, "co slot %d", i)
			stored++
		}
		if a.hnHBonds[i] >= 0 {
			assert.NotEqual(t, i, a.hnHBonds[i])
		}
	}
	require.Greater(t, stored, 0, "helix must form carbonyl bonds")
}

func TestResolveHBondsHelixTurnsReachFourAhead(t *testing.T) {
	s := structure.New(buildBackbone("A", helixTorsions(12)))
	a := newAssignment(s, zap.NewNop())
	a.projectAminoAcids()
	a.resolveBackbone()
	a.resolveHBonds()

	// The body of an ideal alpha helix hydrogen-bonds each carbonyl to
	// the amide four residues downstream.
	for i := 1; i <= 6; i++ {
		assert.Equal(t, i+4, a.coHBonds[i], "carbonyl partner of %d", i)
	}
}
