package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func residue(chainID string, class Classification) Residue {
	return Residue{
		ChainID:        chainID,
		Classification: class,
		Atoms:          []Atom{{Name: "CA", ChainID: chainID, Coordinate: r3.Vec{}}},
		AlphaAtomIndex: 0,
	}
}

func TestNewDerivesChains(t *testing.T) {
	s := New([]Residue{
		residue("A", AminoAcid),
		residue("A", AminoAcid),
		residue("B", AminoAcid),
		residue("B", NucleicAcid),
		residue("A", Water), // reappearing identifier starts a new chain
	})

	chains := s.Chains()
	assert.Len(t, chains, 3)

	assert.Equal(t, "A", chains[0].ID())
	start, end := chains[0].GlobalRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, end)
	assert.Equal(t, 2, chains[0].Len())

	assert.Equal(t, "B", chains[1].ID())
	start, end = chains[1].GlobalRange()
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	assert.Equal(t, "A", chains[2].ID())
	assert.Equal(t, 1, chains[2].Len())
}

func TestChainLocal(t *testing.T) {
	s := New([]Residue{
		residue("A", AminoAcid),
		residue("B", AminoAcid),
		residue("B", AminoAcid),
	})
	b := s.Chains()[1]
	assert.Equal(t, 0, b.Local(1))
	assert.Equal(t, 1, b.Local(2))
	assert.Equal(t, -1, b.Local(0))
	assert.Equal(t, -1, b.Local(3))
}

func TestChainFor(t *testing.T) {
	s := New([]Residue{
		residue("A", AminoAcid),
		residue("B", AminoAcid),
	})
	assert.Equal(t, "A", s.ChainFor(0).ID())
	assert.Equal(t, "B", s.ChainFor(1).ID())
	assert.Nil(t, s.ChainFor(2))
	assert.Nil(t, s.ChainFor(-1))
}

func TestSetFragmentRange(t *testing.T) {
	s := New([]Residue{residue("A", AminoAcid), residue("A", AminoAcid)})
	chain := s.Chains()[0]
	chain.SetFragmentRange(0, 1, Helix)
	assert.Equal(t, []FragmentRange{{Start: 0, End: 1, Type: Helix}}, chain.Fragments())
}

func TestAlpha(t *testing.T) {
	r := residue("A", AminoAcid)
	atom, ok := r.Alpha()
	assert.True(t, ok)
	assert.Equal(t, "CA", atom.Name)

	r.AlphaAtomIndex = -1
	_, ok = r.Alpha()
	assert.False(t, ok)
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "amino acid", AminoAcid.String())
	assert.Equal(t, "nucleic acid", NucleicAcid.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "unknown", Classification(99).String())
}

func TestComponentTypeString(t *testing.T) {
	assert.Equal(t, "helix", Helix.String())
	assert.Equal(t, "strand", Strand.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "undefined", UndefinedConformation.String())
}
