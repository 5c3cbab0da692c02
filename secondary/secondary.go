/*
Package secondary assigns protein secondary structure from backbone
geometry and partitions each chain into fragments labeled by
conformation type.

The algorithm is a variant of Kabsch-Sander DSSP as described by
Kraulis for Molscript:

Kabsch and Sander, 1983
https://doi.org/10.1002/bip.360221211

Kraulis, 1991
https://doi.org/10.1107/S0021889891004399

Hydrogen-bond energies are estimated electrostatically from the
backbone N, C and O positions and an inferred amide hydrogen; bonds are
discovered through an octree over the alpha carbons; patterns of
n-turns and parallel or antiparallel bridges are translated into an
extended per-residue symbol string which is then coarsened into coil,
turn, helix and strand fragments.

The entry points are Assign, which computes an Annotation from a
read-only Structure, and Annotate, which additionally publishes the
fragment ranges back onto the structure's chains. The engine never
mutates input coordinates and never aborts on a per-residue anomaly:
residues with missing backbone atoms simply drop out of hydrogen-bond
participation.
*/
package secondary

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/dssp/structure"
)

// Domain constants of the Kabsch-Sander variant. These are fixed by the
// algorithm, not tunable parameters.
const (
	// hBondCutoffDistance is the alpha-carbon distance in Angstroms
	// within which a residue pair is considered for hydrogen bonding.
	hBondCutoffDistance = 8.0

	// energyFactor, charge1 and charge2 parameterize the electrostatic
	// hydrogen-bond energy in kcal/mol.
	energyFactor = 332.0
	charge1      = 0.42
	charge2      = 0.20

	// hBondEnergyThreshold is the energy below which a donor/acceptor
	// pair qualifies as a hydrogen bond.
	hBondEnergyThreshold = -0.5

	// amideBondLength is the N-H bond length in Angstroms used when
	// inferring the amide hydrogen position.
	amideBondLength = 1.008

	// previousCarbonTrigger is the maximum distance from the previous
	// residue's carbonyl carbon to the amide nitrogen for the previous
	// carbonyl to orient the inferred hydrogen.
	previousCarbonTrigger = 2.0

	// gapSplitThreshold is the alpha-carbon distance between adjacent
	// residues above which a fragment is split.
	gapSplitThreshold = 5.1

	// minSecondaryLength is the minimum residue count of a helix or
	// strand fragment; shorter ones are demoted to coil.
	minSecondaryLength = 3

	// octreeMargin pads the octree bounding box on each axis.
	octreeMargin = 1.0

	// unsetEnergy initializes the per-slot best energies.
	unsetEnergy = 1e10
)

// Pattern flags set per amino-acid residue by the classifier.
const (
	threeTurn    uint8 = 1
	fourTurn     uint8 = 2
	fiveTurn     uint8 = 4
	antiparallel uint8 = 8
	parallel     uint8 = 16
)

// Fragment is a contiguous global residue range on one chain labeled
// with a single conformation type. Start and End are inclusive global
// residue indices.
type Fragment struct {
	ChainID    string
	Start, End int
	Type       structure.ComponentType
}

// Annotation is the result of one engine invocation: the final fragment
// list, with the amino-acid fragments in chain order followed by the
// nucleic-acid strand fragments, and the per-residue conformation flags
// the fragments were derived from.
type Annotation struct {
	Fragments []Fragment
	symbols   []byte
}

// Symbols returns the per-residue conformation flags after coarsening,
// one byte per global residue: ' ' coil, 't'/'T' turn, 'h'/'H' helix,
// 'e'/'E' strand, '-' non-amino-acid.
func (a *Annotation) Symbols() string { return string(a.symbols) }

// Apply publishes the annotation's fragments onto the structure's
// chains as chain-local fragment ranges.
func (a *Annotation) Apply(s *structure.Structure) {
	for _, f := range a.Fragments {
		chain := s.ChainFor(f.Start)
		if chain == nil {
			continue
		}
		chain.SetFragmentRange(chain.Local(f.Start), chain.Local(f.End), f.Type)
	}
}

// Option configures an engine invocation.
type Option func(*config)

type config struct {
	log *zap.Logger
}

// WithLogger routes engine warnings, such as alpha-carbon substitutions
// and octree depth-cap reports, to the given logger. The default is a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// Assign computes the secondary structure annotation of a structure.
// The structure is read-only; publishing the fragments onto its chains
// is a separate pass, (*Annotation).Apply. A nil or empty structure
// yields an empty annotation.
func Assign(s *structure.Structure, opts ...Option) *Annotation {
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if s == nil || s.ResidueCount() == 0 {
		return &Annotation{}
	}

	a := newAssignment(s, cfg.log)
	a.projectAminoAcids()
	if a.aaCount > 0 {
		a.resolveBackbone()
		a.resolveHBonds()
		a.classifyPatterns()
		a.assignSymbols()
	}
	a.coarsen()

	frags := a.extractFragments()
	frags = a.splitAtGaps(frags)
	demoteShortSecondary(frags)
	frags = append(frags, a.nucleicFragments()...)

	return &Annotation{Fragments: frags, symbols: a.ssFlags}
}

// Annotate runs Assign and applies the result to the structure's
// chains, returning the annotation.
func Annotate(s *structure.Structure, opts ...Option) *Annotation {
	a := Assign(s, opts...)
	if s != nil {
		a.Apply(s)
	}
	return a
}

// assignment holds the working arrays of one engine invocation. All
// arrays are allocated here, filled by the passes below, and discarded
// when the annotation is returned.
type assignment struct {
	s   *structure.Structure
	log *zap.Logger

	// Amino-acid projection: arrays of length aaCount indexed by
	// amino-acid order, with resPointers mapping back to global residue
	// indices and aaIndex the inverse (or -1 for non-amino-acids).
	aaCount     int
	resPointers []int
	aaIndex     []int

	// chains delimits contiguous amino-acid chains as inclusive global
	// residue index pairs, split where the alpha carbon's chain
	// identifier changes.
	chains [][2]int

	// Backbone geometry per amino acid. A has* flag of false excludes
	// the residue from the corresponding hydrogen-bond role.
	caCoord []r3.Vec
	nCoord  []r3.Vec
	cCoord  []r3.Vec
	oCoord  []r3.Vec
	hCoord  []r3.Vec
	hasN    []bool
	hasC    []bool
	hasO    []bool
	hasH    []bool

	// Hydrogen-bond slots per amino acid: the partner amino-acid index
	// (or -1) and the best energy retained for the slot.
	coHBonds []int
	hnHBonds []int
	coEnergy []float64
	hnEnergy []float64

	// pattern holds the turn and bridge flags per amino acid.
	pattern []uint8

	// Per-global-residue arrays: the two beta-partner global residue
	// indices (or -1) and the extended symbol alphabet.
	beta1   []int
	beta2   []int
	ssFlags []byte
}

func newAssignment(s *structure.Structure, log *zap.Logger) *assignment {
	return &assignment{s: s, log: log}
}

// projectAminoAcids builds the amino-acid index projection, the
// per-residue symbol array, and the chain boundary list.
func (a *assignment) projectAminoAcids() {
	n := a.s.ResidueCount()
	a.aaIndex = make([]int, n)
	a.ssFlags = make([]byte, n)
	a.beta1 = make([]int, n)
	a.beta2 = make([]int, n)

	for g := 0; g < n; g++ {
		a.beta1[g] = -1
		a.beta2[g] = -1
		if a.s.Residue(g).Classification == structure.AminoAcid {
			a.aaIndex[g] = a.aaCount
			a.ssFlags[g] = symUnassigned
			a.resPointers = append(a.resPointers, g)
			a.aaCount++
		} else {
			a.aaIndex[g] = -1
			a.ssFlags[g] = symNonAA
		}
	}

	a.caCoord = make([]r3.Vec, a.aaCount)
	a.nCoord = make([]r3.Vec, a.aaCount)
	a.cCoord = make([]r3.Vec, a.aaCount)
	a.oCoord = make([]r3.Vec, a.aaCount)
	a.hCoord = make([]r3.Vec, a.aaCount)
	a.hasN = make([]bool, a.aaCount)
	a.hasC = make([]bool, a.aaCount)
	a.hasO = make([]bool, a.aaCount)
	a.hasH = make([]bool, a.aaCount)
	a.coHBonds = make([]int, a.aaCount)
	a.hnHBonds = make([]int, a.aaCount)
	a.coEnergy = make([]float64, a.aaCount)
	a.hnEnergy = make([]float64, a.aaCount)
	a.pattern = make([]uint8, a.aaCount)
	for i := 0; i < a.aaCount; i++ {
		a.coHBonds[i] = -1
		a.hnHBonds[i] = -1
		a.coEnergy[i] = unsetEnergy
		a.hnEnergy[i] = unsetEnergy
	}
	a.buildChains()
}

// buildChains splits the amino-acid projection into chains wherever the
// alpha carbon's chain identifier differs from the previous amino
// acid's.
func (a *assignment) buildChains() {
	a.chains = a.chains[:0]
	prevID := ""
	for i := 0; i < a.aaCount; i++ {
		g := a.resPointers[i]
		id := a.alphaChainID(g)
		if i == 0 || id != prevID {
			a.chains = append(a.chains, [2]int{g, g})
		} else {
			a.chains[len(a.chains)-1][1] = g
		}
		prevID = id
	}
}

// alphaChainID returns the chain identifier of the residue's alpha
// carbon, falling back to the residue's own identifier when no atoms
// are present.
func (a *assignment) alphaChainID(g int) string {
	res := a.s.Residue(g)
	idx := res.AlphaAtomIndex
	if idx < 0 || idx >= len(res.Atoms) {
		idx = 0
	}
	if idx < len(res.Atoms) {
		return res.Atoms[idx].ChainID
	}
	return res.ChainID
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
