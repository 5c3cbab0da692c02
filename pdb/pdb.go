/*
Package pdb reads Protein Data Bank coordinate files into the
structural model consumed by the secondary structure engine.

Only the ATOM, HETATM, TER, END and ENDMDL records matter here: the
reader collects atoms into residues in file order, classifies each
residue from its residue name, and records the alpha-carbon index of
every amino acid. Everything else in the file is ignored, and malformed
coordinate lines are skipped rather than failing the parse, in keeping
with the tolerance the engine itself applies to incomplete models.

See https://www.wwpdb.org/documentation/file-format for the full
format description.
*/
package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/dssp/structure"
)

// SyntaxError reports an unreadable record together with its line
// number.
type SyntaxError struct {
	Line int
	Msg  string
}

// Error returns the formatted error message.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("PDB syntax error at line %v: %s", e.Line, e.Msg)
}

var aminoAcidNames = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	// Common modified residues that still carry a peptide backbone.
	"MSE": true, "SEC": true, "PYL": true, "ASX": true, "GLX": true,
}

var nucleicAcidNames = map[string]bool{
	"A": true, "C": true, "G": true, "U": true, "I": true, "N": true,
	"DA": true, "DC": true, "DG": true, "DT": true, "DI": true, "DU": true, "DN": true,
}

var waterNames = map[string]bool{
	"HOH": true, "WAT": true, "DOD": true,
}

// Classify maps a residue name onto its chemical classification.
// Unrecognized names classify as ligand, matching how coordinate files
// treat arbitrary chemical components.
func Classify(resName string) structure.Classification {
	switch name := strings.TrimSpace(resName); {
	case aminoAcidNames[name]:
		return structure.AminoAcid
	case nucleicAcidNames[name]:
		return structure.NucleicAcid
	case waterNames[name]:
		return structure.Water
	case name == "UNK":
		return structure.Unknown
	default:
		return structure.Ligand
	}
}

// Read parses the PDB file at path.
func Read(path string) (*structure.Structure, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDB file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// residueKey identifies one residue while grouping atoms in file order.
type residueKey struct {
	chainID string
	resSeq  int
	iCode   byte
}

// Parse reads PDB records from r and returns the assembled structure.
// Only the first model of a multi-model file is read. Lines whose
// coordinate fields do not parse are skipped.
func Parse(r io.Reader) (*structure.Structure, error) {
	var residues []structure.Residue
	var current *structure.Residue
	var currentName string
	var lastKey residueKey
	haveResidue := false

	flush := func() {
		if !haveResidue {
			return
		}
		current.Classification = Classify(currentName)
		current.AlphaAtomIndex = -1
		if current.Classification == structure.AminoAcid {
			for i, atom := range current.Atoms {
				if atom.Name == "CA" {
					current.AlphaAtomIndex = i
					break
				}
			}
		}
		residues = append(residues, *current)
		haveResidue = false
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		record := scanner.Text()
		switch {
		case strings.HasPrefix(record, "ATOM") || strings.HasPrefix(record, "HETATM"):
			atom, key, resName, err := parseAtomRecord(record, line)
			if err != nil {
				continue
			}
			if atom == nil {
				continue
			}
			if !haveResidue || key != lastKey {
				flush()
				current = &structure.Residue{ChainID: key.chainID}
				currentName = resName
				lastKey = key
				haveResidue = true
			}
			current.Atoms = append(current.Atoms, *atom)
		case strings.HasPrefix(record, "TER"):
			flush()
		case strings.HasPrefix(record, "ENDMDL") || record == "END" || strings.HasPrefix(record, "END "):
			flush()
			return structure.New(residues), scanner.Err()
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return structure.New(residues), fmt.Errorf("reading PDB records: %w", err)
	}
	return structure.New(residues), nil
}

// parseAtomRecord extracts one atom from a fixed-column ATOM or HETATM
// record. A nil atom with nil error means the record was valid but
// carries an alternate location the reader does not keep.
func parseAtomRecord(record string, line int) (*structure.Atom, residueKey, string, error) {
	if len(record) < 54 {
		return nil, residueKey{}, "", SyntaxError{Line: line, Msg: "record shorter than the coordinate columns"}
	}
	altLoc := record[16]
	if altLoc != ' ' && altLoc != 'A' && altLoc != '1' {
		return nil, residueKey{}, "", nil
	}
	resSeq, err := strconv.Atoi(strings.TrimSpace(record[22:26]))
	if err != nil {
		return nil, residueKey{}, "", SyntaxError{Line: line, Msg: "unreadable residue sequence number"}
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(record[30:38]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(record[38:46]), 64)
	z, errZ := strconv.ParseFloat(strings.TrimSpace(record[46:54]), 64)
	if errX != nil || errY != nil || errZ != nil {
		return nil, residueKey{}, "", SyntaxError{Line: line, Msg: "unreadable coordinates"}
	}

	chainID := strings.TrimSpace(record[21:22])
	key := residueKey{chainID: chainID, resSeq: resSeq, iCode: record[26]}
	atom := &structure.Atom{
		Name:       strings.TrimSpace(record[12:16]),
		ChainID:    chainID,
		Coordinate: r3.Vec{X: x, Y: y, Z: z},
	}
	return atom, key, strings.TrimSpace(record[17:20]), nil
}
