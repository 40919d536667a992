// Package structure builds synthetic backbone models and reads and writes
// them in fixed-column atomic-coordinate text.
package structure

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidArgument is returned when a caller violates an input contract.
var ErrInvalidArgument = errors.New("invalid argument")

// PlaceholderResidue is the residue label written for every synthetic residue.
const PlaceholderResidue = "ALA"

// Sequence is an amino-acid string in one-letter codes, upper-cased with all
// whitespace removed. Position i (1-based) is s[i-1].
type Sequence string

// NewSequence normalizes free text (including pasted multi-line bodies) into a Sequence.
func NewSequence(s string) Sequence {
	return Sequence(strings.ToUpper(strings.Join(strings.Fields(s), "")))
}

// Len returns the number of residues.
func (s Sequence) Len() int { return len(s) }

// Atom is one atom record. Synthetic atoms always carry PlaceholderResidue.
type Atom struct {
	Serial  int
	Name    string
	Element string
	ResName string
	ResSeq  int
	// ICode is the residue insertion code (52A), 0 when absent.
	ICode byte
	Chain byte
	Pos   r3.Vec
	Het   bool
}

// Chain is an ordered list of atoms sharing one chain identifier.
type Chain struct {
	ID    byte
	Seq   Sequence
	Atoms []Atom
}

// ZRange returns the smallest and largest Z coordinate in the chain.
// An empty chain reports (+Inf, -Inf).
func (c Chain) ZRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, a := range c.Atoms {
		lo = math.Min(lo, a.Pos.Z)
		hi = math.Max(hi, a.Pos.Z)
	}
	return lo, hi
}

// Residues groups consecutive atoms with the same residue number and
// insertion code.
func (c Chain) Residues() []Residue {
	var out []Residue
	for _, a := range c.Atoms {
		if n := len(out); n > 0 && out[n-1].Seq == a.ResSeq && out[n-1].ICode == a.ICode {
			out[n-1].Atoms = append(out[n-1].Atoms, a)
			continue
		}
		out = append(out, Residue{Chain: c.ID, Seq: a.ResSeq, ICode: a.ICode, Name: a.ResName, Atoms: []Atom{a}})
	}
	return out
}

// Residue is a view over the atoms of one residue.
type Residue struct {
	Chain byte
	Seq   int
	ICode byte
	Name  string
	Atoms []Atom
}

// Number is the residue number with its insertion code, e.g. "52A".
func (r Residue) Number() string {
	n := strconv.Itoa(r.Seq)
	if r.ICode != 0 {
		n += string(r.ICode)
	}
	return n
}

// Label is the residue name followed by Number, e.g. "TYR52A".
func (r Residue) Label() string {
	return r.Name + r.Number()
}

// Has reports whether the residue contains an atom with the given name.
func (r Residue) Has(name string) bool {
	for _, a := range r.Atoms {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Record is a complete structure: free-text remarks followed by chains.
type Record struct {
	Remarks []string
	Chains  []Chain
}

// AtomCount returns the number of atoms across all chains.
func (r *Record) AtomCount() int {
	n := 0
	for _, c := range r.Chains {
		n += len(c.Atoms)
	}
	return n
}

// Chain returns the chain with the given identifier.
func (r *Record) Chain(id byte) (Chain, bool) {
	for _, c := range r.Chains {
		if c.ID == id {
			return c, true
		}
	}
	return Chain{}, false
}
