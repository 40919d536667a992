package structure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoAtoms is returned by ParsePDB when the input holds no coordinates.
var ErrNoAtoms = errors.New("no ATOM or HETATM records")

// ParsePDB reads ATOM and HETATM records of the first model in PDB text.
// Chains are returned in order of first appearance; atoms of a chain that
// reappears later (for example ligands after TER) are appended to it.
func ParsePDB(r io.Reader) (*Record, error) {
	rec := &Record{}
	index := make(map[byte]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "ENDMDL"):
			return finishParse(rec)
		case strings.HasPrefix(line, "REMARK"):
			if len(line) > 11 {
				rec.Remarks = append(rec.Remarks, strings.TrimSpace(line[11:]))
			}
		case strings.HasPrefix(line, "ATOM  "), strings.HasPrefix(line, "HETATM"):
			a, err := parseAtom(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			i, ok := index[a.Chain]
			if !ok {
				i = len(rec.Chains)
				index[a.Chain] = i
				rec.Chains = append(rec.Chains, Chain{ID: a.Chain})
			}
			rec.Chains[i].Atoms = append(rec.Chains[i].Atoms, a)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pdb: %w", err)
	}
	return finishParse(rec)
}

func finishParse(rec *Record) (*Record, error) {
	if rec.AtomCount() == 0 {
		return nil, ErrNoAtoms
	}
	return rec, nil
}

// https://www.wwpdb.org/documentation/file-format-content/format33/sect9.html#ATOM
func parseAtom(line string) (Atom, error) {
	if len(line) < 54 {
		return Atom{}, fmt.Errorf("atom record too short (%d columns)", len(line))
	}
	var a Atom
	var err error

	a.Het = strings.HasPrefix(line, "HETATM")
	if a.Serial, err = strconv.Atoi(strings.TrimSpace(line[6:11])); err != nil {
		return Atom{}, fmt.Errorf("serial: %w", err)
	}
	a.Name = strings.TrimSpace(line[12:16])
	a.ResName = strings.TrimSpace(line[17:20])
	a.Chain = line[21]
	if a.ResSeq, err = strconv.Atoi(strings.TrimSpace(line[22:26])); err != nil {
		return Atom{}, fmt.Errorf("residue number: %w", err)
	}
	if c := line[26]; c != ' ' {
		a.ICode = c
	}
	coords := [3]float64{}
	for i := range coords {
		field := strings.TrimSpace(line[30+8*i : 38+8*i])
		if coords[i], err = strconv.ParseFloat(field, 64); err != nil {
			return Atom{}, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
	}
	a.Pos = r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}

	if len(line) >= 78 {
		a.Element = strings.TrimSpace(line[76:78])
	}
	if a.Element == "" {
		a.Element = elementFromName(a.Name)
	}
	return a, nil
}

// elementFromName guesses the element from the first letter of an atom name.
func elementFromName(name string) string {
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			return string(r)
		}
	}
	return ""
}
