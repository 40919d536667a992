package structure

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Widest values that fit the fixed PDB columns.
const (
	MaxPDBSerial = 99999
	MaxPDBResSeq = 9999
	MinPDBResSeq = -999
)

// WritePDB renders rec as fixed-column PDB text: REMARK lines, one ATOM
// (or HETATM) line per atom, TER after each chain and a closing END.
// TER records carry no serial so atom serials stay contiguous.
//
// A record with a serial, residue number or coordinate wider than its column
// is rejected with ErrInvalidArgument before anything is written; mmCIF has
// no such limit.
func WritePDB(w io.Writer, rec *Record) error {
	if err := CheckPDBColumns(rec); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, r := range rec.Remarks {
		for _, line := range strings.Split(r, "\n") {
			fmt.Fprintf(bw, "REMARK   1 %s\n", line)
		}
	}
	for _, c := range rec.Chains {
		for _, a := range c.Atoms {
			writeAtom(bw, a)
		}
		bw.WriteString("TER\n")
	}
	bw.WriteString("END\n")
	return bw.Flush()
}

// FormatPDB is WritePDB into a string.
func FormatPDB(rec *Record) (string, error) {
	var buf bytes.Buffer
	if err := WritePDB(&buf, rec); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CheckPDBColumns reports the first atom of rec that cannot be written in
// fixed PDB columns.
func CheckPDBColumns(rec *Record) error {
	for _, c := range rec.Chains {
		for _, a := range c.Atoms {
			if a.Serial < 0 || a.Serial > MaxPDBSerial {
				return fmt.Errorf("%w: atom serial %d does not fit PDB columns (max %d); use mmCIF",
					ErrInvalidArgument, a.Serial, MaxPDBSerial)
			}
			if a.ResSeq < MinPDBResSeq || a.ResSeq > MaxPDBResSeq {
				return fmt.Errorf("%w: chain %c residue %d does not fit PDB columns (max %d); use mmCIF",
					ErrInvalidArgument, a.Chain, a.ResSeq, MaxPDBResSeq)
			}
			for _, v := range [3]float64{a.Pos.X, a.Pos.Y, a.Pos.Z} {
				if s := strconv.FormatFloat(v, 'f', 3, 64); len(s) > 8 {
					return fmt.Errorf("%w: chain %c residue %d coordinate %s does not fit PDB columns; use mmCIF",
						ErrInvalidArgument, a.Chain, a.ResSeq, s)
				}
			}
		}
	}
	return nil
}

func writeAtom(w io.Writer, a Atom) {
	record := "ATOM"
	if a.Het {
		record = "HETATM"
	}
	icode := a.ICode
	if icode == 0 {
		icode = ' '
	}
	fmt.Fprintf(w, "%-6s%5d %-4s %3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
		record, a.Serial, pdbAtomName(a), a.ResName, a.Chain, a.ResSeq, icode,
		a.Pos.X, a.Pos.Y, a.Pos.Z, 1.0, 0.0, a.Element)
}

// pdbAtomName aligns names of one-letter elements to column 14.
func pdbAtomName(a Atom) string {
	if len(a.Name) < 4 && len(a.Element) == 1 {
		return " " + a.Name
	}
	return a.Name
}
