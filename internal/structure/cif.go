package structure

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

var atomSiteFields = []string{
	"group_PDB",
	"id",
	"type_symbol",
	"label_atom_id",
	"label_comp_id",
	"label_asym_id",
	"label_seq_id",
	"Cartn_x",
	"Cartn_y",
	"Cartn_z",
	"occupancy",
	"B_iso_or_equiv",
	"auth_asym_id",
	"auth_seq_id",
	"pdbx_PDB_ins_code",
	"pdbx_PDB_model_num",
}

// WriteCIF renders rec as a single mmCIF data block with an _atom_site loop.
// Remarks become leading comment lines.
func WriteCIF(w io.Writer, name string, rec *Record) error {
	bw := bufio.NewWriter(w)
	// data block names end at the first whitespace
	block := strings.Join(strings.Fields(name), "_")
	if block == "" {
		block = "model"
	}
	fmt.Fprintf(bw, "data_%s\n", block)
	for _, r := range rec.Remarks {
		for _, line := range strings.Split(r, "\n") {
			fmt.Fprintf(bw, "# %s\n", line)
		}
	}
	bw.WriteString("#\nloop_\n")
	for _, f := range atomSiteFields {
		fmt.Fprintf(bw, "_atom_site.%s\n", f)
	}
	for _, c := range rec.Chains {
		for _, a := range c.Atoms {
			group := "ATOM"
			if a.Het {
				group = "HETATM"
			}
			icode := "?"
			if a.ICode != 0 {
				icode = string(a.ICode)
			}
			fmt.Fprintf(bw, "%-6s %d %s %s %s %c %d %.3f %.3f %.3f 1.00 0.00 %c %d %s 1\n",
				group, a.Serial, a.Element, a.Name, a.ResName, a.Chain, a.ResSeq,
				a.Pos.X, a.Pos.Y, a.Pos.Z, a.Chain, a.ResSeq, icode)
		}
	}
	bw.WriteString("#\n")
	return bw.Flush()
}

// FormatCIF is WriteCIF into a string.
func FormatCIF(name string, rec *Record) string {
	var buf bytes.Buffer
	WriteCIF(&buf, name, rec)
	return buf.String()
}
