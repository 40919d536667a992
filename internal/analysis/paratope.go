package analysis

import (
	"context"
	"fmt"

	"github.com/wagnerlima/glyco-studio/internal/structure"
)

// DefaultParatopeCutoff is the contact distance, in angstroms, for paratope extraction.
const DefaultParatopeCutoff = 4.5

// Paratope lists antibody residues within Cutoff of any atom outside the
// heavy and light chains, labelled by antibody region.
type Paratope struct {
	Heavy, Light byte
	Cutoff       float64

	// Regions holds per-residue labels by chain id: residue n of the chain
	// is Regions[id][n-1]. Residues outside the slice, and inserted
	// residues, are framework.
	Regions map[byte][]string
}

func (p Paratope) withDefaults() Paratope {
	if p.Heavy == 0 {
		p.Heavy = 'H'
	}
	if p.Light == 0 {
		p.Light = 'L'
	}
	if p.Cutoff <= 0 {
		p.Cutoff = DefaultParatopeCutoff
	}
	return p
}

func (p Paratope) region(res structure.Residue) string {
	labels := p.Regions[res.Chain]
	if res.ICode != 0 || res.Seq < 1 || res.Seq > len(labels) {
		return "FW"
	}
	return labels[res.Seq-1]
}

// Analyze implements Analyzer. Heavy-chain rows come first, each chain in
// residue order.
func (p Paratope) Analyze(ctx context.Context, rec *structure.Record) (*Table, error) {
	p = p.withDefaults()

	var antigen []structure.Atom
	for _, c := range rec.Chains {
		if c.ID != p.Heavy && c.ID != p.Light {
			antigen = append(antigen, c.Atoms...)
		}
	}

	t := &Table{
		Title:   fmt.Sprintf("paratope within %.1f A of the antigen", p.Cutoff),
		Columns: []string{"Chain", "ResNum", "ResName", "CDR_Region"},
		Rows:    [][]string{},
	}
	for _, side := range []struct {
		id   byte
		name string
	}{{p.Heavy, "Heavy"}, {p.Light, "Light"}} {
		c, ok := rec.Chain(side.id)
		if !ok {
			continue
		}
		for _, res := range c.Residues() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if touches(res.Atoms, antigen, p.Cutoff) {
				t.Rows = append(t.Rows, []string{side.name, res.Number(), res.Name, p.region(res)})
			}
		}
	}
	return t, nil
}

func touches(atoms, others []structure.Atom, cutoff float64) bool {
	for _, a := range atoms {
		for _, b := range others {
			if distance(a, b) <= cutoff {
				return true
			}
		}
	}
	return false
}
