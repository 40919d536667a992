package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/wagnerlima/glyco-studio/internal/structure"
)

// DefaultContactCutoff is the interface distance, in angstroms, for contact searches.
const DefaultContactCutoff = 5.0

// Contact is a residue of one chain near another chain.
type Contact struct {
	Residue  structure.Residue
	Distance float64
}

// MarshalJSON encodes the residue by chain letter, number and name.
func (c Contact) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Chain    string  `json:"chain"`
		ResNum   string  `json:"res_num"`
		ResName  string  `json:"res_name"`
		Distance float64 `json:"distance"`
	}{string(c.Residue.Chain), c.Residue.Number(), c.Residue.Name, c.Distance})
}

// Contacts finds residues of chain A having any atom within Cutoff of an
// atom of chain B.
type Contacts struct {
	A, B   byte
	Cutoff float64
}

// Find returns contacting residues of chain A in sequence order with the
// closest approach to chain B.
func (c Contacts) Find(ctx context.Context, rec *structure.Record) ([]Contact, error) {
	if c.Cutoff <= 0 {
		c.Cutoff = DefaultContactCutoff
	}
	a, ok := rec.Chain(c.A)
	if !ok {
		return nil, fmt.Errorf("chain %c not found", c.A)
	}
	b, ok := rec.Chain(c.B)
	if !ok {
		return nil, fmt.Errorf("chain %c not found", c.B)
	}

	out := []Contact{}
	for _, res := range a.Residues() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		best := math.Inf(1)
		for _, x := range res.Atoms {
			for _, y := range b.Atoms {
				best = math.Min(best, distance(x, y))
			}
		}
		if best <= c.Cutoff {
			out = append(out, Contact{Residue: res, Distance: best})
		}
	}
	return out, nil
}

// Analyze implements Analyzer.
func (c Contacts) Analyze(ctx context.Context, rec *structure.Record) (*Table, error) {
	found, err := c.Find(ctx, rec)
	if err != nil {
		return nil, err
	}
	cutoff := c.Cutoff
	if cutoff <= 0 {
		cutoff = DefaultContactCutoff
	}
	t := &Table{
		Title:   fmt.Sprintf("chain %c residues within %.1f A of chain %c", c.A, cutoff, c.B),
		Columns: []string{"Chain", "ResNum", "ResName", "MinDistance"},
		Rows:    [][]string{},
	}
	for _, x := range found {
		t.Rows = append(t.Rows, []string{
			string(x.Residue.Chain),
			x.Residue.Number(),
			x.Residue.Name,
			strconv.FormatFloat(x.Distance, 'f', 2, 64),
		})
	}
	return t, nil
}
