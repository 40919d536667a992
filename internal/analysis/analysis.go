// Package analysis turns a parsed structure into tabular reports.
package analysis

import (
	"context"

	"github.com/wagnerlima/glyco-studio/internal/structure"
	"gonum.org/v1/gonum/spatial/r3"
)

// Table is a report with named columns and string cells.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Analyzer computes a table from a structure.
type Analyzer interface {
	Analyze(ctx context.Context, rec *structure.Record) (*Table, error)
}

// Fixed returns the same table for any structure. It stands in for analyzers
// whose real implementation lives outside this module.
type Fixed struct {
	Table Table
}

// Analyze returns a copy of f.Table.
func (f Fixed) Analyze(_ context.Context, _ *structure.Record) (*Table, error) {
	t := Table{Title: f.Table.Title, Columns: append([]string(nil), f.Table.Columns...)}
	for _, row := range f.Table.Rows {
		t.Rows = append(t.Rows, append([]string(nil), row...))
	}
	return &t, nil
}

// PlaceholderHotSpots is the fixed hot-spot table used where no structure
// analysis is wired.
var PlaceholderHotSpots = Fixed{Table: Table{
	Title:   "hot spots (placeholder)",
	Columns: []string{"Residue", "HotSpot_Score"},
	Rows: [][]string{
		{"TYR33", "12"},
		{"TRP52", "9"},
		{"ARG98", "7"},
		{"SER31", "4"},
	},
}}

func atomsOf(rec *structure.Record, chains []byte) []structure.Atom {
	var out []structure.Atom
	for _, id := range chains {
		if c, ok := rec.Chain(id); ok {
			out = append(out, c.Atoms...)
		}
	}
	return out
}

func distance(a, b structure.Atom) float64 {
	return r3.Norm(r3.Sub(a.Pos, b.Pos))
}
