package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/wagnerlima/glyco-studio/internal/structure"
)

// HotSpot is the contact count of one antibody residue.
type HotSpot struct {
	Residue structure.Residue
	Score   int
}

// MarshalJSON encodes the residue by chain letter and label.
func (s HotSpot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Chain   string `json:"chain"`
		Residue string `json:"residue"`
		Score   int    `json:"score"`
	}{string(s.Residue.Chain), s.Residue.Label(), s.Score})
}

// HotSpots ranks antibody residues by contact density with the antigen:
// for every residue with an alpha carbon, the number of (residue atom,
// antigen atom) pairs closer than Cutoff.
type HotSpots struct {
	Antibody []byte
	Antigen  []byte
	Cutoff   float64
}

// Defaults used when HotSpots fields are left zero.
var (
	DefaultAntibodyChains = []byte{'H', 'L'}
	DefaultAntigenChains  = []byte{'A', 'B'}
)

// DefaultHotSpotCutoff is the contact distance, in angstroms, for hot-spot scans.
const DefaultHotSpotCutoff = 4.0

func (h HotSpots) withDefaults() HotSpots {
	if len(h.Antibody) == 0 {
		h.Antibody = DefaultAntibodyChains
	}
	if len(h.Antigen) == 0 {
		h.Antigen = DefaultAntigenChains
	}
	if h.Cutoff <= 0 {
		h.Cutoff = DefaultHotSpotCutoff
	}
	return h
}

// Scan returns residues with at least one contact, highest score first.
// Residues with equal scores keep chain and sequence order.
func (h HotSpots) Scan(ctx context.Context, rec *structure.Record) ([]HotSpot, error) {
	h = h.withDefaults()
	antigen := atomsOf(rec, h.Antigen)

	var out []HotSpot
	for _, id := range h.Antibody {
		c, ok := rec.Chain(id)
		if !ok {
			continue
		}
		for _, res := range c.Residues() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !res.Has("CA") {
				continue
			}
			n := 0
			for _, a := range res.Atoms {
				for _, b := range antigen {
					if distance(a, b) <= h.Cutoff {
						n++
					}
				}
			}
			if n > 0 {
				out = append(out, HotSpot{Residue: res, Score: n})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// Analyze implements Analyzer.
func (h HotSpots) Analyze(ctx context.Context, rec *structure.Record) (*Table, error) {
	spots, err := h.Scan(ctx, rec)
	if err != nil {
		return nil, err
	}
	h = h.withDefaults()
	t := &Table{
		Title:   fmt.Sprintf("hot spots within %.1f A of chains %s", h.Cutoff, h.Antigen),
		Columns: []string{"Chain", "Residue", "HotSpot_Score"},
		Rows:    [][]string{},
	}
	for _, s := range spots {
		t.Rows = append(t.Rows, []string{
			string(s.Residue.Chain),
			s.Residue.Label(),
			strconv.Itoa(s.Score),
		})
	}
	return t, nil
}
