package antibody

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one named CDR set in a candidate library.
type Entry struct {
	Name  string   `json:"name"`
	Heavy []string `json:"heavy_cdrs"`
	Light []string `json:"light_cdrs"`
}

// Library maps a target motif label to its candidate entries, in display order.
type Library map[string][]Entry

// Candidate is a scored, grafted library entry.
type Candidate struct {
	Name      string   `json:"name"`
	Motif     string   `json:"motif"`
	Score     float64  `json:"score"`
	Terms     Terms    `json:"terms"`
	Heavy     string   `json:"heavy"`
	Light     string   `json:"light"`
	HeavyCDRs []string `json:"heavy_cdrs"`
	LightCDRs []string `json:"light_cdrs"`
}

type motifEntries struct {
	label   string
	entries []Entry
}

// Ranker scores and grafts every library entry of a motif.
// It never mutates the library it was built from.
type Ranker struct {
	grafter *Grafter
	motifs  map[string]motifEntries
}

// NewRanker validates lib and returns a ranker over it. Motif labels are
// matched case-insensitively, so labels differing only in case are rejected,
// as are entries without exactly three CDRs per chain.
func NewRanker(g *Grafter, lib Library) (*Ranker, error) {
	r := &Ranker{grafter: g, motifs: make(map[string]motifEntries, len(lib))}
	for label, entries := range lib {
		key := strings.ToLower(strings.TrimSpace(label))
		if prev, ok := r.motifs[key]; ok {
			return nil, fmt.Errorf("%w: motif %q collides with %q", ErrInvalidArgument, label, prev.label)
		}
		for _, e := range entries {
			if len(e.Heavy) != CDRCount || len(e.Light) != CDRCount {
				return nil, fmt.Errorf("%w: motif %q entry %q needs %d heavy and %d light CDRs",
					ErrInvalidArgument, label, e.Name, CDRCount, CDRCount)
			}
		}
		r.motifs[key] = motifEntries{label: label, entries: append([]Entry(nil), entries...)}
	}
	return r, nil
}

// DefaultRanker ranks DefaultLibrary on the trastuzumab frameworks.
func DefaultRanker() *Ranker {
	r, err := NewRanker(DefaultGrafter(), DefaultLibrary)
	if err != nil {
		panic(err) // the built-in library is static
	}
	return r
}

// Motifs returns the library's motif labels in sorted order.
func (r *Ranker) Motifs() []string {
	out := make([]string, 0, len(r.motifs))
	for _, m := range r.motifs {
		out = append(out, m.label)
	}
	sort.Strings(out)
	return out
}

// Rank returns the motif's candidates by descending score. Equal scores keep
// library order. An unknown motif yields an empty slice.
func (r *Ranker) Rank(motif string) []Candidate {
	m, ok := r.motifs[strings.ToLower(strings.TrimSpace(motif))]
	if !ok {
		return []Candidate{}
	}

	out := make([]Candidate, 0, len(m.entries))
	for _, e := range m.entries {
		heavy, light, err := r.grafter.Graft(e.Heavy, e.Light)
		if err != nil {
			continue // unreachable: NewRanker checked CDR counts
		}
		terms := Breakdown(e.Heavy, e.Light)
		out = append(out, Candidate{
			Name:      e.Name,
			Motif:     m.label,
			Score:     terms.Total,
			Terms:     terms,
			Heavy:     heavy,
			Light:     light,
			HeavyCDRs: append([]string(nil), e.Heavy...),
			LightCDRs: append([]string(nil), e.Light...),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// FASTA renders a heavy/light pair as a two-record FASTA document.
func FASTA(heavy, light string) string {
	return fmt.Sprintf(">H_chain\n%s\n>L_chain\n%s\n", heavy, light)
}
