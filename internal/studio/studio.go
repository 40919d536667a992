// Package studio wires the structure and antibody packages into the
// workflows exposed as tools: antigen builds, CDR grafting, candidate
// ranking, complex assembly and structure analysis.
package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wagnerlima/glyco-studio/internal/analysis"
	"github.com/wagnerlima/glyco-studio/internal/antibody"
	"github.com/wagnerlima/glyco-studio/internal/structure"
)

// ErrNoCandidates is returned by Engineer when a motif has no library entries.
var ErrNoCandidates = errors.New("no candidates for motif")

// Output formats for structure text.
const (
	FormatPDB = "pdb"
	FormatCIF = "cif"
)

// Studio holds the read-only grafting and ranking configuration. It is safe
// for concurrent use.
type Studio struct {
	grafter       *antibody.Grafter
	ranker        *antibody.Ranker
	defaultPreset string
}

// New returns a studio over the given grafter and ranker. defaultPreset is
// used when a request names none.
func New(g *antibody.Grafter, r *antibody.Ranker, defaultPreset string) (*Studio, error) {
	if _, err := structure.LookupPreset(defaultPreset); err != nil {
		return nil, err
	}
	return &Studio{grafter: g, ranker: r, defaultPreset: defaultPreset}, nil
}

// Default uses the trastuzumab frameworks, the built-in library and the
// default preset.
func Default() *Studio {
	return &Studio{
		grafter:       antibody.DefaultGrafter(),
		ranker:        antibody.DefaultRanker(),
		defaultPreset: structure.DefaultPreset,
	}
}

// Motifs lists the library's motif labels.
func (s *Studio) Motifs() []string { return s.ranker.Motifs() }

// Structure is rendered coordinate text plus a summary of what it holds.
type Structure struct {
	Name   string         `json:"name"`
	Format string         `json:"format"`
	Preset string         `json:"preset"`
	Chains []ChainSummary `json:"chains"`
	Atoms  int            `json:"atoms"`
	Text   string         `json:"text"`
}

// ChainSummary describes one chain of a built structure.
type ChainSummary struct {
	ID       string  `json:"id"`
	Role     string  `json:"role"`
	Residues int     `json:"residues"`
	ZMin     float64 `json:"z_min"`
	ZMax     float64 `json:"z_max"`
}

// AntigenRequest describes a carrier protein conjugated to a glycan.
// Glycan and Linker are line-notation descriptors recorded verbatim.
type AntigenRequest struct {
	Name    string
	Carrier string
	Glycan  string
	Linker  string
	Preset  string
	Format  string
}

// BuildAntigen traces the carrier as chain A and records the conjugate
// descriptors as remarks. An empty carrier is an invalid argument.
func (s *Studio) BuildAntigen(req AntigenRequest) (*Structure, error) {
	carrier := structure.NewSequence(req.Carrier)
	if carrier.Len() == 0 {
		return nil, fmt.Errorf("%w: carrier sequence is empty", structure.ErrInvalidArgument)
	}
	g, err := s.generator(req.Preset)
	if err != nil {
		return nil, err
	}

	remarks := []string{
		"GlycoVaccine Studio antigen-glycan model (synthetic backbone)",
		fmt.Sprintf("preset %s", g.Preset().Name),
		fmt.Sprintf("carrier chain A, %d residues", carrier.Len()),
	}
	if req.Linker != "" {
		remarks = append(remarks, "linker SMILES "+req.Linker)
	}
	if req.Glycan != "" {
		remarks = append(remarks, "glycan SMILES "+req.Glycan)
	}

	rec, err := g.Assemble(remarks, structure.ChainSpec{ID: 'A', Seq: carrier})
	if err != nil {
		return nil, err
	}
	return render(req.Name, req.Format, g.Preset(), rec, map[byte]string{'A': "carrier"})
}

// ComplexRequest combines a carrier with an engineered antibody pair.
type ComplexRequest struct {
	Name    string
	Carrier string
	Heavy   string
	Light   string
	Preset  string
	Format  string
}

// Combine stacks carrier (A), heavy (H) and light (L) chains along Z with
// non-overlapping offsets. Empty antibody chains are omitted.
func (s *Studio) Combine(req ComplexRequest) (*Structure, error) {
	carrier := structure.NewSequence(req.Carrier)
	if carrier.Len() == 0 {
		return nil, fmt.Errorf("%w: carrier sequence is empty", structure.ErrInvalidArgument)
	}
	g, err := s.generator(req.Preset)
	if err != nil {
		return nil, err
	}

	specs := []structure.ChainSpec{{ID: 'A', Seq: carrier}}
	roles := map[byte]string{'A': "carrier"}
	if h := structure.NewSequence(req.Heavy); h.Len() > 0 {
		specs = append(specs, structure.ChainSpec{ID: 'H', Seq: h})
		roles['H'] = "heavy"
	}
	if l := structure.NewSequence(req.Light); l.Len() > 0 {
		specs = append(specs, structure.ChainSpec{ID: 'L', Seq: l})
		roles['L'] = "light"
	}

	remarks := []string{
		"GlycoVaccine Studio antigen-antibody complex (synthetic backbone)",
		fmt.Sprintf("preset %s, chains stacked along Z", g.Preset().Name),
	}
	rec, err := g.Assemble(remarks, g.Stack(specs)...)
	if err != nil {
		return nil, err
	}
	return render(req.Name, req.Format, g.Preset(), rec, roles)
}

// Grafted is a heavy/light pair with its score breakdown.
type Grafted struct {
	Heavy     string         `json:"heavy"`
	Light     string         `json:"light"`
	HeavyCDRs []string       `json:"heavy_cdrs"`
	LightCDRs []string       `json:"light_cdrs"`
	Terms     antibody.Terms `json:"terms"`
	FASTA     string         `json:"fasta"`
}

// Graft normalizes the CDRs, splices them into the frameworks and scores them.
func (s *Studio) Graft(heavy, light []string) (*Grafted, error) {
	heavy, light = normalizeCDRs(heavy), normalizeCDRs(light)
	h, l, err := s.grafter.Graft(heavy, light)
	if err != nil {
		return nil, err
	}
	return &Grafted{
		Heavy:     h,
		Light:     l,
		HeavyCDRs: heavy,
		LightCDRs: light,
		Terms:     antibody.Breakdown(heavy, light),
		FASTA:     antibody.FASTA(h, l),
	}, nil
}

// Score returns the score breakdown of normalized CDRs.
func (s *Studio) Score(heavy, light []string) antibody.Terms {
	return antibody.Breakdown(normalizeCDRs(heavy), normalizeCDRs(light))
}

// Rank returns the motif's ranked candidates; unknown motifs yield none.
func (s *Studio) Rank(motif string) []antibody.Candidate {
	return s.ranker.Rank(motif)
}

// Engineered is the best candidate for a motif and its FASTA rendering.
type Engineered struct {
	Candidate antibody.Candidate `json:"candidate"`
	FASTA     string             `json:"fasta"`
}

// Engineer picks the top-ranked candidate for motif.
func (s *Studio) Engineer(motif string) (*Engineered, error) {
	ranked := s.ranker.Rank(motif)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoCandidates, motif)
	}
	best := ranked[0]
	return &Engineered{Candidate: best, FASTA: antibody.FASTA(best.Heavy, best.Light)}, nil
}

// Paratope returns a paratope analyzer for chains H and L. When CDRs are
// given, residues are labelled by the regions the grafter would place them
// in; otherwise every residue is framework.
func (s *Studio) Paratope(heavy, light []string, cutoff float64) (analysis.Paratope, error) {
	p := analysis.Paratope{Heavy: 'H', Light: 'L', Cutoff: cutoff}
	if len(heavy) == 0 && len(light) == 0 {
		return p, nil
	}
	h, l, err := s.grafter.Regions(normalizeCDRs(heavy), normalizeCDRs(light))
	if err != nil {
		return analysis.Paratope{}, err
	}
	p.Regions = map[byte][]string{'H': h, 'L': l}
	return p, nil
}

// Analyze parses PDB text and runs a on it.
func (s *Studio) Analyze(ctx context.Context, pdbText string, a analysis.Analyzer) (*analysis.Table, error) {
	rec, err := structure.ParsePDB(strings.NewReader(pdbText))
	if err != nil {
		return nil, fmt.Errorf("parse structure: %w", err)
	}
	return a.Analyze(ctx, rec)
}

func (s *Studio) generator(preset string) (structure.Generator, error) {
	if preset == "" {
		preset = s.defaultPreset
	}
	p, err := structure.LookupPreset(preset)
	if err != nil {
		return structure.Generator{}, err
	}
	return structure.NewGenerator(p), nil
}

func render(name, format string, p structure.Preset, rec *structure.Record, roles map[byte]string) (*Structure, error) {
	if name == "" {
		name = "model"
	}
	out := &Structure{
		Name:   name,
		Format: strings.ToLower(strings.TrimSpace(format)),
		Preset: p.Name,
		Atoms:  rec.AtomCount(),
		Chains: make([]ChainSummary, 0, len(rec.Chains)),
	}
	switch out.Format {
	case "", FormatPDB:
		out.Format = FormatPDB
		text, err := structure.FormatPDB(rec)
		if err != nil {
			return nil, err
		}
		out.Text = text
	case FormatCIF:
		out.Text = structure.FormatCIF(name, rec)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want %s or %s)", structure.ErrInvalidArgument, format, FormatPDB, FormatCIF)
	}
	for _, c := range rec.Chains {
		lo, hi := c.ZRange()
		out.Chains = append(out.Chains, ChainSummary{
			ID:       string(c.ID),
			Role:     roles[c.ID],
			Residues: c.Seq.Len(),
			ZMin:     lo,
			ZMax:     hi,
		})
	}
	return out, nil
}

func normalizeCDRs(cdrs []string) []string {
	out := make([]string, len(cdrs))
	for i, c := range cdrs {
		out[i] = string(structure.NewSequence(c))
	}
	return out
}
