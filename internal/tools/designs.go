package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/glyco-studio/internal/analysis"
	"github.com/wagnerlima/glyco-studio/internal/antibody"
	"github.com/wagnerlima/glyco-studio/internal/models"
	"github.com/wagnerlima/glyco-studio/internal/session"
	"github.com/wagnerlima/glyco-studio/internal/structure"
	"github.com/wagnerlima/glyco-studio/internal/studio"
)

// DesignTools holds references needed by the design pipeline tool handlers.
// Results are recorded in the active campaign, if any.
type DesignTools struct {
	Studio  *studio.Studio
	Session *session.Session
}

// --- Input types ---

type BuildAntigenInput struct {
	Name    string `json:"name,omitempty" jsonschema:"Label for the model"`
	Carrier string `json:"carrier" jsonschema:"Carrier protein sequence in one-letter code"`
	Glycan  string `json:"glycan,omitempty" jsonschema:"Glycan SMILES recorded in the header"`
	Linker  string `json:"linker,omitempty" jsonschema:"Linker SMILES recorded in the header"`
	Preset  string `json:"preset,omitempty" jsonschema:"Backbone preset (see list_presets)"`
	Format  string `json:"format,omitempty" jsonschema:"Output format: pdb (default) or cif"`
}

type GraftCDRsInput struct {
	Name  string   `json:"name,omitempty" jsonschema:"Label for the antibody"`
	Heavy []string `json:"heavy" jsonschema:"Heavy-chain CDR1, CDR2, CDR3"`
	Light []string `json:"light" jsonschema:"Light-chain CDR1, CDR2, CDR3"`
}

type ScoreCDRsInput struct {
	Heavy []string `json:"heavy" jsonschema:"Heavy-chain CDR1, CDR2, CDR3; CDR3 also sets the length and hydrophobicity terms"`
	Light []string `json:"light,omitempty" jsonschema:"Light-chain CDR1, CDR2, CDR3; counted in the composition term"`
}

type MotifInput struct {
	Motif string `json:"motif" jsonschema:"Glycan motif label, for example Tn or Globo-H"`
}

type CombineComplexInput struct {
	Name    string `json:"name,omitempty" jsonschema:"Label for the complex"`
	Carrier string `json:"carrier" jsonschema:"Carrier protein sequence (chain A)"`
	Heavy   string `json:"heavy,omitempty" jsonschema:"Full heavy-chain sequence (chain H)"`
	Light   string `json:"light,omitempty" jsonschema:"Full light-chain sequence (chain L)"`
	Motif   string `json:"motif,omitempty" jsonschema:"Engineer heavy and light from this motif when both are omitted"`
	Preset  string `json:"preset,omitempty" jsonschema:"Backbone preset (see list_presets)"`
	Format  string `json:"format,omitempty" jsonschema:"Output format: pdb (default) or cif"`
}

type AnalyzeHotSpotsInput struct {
	Structure      string  `json:"structure,omitempty" jsonschema:"PDB text to analyze"`
	DesignID       string  `json:"design_id,omitempty" jsonschema:"Recorded PDB design to analyze instead of structure"`
	AntibodyChains string  `json:"antibody_chains,omitempty" jsonschema:"Antibody chain ids, default HL"`
	AntigenChains  string  `json:"antigen_chains,omitempty" jsonschema:"Antigen chain ids, default AB"`
	Cutoff         float64 `json:"cutoff,omitempty" jsonschema:"Contact distance in angstroms, default 4.0"`
	Placeholder    bool    `json:"placeholder,omitempty" jsonschema:"Return the fixed placeholder table without analyzing"`
}

type AnalyzeContactsInput struct {
	Structure string  `json:"structure,omitempty" jsonschema:"PDB text to analyze"`
	DesignID  string  `json:"design_id,omitempty" jsonschema:"Recorded PDB design to analyze instead of structure"`
	ChainA    string  `json:"chain_a" jsonschema:"Chain whose residues are reported"`
	ChainB    string  `json:"chain_b" jsonschema:"Partner chain"`
	Cutoff    float64 `json:"cutoff,omitempty" jsonschema:"Contact distance in angstroms, default 5.0"`
}

type AnalyzeParatopeInput struct {
	Structure string   `json:"structure,omitempty" jsonschema:"PDB text with antibody chains H and L"`
	DesignID  string   `json:"design_id,omitempty" jsonschema:"Recorded PDB design to analyze instead of structure"`
	HeavyCDRs []string `json:"heavy_cdrs,omitempty" jsonschema:"Heavy-chain CDR1, CDR2, CDR3 grafted into chain H; labels residues by region"`
	LightCDRs []string `json:"light_cdrs,omitempty" jsonschema:"Light-chain CDR1, CDR2, CDR3 grafted into chain L"`
	Cutoff    float64  `json:"cutoff,omitempty" jsonschema:"Contact distance in angstroms, default 4.5"`
}

// --- Handlers ---

func (t *DesignTools) ListPresets(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	type presetView struct {
		structure.Preset
		AtomsPerResidue int  `json:"atoms_per_residue"`
		Default         bool `json:"default"`
	}
	var out []presetView
	for _, p := range structure.Presets() {
		out = append(out, presetView{Preset: p, AtomsPerResidue: p.AtomsPerResidue(), Default: p.Name == structure.DefaultPreset})
	}
	return toolJSON(out)
}

func (t *DesignTools) ListMotifs(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Studio.Motifs())
}

func (t *DesignTools) BuildAntigen(ctx context.Context, _ *mcp.CallToolRequest, input BuildAntigenInput) (*mcp.CallToolResult, any, error) {
	out, err := t.Studio.BuildAntigen(studio.AntigenRequest{
		Name:    input.Name,
		Carrier: input.Carrier,
		Glycan:  input.Glycan,
		Linker:  input.Linker,
		Preset:  input.Preset,
		Format:  input.Format,
	})
	if err != nil {
		return toolError("Failed to build antigen: %v", err), nil, nil
	}
	id, res := t.record(ctx, models.Design{Kind: models.KindAntigen, Name: out.Name, Format: out.Format, Output: out.Text}, input)
	if res != nil {
		return res, nil, nil
	}
	return toolJSON(struct {
		DesignID string `json:"design_id,omitempty"`
		*studio.Structure
	}{id, out})
}

func (t *DesignTools) GraftCDRs(ctx context.Context, _ *mcp.CallToolRequest, input GraftCDRsInput) (*mcp.CallToolResult, any, error) {
	g, err := t.Studio.Graft(input.Heavy, input.Light)
	if err != nil {
		return toolError("Failed to graft CDRs: %v", err), nil, nil
	}
	score := g.Terms.Total
	id, res := t.record(ctx, models.Design{Kind: models.KindGraft, Name: input.Name, Score: &score, Format: "fasta", Output: g.FASTA}, input)
	if res != nil {
		return res, nil, nil
	}
	return toolJSON(struct {
		DesignID string `json:"design_id,omitempty"`
		*studio.Grafted
	}{id, g})
}

func (t *DesignTools) ScoreCDRs(ctx context.Context, _ *mcp.CallToolRequest, input ScoreCDRsInput) (*mcp.CallToolResult, any, error) {
	terms := t.Studio.Score(input.Heavy, input.Light)
	data, _ := json.Marshal(terms)
	id, res := t.record(ctx, models.Design{Kind: models.KindScore, Score: &terms.Total, Format: "json", Output: string(data)}, input)
	if res != nil {
		return res, nil, nil
	}
	return toolJSON(struct {
		DesignID string `json:"design_id,omitempty"`
		antibody.Terms
	}{id, terms})
}

func (t *DesignTools) RankCandidates(ctx context.Context, _ *mcp.CallToolRequest, input MotifInput) (*mcp.CallToolResult, any, error) {
	ranked := t.Studio.Rank(input.Motif)
	d := models.Design{Kind: models.KindRank, Motif: input.Motif, Format: "json"}
	if len(ranked) > 0 {
		d.Score = &ranked[0].Score
		d.Motif = ranked[0].Motif
	}
	data, _ := json.Marshal(ranked)
	d.Output = string(data)

	id, res := t.record(ctx, d, input)
	if res != nil {
		return res, nil, nil
	}
	return toolJSON(struct {
		DesignID   string               `json:"design_id,omitempty"`
		Motif      string               `json:"motif"`
		Candidates []antibody.Candidate `json:"candidates"`
	}{id, input.Motif, ranked})
}

func (t *DesignTools) EngineerAntibody(ctx context.Context, _ *mcp.CallToolRequest, input MotifInput) (*mcp.CallToolResult, any, error) {
	e, err := t.Studio.Engineer(input.Motif)
	if errors.Is(err, studio.ErrNoCandidates) {
		return toolError("No candidates for motif %q. Use list_motifs to see the library.", input.Motif), nil, nil
	}
	if err != nil {
		return toolError("Failed to engineer antibody: %v", err), nil, nil
	}
	c := e.Candidate
	id, res := t.record(ctx, models.Design{Kind: models.KindEngineer, Name: c.Name, Motif: c.Motif, Score: &c.Score, Format: "fasta", Output: e.FASTA}, input)
	if res != nil {
		return res, nil, nil
	}
	return toolJSON(struct {
		DesignID string `json:"design_id,omitempty"`
		*studio.Engineered
	}{id, e})
}

func (t *DesignTools) CombineComplex(ctx context.Context, _ *mcp.CallToolRequest, input CombineComplexInput) (*mcp.CallToolResult, any, error) {
	req := studio.ComplexRequest{
		Name:    input.Name,
		Carrier: input.Carrier,
		Heavy:   input.Heavy,
		Light:   input.Light,
		Preset:  input.Preset,
		Format:  input.Format,
	}
	if req.Heavy == "" && req.Light == "" && input.Motif != "" {
		e, err := t.Studio.Engineer(input.Motif)
		if err != nil {
			return toolError("Failed to engineer antibody: %v", err), nil, nil
		}
		req.Heavy, req.Light = e.Candidate.Heavy, e.Candidate.Light
	}

	out, err := t.Studio.Combine(req)
	if err != nil {
		return toolError("Failed to combine complex: %v", err), nil, nil
	}
	id, res := t.record(ctx, models.Design{Kind: models.KindComplex, Name: out.Name, Motif: input.Motif, Format: out.Format, Output: out.Text}, input)
	if res != nil {
		return res, nil, nil
	}
	return toolJSON(struct {
		DesignID string `json:"design_id,omitempty"`
		*studio.Structure
	}{id, out})
}

func (t *DesignTools) AnalyzeHotSpots(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeHotSpotsInput) (*mcp.CallToolResult, any, error) {
	var a analysis.Analyzer = analysis.HotSpots{
		Antibody: chainIDs(input.AntibodyChains),
		Antigen:  chainIDs(input.AntigenChains),
		Cutoff:   input.Cutoff,
	}
	if input.Placeholder {
		a = analysis.PlaceholderHotSpots
	}
	return t.analyze(ctx, models.KindHotSpots, input.Structure, input.DesignID, a, input)
}

func (t *DesignTools) AnalyzeContacts(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeContactsInput) (*mcp.CallToolResult, any, error) {
	if len(input.ChainA) != 1 || len(input.ChainB) != 1 {
		return toolError("chain_a and chain_b must each be a single chain id"), nil, nil
	}
	a := analysis.Contacts{A: input.ChainA[0], B: input.ChainB[0], Cutoff: input.Cutoff}
	return t.analyze(ctx, models.KindContacts, input.Structure, input.DesignID, a, input)
}

func (t *DesignTools) AnalyzeParatope(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeParatopeInput) (*mcp.CallToolResult, any, error) {
	a, err := t.Studio.Paratope(input.HeavyCDRs, input.LightCDRs, input.Cutoff)
	if err != nil {
		return toolError("Failed to map CDR regions: %v", err), nil, nil
	}
	return t.analyze(ctx, models.KindParatope, input.Structure, input.DesignID, a, input)
}

func (t *DesignTools) analyze(ctx context.Context, kind, text, designID string, a analysis.Analyzer, input any) (*mcp.CallToolResult, any, error) {
	if designID != "" {
		ds := t.Session.Designs()
		if ds == nil {
			return toolError("No active campaign. Use switch_campaign to analyze recorded designs."), nil, nil
		}
		d, err := ds.GetDesign(ctx, designID)
		if err != nil {
			return toolError("Failed to load design: %v", err), nil, nil
		}
		if d.Format != studio.FormatPDB {
			return toolError("Design %s is %s, not a PDB structure", d.ID, d.Format), nil, nil
		}
		text = d.Output
	}
	var table *analysis.Table
	var err error
	if _, fixed := a.(analysis.Fixed); fixed {
		table, err = a.Analyze(ctx, nil)
	} else {
		if strings.TrimSpace(text) == "" {
			return toolError("structure or design_id is required"), nil, nil
		}
		table, err = t.Studio.Analyze(ctx, text, a)
	}
	if err != nil {
		return toolError("Failed to analyze structure: %v", err), nil, nil
	}

	data, _ := json.Marshal(table)
	id, res := t.record(ctx, models.Design{Kind: kind, Name: table.Title, Format: "json", Output: string(data)}, input)
	if res != nil {
		return res, nil, nil
	}
	return toolJSON(struct {
		DesignID string `json:"design_id,omitempty"`
		*analysis.Table
	}{id, table})
}

// record saves d in the active campaign. It returns an empty id when no
// campaign is active and a non-nil result when saving fails.
func (t *DesignTools) record(ctx context.Context, d models.Design, input any) (string, *mcp.CallToolResult) {
	ds := t.Session.Designs()
	if ds == nil {
		return "", nil
	}
	in, err := json.Marshal(input)
	if err != nil {
		return "", toolError("Failed to encode design input: %v", err)
	}
	d.Input = string(in)

	saved, err := ds.SaveDesign(ctx, d)
	if err != nil {
		return "", toolError("Design computed but failed to record: %v", err)
	}
	_, campaign, _ := t.Session.GetCurrent()
	slog.Debug("design recorded", "campaign", campaign, "kind", saved.Kind, "id", saved.ID)
	return saved.ID, nil
}
