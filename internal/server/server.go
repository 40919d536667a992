package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/glyco-studio/internal/session"
	"github.com/wagnerlima/glyco-studio/internal/storage"
	"github.com/wagnerlima/glyco-studio/internal/studio"
	"github.com/wagnerlima/glyco-studio/internal/tools"
)

// Version is reported to MCP clients.
const Version = "0.3.0"

// New creates a fully configured MCP server with all tools registered.
func New(meta *storage.MetaStore, st *studio.Studio) *mcp.Server {
	sess := session.New()

	ct := &tools.CampaignTools{Meta: meta, Session: sess}
	dt := &tools.DesignTools{Studio: st, Session: sess}
	ht := &tools.HistoryTools{Session: sess}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "glyco-studio",
		Version: Version,
	}, nil)

	// Campaign management tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_campaigns",
		Description: "List all campaigns with optional status filter (active, archived, all)",
	}, ct.ListCampaigns)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_campaign",
		Description: "Create a new campaign with its own isolated design history and make it current",
	}, ct.CreateCampaign)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "switch_campaign",
		Description: "Switch the active campaign for the current session",
	}, ct.SwitchCampaign)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_current_campaign",
		Description: "Get information about the currently active campaign",
	}, ct.GetCurrentCampaign)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "archive_campaign",
		Description: "Archive a campaign (preserves designs, makes it inactive)",
	}, ct.ArchiveCampaign)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "restore_campaign",
		Description: "Restore an archived campaign back to active status",
	}, ct.RestoreCampaign)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_campaign",
		Description: "Permanently delete a campaign and all its designs (irreversible)",
	}, ct.DeleteCampaign)

	// Design pipeline tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_presets",
		Description: "List backbone placement presets for structure generation",
	}, dt.ListPresets)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_motifs",
		Description: "List glycan motifs with candidate antibodies in the library",
	}, dt.ListMotifs)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "build_antigen",
		Description: "Build a synthetic backbone model of a glycan-carrier conjugate as PDB or mmCIF text",
	}, dt.BuildAntigen)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "graft_cdrs",
		Description: "Graft three heavy and three light CDRs into the trastuzumab frameworks and score them",
	}, dt.GraftCDRs)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "score_cdrs",
		Description: "Score a CDR set: Y/W/S/T composition across all six CDRs plus heavy CDR3 length and hydrophobicity",
	}, dt.ScoreCDRs)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "rank_candidates",
		Description: "Graft, score and rank every library candidate for a glycan motif",
	}, dt.RankCandidates)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "engineer_antibody",
		Description: "Pick the top-ranked antibody for a glycan motif and return it as FASTA",
	}, dt.EngineerAntibody)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "combine_complex",
		Description: "Stack carrier (A), heavy (H) and light (L) chains into one complex structure",
	}, dt.CombineComplex)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "analyze_hotspots",
		Description: "Rank antibody residues by atom contacts with the antigen chains of a PDB structure",
	}, dt.AnalyzeHotSpots)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "analyze_contacts",
		Description: "List residues of one chain within a distance cutoff of another chain",
	}, dt.AnalyzeContacts)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "analyze_paratope",
		Description: "List heavy and light chain residues touching the antigen, labelled FW or CDR1-3",
	}, dt.AnalyzeParatope)

	// Design history tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_designs",
		Description: "List recorded designs, newest first (requires active campaign)",
	}, ht.ListDesigns)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_design",
		Description: "Retrieve a recorded design with its output (requires active campaign)",
	}, ht.GetDesign)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_designs",
		Description: "Search recorded designs using FTS5 full-text search (requires active campaign)",
	}, ht.SearchDesigns)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_designs",
		Description: "Soft-delete recorded designs by id (requires active campaign)",
	}, ht.DeleteDesigns)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "export_history",
		Description: "Export the campaign's design history as CSV (requires active campaign)",
	}, ht.ExportHistory)

	return srv
}
