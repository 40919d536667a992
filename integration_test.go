package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/glyco-studio/internal/models"
	"github.com/wagnerlima/glyco-studio/internal/server"
	"github.com/wagnerlima/glyco-studio/internal/storage"
	"github.com/wagnerlima/glyco-studio/internal/studio"
)

// setupIntegration creates a real MCP server with in-memory transport and returns a connected client session.
func setupIntegration(t *testing.T) (*mcp.ClientSession, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "glyco-studio-integration-*")
	if err != nil {
		t.Fatal(err)
	}

	meta, err := storage.OpenMeta(dir)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}

	srv := server.New(meta, studio.Default())

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	if _, err := srv.Connect(ctx, serverTransport, nil); err != nil {
		meta.Close()
		os.RemoveAll(dir)
		t.Fatalf("server connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		meta.Close()
		os.RemoveAll(dir)
		t.Fatalf("client connect: %v", err)
	}

	cleanup := func() {
		session.Close()
		meta.Close()
		os.RemoveAll(dir)
	}
	return session, cleanup
}

// callTool is a helper that calls a tool and returns the text content.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) returned error: %s", name, tc.Text)
	}
	return tc.Text
}

// callToolExpectError calls a tool and expects an error response (IsError=true).
func callToolExpectError(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): protocol error: %v", name, err)
	}
	tc := result.Content[0].(*mcp.TextContent)
	if !result.IsError {
		t.Fatalf("CallTool(%s): expected error but got success: %s", name, tc.Text)
	}
	return tc.Text
}

func decode(t *testing.T, text string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("unmarshal %q: %v", text, err)
	}
}

type recorded struct {
	DesignID string `json:"design_id"`
	Text     string `json:"text"`
	Atoms    int    `json:"atoms"`
}

func TestIntegration_ListTools(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	expectedTools := []string{
		"list_campaigns", "create_campaign", "switch_campaign", "get_current_campaign",
		"archive_campaign", "restore_campaign", "delete_campaign",
		"list_presets", "list_motifs", "build_antigen", "graft_cdrs", "score_cdrs",
		"rank_candidates", "engineer_antibody", "combine_complex",
		"analyze_hotspots", "analyze_contacts", "analyze_paratope",
		"list_designs", "get_design", "search_designs", "delete_designs", "export_history",
	}

	toolNames := make(map[string]bool)
	for _, tool := range result.Tools {
		toolNames[tool.Name] = true
		if tool.Name == "score_cdrs" && !strings.Contains(tool.Description, "all six CDRs") {
			t.Errorf("score_cdrs description %q should say light CDRs are scored", tool.Description)
		}
	}
	for _, name := range expectedTools {
		if !toolNames[name] {
			t.Errorf("Missing tool: %s", name)
		}
	}
	if len(result.Tools) != len(expectedTools) {
		t.Errorf("Expected %d tools, got %d", len(expectedTools), len(result.Tools))
	}
}

func TestIntegration_FullWorkflow(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	// Step 1: create_campaign makes the campaign current
	text := callTool(t, session, "create_campaign", map[string]any{
		"name":        "tn-vaccine",
		"description": "Tn on CRM197",
	})
	var c models.Campaign
	decode(t, text, &c)
	if c.Name != "tn-vaccine" || c.Status != "active" {
		t.Fatalf("campaign = %+v", c)
	}

	// Step 2: build the antigen
	text = callTool(t, session, "build_antigen", map[string]any{
		"name":    "tn-crm197",
		"carrier": "MKTAYIAKQR",
		"glycan":  "CC(=O)N[C@@H]1[C@@H](O)[C@@H](O)[C@@H](CO)O[C@@H]1O",
	})
	var antigen recorded
	decode(t, text, &antigen)
	if antigen.DesignID == "" {
		t.Error("build_antigen should record a design in the active campaign")
	}
	if antigen.Atoms != 40 || !strings.Contains(antigen.Text, "glycan SMILES") {
		t.Errorf("antigen = %d atoms, text:\n%s", antigen.Atoms, antigen.Text)
	}

	// Step 3: engineer the best Tn binder
	text = callTool(t, session, "engineer_antibody", map[string]any{"motif": "tn"})
	var engineered struct {
		DesignID  string `json:"design_id"`
		Candidate struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"candidate"`
		FASTA string `json:"fasta"`
	}
	decode(t, text, &engineered)
	if engineered.Candidate.Name == "" || !strings.HasPrefix(engineered.FASTA, ">H_chain\n") {
		t.Errorf("engineered = %+v", engineered)
	}

	// Step 4: rank agrees with engineer
	text = callTool(t, session, "rank_candidates", map[string]any{"motif": "Tn"})
	var ranked struct {
		Candidates []struct {
			Name string `json:"name"`
		} `json:"candidates"`
	}
	decode(t, text, &ranked)
	if len(ranked.Candidates) != 3 || ranked.Candidates[0].Name != engineered.Candidate.Name {
		t.Errorf("rank = %+v, engineered %s", ranked.Candidates, engineered.Candidate.Name)
	}

	// Step 5: combine carrier and antibody
	text = callTool(t, session, "combine_complex", map[string]any{
		"name":    "tn-complex",
		"carrier": "MKTAYIAKQR",
		"motif":   "Tn",
	})
	var complex recorded
	decode(t, text, &complex)
	if complex.DesignID == "" || strings.Count(complex.Text, "TER\n") != 3 {
		t.Fatalf("complex = %+v", complex)
	}

	// Step 6: analyze the recorded complex
	text = callTool(t, session, "analyze_contacts", map[string]any{
		"design_id": complex.DesignID,
		"chain_a":   "H",
		"chain_b":   "A",
		"cutoff":    1000,
	})
	var table struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	decode(t, text, &table)
	if len(table.Columns) != 4 || len(table.Rows) == 0 {
		t.Errorf("contacts table = %+v", table)
	}

	text = callTool(t, session, "analyze_hotspots", map[string]any{"design_id": complex.DesignID})
	var hot struct {
		Rows [][]string `json:"rows"`
	}
	decode(t, text, &hot)
	if len(hot.Rows) != 0 {
		t.Errorf("stacked chains should not touch, got %v", hot.Rows)
	}

	// Step 7: history
	text = callTool(t, session, "list_designs", map[string]any{})
	var designs []models.Design
	decode(t, text, &designs)
	if len(designs) != 6 {
		t.Fatalf("list_designs = %d designs, want 6", len(designs))
	}
	if designs[0].Kind != models.KindHotSpots {
		t.Errorf("newest design kind = %s, want hotspots", designs[0].Kind)
	}

	text = callTool(t, session, "list_designs", map[string]any{"kind": "complex"})
	decode(t, text, &designs)
	if len(designs) != 1 || designs[0].ID != complex.DesignID {
		t.Errorf("list_designs(complex) = %+v", designs)
	}

	text = callTool(t, session, "search_designs", map[string]any{"query": "crm197"})
	decode(t, text, &designs)
	if len(designs) != 1 || designs[0].ID != antigen.DesignID {
		t.Errorf("search_designs(crm197) = %+v", designs)
	}

	text = callTool(t, session, "get_design", map[string]any{"id": antigen.DesignID})
	var d models.Design
	decode(t, text, &d)
	if d.Output != antigen.Text || d.Format != "pdb" {
		t.Errorf("get_design output mismatch: format %s", d.Format)
	}

	csv := callTool(t, session, "export_history", map[string]any{})
	if lines := strings.Split(strings.TrimSpace(csv), "\n"); len(lines) != 7 || !strings.HasPrefix(lines[0], "id,kind,") {
		t.Errorf("export_history:\n%s", csv)
	}

	// Step 8: delete a design
	text = callTool(t, session, "delete_designs", map[string]any{"ids": []string{antigen.DesignID}})
	if !strings.Contains(text, "Deleted 1 designs") {
		t.Errorf("delete_designs = %q", text)
	}
	callToolExpectError(t, session, "get_design", map[string]any{"id": antigen.DesignID})
}

func TestIntegration_NoCampaign(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	// Pipeline tools work without a campaign and record nothing.
	text := callTool(t, session, "graft_cdrs", map[string]any{
		"heavy": []string{"GFTFSRYT", "ISSSGGST", "ARTVRYGMDV"},
		"light": []string{"QSVSSY", "DAS", "QQRSSWPFT"},
	})
	var graft struct {
		DesignID string `json:"design_id"`
		Terms    struct {
			Total float64 `json:"total"`
		} `json:"terms"`
	}
	decode(t, text, &graft)
	if graft.DesignID != "" {
		t.Errorf("design_id = %q without a campaign", graft.DesignID)
	}
	if graft.Terms.Total != 48.15 {
		t.Errorf("total = %v, want 48.15", graft.Terms.Total)
	}

	text = callTool(t, session, "get_current_campaign", map[string]any{})
	if !strings.Contains(text, "No campaign is currently active") {
		t.Errorf("get_current_campaign = %q", text)
	}

	for _, name := range []string{"list_designs", "export_history"} {
		if msg := callToolExpectError(t, session, name, map[string]any{}); !strings.Contains(msg, "No active campaign") {
			t.Errorf("%s error = %q", name, msg)
		}
	}
	callToolExpectError(t, session, "analyze_hotspots", map[string]any{"design_id": "abc"})
}

func TestIntegration_ScoreCountsLightCDRs(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	heavy := []string{"GFTFSRYT", "ISSSGGST", "ARTVRYGMDV"}
	var withLight, heavyOnly struct {
		Composition float64 `json:"composition"`
		Total       float64 `json:"total"`
	}
	decode(t, callTool(t, session, "score_cdrs", map[string]any{
		"heavy": heavy,
		"light": []string{"QSVSSY", "DAS", "QQRSSWPFT"},
	}), &withLight)
	decode(t, callTool(t, session, "score_cdrs", map[string]any{"heavy": heavy}), &heavyOnly)

	// light CDRs add Y+W=2 and S+T=7: 3.0*2 + 1.5*7
	if diff := withLight.Composition - heavyOnly.Composition; diff != 16.5 {
		t.Errorf("light CDRs changed composition by %v, want 16.5", diff)
	}
	if withLight.Total != 48.15 {
		t.Errorf("total = %v, want 48.15", withLight.Total)
	}
}

func TestIntegration_ParatopeRegions(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	heavyCDRs := []string{"GFTFSRYT", "ISSSGGST", "ARTVRYGMDV"}
	lightCDRs := []string{"QSVSSY", "DAS", "QQRSSWPFT"}
	var graft struct {
		Heavy string `json:"heavy"`
		Light string `json:"light"`
	}
	decode(t, callTool(t, session, "graft_cdrs", map[string]any{"heavy": heavyCDRs, "light": lightCDRs}), &graft)

	var complex recorded
	decode(t, callTool(t, session, "combine_complex", map[string]any{
		"carrier": "MKTAYIAKQR",
		"heavy":   graft.Heavy,
		"light":   graft.Light,
	}), &complex)

	var table struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	decode(t, callTool(t, session, "analyze_paratope", map[string]any{
		"structure":  complex.Text,
		"heavy_cdrs": heavyCDRs,
		"light_cdrs": lightCDRs,
		"cutoff":     1000,
	}), &table)
	if strings.Join(table.Columns, ",") != "Chain,ResNum,ResName,CDR_Region" {
		t.Errorf("columns = %v", table.Columns)
	}
	if len(table.Rows) != len(graft.Heavy)+len(graft.Light) {
		t.Fatalf("rows = %d, want %d", len(table.Rows), len(graft.Heavy)+len(graft.Light))
	}
	rows := make(map[string]bool)
	for _, r := range table.Rows {
		rows[strings.Join(r, ",")] = true
	}
	for _, want := range []string{"Heavy,25,SER,FW", "Heavy,26,GLY,CDR1", "Light,27,GLN,CDR1", "Light,1,ASP,FW"} {
		if !rows[want] {
			t.Errorf("missing row %s", want)
		}
	}

	msg := callToolExpectError(t, session, "analyze_paratope", map[string]any{
		"structure":  complex.Text,
		"heavy_cdrs": []string{"GFTFSRYT"},
	})
	if !strings.Contains(msg, "heavy chain") {
		t.Errorf("region error = %q", msg)
	}
}

func TestIntegration_Errors(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	msg := callToolExpectError(t, session, "build_antigen", map[string]any{"carrier": "  "})
	if !strings.Contains(msg, "invalid argument") {
		t.Errorf("empty carrier error = %q", msg)
	}
	callToolExpectError(t, session, "build_antigen", map[string]any{"carrier": "MK", "preset": "zigzag"})
	callToolExpectError(t, session, "build_antigen", map[string]any{"carrier": "MK", "format": "xyz"})

	msg = callToolExpectError(t, session, "graft_cdrs", map[string]any{
		"heavy": []string{"A", "B"},
		"light": []string{"C", "D", "E"},
	})
	if !strings.Contains(msg, "heavy chain") {
		t.Errorf("graft error = %q", msg)
	}

	callToolExpectError(t, session, "engineer_antibody", map[string]any{"motif": "unknown"})
	callToolExpectError(t, session, "analyze_contacts", map[string]any{"structure": "ATOM", "chain_a": "HL", "chain_b": "A"})
	callToolExpectError(t, session, "analyze_hotspots", map[string]any{})
	callToolExpectError(t, session, "switch_campaign", map[string]any{"name": "missing"})

	// Unknown motifs rank to an empty list rather than an error.
	text := callTool(t, session, "rank_candidates", map[string]any{"motif": "unknown"})
	if !strings.Contains(text, `"candidates": []`) {
		t.Errorf("rank unknown = %s", text)
	}
}

func TestIntegration_PlaceholderHotSpots(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	text := callTool(t, session, "analyze_hotspots", map[string]any{"placeholder": true})
	if !strings.Contains(text, "TYR33") {
		t.Errorf("placeholder table = %s", text)
	}
}

func TestIntegration_CampaignIsolation(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	callTool(t, session, "create_campaign", map[string]any{"name": "alpha"})
	callTool(t, session, "rank_candidates", map[string]any{"motif": "GD2"})

	callTool(t, session, "create_campaign", map[string]any{"name": "beta"})
	text := callTool(t, session, "list_designs", map[string]any{})
	if text != "[]" {
		t.Errorf("beta should start empty, got %s", text)
	}

	callTool(t, session, "switch_campaign", map[string]any{"name": "alpha"})
	var designs []models.Design
	decode(t, callTool(t, session, "list_designs", map[string]any{}), &designs)
	if len(designs) != 1 || designs[0].Motif != "GD2" {
		t.Errorf("alpha designs = %+v", designs)
	}
}

func TestIntegration_ArchiveLifecycle(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	callTool(t, session, "create_campaign", map[string]any{"name": "old"})
	callTool(t, session, "score_cdrs", map[string]any{"heavy": []string{"A", "B", "SSSSSSSSSSSS"}})

	callTool(t, session, "archive_campaign", map[string]any{"name": "old"})
	text := callTool(t, session, "get_current_campaign", map[string]any{})
	if !strings.Contains(text, "No campaign is currently active") {
		t.Errorf("archiving the current campaign should clear it, got %q", text)
	}
	msg := callToolExpectError(t, session, "switch_campaign", map[string]any{"name": "old"})
	if !strings.Contains(msg, "archived") {
		t.Errorf("switch to archived = %q", msg)
	}

	var archived []models.Campaign
	decode(t, callTool(t, session, "list_campaigns", map[string]any{"status": "archived"}), &archived)
	if len(archived) != 1 {
		t.Errorf("archived campaigns = %+v", archived)
	}

	callTool(t, session, "restore_campaign", map[string]any{"name": "old"})
	callTool(t, session, "switch_campaign", map[string]any{"name": "old"})
	var designs []models.Design
	decode(t, callTool(t, session, "list_designs", map[string]any{}), &designs)
	if len(designs) != 1 || designs[0].Kind != models.KindScore {
		t.Errorf("designs after restore = %+v", designs)
	}

	text = callTool(t, session, "delete_campaign", map[string]any{"name": "old"})
	if !strings.Contains(text, "permanently deleted") {
		t.Errorf("delete_campaign = %q", text)
	}
	callToolExpectError(t, session, "list_designs", map[string]any{})
}
