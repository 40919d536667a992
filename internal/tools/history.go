package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/glyco-studio/internal/session"
	"github.com/wagnerlima/glyco-studio/internal/storage"
)

// HistoryTools holds references needed by design history tool handlers.
type HistoryTools struct {
	Session *session.Session
}

// --- Input types ---

type ListDesignsInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"Filter by kind: antigen, graft, score, rank, engineer, complex, hotspots, contacts"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of designs, default 50"`
}

type GetDesignInput struct {
	ID string `json:"id" jsonschema:"Design id"`
}

type SearchDesignsInput struct {
	Query string `json:"query" jsonschema:"Search query (supports FTS5 syntax: AND, OR, NOT, prefix*)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of designs, default 50"`
}

type DeleteDesignsInput struct {
	IDs []string `json:"ids" jsonschema:"Design ids to delete"`
}

// --- Handlers ---

func (t *HistoryTools) requireCampaign() (*storage.DesignStore, *mcp.CallToolResult) {
	ds := t.Session.Designs()
	if ds == nil {
		return nil, toolError("No active campaign. Use switch_campaign to select one.")
	}
	return ds, nil
}

func (t *HistoryTools) ListDesigns(ctx context.Context, _ *mcp.CallToolRequest, input ListDesignsInput) (*mcp.CallToolResult, any, error) {
	ds, errResult := t.requireCampaign()
	if errResult != nil {
		return errResult, nil, nil
	}
	designs, err := ds.ListDesigns(ctx, input.Kind, input.Limit)
	if err != nil {
		return toolError("Failed to list designs: %v", err), nil, nil
	}
	return toolJSON(designs)
}

func (t *HistoryTools) GetDesign(ctx context.Context, _ *mcp.CallToolRequest, input GetDesignInput) (*mcp.CallToolResult, any, error) {
	ds, errResult := t.requireCampaign()
	if errResult != nil {
		return errResult, nil, nil
	}
	d, err := ds.GetDesign(ctx, input.ID)
	if err != nil {
		return toolError("Failed to get design: %v", err), nil, nil
	}
	return toolJSON(d)
}

func (t *HistoryTools) SearchDesigns(ctx context.Context, _ *mcp.CallToolRequest, input SearchDesignsInput) (*mcp.CallToolResult, any, error) {
	ds, errResult := t.requireCampaign()
	if errResult != nil {
		return errResult, nil, nil
	}
	if strings.TrimSpace(input.Query) == "" {
		return toolError("Search query is required"), nil, nil
	}
	designs, err := ds.SearchDesigns(ctx, input.Query, input.Limit)
	if err != nil {
		return toolError("Search failed: %v", err), nil, nil
	}
	return toolJSON(designs)
}

func (t *HistoryTools) DeleteDesigns(ctx context.Context, _ *mcp.CallToolRequest, input DeleteDesignsInput) (*mcp.CallToolResult, any, error) {
	ds, errResult := t.requireCampaign()
	if errResult != nil {
		return errResult, nil, nil
	}
	count, err := ds.DeleteDesigns(ctx, input.IDs)
	if err != nil {
		return toolError("Failed to delete designs: %v", err), nil, nil
	}
	return toolText(fmt.Sprintf("Deleted %d designs.", count)), nil, nil
}

func (t *HistoryTools) ExportHistory(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	ds, errResult := t.requireCampaign()
	if errResult != nil {
		return errResult, nil, nil
	}
	var b strings.Builder
	if _, err := ds.ExportCSV(ctx, &b); err != nil {
		return toolError("Failed to export history: %v", err), nil, nil
	}
	return toolText(b.String()), nil, nil
}
