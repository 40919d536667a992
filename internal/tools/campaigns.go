package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/glyco-studio/internal/session"
	"github.com/wagnerlima/glyco-studio/internal/storage"
)

// CampaignTools holds references needed by campaign management tool handlers.
type CampaignTools struct {
	Meta    *storage.MetaStore
	Session *session.Session
}

// --- Input types ---

type ListCampaignsInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter campaigns by status: active, archived, or all"`
}

type CreateCampaignInput struct {
	Name        string `json:"name" jsonschema:"Unique campaign name (slug-friendly)"`
	Description string `json:"description,omitempty" jsonschema:"Optional campaign description"`
}

type CampaignNameInput struct {
	Name string `json:"name" jsonschema:"Campaign name"`
}

// --- Handlers ---

func (t *CampaignTools) ListCampaigns(ctx context.Context, _ *mcp.CallToolRequest, input ListCampaignsInput) (*mcp.CallToolResult, any, error) {
	status := input.Status
	if status == "" {
		status = "active"
	}
	campaigns, err := t.Meta.ListCampaigns(ctx, status)
	if err != nil {
		return toolError("Failed to list campaigns: %v", err), nil, nil
	}
	return toolJSON(campaigns)
}

func (t *CampaignTools) CreateCampaign(ctx context.Context, _ *mcp.CallToolRequest, input CreateCampaignInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Campaign name is required"), nil, nil
	}

	c, err := t.Meta.CreateCampaign(ctx, input.Name, input.Description)
	if err != nil {
		return toolError("Failed to create campaign: %v", err), nil, nil
	}

	// New campaigns become current.
	if _, err := t.Session.SwitchCampaign(ctx, t.Meta, c.Name); err != nil {
		return toolError("Campaign created but failed to switch: %v", err), nil, nil
	}
	return toolJSON(c)
}

func (t *CampaignTools) SwitchCampaign(ctx context.Context, _ *mcp.CallToolRequest, input CampaignNameInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Campaign name is required"), nil, nil
	}
	c, err := t.Session.SwitchCampaign(ctx, t.Meta, input.Name)
	if err != nil {
		return toolError("Failed to switch campaign: %v", err), nil, nil
	}
	return toolJSON(c)
}

func (t *CampaignTools) GetCurrentCampaign(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	_, name, ok := t.Session.GetCurrent()
	if !ok {
		return toolText("No campaign is currently active. Use switch_campaign to select one."), nil, nil
	}
	c, err := t.Meta.GetCampaign(ctx, name)
	if err != nil {
		return toolText(fmt.Sprintf("Active campaign: %s (details unavailable)", name)), nil, nil
	}
	return toolJSON(c)
}

func (t *CampaignTools) ArchiveCampaign(ctx context.Context, _ *mcp.CallToolRequest, input CampaignNameInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Campaign name is required"), nil, nil
	}
	t.Session.ClearIf(input.Name)

	c, err := t.Meta.ArchiveCampaign(ctx, input.Name)
	if err != nil {
		return toolError("Failed to archive campaign: %v", err), nil, nil
	}
	return toolJSON(c)
}

func (t *CampaignTools) RestoreCampaign(ctx context.Context, _ *mcp.CallToolRequest, input CampaignNameInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Campaign name is required"), nil, nil
	}
	c, err := t.Meta.RestoreCampaign(ctx, input.Name)
	if err != nil {
		return toolError("Failed to restore campaign: %v", err), nil, nil
	}
	return toolJSON(c)
}

func (t *CampaignTools) DeleteCampaign(ctx context.Context, _ *mcp.CallToolRequest, input CampaignNameInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Campaign name is required"), nil, nil
	}
	t.Session.ClearIf(input.Name)

	if err := t.Meta.DeleteCampaign(ctx, input.Name); err != nil {
		return toolError("Failed to delete campaign: %v", err), nil, nil
	}
	return toolText(fmt.Sprintf("Campaign %q permanently deleted.", input.Name)), nil, nil
}
