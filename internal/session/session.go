package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/wagnerlima/glyco-studio/internal/models"
	"github.com/wagnerlima/glyco-studio/internal/storage"
)

// Session holds the current campaign for an MCP session.
type Session struct {
	mu           sync.Mutex
	campaignID   string
	campaignName string
	designs      *storage.DesignStore
}

// New creates a new empty session with no active campaign.
func New() *Session {
	return &Session{}
}

// SwitchCampaign closes the current campaign (if any) and opens the given one.
func (s *Session) SwitchCampaign(ctx context.Context, meta *storage.MetaStore, name string) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := meta.GetCampaign(ctx, name)
	if err != nil {
		return nil, err
	}
	if c.Status == models.StatusArchived {
		return nil, fmt.Errorf("campaign %q is archived, restore it first", name)
	}

	ds, err := storage.OpenDesigns(meta.CampaignDBPath(c))
	if err != nil {
		return nil, err
	}
	if s.designs != nil {
		s.designs.Close()
	}

	s.campaignID = c.ID
	s.campaignName = c.Name
	s.designs = ds
	return c, nil
}

// GetCurrent returns the current campaign, or ok=false if none is active.
func (s *Session) GetCurrent() (id, name string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.designs == nil {
		return "", "", false
	}
	return s.campaignID, s.campaignName, true
}

// Designs returns the current campaign's design store, or nil if no campaign is active.
func (s *Session) Designs() *storage.DesignStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.designs
}

// ClearIf closes the current campaign when it is the named one. It is used
// before archiving or deleting a campaign.
func (s *Session) ClearIf(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.designs != nil && s.campaignName == name {
		s.clear()
	}
}

// Clear closes the current campaign and resets session state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Session) clear() {
	if s.designs != nil {
		s.designs.Close()
		s.designs = nil
	}
	s.campaignID = ""
	s.campaignName = ""
}

// Close is an alias for Clear, used during server shutdown.
func (s *Session) Close() {
	s.Clear()
}
