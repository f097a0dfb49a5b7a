package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/refocus-cli/internal/metrics"
	"github.com/bnema/refocus-cli/internal/ports"
)

var ErrEmptySite = errors.New("site is empty")

// SiteService manages the persisted blocked-site set.
type SiteService struct {
	sites    ports.SiteRepository
	recorder metrics.Recorder
}

func NewSiteService(sites ports.SiteRepository, recorder metrics.Recorder) *SiteService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	return &SiteService{sites: sites, recorder: recorder}
}

func (s *SiteService) List(ctx context.Context) ([]string, error) {
	sites, err := s.sites.GetBlockedSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocked sites: %w", err)
	}

	s.recorder.SetBlockedSites(len(sites))
	return sites, nil
}

func (s *SiteService) Add(ctx context.Context, site string) error {
	trimmed := strings.TrimSpace(site)
	if trimmed == "" {
		return ErrEmptySite
	}

	if err := s.sites.AddSite(ctx, trimmed); err != nil {
		return fmt.Errorf("add blocked site: %w", err)
	}

	_, err := s.List(ctx)
	return err
}

func (s *SiteService) Remove(ctx context.Context, site string) error {
	if err := s.sites.RemoveSite(ctx, strings.TrimSpace(site)); err != nil {
		return fmt.Errorf("remove blocked site: %w", err)
	}

	_, err := s.List(ctx)
	return err
}
