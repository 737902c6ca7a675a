package services

import (
	"context"
	"time"

	"visittracker/pkg/core/domain"
	"visittracker/pkg/ports"
)

type AnalyticsService struct {
	repo ports.VisitRepository
}

func NewAnalyticsService(repo ports.VisitRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Track records one page view. Inputs are never rejected: an empty path
// becomes "/", an empty referrer becomes "direct" and an empty ip becomes
// "unknown". The timestamp is assigned here, not by the caller.
func (s *AnalyticsService) Track(ctx context.Context, path, referrer, userAgent, ip string) error {
	if path == "" {
		path = "/"
	}
	if referrer == "" {
		referrer = "direct"
	}
	if ip == "" {
		ip = "unknown"
	}

	visit := &domain.Visit{
		Timestamp: time.Now().UTC(),
		IP:        ip,
		UserAgent: userAgent,
		Referrer:  referrer,
		Path:      path,
	}

	return s.repo.Append(ctx, visit)
}

func (s *AnalyticsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *AnalyticsService) Reset(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *AnalyticsService) Export(ctx context.Context) ([]domain.Visit, error) {
	return s.repo.Dump(ctx)
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
