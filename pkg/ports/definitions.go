package ports

import (
	"context"

	"visittracker/pkg/core/domain"
)

// VisitRepository defines storage operations for the append-only visit log
type VisitRepository interface {
	// Append inserts one visit and sets its ID. Never rejects on content.
	Append(ctx context.Context, visit *domain.Visit) error

	// Stats runs the fixed battery of aggregation queries. No partial
	// results: any query failing fails the whole call.
	Stats(ctx context.Context) (*domain.Stats, error)

	// DeleteAll removes every visit. No soft-delete, no undo.
	DeleteAll(ctx context.Context) error

	// Dump returns all visits in insertion order. For export/migration.
	Dump(ctx context.Context) ([]domain.Visit, error)
}

// AnalyticsService defines the business logic operations
type AnalyticsService interface {
	// Track records one page view. Empty path, referrer and ip are
	// defaulted; the timestamp is always server-assigned.
	Track(ctx context.Context, path, referrer, userAgent, ip string) error

	GetStats(ctx context.Context) (*domain.Stats, error)
	Reset(ctx context.Context) error
	Export(ctx context.Context) ([]domain.Visit, error)
}
