package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// StatsSvcFacade serves the cached aggregate counters.
type StatsSvcFacade interface {
	// GetStats returns the persisted snapshot if fresh, recomputing otherwise.
	// force skips the freshness check.
	GetStats(ctx context.Context, force bool) (*domain.Stats, error)

	// RecomputeAsync recomputes the snapshot on a background goroutine.
	// Failures are logged and never surfaced to the caller.
	RecomputeAsync(ctx context.Context)
}
