package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/middleware"
)

// statsService serves the aggregate counters from a persisted snapshot with a
// freshness TTL. Recomputation after voucher mutations happens on a background
// goroutine and never blocks or fails the triggering request.
type statsService struct {
	statsRepo portsrepo.StatsRepository
	ttl       time.Duration
}

// NewStatsService creates a new StatsService. ttl <= 0 falls back to 5 minutes.
func NewStatsService(statsRepo portsrepo.StatsRepository, ttl time.Duration) portssvc.StatsSvcFacade {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &statsService{statsRepo: statsRepo, ttl: ttl}
}

var _ portssvc.StatsSvcFacade = (*statsService)(nil)

// GetStats returns the persisted snapshot if within the TTL, recomputing and
// persisting a fresh one otherwise. force always recomputes.
func (s *statsService) GetStats(ctx context.Context, force bool) (*domain.Stats, error) {
	now := time.Now()

	if !force {
		stats, err := s.statsRepo.GetStats(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load stats: %w", err)
		}
		if stats != nil && stats.Fresh(now, s.ttl) {
			return stats, nil
		}
	}

	return s.recompute(ctx, now)
}

// RecomputeAsync refreshes the snapshot in the background. The spawned
// goroutine carries the request logger but not the request deadline.
func (s *statsService) RecomputeAsync(ctx context.Context) {
	logger := middleware.GetLoggerFromCtx(ctx)
	go func() {
		bgCtx, cancel := context.WithTimeout(middleware.WithLogger(context.Background(), logger), 30*time.Second)
		defer cancel()
		if _, err := s.recompute(bgCtx, time.Now()); err != nil {
			logger.Error("Background stats recompute failed", slog.String("error", err.Error()))
		}
	}()
}

func (s *statsService) recompute(ctx context.Context, now time.Time) (*domain.Stats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fy := domain.FinancialYearOf(now)
	stats, err := s.statsRepo.ComputeStats(ctx, fy, now)
	if err != nil {
		logger.Error("Failed to compute stats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if err := s.statsRepo.SaveStats(ctx, *stats); err != nil {
		// A stale snapshot on disk is tolerable; the computed values still
		// serve this caller.
		logger.Error("Failed to persist stats snapshot", slog.String("error", err.Error()))
	}
	return stats, nil
}
