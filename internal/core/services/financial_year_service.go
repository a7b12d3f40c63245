package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

var (
	ErrYearCodeTaken    = fmt.Errorf("financial year code already registered: %w", apperrors.ErrDuplicate)
	ErrYearCodeMismatch = fmt.Errorf("year code does not match its date range: %w", apperrors.ErrValidation)
	ErrYearAlreadyOpen  = fmt.Errorf("financial year is not closed: %w", apperrors.ErrConflict)
	ErrClosedImmutable  = fmt.Errorf("closed financial year cannot be modified: %w", apperrors.ErrConflict)
)

// financialYearService administers the April-March fiscal periods.
type financialYearService struct {
	fyRepo portsrepo.FinancialYearRepository
}

// NewFinancialYearService creates a new FinancialYearService.
func NewFinancialYearService(fyRepo portsrepo.FinancialYearRepository) portssvc.FinancialYearSvcFacade {
	return &financialYearService{fyRepo: fyRepo}
}

var _ portssvc.FinancialYearSvcFacade = (*financialYearService)(nil)

// CreateFinancialYear registers a fiscal year. The year code must agree with
// the submitted date range under the April-March calendar.
func (s *financialYearService) CreateFinancialYear(ctx context.Context, req dto.CreateFinancialYearRequest, userID string) (*domain.FinancialYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start, end, err := domain.FinancialYearBounds(req.YearCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	sameDay := func(a, b time.Time) bool {
		ay, am, ad := a.Date()
		by, bm, bd := b.Date()
		return ay == by && am == bm && ad == bd
	}
	if !sameDay(req.StartDate, start) || !sameDay(req.EndDate, end) {
		return nil, ErrYearCodeMismatch
	}

	existing, err := s.fyRepo.FindFinancialYearByCode(ctx, req.YearCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check financial year code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check year code: %w", err)
	}
	if existing != nil {
		return nil, ErrYearCodeTaken
	}

	now := time.Now()
	fy := domain.FinancialYear{
		YearID:    uuid.NewString(),
		YearCode:  req.YearCode,
		StartDate: start,
		EndDate:   end,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.fyRepo.SaveFinancialYear(ctx, fy); err != nil {
		logger.Error("Failed to save financial year", slog.String("error", err.Error()), slog.String("year_code", req.YearCode))
		return nil, fmt.Errorf("failed to save financial year: %w", err)
	}

	if req.IsActive {
		if err := s.fyRepo.ActivateFinancialYear(ctx, fy.YearID, userID, now); err != nil {
			logger.Error("Failed to activate financial year", slog.String("error", err.Error()), slog.String("year_id", fy.YearID))
			return nil, fmt.Errorf("failed to activate financial year: %w", err)
		}
		fy.IsActive = true
	}

	logger.Info("Financial year created", slog.String("year_id", fy.YearID), slog.String("year_code", fy.YearCode))
	return &fy, nil
}

// GetFinancialYearByID retrieves a fiscal year.
func (s *financialYearService) GetFinancialYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error) {
	return s.fyRepo.FindFinancialYearByID(ctx, yearID)
}

// UpdateFinancialYear renames an open year. The new code must be a valid
// April-March code and not belong to another year; the date range follows the
// code. Closed years are immutable.
func (s *financialYearService) UpdateFinancialYear(ctx context.Context, yearID string, req dto.UpdateFinancialYearRequest, userID string) (*domain.FinancialYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fy, err := s.fyRepo.FindFinancialYearByID(ctx, yearID)
	if err != nil {
		return nil, err
	}
	if fy.IsClosed {
		return nil, ErrClosedImmutable
	}

	if req.YearCode == nil || *req.YearCode == fy.YearCode {
		return fy, nil
	}

	start, end, err := domain.FinancialYearBounds(*req.YearCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	other, err := s.fyRepo.FindFinancialYearByCode(ctx, *req.YearCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check financial year code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check year code: %w", err)
	}
	if other != nil && other.YearID != yearID {
		return nil, ErrYearCodeTaken
	}

	fy.YearCode = *req.YearCode
	fy.StartDate = start
	fy.EndDate = end
	fy.LastUpdatedAt = time.Now()
	fy.LastUpdatedBy = userID

	if err := s.fyRepo.UpdateFinancialYear(ctx, *fy); err != nil {
		logger.Error("Failed to update financial year", slog.String("error", err.Error()), slog.String("year_id", yearID))
		return nil, fmt.Errorf("failed to update financial year: %w", err)
	}

	logger.Info("Financial year updated", slog.String("year_id", yearID), slog.String("year_code", fy.YearCode))
	return fy, nil
}

// ListFinancialYears returns all registered years, newest first.
func (s *financialYearService) ListFinancialYears(ctx context.Context) ([]domain.FinancialYear, error) {
	return s.fyRepo.ListFinancialYears(ctx)
}

// ActivateFinancialYear makes the year the active one, deactivating all
// others. Closed years cannot be activated.
func (s *financialYearService) ActivateFinancialYear(ctx context.Context, yearID string, userID string) error {
	fy, err := s.fyRepo.FindFinancialYearByID(ctx, yearID)
	if err != nil {
		return err
	}
	if fy.IsClosed {
		return ErrClosedImmutable
	}
	if err := s.fyRepo.ActivateFinancialYear(ctx, yearID, userID, time.Now()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to activate financial year", slog.String("error", err.Error()), slog.String("year_id", yearID))
		return fmt.Errorf("failed to activate financial year: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Financial year activated", slog.String("year_id", yearID))
	return nil
}

// CloseFinancialYear closes the books for the year. Closing is one-way and
// rejects further vouchers dated inside the year.
func (s *financialYearService) CloseFinancialYear(ctx context.Context, yearID string, userID string) error {
	fy, err := s.fyRepo.FindFinancialYearByID(ctx, yearID)
	if err != nil {
		return err
	}
	if fy.IsClosed {
		return ErrClosedImmutable
	}
	now := time.Now()
	if err := s.fyRepo.CloseFinancialYear(ctx, yearID, now, userID, now); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to close financial year", slog.String("error", err.Error()), slog.String("year_id", yearID))
		return fmt.Errorf("failed to close financial year: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Financial year closed", slog.String("year_id", yearID), slog.String("year_code", fy.YearCode))
	return nil
}

// DeleteFinancialYear removes an open, inactive year. The active year and
// closed years are protected.
func (s *financialYearService) DeleteFinancialYear(ctx context.Context, yearID string) error {
	fy, err := s.fyRepo.FindFinancialYearByID(ctx, yearID)
	if err != nil {
		return err
	}
	if fy.IsActive {
		return fmt.Errorf("active financial year cannot be deleted: %w", apperrors.ErrConflict)
	}
	if fy.IsClosed {
		return ErrClosedImmutable
	}
	return s.fyRepo.DeleteFinancialYear(ctx, yearID)
}
