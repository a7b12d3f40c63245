package repositories

import (
	"context"
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// FinancialYearRepository persists fiscal-year metadata.
type FinancialYearRepository interface {
	SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error
	FindFinancialYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error)
	FindFinancialYearByCode(ctx context.Context, yearCode string) (*domain.FinancialYear, error)
	ListFinancialYears(ctx context.Context) ([]domain.FinancialYear, error)
	UpdateFinancialYear(ctx context.Context, fy domain.FinancialYear) error

	// ActivateFinancialYear marks one year active and every other year
	// inactive in a single transaction.
	ActivateFinancialYear(ctx context.Context, yearID string, userID string, now time.Time) error

	// CloseFinancialYear marks the year closed with the given closing date.
	// Closing is one-way.
	CloseFinancialYear(ctx context.Context, yearID string, closingDate time.Time, userID string, now time.Time) error

	DeleteFinancialYear(ctx context.Context, yearID string) error
}
