package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/dto"
)

// FinancialYearSvcFacade defines fiscal-year administration operations.
type FinancialYearSvcFacade interface {
	CreateFinancialYear(ctx context.Context, req dto.CreateFinancialYearRequest, userID string) (*domain.FinancialYear, error)
	GetFinancialYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error)
	UpdateFinancialYear(ctx context.Context, yearID string, req dto.UpdateFinancialYearRequest, userID string) (*domain.FinancialYear, error)
	ListFinancialYears(ctx context.Context) ([]domain.FinancialYear, error)
	ActivateFinancialYear(ctx context.Context, yearID string, userID string) error
	CloseFinancialYear(ctx context.Context, yearID string, userID string) error
	DeleteFinancialYear(ctx context.Context, yearID string) error
}
