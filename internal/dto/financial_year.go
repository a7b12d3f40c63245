package dto

import (
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// CreateFinancialYearRequest defines the data for registering a fiscal year.
type CreateFinancialYearRequest struct {
	YearCode  string    `json:"yearCode" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	IsActive  bool      `json:"isActive"`
}

// UpdateFinancialYearRequest defines the fields allowed to change on an open
// financial year. The date range always follows the year code, so only the
// code is editable; activation and closing have their own operations.
type UpdateFinancialYearRequest struct {
	YearCode *string `json:"yearCode"`
}

// FinancialYearResponse is a fiscal year as returned to clients.
type FinancialYearResponse struct {
	YearID      string     `json:"yearID"`
	YearCode    string     `json:"yearCode"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	IsActive    bool       `json:"isActive"`
	IsClosed    bool       `json:"isClosed"`
	ClosingDate *time.Time `json:"closingDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CreatedBy   string     `json:"createdBy"`
}

// ToFinancialYearResponse converts a domain.FinancialYear.
func ToFinancialYearResponse(fy *domain.FinancialYear) FinancialYearResponse {
	return FinancialYearResponse{
		YearID:      fy.YearID,
		YearCode:    fy.YearCode,
		StartDate:   fy.StartDate,
		EndDate:     fy.EndDate,
		IsActive:    fy.IsActive,
		IsClosed:    fy.IsClosed,
		ClosingDate: fy.ClosingDate,
		CreatedAt:   fy.CreatedAt,
		CreatedBy:   fy.CreatedBy,
	}
}

// ToListFinancialYearResponse converts a slice of fiscal years.
func ToListFinancialYearResponse(years []domain.FinancialYear) []FinancialYearResponse {
	res := make([]FinancialYearResponse, len(years))
	for i := range years {
		res[i] = ToFinancialYearResponse(&years[i])
	}
	return res
}
