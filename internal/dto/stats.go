package dto

import (
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// StatsResponse exposes the cached aggregate counters.
type StatsResponse struct {
	AccountCount  int       `json:"accountCount"`
	VoucherCount  int       `json:"voucherCount"`
	EntryCount    int       `json:"entryCount"`
	AccuracyRate  float64   `json:"accuracyRate"`
	FinancialYear string    `json:"financialYear"`
	ComputedAt    time.Time `json:"computedAt"`
}

// ToStatsResponse converts a domain.Stats.
func ToStatsResponse(s *domain.Stats) StatsResponse {
	return StatsResponse{
		AccountCount:  s.AccountCount,
		VoucherCount:  s.VoucherCount,
		EntryCount:    s.EntryCount,
		AccuracyRate:  s.AccuracyRate,
		FinancialYear: s.FinancialYear,
		ComputedAt:    s.ComputedAt,
	}
}
