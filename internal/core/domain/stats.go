package domain

import "time"

// Stats is the persisted snapshot of aggregate counters served by the stats
// endpoint. AccuracyRate is the percentage of vouchers whose debit and credit
// totals agree within BalanceTolerance.
type Stats struct {
	AccountCount  int       `json:"accountCount"`
	VoucherCount  int       `json:"voucherCount"`
	EntryCount    int       `json:"entryCount"`
	AccuracyRate  float64   `json:"accuracyRate"`
	FinancialYear string    `json:"financialYear"`
	ComputedAt    time.Time `json:"computedAt"`
}

// Fresh reports whether the snapshot is younger than ttl at the given instant.
func (s *Stats) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.ComputedAt) < ttl
}
