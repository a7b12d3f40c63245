package domain

import (
	"fmt"
	"time"
)

// FinancialYear is an April-March fiscal period keyed as "YYYY-YY".
type FinancialYear struct {
	YearID      string     `json:"yearID"`
	YearCode    string     `json:"yearCode"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	IsActive    bool       `json:"isActive"`
	IsClosed    bool       `json:"isClosed"`
	ClosingDate *time.Time `json:"closingDate,omitempty"`
	AuditFields
}

// FiscalYearStartMonth is the first month of the fiscal calendar.
const FiscalYearStartMonth = time.April

// FinancialYearOf derives the "YYYY-YY" code for a date. January-March dates
// belong to the year that started the previous April.
func FinancialYearOf(date time.Time) string {
	year := date.Year()
	if date.Month() < FiscalYearStartMonth {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// FinancialYearBounds returns the inclusive start and end dates of the fiscal
// year identified by a "YYYY-YY" code.
func FinancialYearBounds(yearCode string) (time.Time, time.Time, error) {
	var startYear int
	var tail int
	if _, err := fmt.Sscanf(yearCode, "%d-%d", &startYear, &tail); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed financial year %q: %w", yearCode, err)
	}
	if (startYear+1)%100 != tail {
		return time.Time{}, time.Time{}, fmt.Errorf("inconsistent financial year %q", yearCode)
	}
	start := time.Date(startYear, FiscalYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return start, end, nil
}

// Contains reports whether date falls inside the financial year.
func (fy *FinancialYear) Contains(date time.Time) bool {
	return !date.Before(fy.StartDate) && !date.After(fy.EndDate)
}
