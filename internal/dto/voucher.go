package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// VoucherEntryRequest is one submitted voucher line. Debit and credit must be
// non-negative; normally exactly one is nonzero.
type VoucherEntryRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Narration string          `json:"narration"`
}

// CreateVoucherRequest defines the data needed to post a voucher.
type CreateVoucherRequest struct {
	VoucherType     domain.VoucherType    `json:"voucherType" binding:"required"`
	VoucherDate     time.Time             `json:"voucherDate" binding:"required"`
	Entries         []VoucherEntryRequest `json:"entries" binding:"required,min=2,dive"`
	Narration       string                `json:"narration"`
	ReferenceNumber string                `json:"referenceNumber"`
	ChequeNumber    string                `json:"chequeNumber"`
	ChequeDate      *time.Time            `json:"chequeDate"`
}

// UpdateVoucherRequest defines the data for editing a posted voucher. The
// entry set replaces the stored one wholesale; the voucher type and number
// are immutable.
type UpdateVoucherRequest struct {
	VoucherDate     *time.Time            `json:"voucherDate"`
	Entries         []VoucherEntryRequest `json:"entries" binding:"omitempty,min=2,dive"`
	Narration       *string               `json:"narration"`
	ReferenceNumber *string               `json:"referenceNumber"`
	ChequeNumber    *string               `json:"chequeNumber"`
	ChequeDate      *time.Time            `json:"chequeDate"`
	IsReconciled    *bool                 `json:"isReconciled"`
}

// VoucherEntryResponse is one voucher line as returned to clients.
type VoucherEntryResponse struct {
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Narration   string          `json:"narration,omitempty"`
}

// VoucherResponse is a voucher as returned to clients.
type VoucherResponse struct {
	VoucherID       string                 `json:"voucherID"`
	VoucherNumber   string                 `json:"voucherNumber"`
	VoucherType     domain.VoucherType     `json:"voucherType"`
	VoucherDate     time.Time              `json:"voucherDate"`
	FinancialYear   string                 `json:"financialYear"`
	Entries         []VoucherEntryResponse `json:"entries,omitempty"`
	TotalDebit      decimal.Decimal        `json:"totalDebit"`
	TotalCredit     decimal.Decimal        `json:"totalCredit"`
	ReferenceNumber string                 `json:"referenceNumber,omitempty"`
	ChequeNumber    string                 `json:"chequeNumber,omitempty"`
	ChequeDate      *time.Time             `json:"chequeDate,omitempty"`
	Narration       string                 `json:"narration,omitempty"`
	IsPosted        bool                   `json:"isPosted"`
	IsReconciled    bool                   `json:"isReconciled"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ListVouchersParams defines the query parameters for listing vouchers.
type ListVouchersParams struct {
	VoucherType   string `form:"voucherType"`
	FinancialYear string `form:"financialYear"`
	AccountID     string `form:"accountID"`
	DateFrom      string `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        string `form:"dateTo" time_format:"2006-01-02"`
	Limit         int    `form:"limit,default=50"`
	Offset        int    `form:"offset,default=0"`
}

// ToVoucherResponse converts a domain.Voucher.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	entries := make([]VoucherEntryResponse, len(v.Entries))
	for i, e := range v.Entries {
		entries[i] = VoucherEntryResponse{
			EntryID:     e.EntryID,
			AccountID:   e.AccountID,
			AccountCode: e.AccountCode,
			AccountName: e.AccountName,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Narration:   e.Narration,
		}
	}
	return VoucherResponse{
		VoucherID:       v.VoucherID,
		VoucherNumber:   v.VoucherNumber,
		VoucherType:     v.VoucherType,
		VoucherDate:     v.VoucherDate,
		FinancialYear:   v.FinancialYear,
		Entries:         entries,
		TotalDebit:      v.TotalDebit,
		TotalCredit:     v.TotalCredit,
		ReferenceNumber: v.ReferenceNumber,
		ChequeNumber:    v.ChequeNumber,
		ChequeDate:      v.ChequeDate,
		Narration:       v.Narration,
		IsPosted:        v.IsPosted,
		IsReconciled:    v.IsReconciled,
		CreatedAt:       v.CreatedAt,
		CreatedBy:       v.CreatedBy,
		LastUpdatedAt:   v.LastUpdatedAt,
		LastUpdatedBy:   v.LastUpdatedBy,
	}
}

// ToListVoucherResponse converts a slice of vouchers.
func ToListVoucherResponse(vouchers []domain.Voucher) []VoucherResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		res[i] = ToVoucherResponse(&vouchers[i])
	}
	return res
}
