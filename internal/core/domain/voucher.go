package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType identifies the business class of a voucher and drives the
// voucher-number prefix.
type VoucherType string

const (
	VoucherPayment    VoucherType = "Payment"
	VoucherReceipt    VoucherType = "Receipt"
	VoucherJournal    VoucherType = "Journal"
	VoucherContra     VoucherType = "Contra"
	VoucherSales      VoucherType = "Sales"
	VoucherPurchase   VoucherType = "Purchase"
	VoucherDebitNote  VoucherType = "Debit Note"
	VoucherCreditNote VoucherType = "Credit Note"
)

var voucherPrefixes = map[VoucherType]string{
	VoucherPayment:    "PAY",
	VoucherReceipt:    "REC",
	VoucherJournal:    "JNL",
	VoucherContra:     "CNT",
	VoucherSales:      "SAL",
	VoucherPurchase:   "PUR",
	VoucherDebitNote:  "DBN",
	VoucherCreditNote: "CRN",
}

// VoucherTypes lists all recognised types.
var VoucherTypes = []VoucherType{
	VoucherPayment, VoucherReceipt, VoucherJournal, VoucherContra,
	VoucherSales, VoucherPurchase, VoucherDebitNote, VoucherCreditNote,
}

// Prefix returns the 3-letter voucher-number prefix, or "VOC" for an
// unrecognised type.
func (t VoucherType) Prefix() string {
	if p, ok := voucherPrefixes[t]; ok {
		return p
	}
	return "VOC"
}

// Valid reports whether t is a recognised voucher type.
func (t VoucherType) Valid() bool {
	_, ok := voucherPrefixes[t]
	return ok
}

// BalanceTolerance is the maximum permitted |totalDebit - totalCredit| skew,
// guarding against rounding noise in submitted amounts.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// VoucherEntry is one line of a voucher. AccountCode and AccountName are
// snapshots taken at posting time; later account renames do not rewrite history.
type VoucherEntry struct {
	EntryID     string          `json:"entryID"`
	VoucherID   string          `json:"voucherID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Narration   string          `json:"narration,omitempty"`
	LineNo      int             `json:"lineNo"`
}

// Voucher is a balanced double-entry transaction of at least two lines.
type Voucher struct {
	VoucherID       string          `json:"voucherID"`
	VoucherNumber   string          `json:"voucherNumber"`
	VoucherType     VoucherType     `json:"voucherType"`
	VoucherDate     time.Time       `json:"voucherDate"`
	FinancialYear   string          `json:"financialYear"`
	Entries         []VoucherEntry  `json:"entries,omitempty"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	ChequeNumber    string          `json:"chequeNumber,omitempty"`
	ChequeDate      *time.Time      `json:"chequeDate,omitempty"`
	Narration       string          `json:"narration,omitempty"`
	IsPosted        bool            `json:"isPosted"`
	IsReconciled    bool            `json:"isReconciled"`
	AuditFields
}

// Totals sums the debit and credit columns of entries.
func Totals(entries []VoucherEntry) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	return totalDebit, totalCredit
}

// Balanced reports whether the debit and credit totals agree within
// BalanceTolerance.
func Balanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// FormatVoucherNumber builds "{Prefix}/{FY}/{4-digit sequence}".
func FormatVoucherNumber(t VoucherType, financialYear string, sequence int) string {
	return fmt.Sprintf("%s/%s/%04d", t.Prefix(), financialYear, sequence)
}

// SequenceFromVoucherNumber parses the trailing numeric segment of a voucher
// number. Returns 0 for an empty number.
func SequenceFromVoucherNumber(voucherNumber string) (int, error) {
	if voucherNumber == "" {
		return 0, nil
	}
	idx := strings.LastIndex(voucherNumber, "/")
	if idx < 0 || idx == len(voucherNumber)-1 {
		return 0, fmt.Errorf("malformed voucher number %q", voucherNumber)
	}
	seq, err := strconv.Atoi(voucherNumber[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed voucher number %q: %w", voucherNumber, err)
	}
	return seq, nil
}

// CounterParticulars derives the "particulars" text for the leg at index i:
// the names of every other account in the voucher, joined with ", ". With more
// than two entries all counter legs are listed rather than one arbitrary pick.
func CounterParticulars(entries []VoucherEntry, i int) string {
	names := make([]string, 0, len(entries)-1)
	seen := make(map[string]struct{})
	for j, e := range entries {
		if j == i || e.AccountID == entries[i].AccountID {
			continue
		}
		if _, dup := seen[e.AccountName]; dup {
			continue
		}
		seen[e.AccountName] = struct{}{}
		names = append(names, e.AccountName)
	}
	return strings.Join(names, ", ")
}
