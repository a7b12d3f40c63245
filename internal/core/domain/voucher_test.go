package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks/books_backend/internal/core/domain"
)

func TestVoucherTypePrefix(t *testing.T) {
	assert.Equal(t, "PAY", domain.VoucherPayment.Prefix())
	assert.Equal(t, "REC", domain.VoucherReceipt.Prefix())
	assert.Equal(t, "JNL", domain.VoucherJournal.Prefix())
	assert.Equal(t, "CNT", domain.VoucherContra.Prefix())
	assert.Equal(t, "SAL", domain.VoucherSales.Prefix())
	assert.Equal(t, "PUR", domain.VoucherPurchase.Prefix())
	assert.Equal(t, "DBN", domain.VoucherDebitNote.Prefix())
	assert.Equal(t, "CRN", domain.VoucherCreditNote.Prefix())
	assert.Equal(t, "VOC", domain.VoucherType("Unknown").Prefix())
}

func TestBalanced(t *testing.T) {
	assert.True(t, domain.Balanced(d("100"), d("100")))
	assert.True(t, domain.Balanced(d("100.00"), d("100.01")))
	assert.True(t, domain.Balanced(d("100.01"), d("100.00")))
	assert.False(t, domain.Balanced(d("100.00"), d("100.02")))
	assert.False(t, domain.Balanced(d("100"), d("50")))
}

func TestTotals(t *testing.T) {
	entries := []domain.VoucherEntry{
		{Debit: d("100"), Credit: decimal.Zero},
		{Debit: d("25.50"), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: d("125.50")},
	}
	debit, credit := domain.Totals(entries)
	assert.True(t, debit.Equal(d("125.50")))
	assert.True(t, credit.Equal(d("125.50")))
}

func TestFormatVoucherNumber(t *testing.T) {
	assert.Equal(t, "REC/2025-26/0001", domain.FormatVoucherNumber(domain.VoucherReceipt, "2025-26", 1))
	assert.Equal(t, "PAY/2024-25/0042", domain.FormatVoucherNumber(domain.VoucherPayment, "2024-25", 42))
	assert.Equal(t, "JNL/2025-26/10000", domain.FormatVoucherNumber(domain.VoucherJournal, "2025-26", 10000))
}

func TestSequenceFromVoucherNumber(t *testing.T) {
	seq, err := domain.SequenceFromVoucherNumber("REC/2025-26/0007")
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	seq, err = domain.SequenceFromVoucherNumber("")
	require.NoError(t, err)
	assert.Equal(t, 0, seq)

	// Past 9999 the padding widens to five digits; parsing must keep up.
	seq, err = domain.SequenceFromVoucherNumber("JNL/2025-26/10000")
	require.NoError(t, err)
	assert.Equal(t, 10000, seq)

	_, err = domain.SequenceFromVoucherNumber("REC-no-slash")
	assert.Error(t, err)

	_, err = domain.SequenceFromVoucherNumber("REC/2025-26/")
	assert.Error(t, err)

	_, err = domain.SequenceFromVoucherNumber("REC/2025-26/abcd")
	assert.Error(t, err)
}

func TestCounterParticulars(t *testing.T) {
	entries := []domain.VoucherEntry{
		{AccountID: "a1", AccountName: "Cash"},
		{AccountID: "a2", AccountName: "Sales"},
		{AccountID: "a3", AccountName: "GST Payable"},
	}
	assert.Equal(t, "Sales, GST Payable", domain.CounterParticulars(entries, 0))
	assert.Equal(t, "Cash, GST Payable", domain.CounterParticulars(entries, 1))

	// Repeated counter accounts collapse to one mention.
	split := []domain.VoucherEntry{
		{AccountID: "a1", AccountName: "Cash"},
		{AccountID: "a2", AccountName: "Sales"},
		{AccountID: "a2", AccountName: "Sales"},
	}
	assert.Equal(t, "Sales", domain.CounterParticulars(split, 0))

	// The same account appearing on both sides never lists itself.
	both := []domain.VoucherEntry{
		{AccountID: "a1", AccountName: "Cash"},
		{AccountID: "a1", AccountName: "Cash"},
		{AccountID: "a2", AccountName: "Sales"},
	}
	assert.Equal(t, "Sales", domain.CounterParticulars(both, 0))
}
