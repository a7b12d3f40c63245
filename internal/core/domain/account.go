package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountGroup is the top-level classification of an account. It determines which
// side (Dr/Cr) is the account's normal side and how debit/credit lines are signed.
type AccountGroup string

const (
	GroupAssets      AccountGroup = "ASSETS"
	GroupLiabilities AccountGroup = "LIABILITIES"
	GroupIncome      AccountGroup = "INCOME"
	GroupExpenses    AccountGroup = "EXPENSES"
	GroupCapital     AccountGroup = "CAPITAL"
)

// BalanceSide is the Dr/Cr flag used at the serialization boundary. Internally
// balances are a single signed decimal (positive on the group's normal side).
type BalanceSide string

const (
	Debit  BalanceSide = "Dr"
	Credit BalanceSide = "Cr"
)

// AccountGroups lists all valid groups in display order.
var AccountGroups = []AccountGroup{
	GroupAssets, GroupLiabilities, GroupIncome, GroupExpenses, GroupCapital,
}

// AccountTypesByGroup is the static hierarchy of group -> allowed account types.
var AccountTypesByGroup = map[AccountGroup][]string{
	GroupAssets:      {"Cash", "Bank Account", "Sundry Debtors", "Fixed Assets", "Current Assets", "Investments", "Loans & Advances (Asset)"},
	GroupLiabilities: {"Sundry Creditors", "Current Liabilities", "Loans (Liability)", "Duties & Taxes", "Provisions"},
	GroupIncome:      {"Direct Income", "Indirect Income", "Sales Account"},
	GroupExpenses:    {"Direct Expenses", "Indirect Expenses", "Purchase Account"},
	GroupCapital:     {"Capital Account", "Reserves & Surplus"},
}

const (
	// AccountTypeCash and AccountTypeBank are the types the cash book and bank
	// book reports key on.
	AccountTypeCash = "Cash"
	AccountTypeBank = "Bank Account"
)

// ValidAccountType reports whether accountType is allowed under group.
func ValidAccountType(group AccountGroup, accountType string) bool {
	for _, t := range AccountTypesByGroup[group] {
		if t == accountType {
			return true
		}
	}
	return false
}

// Account represents a chart-of-accounts record. Balance and OpeningBalance are
// signed decimals: positive means the balance sits on the group's normal side
// (Dr for assets/expenses, Cr for the rest), negative means it has flipped.
type Account struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountGroup   AccountGroup    `json:"accountGroup"`
	AccountType    string          `json:"accountType"`
	ParentGroup    string          `json:"parentGroup,omitempty"`
	UnitID         string          `json:"unitID,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// NormalSide returns the side a positive balance of this group sits on.
func (g AccountGroup) NormalSide() BalanceSide {
	switch g {
	case GroupAssets, GroupExpenses:
		return Debit
	default:
		return Credit
	}
}

// Valid reports whether g is a recognised account group.
func (g AccountGroup) Valid() bool {
	switch g {
	case GroupAssets, GroupLiabilities, GroupIncome, GroupExpenses, GroupCapital:
		return true
	}
	return false
}

// SignedDelta computes the signed effect of a (debit, credit) line on an account
// of group g, in the internal representation: positive moves the balance further
// onto the group's normal side.
func SignedDelta(g AccountGroup, debit, credit decimal.Decimal) decimal.Decimal {
	switch g {
	case GroupAssets, GroupExpenses:
		return debit.Sub(credit)
	default:
		return credit.Sub(debit)
	}
}

// FromMagnitudeSide converts a boundary (magnitude, side) pair into the internal
// signed balance for an account of group g.
func FromMagnitudeSide(g AccountGroup, magnitude decimal.Decimal, side BalanceSide) decimal.Decimal {
	if side == g.NormalSide() {
		return magnitude
	}
	return magnitude.Neg()
}

// MagnitudeSide converts the internal signed balance of an account of group g
// into the boundary (magnitude, side) pair. The magnitude is rounded half-up to
// two decimals; a zero balance reports the group's normal side.
func MagnitudeSide(g AccountGroup, balance decimal.Decimal) (decimal.Decimal, BalanceSide) {
	magnitude := balance.Abs().Round(2)
	side := g.NormalSide()
	if balance.Sign() < 0 {
		if side == Debit {
			side = Credit
		} else {
			side = Debit
		}
	}
	return magnitude, side
}

// BalanceSideOf returns the side the account's current balance sits on.
func (a *Account) BalanceSideOf() BalanceSide {
	_, side := MagnitudeSide(a.AccountGroup, a.Balance)
	return side
}

// ApplyEntry returns the account balance after applying a (debit, credit) line.
func (a *Account) ApplyEntry(debit, credit decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(SignedDelta(a.AccountGroup, debit, credit))
}

func (g AccountGroup) String() string { return string(g) }

// ParseAccountGroup validates and normalises a group string.
func ParseAccountGroup(s string) (AccountGroup, error) {
	g := AccountGroup(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown account group %q", s)
	}
	return g, nil
}
