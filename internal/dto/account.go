package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to register a new account.
// Opening balance arrives as a non-negative magnitude plus a Dr/Cr side flag.
type CreateAccountRequest struct {
	AccountCode        string             `json:"accountCode" binding:"required"`
	AccountName        string             `json:"accountName" binding:"required"`
	AccountGroup       domain.AccountGroup `json:"accountGroup" binding:"required,oneof=ASSETS LIABILITIES INCOME EXPENSES CAPITAL"`
	AccountType        string             `json:"accountType" binding:"required"`
	ParentGroup        string             `json:"parentGroup"`
	UnitID             string             `json:"unitID"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType domain.BalanceSide `json:"openingBalanceType" binding:"omitempty,oneof=Dr Cr"`
}

// UpdateAccountRequest defines the fields allowed to change on an account.
// Pointers distinguish "not provided" from zero values.
type UpdateAccountRequest struct {
	AccountCode *string `json:"accountCode"`
	AccountName *string `json:"accountName"`
	AccountType *string `json:"accountType"`
	ParentGroup *string `json:"parentGroup"`
	UnitID      *string `json:"unitID"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse exposes an account with its balances in the legacy
// (magnitude, side) form expected by report consumers.
type AccountResponse struct {
	AccountID          string              `json:"accountID"`
	AccountCode        string              `json:"accountCode"`
	AccountName        string              `json:"accountName"`
	AccountGroup       domain.AccountGroup `json:"accountGroup"`
	AccountType        string              `json:"accountType"`
	ParentGroup        string              `json:"parentGroup,omitempty"`
	UnitID             string              `json:"unitID,omitempty"`
	OpeningBalance     decimal.Decimal     `json:"openingBalance"`
	OpeningBalanceType domain.BalanceSide  `json:"openingBalanceType"`
	CurrentBalance     decimal.Decimal     `json:"currentBalance"`
	BalanceType        domain.BalanceSide  `json:"balanceType"`
	IsActive           bool                `json:"isActive"`
	CreatedAt          time.Time           `json:"createdAt"`
	CreatedBy          string              `json:"createdBy"`
	LastUpdatedAt      time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy      string              `json:"lastUpdatedBy"`
}

// ListAccountsParams defines the query parameters for listing accounts.
type ListAccountsParams struct {
	Search       string `form:"search"`
	AccountGroup string `form:"accountGroup"`
	AccountType  string `form:"accountType"`
	IsActive     *bool  `form:"isActive"`
	UnitID       string `form:"unitID"`
	Limit        int    `form:"limit,default=50"`
	Offset       int    `form:"offset,default=0"`
}

// ToAccountResponse converts a domain.Account, projecting the internal signed
// balances onto (magnitude, side) pairs.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	openMag, openSide := domain.MagnitudeSide(acc.AccountGroup, acc.OpeningBalance)
	curMag, curSide := domain.MagnitudeSide(acc.AccountGroup, acc.Balance)
	return AccountResponse{
		AccountID:          acc.AccountID,
		AccountCode:        acc.AccountCode,
		AccountName:        acc.AccountName,
		AccountGroup:       acc.AccountGroup,
		AccountType:        acc.AccountType,
		ParentGroup:        acc.ParentGroup,
		UnitID:             acc.UnitID,
		OpeningBalance:     openMag,
		OpeningBalanceType: openSide,
		CurrentBalance:     curMag,
		BalanceType:        curSide,
		IsActive:           acc.IsActive,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
		LastUpdatedAt:      acc.LastUpdatedAt,
		LastUpdatedBy:      acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// GroupsResponse is the static account group -> allowed types hierarchy.
type GroupsResponse struct {
	Groups map[domain.AccountGroup][]string `json:"groups"`
}
