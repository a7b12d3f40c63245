package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// ListAccountsFilter narrows an account listing.
type ListAccountsFilter struct {
	Search       string // matches code or name, case-insensitive substring
	AccountGroup domain.AccountGroup
	AccountType  string
	IsActive     *bool
	UnitID       string
	Limit        int
	Offset       int
}

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its human-assigned code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter.
	ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]domain.Account, error)

	// ListAccountsByType retrieves all active accounts of a given account type.
	ListAccountsByType(ctx context.Context, accountType string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the soft-delete flag.
	SetAccountActive(ctx context.Context, accountID string, active bool, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside voucher posting
// transactions.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows within tx.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx adds each signed delta to its account's stored
	// balance within tx.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
