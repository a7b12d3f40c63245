package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
)

const pgUniqueViolation = "23505"

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, account_code, account_name, account_group, account_type, parent_group, unit_id, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID, &a.AccountCode, &a.AccountName, &a.AccountGroup, &a.AccountType,
		&a.ParentGroup, &a.UnitID, &a.OpeningBalance, &a.Balance, &a.IsActive,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.AccountCode, account.AccountName, account.AccountGroup, account.AccountType,
		account.ParentGroup, account.UnitID, account.OpeningBalance, account.Balance, account.IsActive,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.AccountCode)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountByCode retrieves an account by its human-assigned code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account code %s: %w", accountCode, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", accountCode, err)
	}
	return account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts matching the filter, sorted by account code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (account_code ILIKE $%d OR account_name ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	if filter.AccountGroup != "" {
		query += fmt.Sprintf(" AND account_group = $%d", argPos)
		args = append(args, filter.AccountGroup)
		argPos++
	}
	if filter.AccountType != "" {
		query += fmt.Sprintf(" AND account_type = $%d", argPos)
		args = append(args, filter.AccountType)
		argPos++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}
	if filter.UnitID != "" {
		query += fmt.Sprintf(" AND unit_id = $%d", argPos)
		args = append(args, filter.UnitID)
		argPos++
	}

	query += " ORDER BY account_code"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// ListAccountsByType retrieves all active accounts of a given account type.
func (r *PgxAccountRepository) ListAccountsByType(ctx context.Context, accountType string) ([]domain.Account, error) {
	active := true
	return r.ListAccounts(ctx, portsrepo.ListAccountsFilter{AccountType: accountType, IsActive: &active})
}

// UpdateAccount updates an existing account's details and balance.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET account_code = $2, account_name = $3, account_group = $4, account_type = $5,
		    parent_group = $6, unit_id = $7, opening_balance = $8, balance = $9,
		    is_active = $10, last_updated_at = $11, last_updated_by = $12
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.AccountCode, account.AccountName, account.AccountGroup, account.AccountType,
		account.ParentGroup, account.UnitID, account.OpeningBalance, account.Balance,
		account.IsActive, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.AccountCode)
		}
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrNotFound)
	}
	return nil
}

// SetAccountActive flips the soft-delete flag.
func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, active, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set account %s active=%t: %w", accountID, active, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks their rows within tx.
// Rows are locked in account_id order so concurrent postings touching
// overlapping account sets cannot deadlock.
// Returns ErrNotFound if any requested account is missing.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked accounts: %w", err)
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return accounts, nil
}

// ApplyBalanceDeltasInTx adds each signed delta to its account's stored
// balance within tx. Callers must have locked the rows first.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range deltas {
		batch.Queue(query, accountID, delta, now, userID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range deltas {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to apply balance delta: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("balance update matched no account: %w", apperrors.ErrNotFound)
		}
	}
	return nil
}
