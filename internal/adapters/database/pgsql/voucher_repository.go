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

type PgxVoucherRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxVoucherRepository creates a new repository for voucher and entry data.
func newPgxVoucherRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const voucherColumns = `voucher_id, voucher_number, voucher_type, voucher_date, financial_year, total_debit, total_credit, reference_number, cheque_number, cheque_date, narration, is_posted, is_reconciled, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, voucher_id, account_id, account_code, account_name, debit, credit, narration, line_no`

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(
		&v.VoucherID, &v.VoucherNumber, &v.VoucherType, &v.VoucherDate, &v.FinancialYear,
		&v.TotalDebit, &v.TotalCredit, &v.ReferenceNumber, &v.ChequeNumber, &v.ChequeDate,
		&v.Narration, &v.IsPosted, &v.IsReconciled,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// nextVoucherNumber derives the next number for (type, financialYear) inside
// tx. The unique index on voucher_number turns a lost race into a 23505 at
// insert time rather than a silent duplicate.
func (r *PgxVoucherRepository) nextVoucherNumber(ctx context.Context, tx pgx.Tx, voucherType domain.VoucherType, financialYear string) (string, error) {
	// Ordered by the parsed sequence, not the raw string: past 9999 the
	// four-digit padding overflows and lexicographic MAX would repeat numbers.
	var last string
	query := `
		SELECT voucher_number FROM vouchers
		WHERE voucher_type = $1 AND financial_year = $2
		ORDER BY split_part(voucher_number, '/', 3)::int DESC
		LIMIT 1;
	`
	err := tx.QueryRow(ctx, query, voucherType, financialYear).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to read last voucher number: %w", err)
	}
	seq, err := domain.SequenceFromVoucherNumber(last)
	if err != nil {
		return "", err
	}
	return domain.FormatVoucherNumber(voucherType, financialYear, seq+1), nil
}

func insertEntries(ctx context.Context, tx pgx.Tx, entries []domain.VoucherEntry) error {
	query := `
		INSERT INTO voucher_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.EntryID, e.VoucherID, e.AccountID, e.AccountCode, e.AccountName, e.Debit, e.Credit, e.Narration, e.LineNo)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert voucher entry: %w", err)
		}
	}
	return nil
}

// SaveVoucher assigns the next voucher number, inserts the voucher with its
// entries, and applies the balance deltas, all in one transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher *domain.Voucher, balanceDeltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.nextVoucherNumber(ctx, tx, voucher.VoucherType, voucher.FinancialYear)
	if err != nil {
		return err
	}
	voucher.VoucherNumber = number

	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		voucher.VoucherID, voucher.VoucherNumber, voucher.VoucherType, voucher.VoucherDate, voucher.FinancialYear,
		voucher.TotalDebit, voucher.TotalCredit, voucher.ReferenceNumber, voucher.ChequeNumber, voucher.ChequeDate,
		voucher.Narration, voucher.IsPosted, voucher.IsReconciled,
		voucher.CreatedAt, voucher.CreatedBy, voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("voucher number %s taken: %w", voucher.VoucherNumber, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to insert voucher %s: %w", voucher.VoucherID, err)
	}

	if err := insertEntries(ctx, tx, voucher.Entries); err != nil {
		return err
	}

	accountIDs := make([]string, 0, len(balanceDeltas))
	for id := range balanceDeltas {
		accountIDs = append(accountIDs, id)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, balanceDeltas, voucher.CreatedBy, voucher.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReplaceVoucher rewrites the voucher header and entry set. The stored entries
// are reversed out of account balances first, then the new entries applied, as
// two discrete passes.
func (r *PgxVoucherRepository) ReplaceVoucher(ctx context.Context, voucher domain.Voucher, reverseDeltas, applyDeltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE vouchers
		SET voucher_date = $2, financial_year = $3, total_debit = $4, total_credit = $5,
		    reference_number = $6, cheque_number = $7, cheque_date = $8, narration = $9,
		    is_posted = $10, is_reconciled = $11, last_updated_at = $12, last_updated_by = $13
		WHERE voucher_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		voucher.VoucherID, voucher.VoucherDate, voucher.FinancialYear, voucher.TotalDebit, voucher.TotalCredit,
		voucher.ReferenceNumber, voucher.ChequeNumber, voucher.ChequeDate, voucher.Narration,
		voucher.IsPosted, voucher.IsReconciled, voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update voucher %s: %w", voucher.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s: %w", voucher.VoucherID, apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM voucher_entries WHERE voucher_id = $1;`, voucher.VoucherID); err != nil {
		return fmt.Errorf("failed to delete entries of voucher %s: %w", voucher.VoucherID, err)
	}
	if err := insertEntries(ctx, tx, voucher.Entries); err != nil {
		return err
	}

	touched := make(map[string]struct{}, len(reverseDeltas)+len(applyDeltas))
	for id := range reverseDeltas {
		touched[id] = struct{}{}
	}
	for id := range applyDeltas {
		touched[id] = struct{}{}
	}
	accountIDs := make([]string, 0, len(touched))
	for id := range touched {
		accountIDs = append(accountIDs, id)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, reverseDeltas, voucher.LastUpdatedBy, voucher.LastUpdatedAt); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, applyDeltas, voucher.LastUpdatedBy, voucher.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteVoucher reverses the voucher's balance effects and removes it with its
// entries.
func (r *PgxVoucherRepository) DeleteVoucher(ctx context.Context, voucherID string, reverseDeltas map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(reverseDeltas))
	for id := range reverseDeltas {
		accountIDs = append(accountIDs, id)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, reverseDeltas, userID, now); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM voucher_entries WHERE voucher_id = $1;`, voucherID); err != nil {
		return fmt.Errorf("failed to delete entries of voucher %s: %w", voucherID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM vouchers WHERE voucher_id = $1;`, voucherID)
	if err != nil {
		return fmt.Errorf("failed to delete voucher %s: %w", voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s: %w", voucherID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

// FindVoucherByID retrieves a voucher with its entries.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`
	voucher, err := scanVoucher(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("voucher %s: %w", voucherID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}

	entries, err := loadEntriesByVoucher(ctx, r.Pool, []string{voucherID})
	if err != nil {
		return nil, err
	}
	voucher.Entries = entries[voucherID]
	return voucher, nil
}

// ListVouchers retrieves vouchers with entries matching the filter, sorted by
// (voucher_date, voucher_number).
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter) ([]domain.Voucher, error) {
	query := `SELECT DISTINCT v.voucher_id, v.voucher_number, v.voucher_type, v.voucher_date, v.financial_year, v.total_debit, v.total_credit, v.reference_number, v.cheque_number, v.cheque_date, v.narration, v.is_posted, v.is_reconciled, v.created_at, v.created_by, v.last_updated_at, v.last_updated_by FROM vouchers v`
	args := []interface{}{}
	argPos := 1

	if filter.AccountID != "" {
		query += " JOIN voucher_entries e ON e.voucher_id = v.voucher_id"
	}
	query += " WHERE 1=1"
	if filter.AccountID != "" {
		query += fmt.Sprintf(" AND e.account_id = $%d", argPos)
		args = append(args, filter.AccountID)
		argPos++
	}
	if filter.VoucherType != "" {
		query += fmt.Sprintf(" AND v.voucher_type = $%d", argPos)
		args = append(args, filter.VoucherType)
		argPos++
	}
	if filter.FinancialYear != "" {
		query += fmt.Sprintf(" AND v.financial_year = $%d", argPos)
		args = append(args, filter.FinancialYear)
		argPos++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND v.voucher_date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND v.voucher_date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}

	query += " ORDER BY v.voucher_date, v.voucher_number"
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
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	var ids []string
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, *voucher)
		ids = append(ids, voucher.VoucherID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	entriesByVoucher, err := loadEntriesByVoucher(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range vouchers {
		vouchers[i].Entries = entriesByVoucher[vouchers[i].VoucherID]
	}
	return vouchers, nil
}

// loadEntriesByVoucher loads entries for a set of vouchers, keyed by voucher
// ID and ordered by line number.
func loadEntriesByVoucher(ctx context.Context, pool *pgxpool.Pool, voucherIDs []string) (map[string][]domain.VoucherEntry, error) {
	out := make(map[string][]domain.VoucherEntry, len(voucherIDs))
	if len(voucherIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + entryColumns + ` FROM voucher_entries WHERE voucher_id = ANY($1) ORDER BY voucher_id, line_no;`
	rows, err := pool.Query(ctx, query, voucherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query voucher entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.VoucherEntry
		if err := rows.Scan(&e.EntryID, &e.VoucherID, &e.AccountID, &e.AccountCode, &e.AccountName, &e.Debit, &e.Credit, &e.Narration, &e.LineNo); err != nil {
			return nil, fmt.Errorf("failed to scan voucher entry: %w", err)
		}
		out[e.VoucherID] = append(out[e.VoucherID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher entries: %w", err)
	}
	return out, nil
}
