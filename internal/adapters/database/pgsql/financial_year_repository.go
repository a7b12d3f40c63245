package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
)

type PgxFinancialYearRepository struct {
	BaseRepository
}

// newPgxFinancialYearRepository creates a new repository for fiscal-year data.
func newPgxFinancialYearRepository(pool *pgxpool.Pool) portsrepo.FinancialYearRepository {
	return &PgxFinancialYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialYearRepository = (*PgxFinancialYearRepository)(nil)

const financialYearColumns = `year_id, year_code, start_date, end_date, is_active, is_closed, closing_date, created_at, created_by, last_updated_at, last_updated_by`

func scanFinancialYear(row pgx.Row) (*domain.FinancialYear, error) {
	var fy domain.FinancialYear
	err := row.Scan(
		&fy.YearID, &fy.YearCode, &fy.StartDate, &fy.EndDate, &fy.IsActive, &fy.IsClosed, &fy.ClosingDate,
		&fy.CreatedAt, &fy.CreatedBy, &fy.LastUpdatedAt, &fy.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &fy, nil
}

// SaveFinancialYear inserts a new fiscal year.
func (r *PgxFinancialYearRepository) SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	query := `
		INSERT INTO financial_years (` + financialYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		fy.YearID, fy.YearCode, fy.StartDate, fy.EndDate, fy.IsActive, fy.IsClosed, fy.ClosingDate,
		fy.CreatedAt, fy.CreatedBy, fy.LastUpdatedAt, fy.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: financial year %s already exists", apperrors.ErrDuplicate, fy.YearCode)
		}
		return fmt.Errorf("failed to save financial year %s: %w", fy.YearID, err)
	}
	return nil
}

// FindFinancialYearByID retrieves a fiscal year by identifier.
func (r *PgxFinancialYearRepository) FindFinancialYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE year_id = $1;`
	fy, err := scanFinancialYear(r.Pool.QueryRow(ctx, query, yearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("financial year %s: %w", yearID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find financial year %s: %w", yearID, err)
	}
	return fy, nil
}

// FindFinancialYearByCode retrieves a fiscal year by its "YYYY-YY" code.
func (r *PgxFinancialYearRepository) FindFinancialYearByCode(ctx context.Context, yearCode string) (*domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE year_code = $1;`
	fy, err := scanFinancialYear(r.Pool.QueryRow(ctx, query, yearCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("financial year %s: %w", yearCode, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find financial year %s: %w", yearCode, err)
	}
	return fy, nil
}

// ListFinancialYears returns all years, newest first.
func (r *PgxFinancialYearRepository) ListFinancialYears(ctx context.Context) ([]domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years ORDER BY start_date DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial years: %w", err)
	}
	defer rows.Close()

	var years []domain.FinancialYear
	for rows.Next() {
		fy, err := scanFinancialYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial year: %w", err)
		}
		years = append(years, *fy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial years: %w", err)
	}
	return years, nil
}

// UpdateFinancialYear updates a fiscal year's mutable fields.
func (r *PgxFinancialYearRepository) UpdateFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	query := `
		UPDATE financial_years
		SET start_date = $2, end_date = $3, is_active = $4, is_closed = $5, closing_date = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE year_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		fy.YearID, fy.StartDate, fy.EndDate, fy.IsActive, fy.IsClosed, fy.ClosingDate,
		fy.LastUpdatedAt, fy.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update financial year %s: %w", fy.YearID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("financial year %s: %w", fy.YearID, apperrors.ErrNotFound)
	}
	return nil
}

// ActivateFinancialYear marks one year active and every other year inactive
// in a single transaction.
func (r *PgxFinancialYearRepository) ActivateFinancialYear(ctx context.Context, yearID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deactivate := `
		UPDATE financial_years
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE is_active = TRUE AND year_id <> $1;
	`
	if _, err := tx.Exec(ctx, deactivate, yearID, now, userID); err != nil {
		return fmt.Errorf("failed to deactivate financial years: %w", err)
	}

	activate := `
		UPDATE financial_years
		SET is_active = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE year_id = $1;
	`
	tag, err := tx.Exec(ctx, activate, yearID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to activate financial year %s: %w", yearID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("financial year %s: %w", yearID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

// CloseFinancialYear marks the year closed. The update is conditional on the
// year being open; a repeat close returns ErrConflict.
func (r *PgxFinancialYearRepository) CloseFinancialYear(ctx context.Context, yearID string, closingDate time.Time, userID string, now time.Time) error {
	query := `
		UPDATE financial_years
		SET is_closed = TRUE, is_active = FALSE, closing_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE year_id = $1 AND is_closed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, yearID, closingDate, now, userID)
	if err != nil {
		return fmt.Errorf("failed to close financial year %s: %w", yearID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindFinancialYearByID(ctx, yearID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("financial year %s already closed: %w", yearID, apperrors.ErrConflict)
	}
	return nil
}

// DeleteFinancialYear removes a fiscal year.
func (r *PgxFinancialYearRepository) DeleteFinancialYear(ctx context.Context, yearID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM financial_years WHERE year_id = $1;`, yearID)
	if err != nil {
		return fmt.Errorf("failed to delete financial year %s: %w", yearID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("financial year %s: %w", yearID, apperrors.ErrNotFound)
	}
	return nil
}
