package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
)

type PgxPendingChangeRepository struct {
	BaseRepository
}

// newPgxPendingChangeRepository creates a new repository for the approval queue.
func newPgxPendingChangeRepository(pool *pgxpool.Pool) portsrepo.PendingChangeRepository {
	return &PgxPendingChangeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PendingChangeRepository = (*PgxPendingChangeRepository)(nil)

const pendingChangeColumns = `change_id, change_type, status, requested_by, requester_role, requested_at, reviewed_by, reviewed_at, review_comments, change_data, target_collection, target_document_id`

func scanPendingChange(row pgx.Row) (*domain.PendingChange, error) {
	var p domain.PendingChange
	err := row.Scan(
		&p.ChangeID, &p.ChangeType, &p.Status, &p.RequestedBy, &p.RequesterRole, &p.RequestedAt,
		&p.ReviewedBy, &p.ReviewedAt, &p.ReviewComments, &p.ChangeData, &p.TargetCollection, &p.TargetDocumentID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePendingChange inserts a new change into the queue.
func (r *PgxPendingChangeRepository) SavePendingChange(ctx context.Context, change domain.PendingChange) error {
	query := `
		INSERT INTO pending_changes (` + pendingChangeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		change.ChangeID, change.ChangeType, change.Status, change.RequestedBy, change.RequesterRole, change.RequestedAt,
		change.ReviewedBy, change.ReviewedAt, change.ReviewComments, change.ChangeData, change.TargetCollection, change.TargetDocumentID,
	)
	if err != nil {
		return fmt.Errorf("failed to save pending change %s: %w", change.ChangeID, err)
	}
	return nil
}

// FindPendingChangeByID retrieves one change.
func (r *PgxPendingChangeRepository) FindPendingChangeByID(ctx context.Context, changeID string) (*domain.PendingChange, error) {
	query := `SELECT ` + pendingChangeColumns + ` FROM pending_changes WHERE change_id = $1;`
	change, err := scanPendingChange(r.Pool.QueryRow(ctx, query, changeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pending change %s: %w", changeID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find pending change %s: %w", changeID, err)
	}
	return change, nil
}

// ListPendingChanges returns changes filtered by status, newest first. An
// empty status matches all.
func (r *PgxPendingChangeRepository) ListPendingChanges(ctx context.Context, status domain.ChangeStatus, limit, offset int) ([]domain.PendingChange, error) {
	query := `SELECT ` + pendingChangeColumns + ` FROM pending_changes`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argPos)
		args = append(args, status)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY requested_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending changes: %w", err)
	}
	defer rows.Close()

	var changes []domain.PendingChange
	for rows.Next() {
		change, err := scanPendingChange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending change: %w", err)
		}
		changes = append(changes, *change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending changes: %w", err)
	}
	return changes, nil
}

// ReviewPendingChange transitions a change out of pending. The WHERE clause
// keeps the transition one-way; losing the race returns ErrConflict.
func (r *PgxPendingChangeRepository) ReviewPendingChange(ctx context.Context, changeID string, status domain.ChangeStatus, reviewerID, comments string, now time.Time) error {
	query := `
		UPDATE pending_changes
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_comments = $5
		WHERE change_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, changeID, status, reviewerID, now, comments, domain.ChangePending)
	if err != nil {
		return fmt.Errorf("failed to review pending change %s: %w", changeID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindPendingChangeByID(ctx, changeID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("pending change %s already reviewed: %w", changeID, apperrors.ErrConflict)
	}
	return nil
}
