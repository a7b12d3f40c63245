package repositories

import (
	"context"
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// PendingChangeRepository persists the approval-workflow queue.
type PendingChangeRepository interface {
	SavePendingChange(ctx context.Context, change domain.PendingChange) error
	FindPendingChangeByID(ctx context.Context, changeID string) (*domain.PendingChange, error)
	ListPendingChanges(ctx context.Context, status domain.ChangeStatus, limit, offset int) ([]domain.PendingChange, error)

	// ReviewPendingChange transitions a pending change to approved/rejected.
	// The update is conditional on status still being pending; a lost race
	// returns apperrors.ErrConflict.
	ReviewPendingChange(ctx context.Context, changeID string, status domain.ChangeStatus, reviewerID, comments string, now time.Time) error
}
