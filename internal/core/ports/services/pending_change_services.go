package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	"github.com/openbooks/books_backend/internal/dto"
)

// PendingChangeSvcFacade defines the approval-workflow operations.
type PendingChangeSvcFacade interface {
	SubmitChange(ctx context.Context, req dto.SubmitChangeRequest, requesterID string) (*domain.PendingChange, error)
	GetChangeByID(ctx context.Context, changeID string) (*domain.PendingChange, error)
	ListChanges(ctx context.Context, status domain.ChangeStatus, limit, offset int) ([]domain.PendingChange, error)
	ReviewChange(ctx context.Context, changeID string, req dto.ReviewChangeRequest, reviewerID string) (*domain.PendingChange, error)
}
