package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

var (
	ErrChangeNotReviewable = fmt.Errorf("change has already been reviewed: %w", apperrors.ErrConflict)
	ErrOwnChangeReview     = fmt.Errorf("requester cannot review their own change: %w", apperrors.ErrForbidden)
	ErrBadChangeData       = fmt.Errorf("change data is not valid JSON: %w", apperrors.ErrValidation)
)

// pendingChangeService runs the approval workflow. Changes are queued as
// opaque JSON payloads; approval records the verdict but applying the payload
// to the target document stays with the caller.
type pendingChangeService struct {
	changeRepo portsrepo.PendingChangeRepository
}

// NewPendingChangeService creates a new PendingChangeService.
func NewPendingChangeService(changeRepo portsrepo.PendingChangeRepository) portssvc.PendingChangeSvcFacade {
	return &pendingChangeService{changeRepo: changeRepo}
}

var _ portssvc.PendingChangeSvcFacade = (*pendingChangeService)(nil)

// SubmitChange queues a proposed mutation for review.
func (s *pendingChangeService) SubmitChange(ctx context.Context, req dto.SubmitChangeRequest, requesterID string) (*domain.PendingChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !json.Valid(req.ChangeData) {
		return nil, ErrBadChangeData
	}

	change := domain.PendingChange{
		ChangeID:         uuid.NewString(),
		ChangeType:       req.ChangeType,
		Status:           domain.ChangePending,
		RequestedBy:      requesterID,
		RequesterRole:    req.RequesterRole,
		RequestedAt:      time.Now(),
		ChangeData:       req.ChangeData,
		TargetCollection: req.TargetCollection,
		TargetDocumentID: req.TargetDocumentID,
	}

	if err := s.changeRepo.SavePendingChange(ctx, change); err != nil {
		logger.Error("Failed to save pending change", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save pending change: %w", err)
	}

	logger.Info("Change submitted for review",
		slog.String("change_id", change.ChangeID),
		slog.String("change_type", change.ChangeType),
		slog.String("target", change.TargetCollection))
	return &change, nil
}

// GetChangeByID retrieves one pending change.
func (s *pendingChangeService) GetChangeByID(ctx context.Context, changeID string) (*domain.PendingChange, error) {
	return s.changeRepo.FindPendingChangeByID(ctx, changeID)
}

// ListChanges returns changes filtered by status, newest first. An empty
// status returns all.
func (s *pendingChangeService) ListChanges(ctx context.Context, status domain.ChangeStatus, limit, offset int) ([]domain.PendingChange, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.changeRepo.ListPendingChanges(ctx, status, limit, offset)
}

// ReviewChange records the reviewer's verdict. Only pending changes can be
// reviewed, and not by the user who requested them.
func (s *pendingChangeService) ReviewChange(ctx context.Context, changeID string, req dto.ReviewChangeRequest, reviewerID string) (*domain.PendingChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	change, err := s.changeRepo.FindPendingChangeByID(ctx, changeID)
	if err != nil {
		return nil, err
	}
	if !change.Reviewable() {
		return nil, ErrChangeNotReviewable
	}
	if change.RequestedBy == reviewerID {
		return nil, ErrOwnChangeReview
	}

	status := domain.ChangeApproved
	if req.Action == "reject" {
		status = domain.ChangeRejected
	}

	now := time.Now()
	if err := s.changeRepo.ReviewPendingChange(ctx, changeID, status, reviewerID, req.Comments, now); err != nil {
		logger.Error("Failed to review pending change", slog.String("error", err.Error()), slog.String("change_id", changeID))
		return nil, err
	}

	change.Status = status
	change.ReviewedBy = reviewerID
	change.ReviewedAt = &now
	change.ReviewComments = req.Comments

	logger.Info("Change reviewed",
		slog.String("change_id", changeID),
		slog.String("status", string(status)),
		slog.String("reviewer", reviewerID))
	return change, nil
}
