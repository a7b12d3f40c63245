package dto

import (
	"encoding/json"
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// SubmitChangeRequest defines the data for queuing a change for approval.
type SubmitChangeRequest struct {
	ChangeType       string          `json:"changeType" binding:"required"`
	RequesterRole    string          `json:"requesterRole"`
	ChangeData       json.RawMessage `json:"changeData" binding:"required"`
	TargetCollection string          `json:"targetCollection" binding:"required"`
	TargetDocumentID string          `json:"targetDocumentID"`
}

// ReviewChangeRequest defines the reviewer's verdict on a pending change.
type ReviewChangeRequest struct {
	Action   string `json:"action" binding:"required,oneof=approve reject"`
	Comments string `json:"comments"`
}

// PendingChangeResponse is a pending change as returned to clients.
type PendingChangeResponse struct {
	ChangeID         string              `json:"changeID"`
	ChangeType       string              `json:"changeType"`
	Status           domain.ChangeStatus `json:"status"`
	RequestedBy      string              `json:"requestedBy"`
	RequesterRole    string              `json:"requesterRole,omitempty"`
	RequestedAt      time.Time           `json:"requestedAt"`
	ReviewedBy       string              `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time          `json:"reviewedAt,omitempty"`
	ReviewComments   string              `json:"reviewComments,omitempty"`
	ChangeData       json.RawMessage     `json:"changeData"`
	TargetCollection string              `json:"targetCollection"`
	TargetDocumentID string              `json:"targetDocumentID,omitempty"`
}

// ToPendingChangeResponse converts a domain.PendingChange.
func ToPendingChangeResponse(p *domain.PendingChange) PendingChangeResponse {
	return PendingChangeResponse{
		ChangeID:         p.ChangeID,
		ChangeType:       p.ChangeType,
		Status:           p.Status,
		RequestedBy:      p.RequestedBy,
		RequesterRole:    p.RequesterRole,
		RequestedAt:      p.RequestedAt,
		ReviewedBy:       p.ReviewedBy,
		ReviewedAt:       p.ReviewedAt,
		ReviewComments:   p.ReviewComments,
		ChangeData:       p.ChangeData,
		TargetCollection: p.TargetCollection,
		TargetDocumentID: p.TargetDocumentID,
	}
}

// ToListPendingChangeResponse converts a slice of pending changes.
func ToListPendingChangeResponse(changes []domain.PendingChange) []PendingChangeResponse {
	res := make([]PendingChangeResponse, len(changes))
	for i := range changes {
		res[i] = ToPendingChangeResponse(&changes[i])
	}
	return res
}

// ListPendingChangesParams defines query parameters for listing changes.
type ListPendingChangesParams struct {
	Status string `form:"status"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}
