package domain

import (
	"encoding/json"
	"time"
)

// ChangeStatus is the review state of a pending change. The transition is
// one-way: PENDING -> APPROVED or PENDING -> REJECTED.
type ChangeStatus string

const (
	ChangePending  ChangeStatus = "pending"
	ChangeApproved ChangeStatus = "approved"
	ChangeRejected ChangeStatus = "rejected"
)

// PendingChange wraps a proposed mutation awaiting review. ChangeData is the
// opaque payload to apply if approved; the target fields point at the document
// the change applies to.
type PendingChange struct {
	ChangeID         string          `json:"changeID"`
	ChangeType       string          `json:"changeType"`
	Status           ChangeStatus    `json:"status"`
	RequestedBy      string          `json:"requestedBy"`
	RequesterRole    string          `json:"requesterRole"`
	RequestedAt      time.Time       `json:"requestedAt"`
	ReviewedBy       string          `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time      `json:"reviewedAt,omitempty"`
	ReviewComments   string          `json:"reviewComments,omitempty"`
	ChangeData       json.RawMessage `json:"changeData"`
	TargetCollection string          `json:"targetCollection"`
	TargetDocumentID string          `json:"targetDocumentID,omitempty"`
}

// Reviewable reports whether the change can still be approved or rejected.
func (p *PendingChange) Reviewable() bool {
	return p.Status == ChangePending
}
