package domain

import "time"

// ManualRequestStatus is the lifecycle state of a manual clock-correction
// request. PENDING is initial; APPROVED and REJECTED are terminal.
type ManualRequestStatus string

const (
	ManualPending  ManualRequestStatus = "PENDING"
	ManualApproved ManualRequestStatus = "APPROVED"
	ManualRejected ManualRequestStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transition.
func (s ManualRequestStatus) IsTerminal() bool {
	return s == ManualApproved || s == ManualRejected
}

// ManualClockRequest is a user's request to backdate a clock event. It is
// resolved by an admin or manager exactly once.
type ManualClockRequest struct {
	RequestID       string              `json:"requestID"`
	UserID          string              `json:"userID"`
	Kind            ClockEventKind      `json:"kind"`
	RequestedAt     time.Time           `json:"requestedAt"` // the instant the user wants the event at
	Reason          string              `json:"reason"`
	Status          ManualRequestStatus `json:"status"`
	ResolvedBy      *string             `json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time          `json:"resolvedAt,omitempty"`
	RejectionReason *string             `json:"rejectionReason,omitempty"`
	OriginIP        *string             `json:"originIP,omitempty"`
	AuditFields
}
