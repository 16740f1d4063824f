package dto

import (
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// CreateManualRequestRequest defines the data needed to ask for a manual
// clock correction.
type CreateManualRequestRequest struct {
	Kind        domain.ClockEventKind `json:"kind" binding:"required,oneof=ENTRY EXIT"`
	RequestedAt time.Time             `json:"requestedAt" binding:"required"`
	Reason      string                `json:"reason" binding:"required,min=5"`
}

// ResolveManualRequestRequest defines the approver's decision.
type ResolveManualRequestRequest struct {
	Approve         bool    `json:"approve"`
	RejectionReason *string `json:"rejectionReason" binding:"required_if=Approve false"`
}

// ManualRequestResponse defines the data returned for a manual request.
type ManualRequestResponse struct {
	RequestID       string                     `json:"requestID"`
	UserID          string                     `json:"userID"`
	Kind            domain.ClockEventKind      `json:"kind"`
	RequestedAt     time.Time                  `json:"requestedAt"`
	Reason          string                     `json:"reason"`
	Status          domain.ManualRequestStatus `json:"status"`
	ResolvedBy      *string                    `json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time                 `json:"resolvedAt,omitempty"`
	RejectionReason *string                    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// ListManualRequestsParams defines query parameters for listing manual
// requests.
type ListManualRequestsParams struct {
	PaginationParams
	Status *domain.ManualRequestStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	UserID string                      `form:"userID"`
}

// ListManualRequestsResponse wraps a page of manual requests.
type ListManualRequestsResponse struct {
	Requests  []ManualRequestResponse `json:"requests"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToManualRequestResponse converts a domain.ManualClockRequest to DTO.
func ToManualRequestResponse(r *domain.ManualClockRequest) ManualRequestResponse {
	return ManualRequestResponse{
		RequestID:       r.RequestID,
		UserID:          r.UserID,
		Kind:            r.Kind,
		RequestedAt:     r.RequestedAt,
		Reason:          r.Reason,
		Status:          r.Status,
		ResolvedBy:      r.ResolvedBy,
		ResolvedAt:      r.ResolvedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
}

// ToListManualRequestsResponse converts a slice of domain.ManualClockRequest
// to DTO.
func ToListManualRequestsResponse(requests []domain.ManualClockRequest, nextToken *string) ListManualRequestsResponse {
	responses := make([]ManualRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = ToManualRequestResponse(&r)
	}
	return ListManualRequestsResponse{Requests: responses, NextToken: nextToken}
}
