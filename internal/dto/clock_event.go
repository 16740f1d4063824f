package dto

import (
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// RecordClockEventRequest defines the data needed to punch in or out.
// Timestamp is optional; when omitted the server clock is used.
type RecordClockEventRequest struct {
	Kind      domain.ClockEventKind `json:"kind" binding:"required,oneof=ENTRY EXIT"`
	Timestamp *time.Time            `json:"timestamp"`
}

// ClockEventResponse defines the data returned for a clock event.
type ClockEventResponse struct {
	EventID         string                    `json:"eventID"`
	UserID          string                    `json:"userID"`
	Kind            domain.ClockEventKind     `json:"kind"`
	Timestamp       time.Time                 `json:"timestamp"`
	IsManual        bool                      `json:"isManual"`
	Validity        domain.ClockEventValidity `json:"validity"`
	SourceRequestID *string                   `json:"sourceRequestID,omitempty"`
	Reason          *string                   `json:"reason,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
}

// ListClockEventsParams defines query parameters for listing clock events.
type ListClockEventsParams struct {
	PaginationParams
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListClockEventsResponse wraps a page of clock events.
type ListClockEventsResponse struct {
	Events    []ClockEventResponse `json:"events"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToClockEventResponse converts a domain.ClockEvent to ClockEventResponse DTO.
func ToClockEventResponse(e *domain.ClockEvent) ClockEventResponse {
	return ClockEventResponse{
		EventID:         e.EventID,
		UserID:          e.UserID,
		Kind:            e.Kind,
		Timestamp:       e.Timestamp,
		IsManual:        e.IsManual,
		Validity:        e.Validity,
		SourceRequestID: e.SourceRequestID,
		Reason:          e.Reason,
		CreatedAt:       e.CreatedAt,
	}
}

// ToListClockEventsResponse converts a slice of domain.ClockEvent to DTO.
func ToListClockEventsResponse(events []domain.ClockEvent, nextToken *string) ListClockEventsResponse {
	responses := make([]ClockEventResponse, len(events))
	for i, e := range events {
		responses[i] = ToClockEventResponse(&e)
	}
	return ListClockEventsResponse{Events: responses, NextToken: nextToken}
}
