package models

import "time"

// ClockEvent represents a row of the clock_events table.
type ClockEvent struct {
	EventID         string    `json:"eventID"`
	UserID          string    `json:"userID"`
	Kind            string    `json:"kind"`
	Timestamp       time.Time `json:"timestamp"`
	IsManual        bool      `json:"isManual"`
	Validity        string    `json:"validity"`
	SourceRequestID *string   `json:"sourceRequestID"`
	ContentHash     string    `json:"contentHash"`
	Reason          *string   `json:"reason"`
	AuditFields
}

// ManualClockRequest represents a row of the manual_clock_requests table.
type ManualClockRequest struct {
	RequestID       string     `json:"requestID"`
	UserID          string     `json:"userID"`
	Kind            string     `json:"kind"`
	RequestedAt     time.Time  `json:"requestedAt"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ResolvedBy      *string    `json:"resolvedBy"`
	ResolvedAt      *time.Time `json:"resolvedAt"`
	RejectionReason *string    `json:"rejectionReason"`
	OriginIP        *string    `json:"originIP"`
	AuditFields
}
