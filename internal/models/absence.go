package models

import "time"

// AbsenceRequest represents a row of the absence_requests table. Hour bounds
// are stored as "HH:MM" strings or NULL.
type AbsenceRequest struct {
	RequestID  string    `json:"requestID"`
	UserID     string    `json:"userID"`
	Type       string    `json:"type"`
	Subtype    *string   `json:"subtype"`
	DateStart  time.Time `json:"dateStart"`
	TimeStart  *string   `json:"timeStart"`
	DateEnd    time.Time `json:"dateEnd"`
	TimeEnd    *string   `json:"timeEnd"`
	Partial    bool      `json:"partial"`
	Paid       bool      `json:"paid"`
	Status     string    `json:"status"`
	Reason     *string   `json:"reason"`
	ApprovedBy *string   `json:"approvedBy"`
	AuditFields
}
