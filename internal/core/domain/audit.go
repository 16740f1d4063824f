package domain

import "time"

// AuditAction names an append-only audit-log event.
type AuditAction string

const (
	ActionEventRecorded         AuditAction = "EVENT_RECORDED"
	ActionManualRequestCreated  AuditAction = "MANUAL_REQUEST_CREATED"
	ActionManualRequestApproved AuditAction = "MANUAL_REQUEST_APPROVED"
	ActionManualRequestRejected AuditAction = "MANUAL_REQUEST_REJECTED"
	ActionAbsenceCreated        AuditAction = "ABSENCE_CREATED"
	ActionAbsenceUpdated        AuditAction = "ABSENCE_UPDATED"
	ActionAbsenceApproved       AuditAction = "ABSENCE_APPROVED"
	ActionAbsenceRejected       AuditAction = "ABSENCE_REJECTED"
	ActionBalanceAdjusted       AuditAction = "BALANCE_ADJUSTED"
	ActionBalanceAllocated      AuditAction = "BALANCE_ALLOCATED"
	ActionBalanceReversed       AuditAction = "BALANCE_REVERSED"
	ActionUserCreated           AuditAction = "USER_CREATED"
	ActionUserUpdated           AuditAction = "USER_UPDATED"
)

// AuditLog is one append-only audit trail entry. Writing it is fire-and-forget
// for the engine: a failed audit write never fails the operation it describes.
type AuditLog struct {
	LogID     string      `json:"logID"`
	UserID    *string     `json:"userID,omitempty"` // subject user, when applicable
	Action    AuditAction `json:"action"`
	Detail    string      `json:"detail"`
	Reason    *string     `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
