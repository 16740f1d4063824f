package models

import "time"

// AuditLog represents a row of the audit_logs table.
type AuditLog struct {
	LogID     string    `json:"logID"`
	UserID    *string   `json:"userID"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	Reason    *string   `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
