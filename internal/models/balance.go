package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AbsenceBalance represents a row of the absence_balances table.
type AbsenceBalance struct {
	BalanceID string          `json:"balanceID"`
	UserID    string          `json:"userID"`
	Type      string          `json:"type"`
	Year      int             `json:"year"`
	Allocated decimal.Decimal `json:"allocated"`
	CarryOver decimal.Decimal `json:"carryOver"`
	Spent     decimal.Decimal `json:"spent"`
	AuditFields
}

// BalanceMovement represents a row of the balance_movements table.
type BalanceMovement struct {
	MovementID string          `json:"movementID"`
	BalanceID  string          `json:"balanceID"`
	Timestamp  time.Time       `json:"timestamp"`
	Delta      decimal.Decimal `json:"delta"`
	Reason     string          `json:"reason"`
	Reference  *string         `json:"reference"`
	CreatedBy  string          `json:"createdBy"`
}
