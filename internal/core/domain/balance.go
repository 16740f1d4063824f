package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
)

// AbsenceBalance is the per user/type/year pool of consumable absence days.
// Rows are created lazily with zero values on first need.
type AbsenceBalance struct {
	BalanceID string          `json:"balanceID"`
	UserID    string          `json:"userID"`
	Type      AbsenceType     `json:"type"`
	Year      int             `json:"year"`
	Allocated decimal.Decimal `json:"allocated"`
	CarryOver decimal.Decimal `json:"carryOver"`
	Spent     decimal.Decimal `json:"spent"`
	AuditFields
}

// Available returns allocated + carry_over - spent. It must never go negative
// after a committed operation.
func (b AbsenceBalance) Available() decimal.Decimal {
	return b.Allocated.Add(b.CarryOver).Sub(b.Spent)
}

// CheckAdjustment validates an ADJUSTMENT delta against the row. The delta
// lands in Allocated, which may never drop below zero; independently,
// availability may never go negative.
func (b AbsenceBalance) CheckAdjustment(delta decimal.Decimal) error {
	if b.Allocated.Add(delta).IsNegative() {
		return fmt.Errorf("%w: allocated %s, delta %s", apperrors.ErrInvalidAdjustment, b.Allocated.String(), delta.String())
	}
	if b.Available().Add(delta).IsNegative() {
		return fmt.Errorf("%w: %s available, %s delta", apperrors.ErrWouldGoNegative, b.Available().String(), delta.String())
	}
	return nil
}

// MovementReason classifies a ledger movement. Only APPROVAL and REVERSAL
// movements mutate Spent; ALLOCATION, CARRY_OVER and ADJUSTMENT mutate
// Allocated or CarryOver. This separation keeps Spent reconstructable as
// -(sum of APPROVAL deltas + sum of REVERSAL deltas).
type MovementReason string

const (
	MovementAllocation MovementReason = "ALLOCATION"
	MovementApproval   MovementReason = "APPROVAL"
	MovementReversal   MovementReason = "REVERSAL"
	MovementAdjustment MovementReason = "ADJUSTMENT"
	MovementCarryOver  MovementReason = "CARRY_OVER"
)

// MutatesSpent reports whether the reason debits or credits the Spent total.
func (r MovementReason) MutatesSpent() bool {
	return r == MovementApproval || r == MovementReversal
}

// BalanceMovement is one append-only ledger entry against a balance. Deltas
// are in days; an APPROVAL debit carries a negative delta, a REVERSAL credit a
// positive one.
type BalanceMovement struct {
	MovementID string          `json:"movementID"`
	BalanceID  string          `json:"balanceID"`
	Timestamp  time.Time       `json:"timestamp"`
	Delta      decimal.Decimal `json:"delta"`
	Reason     MovementReason  `json:"reason"`
	Reference  *string         `json:"reference,omitempty"` // e.g. "absence:<id>" or an adjustment comment
	CreatedBy  string          `json:"createdBy"`
}
