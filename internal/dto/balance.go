package dto

import (
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocateBalanceRequest defines the data for granting absence days.
type AllocateBalanceRequest struct {
	UserID string             `json:"userID" binding:"required"`
	Type   domain.AbsenceType `json:"type" binding:"required,oneof=VACATION MEDICAL_LEAVE PERSONAL_DAY MEDICAL_APPOINTMENT OTHER"`
	Year   int                `json:"year" binding:"required,min=2000,max=2100"`
	Days   decimal.Decimal    `json:"days" binding:"required"`
}

// CarryOverBalanceRequest defines the data for carrying unused days into a
// new year.
type CarryOverBalanceRequest struct {
	UserID string             `json:"userID" binding:"required"`
	Type   domain.AbsenceType `json:"type" binding:"required,oneof=VACATION MEDICAL_LEAVE PERSONAL_DAY MEDICAL_APPOINTMENT OTHER"`
	Year   int                `json:"year" binding:"required,min=2000,max=2100"`
	Days   decimal.Decimal    `json:"days" binding:"required"`
}

// AdjustBalanceRequest defines a signed manual correction to a balance.
type AdjustBalanceRequest struct {
	UserID string             `json:"userID" binding:"required"`
	Type   domain.AbsenceType `json:"type" binding:"required,oneof=VACATION MEDICAL_LEAVE PERSONAL_DAY MEDICAL_APPOINTMENT OTHER"`
	Year   int                `json:"year" binding:"required,min=2000,max=2100"`
	Delta  decimal.Decimal    `json:"delta" binding:"required"`
	Reason string             `json:"reason" binding:"required,min=5"`
}

// BalanceResponse defines the data returned for a balance.
type BalanceResponse struct {
	BalanceID string             `json:"balanceID"`
	UserID    string             `json:"userID"`
	Type      domain.AbsenceType `json:"type"`
	Year      int                `json:"year"`
	Allocated decimal.Decimal    `json:"allocated"`
	CarryOver decimal.Decimal    `json:"carryOver"`
	Spent     decimal.Decimal    `json:"spent"`
	Available decimal.Decimal    `json:"available"`
}

// MovementResponse defines the data returned for a ledger movement.
type MovementResponse struct {
	MovementID string                `json:"movementID"`
	BalanceID  string                `json:"balanceID"`
	Timestamp  time.Time             `json:"timestamp"`
	Delta      decimal.Decimal       `json:"delta"`
	Reason     domain.MovementReason `json:"reason"`
	Reference  *string               `json:"reference,omitempty"`
	CreatedBy  string                `json:"createdBy"`
}

// ListMovementsResponse wraps a page of ledger movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ConsumptionPreviewResponse reports what approving an absence would cost.
type ConsumptionPreviewResponse struct {
	RequestID     string          `json:"requestID"`
	Days          decimal.Decimal `json:"days"`
	Available     decimal.Decimal `json:"available"`
	Sufficient    bool            `json:"sufficient"`
	ConsumesPool  bool            `json:"consumesPool"`
	AfterApproval decimal.Decimal `json:"afterApproval"`
}

// ToBalanceResponse converts a domain.AbsenceBalance to BalanceResponse DTO.
func ToBalanceResponse(b *domain.AbsenceBalance) BalanceResponse {
	return BalanceResponse{
		BalanceID: b.BalanceID,
		UserID:    b.UserID,
		Type:      b.Type,
		Year:      b.Year,
		Allocated: b.Allocated,
		CarryOver: b.CarryOver,
		Spent:     b.Spent,
		Available: b.Available(),
	}
}

// ToListBalancesResponse converts a slice of domain.AbsenceBalance to DTO.
func ToListBalancesResponse(balances []domain.AbsenceBalance) []BalanceResponse {
	responses := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = ToBalanceResponse(&b)
	}
	return responses
}

// ToMovementResponse converts a domain.BalanceMovement to MovementResponse DTO.
func ToMovementResponse(m *domain.BalanceMovement) MovementResponse {
	return MovementResponse{
		MovementID: m.MovementID,
		BalanceID:  m.BalanceID,
		Timestamp:  m.Timestamp,
		Delta:      m.Delta,
		Reason:     m.Reason,
		Reference:  m.Reference,
		CreatedBy:  m.CreatedBy,
	}
}

// ToListMovementsResponse converts a slice of domain.BalanceMovement to DTO.
func ToListMovementsResponse(movements []domain.BalanceMovement, nextToken *string) ListMovementsResponse {
	responses := make([]MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = ToMovementResponse(&m)
	}
	return ListMovementsResponse{Movements: responses, NextToken: nextToken}
}
