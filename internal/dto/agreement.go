package dto

import (
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AbsenceRuleRequest defines one absence-type rule of an agreement.
type AbsenceRuleRequest struct {
	Type                 domain.AbsenceType `json:"type" binding:"required,oneof=VACATION MEDICAL_LEAVE PERSONAL_DAY MEDICAL_APPOINTMENT OTHER"`
	AnnualDays           decimal.Decimal    `json:"annualDays" binding:"required"`
	DayCounting          domain.DayCounting `json:"dayCounting" binding:"required,oneof=CALENDAR WORKING"`
	AllowsHalfDay        bool               `json:"allowsHalfDay"`
	Accrual              domain.Accrual     `json:"accrual" binding:"omitempty,oneof=ANNUAL MONTHLY"`
	MaxCarryOver         *decimal.Decimal   `json:"maxCarryOver"`
	CarryOverExpiryMonth *int               `json:"carryOverExpiryMonth" binding:"omitempty,min=1,max=12"`
}

// CreateAgreementRequest defines the data needed to create a labor agreement
// with its rules.
type CreateAgreementRequest struct {
	Name  string               `json:"name" binding:"required"`
	Rules []AbsenceRuleRequest `json:"rules" binding:"required,min=1,dive"`
}

// AssignAgreementRequest links a user to an agreement from a given date.
type AssignAgreementRequest struct {
	UserID        string  `json:"userID" binding:"required"`
	AgreementID   string  `json:"agreementID" binding:"required"`
	EffectiveFrom string  `json:"effectiveFrom" binding:"required,datetime=2006-01-02"`
	EffectiveTo   *string `json:"effectiveTo" binding:"omitempty,datetime=2006-01-02"`
}

// AgreementResponse defines the data returned for an agreement.
type AgreementResponse struct {
	AgreementID string               `json:"agreementID"`
	Name        string               `json:"name"`
	Rules       []AbsenceRuleRequest `json:"rules,omitempty"`
}

// ToAgreementResponse converts a domain.Agreement and its rules to DTO.
func ToAgreementResponse(a *domain.Agreement, rules []domain.AbsenceRule) AgreementResponse {
	resp := AgreementResponse{AgreementID: a.AgreementID, Name: a.Name}
	for _, r := range rules {
		resp.Rules = append(resp.Rules, AbsenceRuleRequest{
			Type:                 r.Type,
			AnnualDays:           r.AnnualDays,
			DayCounting:          r.DayCounting,
			AllowsHalfDay:        r.AllowsHalfDay,
			Accrual:              r.Accrual,
			MaxCarryOver:         r.MaxCarryOver,
			CarryOverExpiryMonth: r.CarryOverExpiryMonth,
		})
	}
	return resp
}
