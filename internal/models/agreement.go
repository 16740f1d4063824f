package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agreement represents a row of the agreements table.
type Agreement struct {
	AgreementID string `json:"agreementID"`
	Name        string `json:"name"`
	AuditFields
}

// AbsenceRule represents a row of the absence_rules table.
type AbsenceRule struct {
	RuleID               string           `json:"ruleID"`
	AgreementID          string           `json:"agreementID"`
	Type                 string           `json:"type"`
	AnnualDays           decimal.Decimal  `json:"annualDays"`
	DayCounting          string           `json:"dayCounting"`
	AllowsHalfDay        bool             `json:"allowsHalfDay"`
	Accrual              string           `json:"accrual"`
	MaxCarryOver         *decimal.Decimal `json:"maxCarryOver"`
	CarryOverExpiryMonth *int             `json:"carryOverExpiryMonth"`
}

// UserAgreement represents a row of the user_agreements table.
type UserAgreement struct {
	AssignmentID  string     `json:"assignmentID"`
	UserID        string     `json:"userID"`
	AgreementID   string     `json:"agreementID"`
	EffectiveFrom time.Time  `json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo"`
}
