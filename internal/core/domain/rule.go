package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayCounting selects how requested days are counted for an absence type.
type DayCounting string

const (
	// CountCalendar counts every calendar day in the range, inclusive.
	CountCalendar DayCounting = "CALENDAR"
	// CountWorking counts weekdays excluding the user's holiday-calendar dates.
	CountWorking DayCounting = "WORKING"
)

// Accrual selects how the annual allowance accrues.
type Accrual string

const (
	AccrualAnnual  Accrual = "ANNUAL"
	AccrualMonthly Accrual = "MONTHLY"
)

// AbsenceRule holds the labor-agreement parameters governing one absence type:
// annual allowance, day-counting policy and half-day eligibility. Read-only
// reference data.
type AbsenceRule struct {
	RuleID               string           `json:"ruleID"`
	AgreementID          string           `json:"agreementID"`
	Type                 AbsenceType      `json:"type"`
	AnnualDays           decimal.Decimal  `json:"annualDays"`
	DayCounting          DayCounting      `json:"dayCounting"`
	AllowsHalfDay        bool             `json:"allowsHalfDay"`
	Accrual              Accrual          `json:"accrual"`
	MaxCarryOver         *decimal.Decimal `json:"maxCarryOver,omitempty"`
	CarryOverExpiryMonth *int             `json:"carryOverExpiryMonth,omitempty"`
}

// Agreement is a labor agreement ("convenio") grouping a set of absence rules.
type Agreement struct {
	AgreementID string `json:"agreementID"`
	Name        string `json:"name"`
	AuditFields
}

// UserAgreement is an effective-dated assignment of a user to an agreement.
// Rule resolution picks the most recent assignment whose effective range
// covers the reference date.
type UserAgreement struct {
	AssignmentID  string     `json:"assignmentID"`
	UserID        string     `json:"userID"`
	AgreementID   string     `json:"agreementID"`
	EffectiveFrom time.Time  `json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo,omitempty"`
}

// CoversDate reports whether the assignment is effective on the date d.
func (ua UserAgreement) CoversDate(d time.Time) bool {
	if d.Before(ua.EffectiveFrom) {
		return false
	}
	return ua.EffectiveTo == nil || !d.After(*ua.EffectiveTo)
}
