package mapping

import (
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/models"
)

// ToModelAgreement converts a domain Agreement to its storage model.
func ToModelAgreement(d domain.Agreement) models.Agreement {
	return models.Agreement{
		AgreementID: d.AgreementID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAgreement converts a storage model Agreement to its domain form.
func ToDomainAgreement(m models.Agreement) domain.Agreement {
	return domain.Agreement{
		AgreementID: m.AgreementID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAbsenceRule converts a domain AbsenceRule to its storage model.
func ToModelAbsenceRule(d domain.AbsenceRule) models.AbsenceRule {
	return models.AbsenceRule{
		RuleID:               d.RuleID,
		AgreementID:          d.AgreementID,
		Type:                 string(d.Type),
		AnnualDays:           d.AnnualDays,
		DayCounting:          string(d.DayCounting),
		AllowsHalfDay:        d.AllowsHalfDay,
		Accrual:              string(d.Accrual),
		MaxCarryOver:         d.MaxCarryOver,
		CarryOverExpiryMonth: d.CarryOverExpiryMonth,
	}
}

// ToDomainAbsenceRule converts a storage model AbsenceRule to its domain form.
func ToDomainAbsenceRule(m models.AbsenceRule) domain.AbsenceRule {
	return domain.AbsenceRule{
		RuleID:               m.RuleID,
		AgreementID:          m.AgreementID,
		Type:                 domain.AbsenceType(m.Type),
		AnnualDays:           m.AnnualDays,
		DayCounting:          domain.DayCounting(m.DayCounting),
		AllowsHalfDay:        m.AllowsHalfDay,
		Accrual:              domain.Accrual(m.Accrual),
		MaxCarryOver:         m.MaxCarryOver,
		CarryOverExpiryMonth: m.CarryOverExpiryMonth,
	}
}

// ToModelUserAgreement converts a domain UserAgreement to its storage model.
func ToModelUserAgreement(d domain.UserAgreement) models.UserAgreement {
	return models.UserAgreement{
		AssignmentID:  d.AssignmentID,
		UserID:        d.UserID,
		AgreementID:   d.AgreementID,
		EffectiveFrom: d.EffectiveFrom,
		EffectiveTo:   d.EffectiveTo,
	}
}
