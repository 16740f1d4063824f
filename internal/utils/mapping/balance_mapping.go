package mapping

import (
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/models"
)

// ToDomainAbsenceBalance converts a model AbsenceBalance to a domain entity
func ToDomainAbsenceBalance(m models.AbsenceBalance) domain.AbsenceBalance {
	return domain.AbsenceBalance{
		BalanceID:   m.BalanceID,
		UserID:      m.UserID,
		Type:        domain.AbsenceType(m.Type),
		Year:        m.Year,
		Allocated:   m.Allocated,
		CarryOver:   m.CarryOver,
		Spent:       m.Spent,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAbsenceBalanceSlice converts a slice of model balances to domain
func ToDomainAbsenceBalanceSlice(ms []models.AbsenceBalance) []domain.AbsenceBalance {
	ds := make([]domain.AbsenceBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAbsenceBalance(m)
	}
	return ds
}

// ToDomainBalanceMovement converts a model BalanceMovement to a domain entity
func ToDomainBalanceMovement(m models.BalanceMovement) domain.BalanceMovement {
	return domain.BalanceMovement{
		MovementID: m.MovementID,
		BalanceID:  m.BalanceID,
		Timestamp:  m.Timestamp,
		Delta:      m.Delta,
		Reason:     domain.MovementReason(m.Reason),
		Reference:  m.Reference,
		CreatedBy:  m.CreatedBy,
	}
}

// ToDomainBalanceMovementSlice converts a slice of model movements to domain
func ToDomainBalanceMovementSlice(ms []models.BalanceMovement) []domain.BalanceMovement {
	ds := make([]domain.BalanceMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBalanceMovement(m)
	}
	return ds
}
