package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	clockEventRepo := newPgxClockEventRepository(dbPool)
	manualRequestRepo := newPgxManualRequestRepository(dbPool)
	absenceRepo := newPgxAbsenceRepository(dbPool)
	balanceRepo := newPgxBalanceRepository(dbPool)
	calendarRepo := newPgxCalendarRepository(dbPool)
	agreementRepo := newPgxAgreementRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:          userRepo,
		ClockEventRepo:    clockEventRepo,
		ManualRequestRepo: manualRequestRepo,
		AbsenceRepo:       absenceRepo,
		BalanceRepo:       balanceRepo,
		CalendarRepo:      calendarRepo,
		AgreementRepo:     agreementRepo,
		AuditRepo:         auditRepo,
	}
}
