package services

import (
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first: almost every other service records through it.
	container.Audit = NewAuditService(repos.AuditRepo)

	container.User = NewUserService(repos.UserRepo, container.Audit)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	container.Agreement = NewAgreementService(repos.AgreementRepo)
	container.Calendar = NewCalendarService(repos.CalendarRepo, repos.AbsenceRepo)

	container.Clocking = NewClockingService(repos.ClockEventRepo, repos.AbsenceRepo, repos.ManualRequestRepo, container.Audit, cfg.OrgLocation)
	container.Summary = NewSummaryService(repos.ClockEventRepo, repos.AbsenceRepo, cfg.OrgLocation, cfg.FullWorkdayHours)
	container.Absence = NewAbsenceService(repos.AbsenceRepo, container.Agreement, container.Calendar, container.Audit, cfg.OrgLocation, cfg.BalanceConsumingTypes)
	container.Balance = NewBalanceService(repos.BalanceRepo, repos.AbsenceRepo, container.Agreement, container.Calendar, container.Audit, cfg.BalanceConsumingTypes)
	container.ManualRequest = NewManualRequestService(repos.ManualRequestRepo, repos.ClockEventRepo, container.Audit)

	return container
}
