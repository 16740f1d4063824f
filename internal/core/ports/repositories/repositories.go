package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo          UserRepositoryFacade
	ClockEventRepo    ClockEventRepositoryFacade
	ManualRequestRepo ManualRequestRepositoryFacade
	AbsenceRepo       AbsenceRepositoryFacade
	BalanceRepo       BalanceRepositoryFacade
	CalendarRepo      CalendarRepositoryFacade
	AgreementRepo     AgreementRepositoryFacade
	AuditRepo         AuditRepository
}
