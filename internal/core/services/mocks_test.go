package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// --- Mock ClockEventRepository (based on ClockingService usage) ---
type MockClockEventRepository struct {
	mock.Mock
	FindLastEventByUserFn func(ctx context.Context, userID string) (*domain.ClockEvent, error)
}

func (m *MockClockEventRepository) FindLastEventByUser(ctx context.Context, userID string) (*domain.ClockEvent, error) {
	if m.FindLastEventByUserFn != nil {
		return m.FindLastEventByUserFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var event *domain.ClockEvent
	if args.Get(0) != nil {
		event = args.Get(0).(*domain.ClockEvent)
	}
	return event, args.Error(1)
}

func (m *MockClockEventRepository) ListEventsByUser(ctx context.Context, userID string) ([]domain.ClockEvent, error) {
	args := m.Called(ctx, userID)
	var events []domain.ClockEvent
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.ClockEvent)
	}
	return events, args.Error(1)
}

func (m *MockClockEventRepository) ListEventsByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.ClockEvent, error) {
	args := m.Called(ctx, userID, from, to)
	var events []domain.ClockEvent
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.ClockEvent)
	}
	return events, args.Error(1)
}

func (m *MockClockEventRepository) HasEntryAtOrBefore(ctx context.Context, userID string, ts time.Time) (bool, error) {
	args := m.Called(ctx, userID, ts)
	return args.Bool(0), args.Error(1)
}

func (m *MockClockEventRepository) FindEventBySourceRequest(ctx context.Context, requestID string) (*domain.ClockEvent, error) {
	args := m.Called(ctx, requestID)
	var event *domain.ClockEvent
	if args.Get(0) != nil {
		event = args.Get(0).(*domain.ClockEvent)
	}
	return event, args.Error(1)
}

func (m *MockClockEventRepository) SaveEvent(ctx context.Context, event domain.ClockEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockClockEventRepository) SaveEventWithAutoClose(ctx context.Context, closing domain.ClockEvent, event domain.ClockEvent) error {
	args := m.Called(ctx, closing, event)
	return args.Error(0)
}

func (m *MockClockEventRepository) UpdateEventValidity(ctx context.Context, eventID string, validity domain.ClockEventValidity, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, eventID, validity, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AbsenceRepository ---
type MockAbsenceRepository struct {
	mock.Mock
}

func (m *MockAbsenceRepository) FindAbsenceByID(ctx context.Context, requestID string) (*domain.AbsenceRequest, error) {
	args := m.Called(ctx, requestID)
	var absence *domain.AbsenceRequest
	if args.Get(0) != nil {
		absence = args.Get(0).(*domain.AbsenceRequest)
	}
	return absence, args.Error(1)
}

func (m *MockAbsenceRepository) ListAbsences(ctx context.Context, filter portsrepo.AbsenceFilter, limit int, nextToken *string) ([]domain.AbsenceRequest, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var absences []domain.AbsenceRequest
	if args.Get(0) != nil {
		absences = args.Get(0).([]domain.AbsenceRequest)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return absences, token, args.Error(2)
}

func (m *MockAbsenceRepository) FindOverlappingCandidates(ctx context.Context, userID string, dateStart, dateEnd time.Time, excludeID string) ([]domain.AbsenceRequest, error) {
	args := m.Called(ctx, userID, dateStart, dateEnd, excludeID)
	var candidates []domain.AbsenceRequest
	if args.Get(0) != nil {
		candidates = args.Get(0).([]domain.AbsenceRequest)
	}
	return candidates, args.Error(1)
}

func (m *MockAbsenceRepository) FindApprovedOnDate(ctx context.Context, userID string, d time.Time) ([]domain.AbsenceRequest, error) {
	args := m.Called(ctx, userID, d)
	var approved []domain.AbsenceRequest
	if args.Get(0) != nil {
		approved = args.Get(0).([]domain.AbsenceRequest)
	}
	return approved, args.Error(1)
}

func (m *MockAbsenceRepository) FindApprovedByUser(ctx context.Context, userID string) ([]domain.AbsenceRequest, error) {
	args := m.Called(ctx, userID)
	var approved []domain.AbsenceRequest
	if args.Get(0) != nil {
		approved = args.Get(0).([]domain.AbsenceRequest)
	}
	return approved, args.Error(1)
}

func (m *MockAbsenceRepository) FindByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.AbsenceRequest, error) {
	args := m.Called(ctx, userID, from, to)
	var absences []domain.AbsenceRequest
	if args.Get(0) != nil {
		absences = args.Get(0).([]domain.AbsenceRequest)
	}
	return absences, args.Error(1)
}

func (m *MockAbsenceRepository) SaveAbsence(ctx context.Context, request domain.AbsenceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAbsenceRepository) UpdateAbsence(ctx context.Context, request domain.AbsenceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAbsenceRepository) ApproveWithConsumption(ctx context.Context, requestID, approverID string, approvedAt time.Time, debit *portsrepo.BalanceDebit) error {
	args := m.Called(ctx, requestID, approverID, approvedAt, debit)
	return args.Error(0)
}

func (m *MockAbsenceRepository) Reject(ctx context.Context, requestID, approverID string, rejectedAt time.Time) error {
	args := m.Called(ctx, requestID, approverID, rejectedAt)
	return args.Error(0)
}

// --- Mock ManualRequestRepository ---
type MockManualRequestRepository struct {
	mock.Mock
}

func (m *MockManualRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ManualClockRequest, error) {
	args := m.Called(ctx, requestID)
	var request *domain.ManualClockRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.ManualClockRequest)
	}
	return request, args.Error(1)
}

func (m *MockManualRequestRepository) ListRequests(ctx context.Context, filter portsrepo.ManualRequestFilter, limit int, nextToken *string) ([]domain.ManualClockRequest, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var requests []domain.ManualClockRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.ManualClockRequest)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return requests, token, args.Error(2)
}

func (m *MockManualRequestRepository) FindResolvableExitBetween(ctx context.Context, userID string, after, before time.Time) (*domain.ManualClockRequest, error) {
	args := m.Called(ctx, userID, after, before)
	var request *domain.ManualClockRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.ManualClockRequest)
	}
	return request, args.Error(1)
}

func (m *MockManualRequestRepository) SaveRequest(ctx context.Context, request domain.ManualClockRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockManualRequestRepository) Resolve(ctx context.Context, requestID string, status domain.ManualRequestStatus, resolverID string, resolvedAt time.Time, rejectionReason *string, event *domain.ClockEvent) error {
	args := m.Called(ctx, requestID, status, resolverID, resolvedAt, rejectionReason, event)
	return args.Error(0)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) FindBalance(ctx context.Context, userID string, absenceType domain.AbsenceType, year int) (*domain.AbsenceBalance, error) {
	args := m.Called(ctx, userID, absenceType, year)
	var balance *domain.AbsenceBalance
	if args.Get(0) != nil {
		balance = args.Get(0).(*domain.AbsenceBalance)
	}
	return balance, args.Error(1)
}

func (m *MockBalanceRepository) ListBalancesByUser(ctx context.Context, userID string, year int) ([]domain.AbsenceBalance, error) {
	args := m.Called(ctx, userID, year)
	var balances []domain.AbsenceBalance
	if args.Get(0) != nil {
		balances = args.Get(0).([]domain.AbsenceBalance)
	}
	return balances, args.Error(1)
}

func (m *MockBalanceRepository) ListMovements(ctx context.Context, balanceID string, limit int, nextToken *string) ([]domain.BalanceMovement, *string, error) {
	args := m.Called(ctx, balanceID, limit, nextToken)
	var movements []domain.BalanceMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.BalanceMovement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

func (m *MockBalanceRepository) Allocate(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID string) (*domain.AbsenceBalance, error) {
	args := m.Called(ctx, userID, absenceType, year, days, actorID)
	var balance *domain.AbsenceBalance
	if args.Get(0) != nil {
		balance = args.Get(0).(*domain.AbsenceBalance)
	}
	return balance, args.Error(1)
}

func (m *MockBalanceRepository) CarryOver(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID string) (*domain.AbsenceBalance, error) {
	args := m.Called(ctx, userID, absenceType, year, days, actorID)
	var balance *domain.AbsenceBalance
	if args.Get(0) != nil {
		balance = args.Get(0).(*domain.AbsenceBalance)
	}
	return balance, args.Error(1)
}

func (m *MockBalanceRepository) Adjust(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, delta decimal.Decimal, actorID, reason string) (*domain.AbsenceBalance, error) {
	args := m.Called(ctx, userID, absenceType, year, delta, actorID, reason)
	var balance *domain.AbsenceBalance
	if args.Get(0) != nil {
		balance = args.Get(0).(*domain.AbsenceBalance)
	}
	return balance, args.Error(1)
}

func (m *MockBalanceRepository) Reverse(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID, requestID string) (*domain.AbsenceBalance, error) {
	args := m.Called(ctx, userID, absenceType, year, days, actorID, requestID)
	var balance *domain.AbsenceBalance
	if args.Get(0) != nil {
		balance = args.Get(0).(*domain.AbsenceBalance)
	}
	return balance, args.Error(1)
}

// --- Mock AgreementSvc ---
type MockAgreementSvc struct {
	mock.Mock
}

func (m *MockAgreementSvc) CreateAgreement(ctx context.Context, principal domain.Principal, req dto.CreateAgreementRequest) (*domain.Agreement, error) {
	args := m.Called(ctx, principal, req)
	var agreement *domain.Agreement
	if args.Get(0) != nil {
		agreement = args.Get(0).(*domain.Agreement)
	}
	return agreement, args.Error(1)
}

func (m *MockAgreementSvc) AssignAgreement(ctx context.Context, principal domain.Principal, req dto.AssignAgreementRequest) error {
	args := m.Called(ctx, principal, req)
	return args.Error(0)
}

func (m *MockAgreementSvc) ResolveRule(ctx context.Context, userID string, absenceType domain.AbsenceType, d time.Time) (*domain.AbsenceRule, error) {
	args := m.Called(ctx, userID, absenceType, d)
	var rule *domain.AbsenceRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.AbsenceRule)
	}
	return rule, args.Error(1)
}

// --- Mock CalendarSvc ---
type MockCalendarSvc struct {
	mock.Mock
}

func (m *MockCalendarSvc) GetCalendar(ctx context.Context, principal domain.Principal, userID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, principal, userID, from, to)
	var events []domain.CalendarEvent
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.CalendarEvent)
	}
	return events, args.Error(1)
}

func (m *MockCalendarSvc) CreateHoliday(ctx context.Context, principal domain.Principal, req dto.CreateHolidayRequest) (*domain.Holiday, error) {
	args := m.Called(ctx, principal, req)
	var holiday *domain.Holiday
	if args.Get(0) != nil {
		holiday = args.Get(0).(*domain.Holiday)
	}
	return holiday, args.Error(1)
}

func (m *MockCalendarSvc) DeleteHoliday(ctx context.Context, principal domain.Principal, holidayID string) error {
	args := m.Called(ctx, principal, holidayID)
	return args.Error(0)
}

func (m *MockCalendarSvc) CountDays(ctx context.Context, userID string, from, to time.Time, counting domain.DayCounting) (int, error) {
	args := m.Called(ctx, userID, from, to, counting)
	return args.Int(0), args.Error(1)
}

// --- Mock CalendarRepository ---
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) FindHolidaysBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Holiday, error) {
	args := m.Called(ctx, userID, from, to)
	var holidays []domain.Holiday
	if args.Get(0) != nil {
		holidays = args.Get(0).([]domain.Holiday)
	}
	return holidays, args.Error(1)
}

func (m *MockCalendarRepository) IsHoliday(ctx context.Context, userID string, d time.Time) (bool, error) {
	args := m.Called(ctx, userID, d)
	return args.Bool(0), args.Error(1)
}

func (m *MockCalendarRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	args := m.Called(ctx, holiday)
	return args.Error(0)
}

func (m *MockCalendarRepository) DeleteHoliday(ctx context.Context, holidayID string) error {
	args := m.Called(ctx, holidayID)
	return args.Error(0)
}

// --- Mock AgreementRepository ---
type MockAgreementRepository struct {
	mock.Mock
}

func (m *MockAgreementRepository) FindEffectiveAgreement(ctx context.Context, userID string, d time.Time) (*domain.Agreement, error) {
	args := m.Called(ctx, userID, d)
	var agreement *domain.Agreement
	if args.Get(0) != nil {
		agreement = args.Get(0).(*domain.Agreement)
	}
	return agreement, args.Error(1)
}

func (m *MockAgreementRepository) FindRule(ctx context.Context, agreementID string, absenceType domain.AbsenceType) (*domain.AbsenceRule, error) {
	args := m.Called(ctx, agreementID, absenceType)
	var rule *domain.AbsenceRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.AbsenceRule)
	}
	return rule, args.Error(1)
}

func (m *MockAgreementRepository) SaveAgreement(ctx context.Context, agreement domain.Agreement, rules []domain.AbsenceRule) error {
	args := m.Called(ctx, agreement, rules)
	return args.Error(0)
}

func (m *MockAgreementRepository) AssignAgreement(ctx context.Context, assignment domain.UserAgreement) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return users, token, args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// stubAuditSvc satisfies AuditSvc without expectations; Record is
// fire-and-forget so tests only care that services keep working when it is a
// no-op. Recorded actions stay inspectable for the few tests that check them.
type stubAuditSvc struct {
	actions []domain.AuditAction
}

func (s *stubAuditSvc) Record(ctx context.Context, userID *string, action domain.AuditAction, detail string, reason *string) {
	s.actions = append(s.actions, action)
}

func (s *stubAuditSvc) List(ctx context.Context, principal domain.Principal, userID *string, action *domain.AuditAction, params dto.PaginationParams) ([]domain.AuditLog, *string, error) {
	return nil, nil, nil
}
