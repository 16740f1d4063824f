package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/core/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

type AbsenceServiceTestSuite struct {
	suite.Suite
	mockAbsenceRepo  *MockAbsenceRepository
	mockAgreementSvc *MockAgreementSvc
	mockCalendarSvc  *MockCalendarSvc
	auditSvc         *stubAuditSvc
	service          portssvc.AbsenceSvcFacade
	employee         domain.Principal
	manager          domain.Principal
}

func (suite *AbsenceServiceTestSuite) SetupTest() {
	suite.mockAbsenceRepo = new(MockAbsenceRepository)
	suite.mockAgreementSvc = new(MockAgreementSvc)
	suite.mockCalendarSvc = new(MockCalendarSvc)
	suite.auditSvc = new(stubAuditSvc)
	suite.service = services.NewAbsenceService(suite.mockAbsenceRepo, suite.mockAgreementSvc, suite.mockCalendarSvc, suite.auditSvc, time.UTC,
		[]domain.AbsenceType{domain.Vacation, domain.PersonalDay})
	suite.employee = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	suite.manager = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleManager}
}

func strPtr(s string) *string { return &s }

// --- CreateAbsence Tests ---

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_Success() {
	ctx := context.Background()
	req := dto.CreateAbsenceRequest{
		Type:      domain.Vacation,
		DateStart: "2025-07-01",
		DateEnd:   "2025-07-05",
	}

	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, suite.employee.UserID,
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC), "").
		Return(nil, nil).Once()
	suite.mockAbsenceRepo.On("SaveAbsence", ctx, mock.MatchedBy(func(a domain.AbsenceRequest) bool {
		return a.UserID == suite.employee.UserID && a.Status == domain.AbsencePending && a.Paid && a.RequestID != ""
	})).Return(nil).Once()

	absence, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.Require().NoError(err)
	suite.Equal(domain.AbsencePending, absence.Status)
	suite.Equal([]domain.AuditAction{domain.ActionAbsenceCreated}, suite.auditSvc.actions)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_UnknownType() {
	ctx := context.Background()
	req := dto.CreateAbsenceRequest{
		Type:      domain.AbsenceType("SABBATICAL"),
		DateStart: "2025-07-01",
		DateEnd:   "2025-07-05",
	}

	absence, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.Require().Error(err)
	suite.Nil(absence)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateAbsenceRequest{
		Type:      domain.Vacation,
		DateStart: "2025-07-05",
		DateEnd:   "2025-07-01",
	}

	_, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_PartialWithoutBounds() {
	ctx := context.Background()
	req := dto.CreateAbsenceRequest{
		Type:      domain.MedicalAppointment,
		DateStart: "2025-07-01",
		DateEnd:   "2025-07-01",
		Partial:   true,
	}

	_, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_FullDayWithBounds() {
	ctx := context.Background()
	req := dto.CreateAbsenceRequest{
		Type:      domain.Vacation,
		DateStart: "2025-07-01",
		DateEnd:   "2025-07-01",
		TimeStart: strPtr("09:00"),
		TimeEnd:   strPtr("13:00"),
	}

	_, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_FullDayCandidateOverlaps() {
	ctx := context.Background()
	req := dto.CreateAbsenceRequest{
		Type:      domain.PersonalDay,
		DateStart: "2025-07-03",
		DateEnd:   "2025-07-03",
		Partial:   true,
		TimeStart: strPtr("09:00"),
		TimeEnd:   strPtr("12:00"),
	}
	existing := []domain.AbsenceRequest{{
		RequestID: uuid.NewString(),
		UserID:    suite.employee.UserID,
		Type:      domain.Vacation,
		DateStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		Status:    domain.AbsenceApproved,
	}}

	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, suite.employee.UserID, mock.Anything, mock.Anything, "").
		Return(existing, nil).Once()

	_, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.ErrorIs(err, apperrors.ErrOverlap)
}

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_AdjacentPartialsDoNotOverlap() {
	ctx := context.Background()
	day := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	req := dto.CreateAbsenceRequest{
		Type:      domain.MedicalAppointment,
		DateStart: "2025-07-03",
		DateEnd:   "2025-07-03",
		Partial:   true,
		TimeStart: strPtr("09:00"),
		TimeEnd:   strPtr("12:00"),
	}
	noon := domain.ClockTime{Hour: 12, Minute: 0}
	three := domain.ClockTime{Hour: 15, Minute: 0}
	existing := []domain.AbsenceRequest{{
		RequestID: uuid.NewString(),
		UserID:    suite.employee.UserID,
		Type:      domain.PersonalDay,
		DateStart: day,
		DateEnd:   day,
		TimeStart: &noon,
		TimeEnd:   &three,
		Partial:   true,
		Status:    domain.AbsencePending,
	}}

	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, suite.employee.UserID, day, day, "").
		Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("SaveAbsence", ctx, mock.AnythingOfType("domain.AbsenceRequest")).Return(nil).Once()

	absence, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.Require().NoError(err)
	suite.NotNil(absence)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func (suite *AbsenceServiceTestSuite) TestCreateAbsence_IntersectingPartialsOverlap() {
	ctx := context.Background()
	day := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	req := dto.CreateAbsenceRequest{
		Type:      domain.MedicalAppointment,
		DateStart: "2025-07-03",
		DateEnd:   "2025-07-03",
		Partial:   true,
		TimeStart: strPtr("09:00"),
		TimeEnd:   strPtr("12:30"),
	}
	noon := domain.ClockTime{Hour: 12, Minute: 0}
	three := domain.ClockTime{Hour: 15, Minute: 0}
	existing := []domain.AbsenceRequest{{
		RequestID: uuid.NewString(),
		UserID:    suite.employee.UserID,
		Type:      domain.PersonalDay,
		DateStart: day,
		DateEnd:   day,
		TimeStart: &noon,
		TimeEnd:   &three,
		Partial:   true,
		Status:    domain.AbsencePending,
	}}

	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, suite.employee.UserID, day, day, "").
		Return(existing, nil).Once()

	_, err := suite.service.CreateAbsence(ctx, suite.employee, req)

	suite.ErrorIs(err, apperrors.ErrOverlap)
}

// --- ApproveAbsence Tests ---

func (suite *AbsenceServiceTestSuite) pendingVacation(days int) *domain.AbsenceRequest {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return &domain.AbsenceRequest{
		RequestID: uuid.NewString(),
		UserID:    suite.employee.UserID,
		Type:      domain.Vacation,
		DateStart: start,
		DateEnd:   start.AddDate(0, 0, days-1),
		Paid:      true,
		Status:    domain.AbsencePending,
	}
}

func (suite *AbsenceServiceTestSuite) TestApproveAbsence_ConsumesBalance() {
	ctx := context.Background()
	existing := suite.pendingVacation(3)

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, existing.UserID, existing.DateStart, existing.DateEnd, existing.RequestID).
		Return(nil, nil).Once()
	suite.mockAgreementSvc.On("ResolveRule", ctx, existing.UserID, domain.Vacation, existing.DateStart).Return(nil, nil).Once()
	suite.mockCalendarSvc.On("CountDays", ctx, existing.UserID, existing.DateStart, existing.DateEnd, domain.CountCalendar).Return(3, nil).Once()
	suite.mockAbsenceRepo.On("ApproveWithConsumption", ctx, existing.RequestID, suite.manager.UserID, mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(debit *portsrepo.BalanceDebit) bool {
			return debit != nil && debit.UserID == existing.UserID &&
				debit.Type == domain.Vacation && debit.Year == 2025 &&
				debit.RequestedDays.Equal(decimal.NewFromInt(3)) &&
				debit.Reference == "absence:"+existing.RequestID
		})).Return(nil).Once()

	approved, err := suite.service.ApproveAbsence(ctx, suite.manager, existing.RequestID)

	suite.Require().NoError(err)
	suite.Equal(domain.AbsenceApproved, approved.Status)
	suite.Require().NotNil(approved.ApprovedBy)
	suite.Equal(suite.manager.UserID, *approved.ApprovedBy)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
	suite.mockCalendarSvc.AssertExpectations(suite.T())
}

func (suite *AbsenceServiceTestSuite) TestApproveAbsence_HalfDayRule() {
	ctx := context.Background()
	day := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	start := domain.ClockTime{Hour: 9, Minute: 0}
	end := domain.ClockTime{Hour: 13, Minute: 0}
	existing := &domain.AbsenceRequest{
		RequestID: uuid.NewString(),
		UserID:    suite.employee.UserID,
		Type:      domain.Vacation,
		DateStart: day,
		DateEnd:   day,
		TimeStart: &start,
		TimeEnd:   &end,
		Partial:   true,
		Paid:      true,
		Status:    domain.AbsencePending,
	}
	rule := &domain.AbsenceRule{
		RuleID:        uuid.NewString(),
		Type:          domain.Vacation,
		AnnualDays:    decimal.NewFromInt(22),
		DayCounting:   domain.CountWorking,
		AllowsHalfDay: true,
	}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, existing.UserID, day, day, existing.RequestID).Return(nil, nil).Once()
	suite.mockAgreementSvc.On("ResolveRule", ctx, existing.UserID, domain.Vacation, day).Return(rule, nil).Once()
	suite.mockAbsenceRepo.On("ApproveWithConsumption", ctx, existing.RequestID, suite.manager.UserID, mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(debit *portsrepo.BalanceDebit) bool {
			return debit != nil && debit.RequestedDays.Equal(decimal.NewFromFloat(0.5))
		})).Return(nil).Once()

	_, err := suite.service.ApproveAbsence(ctx, suite.manager, existing.RequestID)

	suite.Require().NoError(err)
	// Half-day short-circuits the day counting entirely.
	suite.mockCalendarSvc.AssertNotCalled(suite.T(), "CountDays")
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func (suite *AbsenceServiceTestSuite) TestApproveAbsence_UnpaidConsumingTypeStillDebits() {
	ctx := context.Background()
	existing := suite.pendingVacation(2)
	existing.Paid = false

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, existing.UserID, existing.DateStart, existing.DateEnd, existing.RequestID).
		Return(nil, nil).Once()
	suite.mockAgreementSvc.On("ResolveRule", ctx, existing.UserID, domain.Vacation, existing.DateStart).Return(nil, nil).Once()
	suite.mockCalendarSvc.On("CountDays", ctx, existing.UserID, existing.DateStart, existing.DateEnd, domain.CountCalendar).Return(2, nil).Once()
	// Consumption is gated on the type alone; paid or not, vacation days
	// come out of the pool.
	suite.mockAbsenceRepo.On("ApproveWithConsumption", ctx, existing.RequestID, suite.manager.UserID, mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(debit *portsrepo.BalanceDebit) bool {
			return debit != nil && debit.RequestedDays.Equal(decimal.NewFromInt(2))
		})).Return(nil).Once()

	_, err := suite.service.ApproveAbsence(ctx, suite.manager, existing.RequestID)

	suite.Require().NoError(err)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
	suite.mockCalendarSvc.AssertExpectations(suite.T())
}

func (suite *AbsenceServiceTestSuite) TestApproveAbsence_NonConsumingTypeSkipsLedger() {
	ctx := context.Background()
	existing := suite.pendingVacation(2)
	existing.Type = domain.MedicalLeave

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, existing.UserID, existing.DateStart, existing.DateEnd, existing.RequestID).
		Return(nil, nil).Once()
	suite.mockAbsenceRepo.On("ApproveWithConsumption", ctx, existing.RequestID, suite.manager.UserID, mock.AnythingOfType("time.Time"),
		(*portsrepo.BalanceDebit)(nil)).Return(nil).Once()

	_, err := suite.service.ApproveAbsence(ctx, suite.manager, existing.RequestID)

	suite.Require().NoError(err)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func (suite *AbsenceServiceTestSuite) TestApproveAbsence_EmployeeForbidden() {
	ctx := context.Background()

	approved, err := suite.service.ApproveAbsence(ctx, suite.employee, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AbsenceServiceTestSuite) TestApproveAbsence_AlreadyResolved() {
	ctx := context.Background()
	existing := suite.pendingVacation(1)
	existing.Status = domain.AbsenceApproved

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()

	_, err := suite.service.ApproveAbsence(ctx, suite.manager, existing.RequestID)

	suite.ErrorIs(err, apperrors.ErrAlreadyResolved)
}

func (suite *AbsenceServiceTestSuite) TestApproveAbsence_InsufficientBalance() {
	ctx := context.Background()
	existing := suite.pendingVacation(5)

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, existing.UserID, existing.DateStart, existing.DateEnd, existing.RequestID).
		Return(nil, nil).Once()
	suite.mockAgreementSvc.On("ResolveRule", ctx, existing.UserID, domain.Vacation, existing.DateStart).Return(nil, nil).Once()
	suite.mockCalendarSvc.On("CountDays", ctx, existing.UserID, existing.DateStart, existing.DateEnd, domain.CountCalendar).Return(5, nil).Once()
	suite.mockAbsenceRepo.On("ApproveWithConsumption", ctx, existing.RequestID, suite.manager.UserID, mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("*repositories.BalanceDebit")).Return(apperrors.ErrInsufficientBalance).Once()

	approved, err := suite.service.ApproveAbsence(ctx, suite.manager, existing.RequestID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Empty(suite.auditSvc.actions)
}

// --- RejectAbsence Tests ---

func (suite *AbsenceServiceTestSuite) TestRejectAbsence_Success() {
	ctx := context.Background()
	existing := suite.pendingVacation(2)

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("Reject", ctx, existing.RequestID, suite.manager.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	rejected, err := suite.service.RejectAbsence(ctx, suite.manager, existing.RequestID)

	suite.Require().NoError(err)
	suite.Equal(domain.AbsenceRejected, rejected.Status)
	suite.Equal([]domain.AuditAction{domain.ActionAbsenceRejected}, suite.auditSvc.actions)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func (suite *AbsenceServiceTestSuite) TestRejectAbsence_AlreadyResolved() {
	ctx := context.Background()
	existing := suite.pendingVacation(2)
	existing.Status = domain.AbsenceRejected

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()

	_, err := suite.service.RejectAbsence(ctx, suite.manager, existing.RequestID)

	suite.ErrorIs(err, apperrors.ErrAlreadyResolved)
}

// --- UpdateAbsence Tests ---

func (suite *AbsenceServiceTestSuite) TestUpdateAbsence_TerminalRequest() {
	ctx := context.Background()
	existing := suite.pendingVacation(2)
	existing.Status = domain.AbsenceApproved
	req := dto.CreateAbsenceRequest{Type: domain.Vacation, DateStart: "2025-07-01", DateEnd: "2025-07-02"}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAbsence(ctx, suite.employee, existing.RequestID, req)

	suite.ErrorIs(err, apperrors.ErrAlreadyResolved)
}

func (suite *AbsenceServiceTestSuite) TestUpdateAbsence_OtherEmployeeForbidden() {
	ctx := context.Background()
	existing := suite.pendingVacation(2)
	intruder := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	req := dto.CreateAbsenceRequest{Type: domain.Vacation, DateStart: "2025-07-01", DateEnd: "2025-07-02"}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAbsence(ctx, intruder, existing.RequestID, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AbsenceServiceTestSuite) TestUpdateAbsence_ExcludesSelfFromOverlapScan() {
	ctx := context.Background()
	existing := suite.pendingVacation(2)
	req := dto.CreateAbsenceRequest{Type: domain.Vacation, DateStart: "2025-07-01", DateEnd: "2025-07-03"}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, existing.RequestID).Return(existing, nil).Once()
	suite.mockAbsenceRepo.On("FindOverlappingCandidates", ctx, existing.UserID,
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), existing.RequestID).
		Return(nil, nil).Once()
	suite.mockAbsenceRepo.On("UpdateAbsence", ctx, mock.MatchedBy(func(a domain.AbsenceRequest) bool {
		return a.RequestID == existing.RequestID && a.Status == domain.AbsencePending
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAbsence(ctx, suite.employee, existing.RequestID, req)

	suite.Require().NoError(err)
	suite.Equal(existing.RequestID, updated.RequestID)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func TestAbsenceService(t *testing.T) {
	suite.Run(t, new(AbsenceServiceTestSuite))
}
