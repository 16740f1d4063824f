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
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/core/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo  *MockBalanceRepository
	mockAbsenceRepo  *MockAbsenceRepository
	mockAgreementSvc *MockAgreementSvc
	mockCalendarSvc  *MockCalendarSvc
	auditSvc         *stubAuditSvc
	service          portssvc.BalanceSvcFacade
	employee         domain.Principal
	admin            domain.Principal
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockAbsenceRepo = new(MockAbsenceRepository)
	suite.mockAgreementSvc = new(MockAgreementSvc)
	suite.mockCalendarSvc = new(MockCalendarSvc)
	suite.auditSvc = new(stubAuditSvc)
	suite.service = services.NewBalanceService(suite.mockBalanceRepo, suite.mockAbsenceRepo, suite.mockAgreementSvc, suite.mockCalendarSvc, suite.auditSvc,
		[]domain.AbsenceType{domain.Vacation, domain.PersonalDay})
	suite.employee = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	suite.admin = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

// --- GetBalance Tests ---

func (suite *BalanceServiceTestSuite) TestGetBalance_SynthesizesZeroRow() {
	ctx := context.Background()

	suite.mockBalanceRepo.On("FindBalance", ctx, suite.employee.UserID, domain.Vacation, 2025).Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.GetBalance(ctx, suite.employee, suite.employee.UserID, domain.Vacation, 2025)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.Empty(balance.BalanceID)
	suite.True(balance.Allocated.IsZero())
	suite.True(balance.Available().IsZero())
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalance_OtherUserForbidden() {
	ctx := context.Background()

	balance, err := suite.service.GetBalance(ctx, suite.employee, uuid.NewString(), domain.Vacation, 2025)

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BalanceServiceTestSuite) TestGetBalance_UnknownType() {
	ctx := context.Background()

	_, err := suite.service.GetBalance(ctx, suite.employee, suite.employee.UserID, domain.AbsenceType("SABBATICAL"), 2025)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- PreviewConsumption Tests ---

func (suite *BalanceServiceTestSuite) TestPreviewConsumption_NonConsumingType() {
	ctx := context.Background()
	requestID := uuid.NewString()
	absence := &domain.AbsenceRequest{
		RequestID: requestID,
		UserID:    suite.employee.UserID,
		Type:      domain.MedicalLeave,
		DateStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		Paid:      true,
		Status:    domain.AbsencePending,
	}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, requestID).Return(absence, nil).Once()

	preview, err := suite.service.PreviewConsumption(ctx, suite.employee, requestID)

	suite.Require().NoError(err)
	suite.False(preview.ConsumesPool)
	suite.True(preview.Sufficient)
	suite.mockAgreementSvc.AssertNotCalled(suite.T(), "ResolveRule")
}

func (suite *BalanceServiceTestSuite) TestPreviewConsumption_InsufficientBalance() {
	ctx := context.Background()
	requestID := uuid.NewString()
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	absence := &domain.AbsenceRequest{
		RequestID: requestID,
		UserID:    suite.employee.UserID,
		Type:      domain.Vacation,
		DateStart: start,
		DateEnd:   end,
		Paid:      true,
		Status:    domain.AbsencePending,
	}
	balance := &domain.AbsenceBalance{
		BalanceID: uuid.NewString(),
		UserID:    suite.employee.UserID,
		Type:      domain.Vacation,
		Year:      2025,
		Allocated: decimal.NewFromInt(10),
		CarryOver: decimal.Zero,
		Spent:     decimal.NewFromInt(8),
	}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, requestID).Return(absence, nil).Once()
	suite.mockAgreementSvc.On("ResolveRule", ctx, absence.UserID, domain.Vacation, start).Return(nil, nil).Once()
	suite.mockCalendarSvc.On("CountDays", ctx, absence.UserID, start, end, domain.CountCalendar).Return(3, nil).Once()
	suite.mockBalanceRepo.On("FindBalance", ctx, absence.UserID, domain.Vacation, 2025).Return(balance, nil).Once()

	preview, err := suite.service.PreviewConsumption(ctx, suite.employee, requestID)

	suite.Require().NoError(err)
	suite.True(preview.ConsumesPool)
	suite.False(preview.Sufficient)
	suite.True(preview.Days.Equal(decimal.NewFromInt(3)))
	suite.True(preview.Available.Equal(decimal.NewFromInt(2)))
	suite.True(preview.AfterApproval.Equal(decimal.NewFromInt(-1)))
}

// --- Allocate Tests ---

func (suite *BalanceServiceTestSuite) TestAllocate_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	days := decimal.NewFromInt(22)
	req := dto.AllocateBalanceRequest{UserID: userID, Type: domain.Vacation, Year: 2025, Days: days}
	expected := &domain.AbsenceBalance{BalanceID: uuid.NewString(), UserID: userID, Type: domain.Vacation, Year: 2025, Allocated: days}

	suite.mockBalanceRepo.On("Allocate", ctx, userID, domain.Vacation, 2025, days, suite.admin.UserID).Return(expected, nil).Once()

	balance, err := suite.service.Allocate(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Equal(expected, balance)
	suite.Equal([]domain.AuditAction{domain.ActionBalanceAllocated}, suite.auditSvc.actions)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestAllocate_EmployeeForbidden() {
	ctx := context.Background()
	req := dto.AllocateBalanceRequest{UserID: suite.employee.UserID, Type: domain.Vacation, Year: 2025, Days: decimal.NewFromInt(5)}

	_, err := suite.service.Allocate(ctx, suite.employee, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BalanceServiceTestSuite) TestAllocate_NonPositiveDays() {
	ctx := context.Background()
	req := dto.AllocateBalanceRequest{UserID: uuid.NewString(), Type: domain.Vacation, Year: 2025, Days: decimal.NewFromInt(-3)}

	_, err := suite.service.Allocate(ctx, suite.admin, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "Allocate")
}

// --- Adjust Tests ---

func (suite *BalanceServiceTestSuite) TestAdjust_ZeroDelta() {
	ctx := context.Background()
	req := dto.AdjustBalanceRequest{UserID: uuid.NewString(), Type: domain.Vacation, Year: 2025, Delta: decimal.Zero, Reason: "typo fix"}

	_, err := suite.service.Adjust(ctx, suite.admin, req)

	suite.ErrorIs(err, apperrors.ErrInvalidAdjustment)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "Adjust")
}

func (suite *BalanceServiceTestSuite) TestAdjust_WouldGoNegative() {
	ctx := context.Background()
	userID := uuid.NewString()
	delta := decimal.NewFromInt(-10)
	req := dto.AdjustBalanceRequest{UserID: userID, Type: domain.Vacation, Year: 2025, Delta: delta, Reason: "overallocation"}

	suite.mockBalanceRepo.On("Adjust", ctx, userID, domain.Vacation, 2025, delta, suite.admin.UserID, "overallocation").
		Return(nil, apperrors.ErrWouldGoNegative).Once()

	balance, err := suite.service.Adjust(ctx, suite.admin, req)

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, apperrors.ErrWouldGoNegative)
	suite.Empty(suite.auditSvc.actions)
}

// --- CarryOver Tests ---

func (suite *BalanceServiceTestSuite) TestCarryOver_CappedByRule() {
	ctx := context.Background()
	userID := uuid.NewString()
	maxCarryOver := decimal.NewFromInt(5)
	rule := &domain.AbsenceRule{
		RuleID:       uuid.NewString(),
		Type:         domain.Vacation,
		AnnualDays:   decimal.NewFromInt(22),
		DayCounting:  domain.CountWorking,
		MaxCarryOver: &maxCarryOver,
	}
	req := dto.CarryOverBalanceRequest{UserID: userID, Type: domain.Vacation, Year: 2026, Days: decimal.NewFromInt(10)}
	expected := &domain.AbsenceBalance{BalanceID: uuid.NewString(), UserID: userID, Type: domain.Vacation, Year: 2026, CarryOver: maxCarryOver}

	suite.mockAgreementSvc.On("ResolveRule", ctx, userID, domain.Vacation, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)).Return(rule, nil).Once()
	suite.mockBalanceRepo.On("CarryOver", ctx, userID, domain.Vacation, 2026, maxCarryOver, suite.admin.UserID).Return(expected, nil).Once()

	balance, err := suite.service.CarryOver(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Equal(expected, balance)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestCarryOver_NoRuleNoCap() {
	ctx := context.Background()
	userID := uuid.NewString()
	days := decimal.NewFromInt(10)
	req := dto.CarryOverBalanceRequest{UserID: userID, Type: domain.Vacation, Year: 2026, Days: days}
	expected := &domain.AbsenceBalance{BalanceID: uuid.NewString(), UserID: userID, Type: domain.Vacation, Year: 2026, CarryOver: days}

	suite.mockAgreementSvc.On("ResolveRule", ctx, userID, domain.Vacation, mock.AnythingOfType("time.Time")).Return(nil, nil).Once()
	suite.mockBalanceRepo.On("CarryOver", ctx, userID, domain.Vacation, 2026, days, suite.admin.UserID).Return(expected, nil).Once()

	_, err := suite.service.CarryOver(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

// --- ReverseConsumption Tests ---

func (suite *BalanceServiceTestSuite) TestReverseConsumption_Success() {
	ctx := context.Background()
	requestID := uuid.NewString()
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	absence := &domain.AbsenceRequest{
		RequestID: requestID,
		UserID:    uuid.NewString(),
		Type:      domain.Vacation,
		DateStart: start,
		DateEnd:   end,
		Paid:      true,
		Status:    domain.AbsenceApproved,
	}
	days := decimal.NewFromInt(2)
	expected := &domain.AbsenceBalance{BalanceID: uuid.NewString(), UserID: absence.UserID, Type: domain.Vacation, Year: 2025}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, requestID).Return(absence, nil).Once()
	suite.mockAgreementSvc.On("ResolveRule", ctx, absence.UserID, domain.Vacation, start).Return(nil, nil).Once()
	suite.mockCalendarSvc.On("CountDays", ctx, absence.UserID, start, end, domain.CountCalendar).Return(2, nil).Once()
	suite.mockBalanceRepo.On("Reverse", ctx, absence.UserID, domain.Vacation, 2025, days, suite.admin.UserID, requestID).Return(expected, nil).Once()

	balance, err := suite.service.ReverseConsumption(ctx, suite.admin, requestID)

	suite.Require().NoError(err)
	suite.Equal(expected, balance)
	suite.Equal([]domain.AuditAction{domain.ActionBalanceReversed}, suite.auditSvc.actions)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestReverseConsumption_NotApproved() {
	ctx := context.Background()
	requestID := uuid.NewString()
	absence := &domain.AbsenceRequest{
		RequestID: requestID,
		UserID:    uuid.NewString(),
		Type:      domain.Vacation,
		DateStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		Paid:      true,
		Status:    domain.AbsencePending,
	}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, requestID).Return(absence, nil).Once()

	_, err := suite.service.ReverseConsumption(ctx, suite.admin, requestID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "Reverse")
}

func (suite *BalanceServiceTestSuite) TestReverseConsumption_NeverConsumed() {
	ctx := context.Background()
	requestID := uuid.NewString()
	absence := &domain.AbsenceRequest{
		RequestID: requestID,
		UserID:    uuid.NewString(),
		Type:      domain.MedicalLeave,
		DateStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		Paid:      true,
		Status:    domain.AbsenceApproved,
	}

	suite.mockAbsenceRepo.On("FindAbsenceByID", ctx, requestID).Return(absence, nil).Once()

	_, err := suite.service.ReverseConsumption(ctx, suite.admin, requestID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "Reverse")
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
