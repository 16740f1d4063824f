package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/core/services"
)

type ClockingServiceTestSuite struct {
	suite.Suite
	mockEventRepo   *MockClockEventRepository
	mockAbsenceRepo *MockAbsenceRepository
	mockRequestRepo *MockManualRequestRepository
	auditSvc        *stubAuditSvc
	service         portssvc.ClockingSvcFacade
	principal       domain.Principal
}

func (suite *ClockingServiceTestSuite) SetupTest() {
	suite.mockEventRepo = new(MockClockEventRepository)
	suite.mockAbsenceRepo = new(MockAbsenceRepository)
	suite.mockRequestRepo = new(MockManualRequestRepository)
	suite.auditSvc = new(stubAuditSvc)
	suite.service = services.NewClockingService(suite.mockEventRepo, suite.mockAbsenceRepo, suite.mockRequestRepo, suite.auditSvc, time.UTC)
	suite.principal = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee}
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_FirstEntry() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := domain.DateOf(ts, time.UTC)

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, date).Return(nil, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEventRepo.On("SaveEvent", ctx, mock.MatchedBy(func(e domain.ClockEvent) bool {
		return e.UserID == suite.principal.UserID && e.Kind == domain.Entry &&
			e.Timestamp.Equal(ts) && e.Validity == domain.ValidityValid && !e.IsManual
	})).Return(nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Entry, &ts)

	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.Equal(domain.Entry, event.Kind)
	suite.NotEmpty(event.EventID)
	suite.NotEmpty(event.ContentHash)
	suite.Equal([]domain.AuditAction{domain.ActionEventRecorded}, suite.auditSvc.actions)
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_ExitAfterEntry() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
	last := &domain.ClockEvent{
		EventID:   uuid.NewString(),
		UserID:    suite.principal.UserID,
		Kind:      domain.Entry,
		Timestamp: ts.Add(-8 * time.Hour),
		Validity:  domain.ValidityValid,
	}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, mock.Anything).Return(nil, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(last, nil).Once()
	suite.mockEventRepo.On("SaveEvent", ctx, mock.MatchedBy(func(e domain.ClockEvent) bool {
		return e.Kind == domain.Exit && e.Timestamp.Equal(ts)
	})).Return(nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Exit, &ts)

	suite.Require().NoError(err)
	suite.Equal(domain.Exit, event.Kind)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_InvalidKind() {
	ctx := context.Background()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.ClockEventKind("LUNCH"), nil)

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrInvalidKind)
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_ExitWithoutHistory() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, mock.Anything).Return(nil, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(nil, apperrors.ErrNotFound).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Exit, &ts)

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrMissingEntry)
	suite.Empty(suite.auditSvc.actions)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_ConsecutiveExit() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	last := &domain.ClockEvent{
		EventID:   uuid.NewString(),
		UserID:    suite.principal.UserID,
		Kind:      domain.Exit,
		Timestamp: ts.Add(-time.Hour),
		Validity:  domain.ValidityValid,
	}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, mock.Anything).Return(nil, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(last, nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Exit, &ts)

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrDuplicateKind)
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_FullDayAbsenceBlocks() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := domain.DateOf(ts, time.UTC)
	approved := []domain.AbsenceRequest{{
		RequestID: uuid.NewString(),
		UserID:    suite.principal.UserID,
		Type:      domain.Vacation,
		DateStart: date,
		DateEnd:   date,
		Paid:      true,
		Status:    domain.AbsenceApproved,
	}}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, date).Return(approved, nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Entry, &ts)

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrAbsenceBlock)
	suite.mockAbsenceRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_PartialAbsenceBlocksInsideTramo() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	date := domain.DateOf(ts, time.UTC)
	start := domain.ClockTime{Hour: 10, Minute: 0}
	end := domain.ClockTime{Hour: 12, Minute: 0}
	approved := []domain.AbsenceRequest{{
		RequestID: uuid.NewString(),
		UserID:    suite.principal.UserID,
		Type:      domain.MedicalAppointment,
		DateStart: date,
		DateEnd:   date,
		TimeStart: &start,
		TimeEnd:   &end,
		Partial:   true,
		Paid:      true,
		Status:    domain.AbsenceApproved,
	}}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, date).Return(approved, nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Entry, &ts)

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrAbsenceBlock)
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_PartialAbsenceAllowsOutsideTramo() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	date := domain.DateOf(ts, time.UTC)
	start := domain.ClockTime{Hour: 10, Minute: 0}
	end := domain.ClockTime{Hour: 12, Minute: 0}
	approved := []domain.AbsenceRequest{{
		RequestID: uuid.NewString(),
		UserID:    suite.principal.UserID,
		Type:      domain.MedicalAppointment,
		DateStart: date,
		DateEnd:   date,
		TimeStart: &start,
		TimeEnd:   &end,
		Partial:   true,
		Paid:      true,
		Status:    domain.AbsenceApproved,
	}}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, date).Return(approved, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEventRepo.On("SaveEvent", ctx, mock.AnythingOfType("domain.ClockEvent")).Return(nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Entry, &ts)

	suite.Require().NoError(err)
	suite.NotNil(event)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_DuplicateEntryAutoCloses() {
	ctx := context.Background()
	openTS := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	newTS := time.Date(2025, 3, 11, 8, 45, 0, 0, time.UTC)
	last := &domain.ClockEvent{
		EventID:   uuid.NewString(),
		UserID:    suite.principal.UserID,
		Kind:      domain.Entry,
		Timestamp: openTS,
		Validity:  domain.ValidityValid,
	}
	pending := &domain.ManualClockRequest{
		RequestID:   uuid.NewString(),
		UserID:      suite.principal.UserID,
		Kind:        domain.Exit,
		RequestedAt: time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
		Reason:      "forgot to clock out",
		Status:      domain.ManualPending,
	}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, mock.Anything).Return(nil, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(last, nil).Once()
	suite.mockRequestRepo.On("FindResolvableExitBetween", ctx, suite.principal.UserID, openTS, newTS).Return(pending, nil).Once()
	suite.mockEventRepo.On("SaveEventWithAutoClose", ctx,
		mock.MatchedBy(func(closing domain.ClockEvent) bool {
			return closing.Kind == domain.Exit &&
				closing.Timestamp.Equal(pending.RequestedAt) &&
				closing.Validity == domain.ValidityProvisional &&
				closing.IsManual &&
				closing.SourceRequestID != nil && *closing.SourceRequestID == pending.RequestID
		}),
		mock.MatchedBy(func(e domain.ClockEvent) bool {
			return e.Kind == domain.Entry && e.Timestamp.Equal(newTS)
		})).Return(nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Entry, &newTS)

	suite.Require().NoError(err)
	suite.Equal(domain.Entry, event.Kind)
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_AutoCloseFromApprovedRequestIsValid() {
	ctx := context.Background()
	openTS := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	newTS := time.Date(2025, 3, 11, 8, 45, 0, 0, time.UTC)
	last := &domain.ClockEvent{
		EventID:   uuid.NewString(),
		UserID:    suite.principal.UserID,
		Kind:      domain.Entry,
		Timestamp: openTS,
		Validity:  domain.ValidityValid,
	}
	approved := &domain.ManualClockRequest{
		RequestID:   uuid.NewString(),
		UserID:      suite.principal.UserID,
		Kind:        domain.Exit,
		RequestedAt: time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
		Reason:      "forgot to clock out",
		Status:      domain.ManualApproved,
	}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, mock.Anything).Return(nil, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(last, nil).Once()
	suite.mockRequestRepo.On("FindResolvableExitBetween", ctx, suite.principal.UserID, openTS, newTS).Return(approved, nil).Once()
	suite.mockEventRepo.On("SaveEventWithAutoClose", ctx,
		mock.MatchedBy(func(closing domain.ClockEvent) bool {
			return closing.Kind == domain.Exit &&
				closing.Validity == domain.ValidityValid &&
				closing.SourceRequestID != nil && *closing.SourceRequestID == approved.RequestID
		}),
		mock.AnythingOfType("domain.ClockEvent")).Return(nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Entry, &newTS)

	suite.Require().NoError(err)
	suite.Equal(domain.Entry, event.Kind)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestRecordEvent_DuplicateEntryWithoutPendingExit() {
	ctx := context.Background()
	openTS := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	newTS := time.Date(2025, 3, 11, 8, 45, 0, 0, time.UTC)
	last := &domain.ClockEvent{
		EventID:   uuid.NewString(),
		UserID:    suite.principal.UserID,
		Kind:      domain.Entry,
		Timestamp: openTS,
		Validity:  domain.ValidityValid,
	}

	suite.mockAbsenceRepo.On("FindApprovedOnDate", ctx, suite.principal.UserID, mock.Anything).Return(nil, nil).Once()
	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(last, nil).Once()
	suite.mockRequestRepo.On("FindResolvableExitBetween", ctx, suite.principal.UserID, openTS, newTS).Return(nil, nil).Once()

	event, err := suite.service.RecordEvent(ctx, suite.principal, domain.Entry, &newTS)

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrDuplicateKind)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *ClockingServiceTestSuite) TestGetLastEvent_NeverClocked() {
	ctx := context.Background()

	suite.mockEventRepo.On("FindLastEventByUser", ctx, suite.principal.UserID).Return(nil, apperrors.ErrNotFound).Once()

	event, err := suite.service.GetLastEvent(ctx, suite.principal, suite.principal.UserID)

	suite.Require().NoError(err)
	suite.Nil(event)
}

func (suite *ClockingServiceTestSuite) TestGetLastEvent_OtherUserForbidden() {
	ctx := context.Background()

	event, err := suite.service.GetLastEvent(ctx, suite.principal, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ClockingServiceTestSuite) TestGetLastEvent_ManagerSeesOthers() {
	ctx := context.Background()
	manager := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleManager}
	target := uuid.NewString()
	last := &domain.ClockEvent{EventID: uuid.NewString(), UserID: target, Kind: domain.Entry}

	suite.mockEventRepo.On("FindLastEventByUser", ctx, target).Return(last, nil).Once()

	event, err := suite.service.GetLastEvent(ctx, manager, target)

	suite.Require().NoError(err)
	suite.Equal(last, event)
}

func TestClockingService(t *testing.T) {
	suite.Run(t, new(ClockingServiceTestSuite))
}
