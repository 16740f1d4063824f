package services

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// CalendarSvc merges holidays and absences into a per-user calendar view and
// manages holiday definitions.
type CalendarSvc interface {
	// GetCalendar returns the user's merged holiday + absence calendar for
	// [from, to].
	GetCalendar(ctx context.Context, principal domain.Principal, userID string, from, to time.Time) ([]domain.CalendarEvent, error)

	// CreateHoliday registers a holiday definition.
	CreateHoliday(ctx context.Context, principal domain.Principal, req dto.CreateHolidayRequest) (*domain.Holiday, error)

	// DeleteHoliday removes a holiday definition.
	DeleteHoliday(ctx context.Context, principal domain.Principal, holidayID string) error

	// CountDays counts the days an absence request spans under a rule's
	// day-counting policy.
	CountDays(ctx context.Context, userID string, from, to time.Time, counting domain.DayCounting) (int, error)
}

// AgreementSvc manages labor agreements and resolves the rule governing an
// absence request.
type AgreementSvc interface {
	// CreateAgreement persists an agreement with its rules.
	CreateAgreement(ctx context.Context, principal domain.Principal, req dto.CreateAgreementRequest) (*domain.Agreement, error)

	// AssignAgreement links a user to an agreement.
	AssignAgreement(ctx context.Context, principal domain.Principal, req dto.AssignAgreementRequest) error

	// ResolveRule returns the rule governing the user's absence type on date
	// d, or nil when no agreement or rule applies.
	ResolveRule(ctx context.Context, userID string, absenceType domain.AbsenceType, d time.Time) (*domain.AbsenceRule, error)
}
