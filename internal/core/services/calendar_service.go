package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// calendarService merges holidays and absences into per-user calendar views
// and answers day-counting questions for the ledger.
type calendarService struct {
	calendarRepo portsrepo.CalendarRepositoryFacade
	absenceRepo  portsrepo.AbsenceReader
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(calendarRepo portsrepo.CalendarRepositoryFacade, absenceRepo portsrepo.AbsenceReader) portssvc.CalendarSvc {
	return &calendarService{
		calendarRepo: calendarRepo,
		absenceRepo:  absenceRepo,
	}
}

var _ portssvc.CalendarSvc = (*calendarService)(nil)

// GetCalendar returns the user's merged holiday + absence calendar for
// [from, to], one entry per holiday and per absence-covered day.
func (s *calendarService) GetCalendar(ctx context.Context, principal domain.Principal, userID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	if !principal.ActsOnSelf(userID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", apperrors.ErrValidation)
	}

	holidays, err := s.calendarRepo.FindHolidaysBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	absences, err := s.absenceRepo.FindByUserInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}

	var events []domain.CalendarEvent
	for _, h := range holidays {
		scope := h.Scope
		events = append(events, domain.CalendarEvent{
			Date:  h.Date,
			Title: h.Name,
			Kind:  domain.EventHoliday,
			Scope: &scope,
		})
	}
	for _, a := range absences {
		if a.Status == domain.AbsenceRejected {
			continue
		}
		for d := a.DateStart; !d.After(a.DateEnd); d = d.AddDate(0, 0, 1) {
			if d.Before(from) || d.After(to) {
				continue
			}
			status := a.Status
			absenceType := a.Type
			title := string(a.Type)
			if a.Subtype != nil {
				title = title + " (" + *a.Subtype + ")"
			}
			events = append(events, domain.CalendarEvent{
				Date:    d,
				Title:   title,
				Kind:    domain.EventAbsence,
				Status:  &status,
				Absence: &absenceType,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

// CreateHoliday registers a holiday definition. Admin territory.
func (s *calendarService) CreateHoliday(ctx context.Context, principal domain.Principal, req dto.CreateHolidayRequest) (*domain.Holiday, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", apperrors.ErrValidation)
	}

	holiday := domain.Holiday{
		HolidayID: uuid.NewString(),
		Date:      date,
		Name:      req.Name,
		Scope:     req.Scope,
		Region:    req.Region,
		Locality:  req.Locality,
	}
	if err := s.calendarRepo.SaveHoliday(ctx, holiday); err != nil {
		return nil, fmt.Errorf("failed to save holiday: %w", err)
	}
	return &holiday, nil
}

// DeleteHoliday removes a holiday definition.
func (s *calendarService) DeleteHoliday(ctx context.Context, principal domain.Principal, holidayID string) error {
	if principal.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return s.calendarRepo.DeleteHoliday(ctx, holidayID)
}

// CountDays counts the days [from, to] spans under a day-counting policy:
// CALENDAR counts every day inclusive, WORKING counts weekdays that are not
// holidays for the user.
func (s *calendarService) CountDays(ctx context.Context, userID string, from, to time.Time, counting domain.DayCounting) (int, error) {
	if to.Before(from) {
		return 0, fmt.Errorf("%w: range end before start", apperrors.ErrValidation)
	}

	if counting == domain.CountCalendar {
		return int(to.Sub(from).Hours()/24) + 1, nil
	}

	holidays, err := s.calendarRepo.FindHolidaysBetween(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Date.Format("2006-01-02")] = true
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if holidaySet[d.Format("2006-01-02")] {
			continue
		}
		count++
	}
	return count, nil
}
