package dto

import (
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// CreateHolidayRequest defines the data needed to register a holiday.
type CreateHolidayRequest struct {
	Date     string              `json:"date" binding:"required,datetime=2006-01-02"`
	Name     string              `json:"name" binding:"required"`
	Scope    domain.HolidayScope `json:"scope" binding:"required,oneof=NATIONAL REGIONAL LOCAL"`
	Region   *string             `json:"region" binding:"required_if=Scope REGIONAL"`
	Locality *string             `json:"locality" binding:"required_if=Scope LOCAL"`
}

// CalendarParams defines the range of a calendar query.
type CalendarParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// CalendarEventResponse is one merged calendar entry (holiday or absence).
type CalendarEventResponse struct {
	Date   string                   `json:"date"`
	Title  string                   `json:"title"`
	Kind   domain.CalendarEventKind `json:"kind"`
	Status *domain.AbsenceStatus    `json:"status,omitempty"`
	Scope  *domain.HolidayScope     `json:"scope,omitempty"`
	Type   *domain.AbsenceType      `json:"absenceType,omitempty"`
}

// CalendarResponse wraps the merged calendar of one user.
type CalendarResponse struct {
	Events []CalendarEventResponse `json:"events"`
}

// ToCalendarResponse converts domain.CalendarEvents to a CalendarResponse DTO.
func ToCalendarResponse(events []domain.CalendarEvent) CalendarResponse {
	responses := make([]CalendarEventResponse, len(events))
	for i, e := range events {
		responses[i] = CalendarEventResponse{
			Date:   e.Date.Format("2006-01-02"),
			Title:  e.Title,
			Kind:   e.Kind,
			Status: e.Status,
			Scope:  e.Scope,
			Type:   e.Absence,
		}
	}
	return CalendarResponse{Events: responses}
}
