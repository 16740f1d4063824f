package domain

import "time"

// HolidayScope is the administrative reach of a calendar mark.
type HolidayScope string

const (
	ScopeNational HolidayScope = "NATIONAL"
	ScopeRegional HolidayScope = "REGIONAL"
	ScopeLocal    HolidayScope = "LOCAL"
)

// Holiday is one non-working calendar date. A NATIONAL holiday applies to
// everyone; REGIONAL and LOCAL ones apply only to users whose region or
// locality matches.
type Holiday struct {
	HolidayID string       `json:"holidayID"`
	Date      time.Time    `json:"date"`
	Name      string       `json:"name"`
	Scope     HolidayScope `json:"scope"`
	Region    *string      `json:"region,omitempty"`
	Locality  *string      `json:"locality,omitempty"`
}

// CalendarEventKind classifies an entry of a user's merged calendar view.
type CalendarEventKind string

const (
	EventHoliday CalendarEventKind = "HOLIDAY"
	EventAbsence CalendarEventKind = "ABSENCE"
)

// CalendarEvent is one day-entry of the merged holidays + absences calendar.
type CalendarEvent struct {
	Date    time.Time         `json:"date"`
	Title   string            `json:"title"`
	Kind    CalendarEventKind `json:"kind"`
	Status  *AbsenceStatus    `json:"status,omitempty"` // only for absence entries
	Scope   *HolidayScope     `json:"scope,omitempty"`  // only for holiday entries
	Absence *AbsenceType      `json:"absenceType,omitempty"`
}
