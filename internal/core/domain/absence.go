package domain

import (
	"time"

	"github.com/clockwork-hr/attendance_app/internal/utils/intervals"
)

// AbsenceType classifies an absence request.
type AbsenceType string

const (
	Vacation           AbsenceType = "VACATION"
	MedicalLeave       AbsenceType = "MEDICAL_LEAVE"
	PersonalDay        AbsenceType = "PERSONAL_DAY"
	MedicalAppointment AbsenceType = "MEDICAL_APPOINTMENT"
	OtherAbsence       AbsenceType = "OTHER"
)

// IsValid reports whether the type is one of the closed set.
func (t AbsenceType) IsValid() bool {
	switch t {
	case Vacation, MedicalLeave, PersonalDay, MedicalAppointment, OtherAbsence:
		return true
	}
	return false
}

// AbsenceStatus is the lifecycle state of an absence request. PENDING is
// initial; APPROVED and REJECTED are terminal.
type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "PENDING"
	AbsenceApproved AbsenceStatus = "APPROVED"
	AbsenceRejected AbsenceStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transition.
func (s AbsenceStatus) IsTerminal() bool {
	return s == AbsenceApproved || s == AbsenceRejected
}

// AbsenceRequest is a request for time off, full-day or partial, paid or
// unpaid. Dates are calendar dates (midnight UTC); the hour bounds of a
// partial absence are ClockTimes anchored to the organization zone when the
// request is projected onto concrete days.
//
// Invariants: DateEnd >= DateStart; a partial request carries both hour
// bounds, and on a single-day request TimeEnd > TimeStart; a non-partial
// request carries neither (whole-day semantics, 00:00 of DateStart through
// 24:00 of DateEnd). Requests are never deleted.
type AbsenceRequest struct {
	RequestID  string        `json:"requestID"`
	UserID     string        `json:"userID"`
	Type       AbsenceType   `json:"type"`
	Subtype    *string       `json:"subtype,omitempty"`
	DateStart  time.Time     `json:"dateStart"`
	TimeStart  *ClockTime    `json:"timeStart,omitempty"`
	DateEnd    time.Time     `json:"dateEnd"`
	TimeEnd    *ClockTime    `json:"timeEnd,omitempty"`
	Partial    bool          `json:"partial"`
	Paid       bool          `json:"paid"`
	Status     AbsenceStatus `json:"status"`
	Reason     *string       `json:"reason,omitempty"`
	ApprovedBy *string       `json:"approvedBy,omitempty"`
	AuditFields
}

// CoversDate reports whether the calendar date d falls inside the request's
// date range.
func (a AbsenceRequest) CoversDate(d time.Time) bool {
	return !d.Before(a.DateStart) && !d.After(a.DateEnd)
}

// Window returns the full instant span of the request in the given zone:
// 00:00 of DateStart (or TimeStart) through 24:00 of DateEnd (or TimeEnd).
func (a AbsenceRequest) Window(loc *time.Location) intervals.Interval {
	start := DayStart(a.DateStart, loc)
	end := DayEnd(a.DateEnd, loc)
	if a.Partial {
		if a.TimeStart != nil {
			start = a.TimeStart.On(a.DateStart, loc)
		}
		if a.TimeEnd != nil {
			end = a.TimeEnd.On(a.DateEnd, loc)
		}
	}
	return intervals.Interval{Start: start, End: end}
}

// Tramo returns the portion of the request that falls within the calendar day
// d. For partial absences the hour bounds clip only the first and last day;
// intermediate days are whole days.
func (a AbsenceRequest) Tramo(d time.Time, loc *time.Location) intervals.Interval {
	start := DayStart(d, loc)
	end := DayEnd(d, loc)
	if a.Partial {
		if a.TimeStart != nil && SameDate(d, a.DateStart) {
			start = a.TimeStart.On(d, loc)
		}
		if a.TimeEnd != nil && SameDate(d, a.DateEnd) {
			end = a.TimeEnd.On(d, loc)
		}
	}
	return intervals.Interval{Start: start, End: end}
}

// DurationSeconds is the total instant length of the request's window. It is a
// computed property of the stored fields, never a persisted column.
func (a AbsenceRequest) DurationSeconds(loc *time.Location) int64 {
	return a.Window(loc).Seconds()
}

// BlocksWholeDay reports whether the request, once approved, suspends all
// clocking for a covered day: any paid, non-partial absence does.
func (a AbsenceRequest) BlocksWholeDay() bool {
	return a.Paid && !a.Partial
}
