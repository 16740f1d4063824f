package dto

import (
	"time"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// CreateAbsenceRequest defines the data needed to request time off.
// Dates use YYYY-MM-DD; hour bounds use HH:MM and are required for partial
// requests only.
type CreateAbsenceRequest struct {
	Type      domain.AbsenceType `json:"type" binding:"required,oneof=VACATION MEDICAL_LEAVE PERSONAL_DAY MEDICAL_APPOINTMENT OTHER"`
	Subtype   *string            `json:"subtype"`
	DateStart string             `json:"dateStart" binding:"required,datetime=2006-01-02"`
	DateEnd   string             `json:"dateEnd" binding:"required,datetime=2006-01-02"`
	TimeStart *string            `json:"timeStart" binding:"omitempty,datetime=15:04"`
	TimeEnd   *string            `json:"timeEnd" binding:"omitempty,datetime=15:04"`
	Partial   bool               `json:"partial"`
	Paid      *bool              `json:"paid"` // defaults to true when omitted
	Reason    *string            `json:"reason"`
}

// ToDomain builds the domain request from validated input. Date parsing
// cannot fail after binding, but the hour bounds still need ParseClockTime.
func (r CreateAbsenceRequest) ToDomain(userID string) (domain.AbsenceRequest, error) {
	dateStart, _ := time.Parse("2006-01-02", r.DateStart)
	dateEnd, _ := time.Parse("2006-01-02", r.DateEnd)
	req := domain.AbsenceRequest{
		UserID:    userID,
		Type:      r.Type,
		Subtype:   r.Subtype,
		DateStart: dateStart,
		DateEnd:   dateEnd,
		Partial:   r.Partial,
		Paid:      true,
		Reason:    r.Reason,
	}
	if r.Paid != nil {
		req.Paid = *r.Paid
	}
	if r.TimeStart != nil {
		ct, err := domain.ParseClockTime(*r.TimeStart)
		if err != nil {
			return domain.AbsenceRequest{}, apperrors.ErrValidation
		}
		req.TimeStart = &ct
	}
	if r.TimeEnd != nil {
		ct, err := domain.ParseClockTime(*r.TimeEnd)
		if err != nil {
			return domain.AbsenceRequest{}, apperrors.ErrValidation
		}
		req.TimeEnd = &ct
	}
	return req, nil
}

// ResolveAbsenceRequest defines the approver's decision on an absence.
type ResolveAbsenceRequest struct {
	Approve bool    `json:"approve"`
	Comment *string `json:"comment"`
}

// AbsenceResponse defines the data returned for an absence request.
type AbsenceResponse struct {
	RequestID       string               `json:"requestID"`
	UserID          string               `json:"userID"`
	Type            domain.AbsenceType   `json:"type"`
	Subtype         *string              `json:"subtype,omitempty"`
	DateStart       string               `json:"dateStart"`
	DateEnd         string               `json:"dateEnd"`
	TimeStart       *string              `json:"timeStart,omitempty"`
	TimeEnd         *string              `json:"timeEnd,omitempty"`
	Partial         bool                 `json:"partial"`
	Paid            bool                 `json:"paid"`
	Status          domain.AbsenceStatus `json:"status"`
	Reason          *string              `json:"reason,omitempty"`
	ApprovedBy      *string              `json:"approvedBy,omitempty"`
	DurationSeconds int64                `json:"durationSeconds"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// ListAbsencesParams defines query parameters for listing absences.
type ListAbsencesParams struct {
	PaginationParams
	UserID string                `form:"userID"`
	Status *domain.AbsenceStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Type   *domain.AbsenceType   `form:"type" binding:"omitempty,oneof=VACATION MEDICAL_LEAVE PERSONAL_DAY MEDICAL_APPOINTMENT OTHER"`
	From   *time.Time            `form:"from" time_format:"2006-01-02"`
	To     *time.Time            `form:"to" time_format:"2006-01-02"`
}

// ListAbsencesResponse wraps a page of absence requests.
type ListAbsencesResponse struct {
	Absences  []AbsenceResponse `json:"absences"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToAbsenceResponse converts a domain.AbsenceRequest to AbsenceResponse DTO.
// The duration is computed in the organization zone.
func ToAbsenceResponse(a *domain.AbsenceRequest, loc *time.Location) AbsenceResponse {
	resp := AbsenceResponse{
		RequestID:       a.RequestID,
		UserID:          a.UserID,
		Type:            a.Type,
		Subtype:         a.Subtype,
		DateStart:       a.DateStart.Format("2006-01-02"),
		DateEnd:         a.DateEnd.Format("2006-01-02"),
		Partial:         a.Partial,
		Paid:            a.Paid,
		Status:          a.Status,
		Reason:          a.Reason,
		ApprovedBy:      a.ApprovedBy,
		DurationSeconds: a.DurationSeconds(loc),
		CreatedAt:       a.CreatedAt,
	}
	if a.TimeStart != nil {
		s := a.TimeStart.String()
		resp.TimeStart = &s
	}
	if a.TimeEnd != nil {
		s := a.TimeEnd.String()
		resp.TimeEnd = &s
	}
	return resp
}

// ToListAbsencesResponse converts a slice of domain.AbsenceRequest to DTO.
func ToListAbsencesResponse(absences []domain.AbsenceRequest, nextToken *string, loc *time.Location) ListAbsencesResponse {
	responses := make([]AbsenceResponse, len(absences))
	for i, a := range absences {
		responses[i] = ToAbsenceResponse(&a, loc)
	}
	return ListAbsencesResponse{Absences: responses, NextToken: nextToken}
}
