package mapping

import (
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/models"
)

// ToModelAbsenceRequest converts a domain AbsenceRequest to a model. Hour
// bounds serialize to "HH:MM" strings.
func ToModelAbsenceRequest(d domain.AbsenceRequest) models.AbsenceRequest {
	m := models.AbsenceRequest{
		RequestID:   d.RequestID,
		UserID:      d.UserID,
		Type:        string(d.Type),
		Subtype:     d.Subtype,
		DateStart:   d.DateStart,
		DateEnd:     d.DateEnd,
		Partial:     d.Partial,
		Paid:        d.Paid,
		Status:      string(d.Status),
		Reason:      d.Reason,
		ApprovedBy:  d.ApprovedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.TimeStart != nil {
		s := d.TimeStart.String()
		m.TimeStart = &s
	}
	if d.TimeEnd != nil {
		s := d.TimeEnd.String()
		m.TimeEnd = &s
	}
	return m
}

// ToDomainAbsenceRequest converts a model AbsenceRequest to a domain entity.
// Stored hour bounds are trusted to be well formed; rows with corrupt bounds
// surface as an error.
func ToDomainAbsenceRequest(m models.AbsenceRequest) (domain.AbsenceRequest, error) {
	d := domain.AbsenceRequest{
		RequestID:   m.RequestID,
		UserID:      m.UserID,
		Type:        domain.AbsenceType(m.Type),
		Subtype:     m.Subtype,
		DateStart:   m.DateStart,
		DateEnd:     m.DateEnd,
		Partial:     m.Partial,
		Paid:        m.Paid,
		Status:      domain.AbsenceStatus(m.Status),
		Reason:      m.Reason,
		ApprovedBy:  m.ApprovedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.TimeStart != nil {
		ct, err := domain.ParseClockTime(*m.TimeStart)
		if err != nil {
			return domain.AbsenceRequest{}, err
		}
		d.TimeStart = &ct
	}
	if m.TimeEnd != nil {
		ct, err := domain.ParseClockTime(*m.TimeEnd)
		if err != nil {
			return domain.AbsenceRequest{}, err
		}
		d.TimeEnd = &ct
	}
	return d, nil
}

// ToDomainAbsenceRequestSlice converts a slice of model requests to domain
func ToDomainAbsenceRequestSlice(ms []models.AbsenceRequest) ([]domain.AbsenceRequest, error) {
	ds := make([]domain.AbsenceRequest, len(ms))
	for i, m := range ms {
		d, err := ToDomainAbsenceRequest(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
