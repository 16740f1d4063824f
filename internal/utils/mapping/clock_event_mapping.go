package mapping

import (
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/models"
)

// ToModelClockEvent converts a domain ClockEvent to a model ClockEvent
func ToModelClockEvent(d domain.ClockEvent) models.ClockEvent {
	return models.ClockEvent{
		EventID:         d.EventID,
		UserID:          d.UserID,
		Kind:            string(d.Kind),
		Timestamp:       d.Timestamp,
		IsManual:        d.IsManual,
		Validity:        string(d.Validity),
		SourceRequestID: d.SourceRequestID,
		ContentHash:     d.ContentHash,
		Reason:          d.Reason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClockEvent converts a model ClockEvent to a domain ClockEvent
func ToDomainClockEvent(m models.ClockEvent) domain.ClockEvent {
	return domain.ClockEvent{
		EventID:         m.EventID,
		UserID:          m.UserID,
		Kind:            domain.ClockEventKind(m.Kind),
		Timestamp:       m.Timestamp,
		IsManual:        m.IsManual,
		Validity:        domain.ClockEventValidity(m.Validity),
		SourceRequestID: m.SourceRequestID,
		ContentHash:     m.ContentHash,
		Reason:          m.Reason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClockEventSlice converts a slice of model ClockEvents to domain
func ToDomainClockEventSlice(ms []models.ClockEvent) []domain.ClockEvent {
	ds := make([]domain.ClockEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClockEvent(m)
	}
	return ds
}

// ToModelManualClockRequest converts a domain ManualClockRequest to a model
func ToModelManualClockRequest(d domain.ManualClockRequest) models.ManualClockRequest {
	return models.ManualClockRequest{
		RequestID:       d.RequestID,
		UserID:          d.UserID,
		Kind:            string(d.Kind),
		RequestedAt:     d.RequestedAt,
		Reason:          d.Reason,
		Status:          string(d.Status),
		ResolvedBy:      d.ResolvedBy,
		ResolvedAt:      d.ResolvedAt,
		RejectionReason: d.RejectionReason,
		OriginIP:        d.OriginIP,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainManualClockRequest converts a model ManualClockRequest to a domain
func ToDomainManualClockRequest(m models.ManualClockRequest) domain.ManualClockRequest {
	return domain.ManualClockRequest{
		RequestID:       m.RequestID,
		UserID:          m.UserID,
		Kind:            domain.ClockEventKind(m.Kind),
		RequestedAt:     m.RequestedAt,
		Reason:          m.Reason,
		Status:          domain.ManualRequestStatus(m.Status),
		ResolvedBy:      m.ResolvedBy,
		ResolvedAt:      m.ResolvedAt,
		RejectionReason: m.RejectionReason,
		OriginIP:        m.OriginIP,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainManualClockRequestSlice converts a slice of model requests to domain
func ToDomainManualClockRequestSlice(ms []models.ManualClockRequest) []domain.ManualClockRequest {
	ds := make([]domain.ManualClockRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainManualClockRequest(m)
	}
	return ds
}
