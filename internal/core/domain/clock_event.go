package domain

import "time"

// ClockEventKind distinguishes clock-in from clock-out marks.
type ClockEventKind string

const (
	Entry ClockEventKind = "ENTRY"
	Exit  ClockEventKind = "EXIT"
)

// IsValid reports whether the kind is one of the closed set.
func (k ClockEventKind) IsValid() bool {
	return k == Entry || k == Exit
}

// Opposite returns EXIT for ENTRY and vice versa.
func (k ClockEventKind) Opposite() ClockEventKind {
	if k == Entry {
		return Exit
	}
	return Entry
}

// ClockEventValidity is the computation state of a clock event.
//
//	VALID       counts towards totals
//	PROVISIONAL visible but excluded from totals until an admin resolves the
//	            manual request that created it
//	INVALIDATED visible but permanently excluded (rejected manual request);
//	            events are never deleted, only invalidated
type ClockEventValidity string

const (
	ValidityValid       ClockEventValidity = "VALID"
	ValidityProvisional ClockEventValidity = "PROVISIONAL"
	ValidityInvalidated ClockEventValidity = "INVALIDATED"
)

// ClockEvent is a single timestamped ENTRY or EXIT mark for a user. Events are
// append-only: after creation only Validity and SourceRequestID change, and
// only through the manual-correction workflow.
type ClockEvent struct {
	EventID         string             `json:"eventID"`
	UserID          string             `json:"userID"`
	Kind            ClockEventKind     `json:"kind"`
	Timestamp       time.Time          `json:"timestamp"`
	IsManual        bool               `json:"isManual"`
	Validity        ClockEventValidity `json:"validity"`
	SourceRequestID *string            `json:"sourceRequestID,omitempty"` // manual request that produced this event
	ContentHash     string             `json:"contentHash"`
	Reason          *string            `json:"reason,omitempty"` // free text carried over from a manual request
	AuditFields
}

// CountsTowardsTotals reports whether the event participates in worked-time
// sums. Provisional and invalidated events never do.
func (e ClockEvent) CountsTowardsTotals() bool {
	return e.Validity == ValidityValid
}
