package services

import (
	"context"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// AbsenceReaderSvc defines read operations for absence request data
type AbsenceReaderSvc interface {
	// GetAbsenceByID retrieves a specific absence request.
	GetAbsenceByID(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceRequest, error)

	// ListAbsences retrieves a paginated list of absence requests.
	ListAbsences(ctx context.Context, principal domain.Principal, params dto.ListAbsencesParams) (*dto.ListAbsencesResponse, error)
}

// AbsenceWriterSvc defines write operations for absence request data
type AbsenceWriterSvc interface {
	// CreateAbsence validates and persists a new PENDING request for the
	// principal, including overlap detection against existing requests.
	CreateAbsence(ctx context.Context, principal domain.Principal, req dto.CreateAbsenceRequest) (*domain.AbsenceRequest, error)

	// UpdateAbsence edits a still-PENDING request, re-running validation.
	UpdateAbsence(ctx context.Context, principal domain.Principal, requestID string, req dto.CreateAbsenceRequest) (*domain.AbsenceRequest, error)

	// ApproveAbsence flips a PENDING request to APPROVED, consuming balance
	// atomically when the type draws from a pool.
	ApproveAbsence(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceRequest, error)

	// RejectAbsence flips a PENDING request to REJECTED. No balance is
	// touched.
	RejectAbsence(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceRequest, error)
}

// AbsenceSvcFacade combines all absence service interfaces
type AbsenceSvcFacade interface {
	AbsenceReaderSvc
	AbsenceWriterSvc
}
