package services

import (
	"context"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// ManualRequestReaderSvc defines read operations for manual request data
type ManualRequestReaderSvc interface {
	// GetRequestByID retrieves a specific manual clock request.
	GetRequestByID(ctx context.Context, principal domain.Principal, requestID string) (*domain.ManualClockRequest, error)

	// ListRequests retrieves a paginated list of manual requests.
	ListRequests(ctx context.Context, principal domain.Principal, params dto.ListManualRequestsParams) (*dto.ListManualRequestsResponse, error)
}

// ManualRequestWriterSvc defines write operations for manual request data
type ManualRequestWriterSvc interface {
	// CreateRequest validates and persists a PENDING correction request for
	// the principal. The requested timestamp must be in the past.
	CreateRequest(ctx context.Context, principal domain.Principal, req dto.CreateManualRequestRequest, originIP string) (*domain.ManualClockRequest, error)

	// ResolveRequest approves or rejects a PENDING request. Approval
	// synthesizes the manual clock event in the same transaction.
	ResolveRequest(ctx context.Context, principal domain.Principal, requestID string, req dto.ResolveManualRequestRequest) (*domain.ManualClockRequest, error)
}

// ManualRequestSvcFacade combines all manual request service interfaces
type ManualRequestSvcFacade interface {
	ManualRequestReaderSvc
	ManualRequestWriterSvc
}
