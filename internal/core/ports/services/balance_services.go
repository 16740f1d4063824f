package services

import (
	"context"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/dto"
)

// BalanceReaderSvc defines read operations for balance data
type BalanceReaderSvc interface {
	// GetBalance returns the balance for (user, type, year), synthesizing a
	// zero balance when no row exists yet.
	GetBalance(ctx context.Context, principal domain.Principal, userID string, absenceType domain.AbsenceType, year int) (*domain.AbsenceBalance, error)

	// ListBalances returns all of the user's balances for a year.
	ListBalances(ctx context.Context, principal domain.Principal, userID string, year int) ([]domain.AbsenceBalance, error)

	// ListMovements returns the ledger of one balance.
	ListMovements(ctx context.Context, principal domain.Principal, balanceID string, params dto.PaginationParams) (*dto.ListMovementsResponse, error)

	// PreviewConsumption reports what approving a PENDING absence would cost
	// without committing anything.
	PreviewConsumption(ctx context.Context, principal domain.Principal, requestID string) (*dto.ConsumptionPreviewResponse, error)
}

// BalanceWriterSvc defines write operations for balance data
type BalanceWriterSvc interface {
	// Allocate grants days to a user's pool.
	Allocate(ctx context.Context, principal domain.Principal, req dto.AllocateBalanceRequest) (*domain.AbsenceBalance, error)

	// CarryOver moves unused days into a year's carry-over bucket.
	CarryOver(ctx context.Context, principal domain.Principal, req dto.CarryOverBalanceRequest) (*domain.AbsenceBalance, error)

	// Adjust applies a signed manual correction.
	Adjust(ctx context.Context, principal domain.Principal, req dto.AdjustBalanceRequest) (*domain.AbsenceBalance, error)

	// ReverseConsumption credits back the days consumed by an APPROVED
	// absence, recording a REVERSAL movement.
	ReverseConsumption(ctx context.Context, principal domain.Principal, requestID string) (*domain.AbsenceBalance, error)
}

// BalanceSvcFacade combines all balance service interfaces
type BalanceSvcFacade interface {
	BalanceReaderSvc
	BalanceWriterSvc
}
