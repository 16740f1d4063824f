package repositories

import (
	"context"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceReader defines read operations over absence balances.
type BalanceReader interface {
	// FindBalance returns the balance row for (user, type, year) or
	// apperrors.ErrNotFound.
	FindBalance(ctx context.Context, userID string, absenceType domain.AbsenceType, year int) (*domain.AbsenceBalance, error)

	// ListBalancesByUser returns all of the user's balances for a year.
	ListBalancesByUser(ctx context.Context, userID string, year int) ([]domain.AbsenceBalance, error)

	// ListMovements returns the movements of one balance ordered by
	// CreatedAt descending, with cursor pagination.
	ListMovements(ctx context.Context, balanceID string, limit int, nextToken *string) ([]domain.BalanceMovement, *string, error)
}

// BalanceWriter defines write operations over absence balances. Every method
// that changes a balance also appends the corresponding movement inside the
// same storage transaction, so the ledger always explains the row.
type BalanceWriter interface {
	// Allocate creates the balance row if missing and adds days to
	// Allocated, recording an ALLOCATION movement.
	Allocate(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID string) (*domain.AbsenceBalance, error)

	// CarryOver adds days to CarryOver, recording a CARRY_OVER movement.
	CarryOver(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID string) (*domain.AbsenceBalance, error)

	// Adjust adds delta (possibly negative) to Allocated, recording an
	// ADJUSTMENT movement. Returns apperrors.ErrWouldGoNegative when the
	// adjustment would push Available below zero.
	Adjust(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, delta decimal.Decimal, actorID, reason string) (*domain.AbsenceBalance, error)

	// Reverse credits days back to the balance (decrements Spent),
	// recording a REVERSAL movement referencing the absence request.
	Reverse(ctx context.Context, userID string, absenceType domain.AbsenceType, year int, days decimal.Decimal, actorID, requestID string) (*domain.AbsenceBalance, error)
}

// BalanceRepositoryFacade combines all balance repository interfaces.
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
