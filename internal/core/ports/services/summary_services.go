package services

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// SummarySvc reconstructs worked and paid time per day from clock events and
// approved absences.
type SummarySvc interface {
	// SummarizeUser builds the per-day reconciliation over the user's whole
	// clocking history.
	SummarizeUser(ctx context.Context, principal domain.Principal, userID string) (*domain.AttendanceSummary, error)

	// SummarizeRange builds the per-day reconciliation for [from, to].
	SummarizeRange(ctx context.Context, principal domain.Principal, userID string, from, to time.Time) (*domain.AttendanceSummary, error)

	// SummarizeWeek aggregates the Monday-based week containing ref.
	SummarizeWeek(ctx context.Context, principal domain.Principal, userID string, ref time.Time) (*domain.WeekSummary, error)

	// ExportCSV renders the summary for [from, to] as CSV rows.
	ExportCSV(ctx context.Context, principal domain.Principal, userID string, from, to time.Time) ([]byte, error)
}
