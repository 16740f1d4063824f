package repositories

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AbsenceFilter narrows absence listings. Zero values mean "no filter".
type AbsenceFilter struct {
	UserID string
	Status *domain.AbsenceStatus
	Type   *domain.AbsenceType
	From   *time.Time // requests whose range ends on or after From
	To     *time.Time // requests whose range starts on or before To
}

// AbsenceReader defines read operations over absence requests.
type AbsenceReader interface {
	// FindAbsenceByID returns a request or apperrors.ErrNotFound.
	FindAbsenceByID(ctx context.Context, requestID string) (*domain.AbsenceRequest, error)

	// ListAbsences returns requests matching the filter ordered by DateStart
	// descending, with cursor pagination.
	ListAbsences(ctx context.Context, filter AbsenceFilter, limit int, nextToken *string) ([]domain.AbsenceRequest, *string, error)

	// FindOverlappingCandidates returns the user's PENDING and APPROVED
	// requests whose date range intersects [dateStart, dateEnd], excluding
	// excludeID when non-empty. Hour-level tie-breaking is the engine's job;
	// this query filters by dates only.
	FindOverlappingCandidates(ctx context.Context, userID string, dateStart, dateEnd time.Time, excludeID string) ([]domain.AbsenceRequest, error)

	// FindApprovedOnDate returns the user's APPROVED requests covering the
	// calendar date d.
	FindApprovedOnDate(ctx context.Context, userID string, d time.Time) ([]domain.AbsenceRequest, error)

	// FindApprovedByUser returns all of the user's APPROVED requests ordered
	// by DateStart ascending.
	FindApprovedByUser(ctx context.Context, userID string) ([]domain.AbsenceRequest, error)

	// FindByUserInRange returns the user's requests (any status) whose date
	// range intersects [from, to], ordered by DateStart ascending.
	FindByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.AbsenceRequest, error)
}

// AbsenceWriter defines write operations over absence requests.
type AbsenceWriter interface {
	// SaveAbsence persists a new PENDING request.
	SaveAbsence(ctx context.Context, request domain.AbsenceRequest) error

	// UpdateAbsence updates a PENDING request's editable fields.
	UpdateAbsence(ctx context.Context, request domain.AbsenceRequest) error

	// ApproveWithConsumption flips the request to APPROVED and, when debit is
	// non-nil, locks the balance row, re-checks availability against
	// requestedDays and appends the APPROVAL movement, all within one
	// storage transaction. Returns apperrors.ErrAlreadyResolved when the
	// request is no longer PENDING and apperrors.ErrInsufficientBalance when
	// the locked balance cannot cover the debit.
	ApproveWithConsumption(ctx context.Context, requestID, approverID string, approvedAt time.Time, debit *BalanceDebit) error

	// Reject flips the request to REJECTED. Returns
	// apperrors.ErrAlreadyResolved when the request is no longer PENDING.
	Reject(ctx context.Context, requestID, approverID string, rejectedAt time.Time) error
}

// BalanceDebit describes the ledger write performed atomically with an
// absence approval.
type BalanceDebit struct {
	UserID        string
	Type          domain.AbsenceType
	Year          int
	RequestedDays decimal.Decimal
	Reference     string
}

// AbsenceRepositoryFacade combines all absence repository interfaces.
type AbsenceRepositoryFacade interface {
	AbsenceReader
	AbsenceWriter
}
