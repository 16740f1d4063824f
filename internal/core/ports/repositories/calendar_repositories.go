package repositories

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// CalendarReader defines read operations over holidays and calendar events.
type CalendarReader interface {
	// FindHolidaysBetween returns holidays applicable to the user between
	// from and to inclusive. Scoping by region and locality against the
	// user's location happens in the query.
	FindHolidaysBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Holiday, error)

	// IsHoliday reports whether d is a holiday for the user.
	IsHoliday(ctx context.Context, userID string, d time.Time) (bool, error)
}

// CalendarWriter defines write operations over holidays.
type CalendarWriter interface {
	// SaveHoliday persists a holiday definition.
	SaveHoliday(ctx context.Context, holiday domain.Holiday) error

	// DeleteHoliday removes a holiday or returns apperrors.ErrNotFound.
	DeleteHoliday(ctx context.Context, holidayID string) error
}

// CalendarRepositoryFacade combines all calendar repository interfaces.
type CalendarRepositoryFacade interface {
	CalendarReader
	CalendarWriter
}
