package pgsql

import (
	"context"
	"fmt"

	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	"github.com/clockwork-hr/attendance_app/internal/models"
	"github.com/clockwork-hr/attendance_app/internal/utils/mapping"
)

type PgxCalendarRepository struct {
	BaseRepository
}

func newPgxCalendarRepository(pool *pgxpool.Pool) portsrepo.CalendarRepositoryFacade {
	return &PgxCalendarRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CalendarRepositoryFacade = (*PgxCalendarRepository)(nil)

// holidayScopeFilter joins calendar_marks against the user's location so a
// NATIONAL mark always applies while REGIONAL and LOCAL marks apply only when
// the user's region or locality matches.
const holidayScopeFilter = `
	(cm.scope = 'NATIONAL'
	 OR (cm.scope = 'REGIONAL' AND cm.region = u.region)
	 OR (cm.scope = 'LOCAL' AND cm.locality = u.locality))
`

func (r *PgxCalendarRepository) FindHolidaysBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Holiday, error) {
	query := `
		SELECT cm.holiday_id, cm.date, cm.name, cm.scope, cm.region, cm.locality
		FROM calendar_marks cm
		JOIN users u ON u.user_id = $1
		WHERE cm.date >= $2 AND cm.date <= $3 AND ` + holidayScopeFilter + `
		ORDER BY cm.date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var ms []models.Holiday
	for rows.Next() {
		var m models.Holiday
		if err := rows.Scan(&m.HolidayID, &m.Date, &m.Name, &m.Scope, &m.Region, &m.Locality); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return mapping.ToDomainHolidaySlice(ms), nil
}

func (r *PgxCalendarRepository) IsHoliday(ctx context.Context, userID string, d time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM calendar_marks cm
			JOIN users u ON u.user_id = $1
			WHERE cm.date = $2 AND ` + holidayScopeFilter + `
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, d).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return exists, nil
}

func (r *PgxCalendarRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	m := mapping.ToModelHoliday(holiday)
	query := `
		INSERT INTO calendar_marks (holiday_id, date, name, scope, region, locality)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.HolidayID, m.Date, m.Name, m.Scope, m.Region, m.Locality)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: holiday on %s already defined", apperrors.ErrDuplicate, holiday.Date.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save holiday: %w", err)
	}
	return nil
}

func (r *PgxCalendarRepository) DeleteHoliday(ctx context.Context, holidayID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM calendar_marks WHERE holiday_id = $1;`, holidayID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday %s: %w", holidayID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
