package mapping

import (
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/models"
)

// ToModelHoliday converts a domain Holiday to its storage model.
func ToModelHoliday(d domain.Holiday) models.Holiday {
	return models.Holiday{
		HolidayID: d.HolidayID,
		Date:      d.Date,
		Name:      d.Name,
		Scope:     string(d.Scope),
		Region:    d.Region,
		Locality:  d.Locality,
	}
}

// ToDomainHoliday converts a storage model Holiday to its domain form.
func ToDomainHoliday(m models.Holiday) domain.Holiday {
	return domain.Holiday{
		HolidayID: m.HolidayID,
		Date:      m.Date,
		Name:      m.Name,
		Scope:     domain.HolidayScope(m.Scope),
		Region:    m.Region,
		Locality:  m.Locality,
	}
}

// ToDomainHolidaySlice converts a slice of storage model Holidays.
func ToDomainHolidaySlice(ms []models.Holiday) []domain.Holiday {
	ds := make([]domain.Holiday, 0, len(ms))
	for _, m := range ms {
		ds = append(ds, ToDomainHoliday(m))
	}
	return ds
}
