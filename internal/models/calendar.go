package models

import "time"

// Holiday represents a row of the calendar_marks table.
type Holiday struct {
	HolidayID string    `json:"holidayID"`
	Date      time.Time `json:"date"`
	Name      string    `json:"name"`
	Scope     string    `json:"scope"`
	Region    *string   `json:"region"`
	Locality  *string   `json:"locality"`
}
