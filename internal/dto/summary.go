package dto

import (
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// SummaryParams defines the date range of a summary request.
type SummaryParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// SummaryResponse is the per-day reconciliation of a user's worked and paid
// time. Domain summary types already carry JSON tags, so the response embeds
// them directly.
type SummaryResponse struct {
	UserID       string                `json:"userID"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	Days         []domain.DaySummary   `json:"days"`
	OpenShift    *domain.OpenShiftInfo `json:"openShift,omitempty"`
	FutureEvents []ClockEventResponse  `json:"futureEvents,omitempty"`
}

// WeekSummaryResponse reports one Monday-based week's totals.
type WeekSummaryResponse struct {
	WeekStart    string `json:"weekStart"`
	TotalSeconds int64  `json:"totalSeconds"`
	Hours        int64  `json:"hours"`
	Minutes      int64  `json:"minutes"`
	Exceeded     bool   `json:"exceeded"`
}

// ToSummaryResponse converts a domain.AttendanceSummary to DTO.
func ToSummaryResponse(s *domain.AttendanceSummary, from, to time.Time) SummaryResponse {
	resp := SummaryResponse{
		UserID:    s.UserID,
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
		Days:      s.Days,
		OpenShift: s.OpenShift,
	}
	if len(s.FutureEvents) > 0 {
		resp.FutureEvents = make([]ClockEventResponse, len(s.FutureEvents))
		for i, e := range s.FutureEvents {
			resp.FutureEvents[i] = ToClockEventResponse(&e)
		}
	}
	return resp
}

// ToWeekSummaryResponse converts a domain.WeekSummary to DTO.
func ToWeekSummaryResponse(w *domain.WeekSummary) WeekSummaryResponse {
	return WeekSummaryResponse{
		WeekStart:    w.WeekStart.Format("2006-01-02"),
		TotalSeconds: w.TotalSeconds,
		Hours:        w.Hours,
		Minutes:      w.Minutes,
		Exceeded:     w.Exceeded,
	}
}
