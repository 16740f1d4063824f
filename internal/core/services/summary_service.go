package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/utils/intervals"
)

const legalWeekSeconds = 40 * 3600

// summaryService reconstructs worked and paid time per day from clock events
// and approved absences.
type summaryService struct {
	eventRepo   portsrepo.ClockEventReader
	absenceRepo portsrepo.AbsenceReader
	loc         *time.Location
	workdaySecs int64
	now         func() time.Time
}

// NewSummaryService creates a new SummaryService. fullWorkdayHours is the
// standard workday a full-day paid absence credits.
func NewSummaryService(eventRepo portsrepo.ClockEventReader, absenceRepo portsrepo.AbsenceReader, loc *time.Location, fullWorkdayHours int) portssvc.SummarySvc {
	return &summaryService{
		eventRepo:   eventRepo,
		absenceRepo: absenceRepo,
		loc:         loc,
		workdaySecs: int64(fullWorkdayHours) * 3600,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

// SummarizeUser builds the per-day reconciliation over the user's whole
// clocking history.
func (s *summaryService) SummarizeUser(ctx context.Context, principal domain.Principal, userID string) (*domain.AttendanceSummary, error) {
	if !principal.ActsOnSelf(userID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}

	events, err := s.eventRepo.ListEventsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	absences, err := s.absenceRepo.FindApprovedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	return s.build(userID, events, absences), nil
}

// SummarizeRange builds the per-day reconciliation for [from, to].
func (s *summaryService) SummarizeRange(ctx context.Context, principal domain.Principal, userID string, from, to time.Time) (*domain.AttendanceSummary, error) {
	if !principal.ActsOnSelf(userID) && !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", apperrors.ErrValidation)
	}

	events, err := s.eventRepo.ListEventsByUserBetween(ctx, userID, domain.DayStart(from, s.loc), domain.DayEnd(to, s.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	all, err := s.absenceRepo.FindByUserInRange(ctx, userID, domain.DateOf(from, s.loc), domain.DateOf(to, s.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	absences := make([]domain.AbsenceRequest, 0, len(all))
	for _, a := range all {
		if a.Status == domain.AbsenceApproved {
			absences = append(absences, a)
		}
	}
	summary := s.build(userID, events, absences)
	summary.Days = clipDays(summary.Days, domain.DateOf(from, s.loc), domain.DateOf(to, s.loc))
	return summary, nil
}

// SummarizeWeek aggregates the Monday-based week containing ref.
func (s *summaryService) SummarizeWeek(ctx context.Context, principal domain.Principal, userID string, ref time.Time) (*domain.WeekSummary, error) {
	monday := mondayOf(domain.DateOf(ref, s.loc))
	sunday := monday.AddDate(0, 0, 6)
	summary, err := s.SummarizeRange(ctx, principal, userID, monday, sunday)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, d := range summary.Days {
		total += d.TotalSeconds
	}
	return &domain.WeekSummary{
		WeekStart:    monday,
		TotalSeconds: total,
		Hours:        total / 3600,
		Minutes:      (total % 3600) / 60,
		Exceeded:     total > legalWeekSeconds,
	}, nil
}

// ExportCSV renders the summary for [from, to] as CSV rows, one row per block
// with the day totals repeated alongside.
func (s *summaryService) ExportCSV(ctx context.Context, principal domain.Principal, userID string, from, to time.Time) ([]byte, error) {
	summary, err := s.SummarizeRange(ctx, principal, userID, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"date", "entry", "exit", "block_seconds", "anomaly", "absence_type", "absence_paid_seconds", "worked_seconds", "paid_absence_seconds", "total_seconds"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	for _, day := range summary.Days {
		date := day.Date.Format("2006-01-02")
		rows := day.Blocks
		if len(rows) == 0 {
			rows = []domain.SummaryBlock{{}}
		}
		for _, b := range rows {
			row := []string{date, "", "", "", "", "", "",
				strconv.FormatInt(day.WorkedSeconds, 10),
				strconv.FormatInt(day.PaidAbsenceSeconds, 10),
				strconv.FormatInt(day.TotalSeconds, 10),
			}
			if b.Entry != nil {
				row[1] = b.Entry.Timestamp.In(s.loc).Format("15:04")
			}
			if b.Exit != nil {
				row[2] = b.Exit.Timestamp.In(s.loc).Format("15:04")
			}
			if b.DurationSeconds != nil {
				row[3] = strconv.FormatInt(*b.DurationSeconds, 10)
			}
			if b.Anomaly != nil {
				row[4] = string(*b.Anomaly)
			}
			if b.Absence != nil {
				row[5] = string(b.Absence.Type)
				row[6] = strconv.FormatInt(b.Absence.PaidSeconds, 10)
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write csv: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// build runs the reconstruction over the given events and approved absences.
func (s *summaryService) build(userID string, events []domain.ClockEvent, absences []domain.AbsenceRequest) *domain.AttendanceSummary {
	now := s.now()

	// Future events never enter the reconstruction.
	var past, future []domain.ClockEvent
	for _, e := range events {
		if e.Validity == domain.ValidityInvalidated {
			continue
		}
		if e.Timestamp.After(now) {
			future = append(future, e)
		} else {
			past = append(past, e)
		}
	}
	sort.SliceStable(past, func(i, j int) bool { return past[i].Timestamp.Before(past[j].Timestamp) })

	byDay := make(map[time.Time][]domain.ClockEvent)
	var dates []time.Time
	for _, e := range past {
		d := domain.DateOf(e.Timestamp, s.loc)
		if _, seen := byDay[d]; !seen {
			dates = append(dates, d)
		}
		byDay[d] = append(byDay[d], e)
	}

	// Absence-only days still get a summary row.
	for _, a := range absences {
		for d := a.DateStart; !d.After(a.DateEnd); d = d.AddDate(0, 0, 1) {
			if d.After(domain.DateOf(now, s.loc)) {
				break
			}
			if _, seen := byDay[d]; !seen {
				byDay[d] = nil
				dates = append(dates, d)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	summary := &domain.AttendanceSummary{UserID: userID, FutureEvents: future}
	today := domain.DateOf(now, s.loc)
	lastValidKind := lastCountedKind(past)

	for _, d := range dates {
		day := s.buildDay(d, byDay[d], absences, d.Equal(today) && lastValidKind == domain.Entry)
		summary.Days = append(summary.Days, *day)
		if day.OpenShift {
			for i := len(byDay[d]) - 1; i >= 0; i-- {
				if byDay[d][i].Kind == domain.Entry && byDay[d][i].CountsTowardsTotals() {
					summary.OpenShift = &domain.OpenShiftInfo{Since: byDay[d][i].Timestamp, IsManual: byDay[d][i].IsManual}
					break
				}
			}
		}
	}
	return summary
}

// buildDay reconstructs one calendar day: pair events into blocks, merge the
// worked intervals, then credit paid absence tramos into the remaining gaps.
func (s *summaryService) buildDay(d time.Time, events []domain.ClockEvent, absences []domain.AbsenceRequest, openToday bool) *domain.DaySummary {
	day := &domain.DaySummary{Date: d}
	var worked []intervals.Interval
	var pending *domain.ClockEvent

	flushDangling := func(e domain.ClockEvent, anomaly domain.BlockAnomaly) {
		a := anomaly
		day.Blocks = append(day.Blocks, domain.SummaryBlock{
			Entry:   &domain.BlockMark{Timestamp: e.Timestamp, IsManual: e.IsManual},
			Anomaly: &a,
		})
	}

	for _, e := range events {
		switch e.Kind {
		case domain.Entry:
			if pending != nil {
				flushDangling(*pending, domain.AnomalyEntryWithoutExit)
			}
			ev := e
			pending = &ev
		case domain.Exit:
			if pending == nil {
				a := domain.AnomalyExitWithoutEntry
				day.Blocks = append(day.Blocks, domain.SummaryBlock{
					Exit:    &domain.BlockMark{Timestamp: e.Timestamp, IsManual: e.IsManual},
					Anomaly: &a,
				})
				continue
			}
			block := domain.SummaryBlock{
				Entry: &domain.BlockMark{Timestamp: pending.Timestamp, IsManual: pending.IsManual},
				Exit:  &domain.BlockMark{Timestamp: e.Timestamp, IsManual: e.IsManual},
			}
			secs := int64(e.Timestamp.Sub(pending.Timestamp).Seconds())
			switch {
			case secs < 0:
				a := domain.AnomalyNegativeDuration
				block.Anomaly = &a
			case !pending.CountsTowardsTotals() || !e.CountsTowardsTotals():
				block.DurationSeconds = &secs
				a := domain.AnomalyPendingApproval
				block.Anomaly = &a
			default:
				block.DurationSeconds = &secs
				worked = append(worked, intervals.Interval{Start: pending.Timestamp, End: e.Timestamp})
			}
			day.Blocks = append(day.Blocks, block)
			pending = nil
		}
	}

	if pending != nil {
		if openToday {
			a := domain.AnomalyOpenShift
			day.Blocks = append(day.Blocks, domain.SummaryBlock{
				Entry:   &domain.BlockMark{Timestamp: pending.Timestamp, IsManual: pending.IsManual},
				Anomaly: &a,
			})
			day.OpenShift = true
		} else {
			flushDangling(*pending, domain.AnomalyEntryWithoutExit)
		}
	}

	merged := intervals.Merge(worked)
	day.WorkedSeconds = intervals.SumSeconds(merged)
	gaps := intervals.Gaps(merged, domain.DayStart(d, s.loc), domain.DayEnd(d, s.loc))

	// Paid absence credit: each paid tramo intersected with the gaps, then
	// all pieces unioned so overlapping absences never double-count a minute
	// the employee actually worked.
	var paidPieces []intervals.Interval
	fullDayPaid := false
	for _, a := range absences {
		if !a.CoversDate(d) {
			continue
		}
		tramo := a.Tramo(d, s.loc)
		var credited []intervals.Interval
		if a.Paid {
			for _, g := range gaps {
				if piece, ok := intervals.Intersect(tramo, g); ok {
					credited = append(credited, piece)
				}
			}
			paidPieces = append(paidPieces, credited...)
		}
		if a.BlocksWholeDay() {
			fullDayPaid = true
		}
		day.Blocks = append(day.Blocks, domain.SummaryBlock{
			Absence: &domain.AbsenceBlockDetail{
				Type:        a.Type,
				Subtype:     a.Subtype,
				Partial:     a.Partial,
				Paid:        a.Paid,
				PaidSeconds: intervals.SumSeconds(intervals.Merge(credited)),
			},
		})
	}
	day.PaidAbsenceSeconds = intervals.SumSeconds(intervals.Merge(paidPieces))

	// A full-day paid absence guarantees at least the standard workday. The
	// top-up never reduces a day that already reaches the target.
	if fullDayPaid && day.WorkedSeconds+day.PaidAbsenceSeconds < s.workdaySecs {
		day.PaidAbsenceSeconds += s.workdaySecs - day.WorkedSeconds - day.PaidAbsenceSeconds
	}
	day.TotalSeconds = day.WorkedSeconds + day.PaidAbsenceSeconds
	return day
}

// lastCountedKind returns the kind of the most recent VALID event.
func lastCountedKind(events []domain.ClockEvent) domain.ClockEventKind {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].CountsTowardsTotals() {
			return events[i].Kind
		}
	}
	return ""
}

// mondayOf returns the Monday of the week containing the date d.
func mondayOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// clipDays drops summary days outside [from, to].
func clipDays(days []domain.DaySummary, from, to time.Time) []domain.DaySummary {
	out := days[:0]
	for _, d := range days {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out
}
