package domain

import "time"

// BlockMark is one endpoint of a worked block as rendered in a day summary.
type BlockMark struct {
	Timestamp time.Time `json:"timestamp"`
	IsManual  bool      `json:"isManual"`
}

// BlockAnomaly labels an irregular block in a day summary.
type BlockAnomaly string

const (
	AnomalyEntryWithoutExit BlockAnomaly = "ENTRY_WITHOUT_EXIT"
	AnomalyExitWithoutEntry BlockAnomaly = "EXIT_WITHOUT_ENTRY"
	AnomalyNegativeDuration BlockAnomaly = "NEGATIVE_DURATION"
	AnomalyOpenShift        BlockAnomaly = "OPEN_SHIFT"
	AnomalyPendingApproval  BlockAnomaly = "PENDING_APPROVAL"
)

// AbsenceBlockDetail annotates a summary block that stems from an approved
// absence rather than from clock events.
type AbsenceBlockDetail struct {
	Type    AbsenceType `json:"type"`
	Subtype *string     `json:"subtype,omitempty"`
	Partial bool        `json:"partial"`
	Paid    bool        `json:"paid"`
	// PaidSeconds is the portion of this absence actually credited to the
	// day, i.e. its tramo intersected with the day's gaps.
	PaidSeconds int64 `json:"paidSeconds"`
}

// SummaryBlock is one row of a day's reconstruction: a paired worked block, an
// anomalous unpaired mark, or an absence annotation.
type SummaryBlock struct {
	Entry           *BlockMark          `json:"entry,omitempty"`
	Exit            *BlockMark          `json:"exit,omitempty"`
	DurationSeconds *int64              `json:"durationSeconds,omitempty"`
	Anomaly         *BlockAnomaly       `json:"anomaly,omitempty"`
	Absence         *AbsenceBlockDetail `json:"absence,omitempty"`
}

// DaySummary is the reconciled worked/paid-time picture of one calendar day.
// TotalSeconds = WorkedSeconds + PaidAbsenceSeconds.
type DaySummary struct {
	Date               time.Time      `json:"date"`
	WorkedSeconds      int64          `json:"workedSeconds"`
	PaidAbsenceSeconds int64          `json:"paidAbsenceSeconds"`
	TotalSeconds       int64          `json:"totalSeconds"`
	Blocks             []SummaryBlock `json:"blocks"`
	OpenShift          bool           `json:"openShift"`
}

// OpenShiftInfo describes a still-open shift detected while summarizing.
type OpenShiftInfo struct {
	Since    time.Time `json:"since"`
	IsManual bool      `json:"isManual"`
}

// AttendanceSummary is the full per-day summary of one user, the shape the
// document-export collaborator consumes.
type AttendanceSummary struct {
	UserID       string         `json:"userID"`
	Days         []DaySummary   `json:"days"` // sorted by date ascending
	OpenShift    *OpenShiftInfo `json:"openShift,omitempty"`
	FutureEvents []ClockEvent   `json:"futureEvents,omitempty"`
}

// WeekSummary aggregates one Monday-based week of day totals.
type WeekSummary struct {
	WeekStart    time.Time `json:"weekStart"`
	TotalSeconds int64     `json:"totalSeconds"`
	Hours        int64     `json:"hours"`
	Minutes      int64     `json:"minutes"`
	Exceeded     bool      `json:"exceeded"` // above the 40-hour legal week
}
