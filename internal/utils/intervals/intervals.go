// Package intervals implements the pure time-interval algebra used by the
// attendance summarizer: merging worked intervals, computing the uncovered gaps
// of a day, intersecting absence tramos with those gaps and summing durations.
//
// All endpoints are zone-aware instants that must already be normalized to the
// organization's reference zone before entering this package. Intervals are
// half-open [Start, End); an interval with End <= Start is empty. No function
// mutates its input.
package intervals

import (
	"sort"
	"time"
)

// Interval is a half-open span of time [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsEmpty reports whether the interval covers no time at all.
func (iv Interval) IsEmpty() bool {
	return !iv.End.After(iv.Start)
}

// Seconds returns the whole-second length of the interval, zero when empty.
func (iv Interval) Seconds() int64 {
	if iv.IsEmpty() {
		return 0
	}
	return int64(iv.End.Sub(iv.Start) / time.Second)
}

// Contains reports whether the instant t falls inside [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Merge coalesces overlapping or touching intervals into a minimal sorted,
// non-overlapping cover. Empty intervals are discarded.
func Merge(ivs []Interval) []Interval {
	clean := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.IsEmpty() {
			clean = append(clean, iv)
		}
	}
	if len(clean) == 0 {
		return nil
	}
	sort.Slice(clean, func(i, j int) bool { return clean[i].Start.Before(clean[j].Start) })

	merged := []Interval{clean[0]}
	for _, iv := range clean[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Gaps returns the complement of the merged occupied intervals within
// [dayStart, dayEnd). Occupied time outside the window is clipped away.
func Gaps(occupied []Interval, dayStart, dayEnd time.Time) []Interval {
	if !dayEnd.After(dayStart) {
		return nil
	}
	var gaps []Interval
	cursor := dayStart
	for _, iv := range Merge(occupied) {
		if !iv.End.After(dayStart) || !iv.Start.Before(dayEnd) {
			continue
		}
		start := iv.Start
		if start.Before(dayStart) {
			start = dayStart
		}
		if start.After(cursor) {
			gaps = append(gaps, Interval{Start: cursor, End: start})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}
	if cursor.Before(dayEnd) {
		gaps = append(gaps, Interval{Start: cursor, End: dayEnd})
	}
	return gaps
}

// Intersect returns the overlap of a and b. The boolean is false when the
// intervals do not overlap (touching boundaries do not count as overlap).
func Intersect(a, b Interval) (Interval, bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	iv := Interval{Start: start, End: end}
	if iv.IsEmpty() {
		return Interval{}, false
	}
	return iv, true
}

// SumSeconds merges the intervals and returns the total covered seconds, so
// overlapping inputs are never double-counted.
func SumSeconds(ivs []Interval) int64 {
	var total int64
	for _, iv := range Merge(ivs) {
		total += iv.Seconds()
	}
	return total
}
