package intervals_test

import (
	"testing"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/utils/intervals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2024, 7, 1, h, m, 0, 0, time.UTC)
}

func iv(sh, sm, eh, em int) intervals.Interval {
	return intervals.Interval{Start: at(sh, sm), End: at(eh, em)}
}

func TestMergeCoalescesOverlaps(t *testing.T) {
	merged := intervals.Merge([]intervals.Interval{
		iv(13, 0, 14, 0),
		iv(9, 0, 11, 0),
		iv(10, 30, 12, 0),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, iv(9, 0, 12, 0), merged[0])
	assert.Equal(t, iv(13, 0, 14, 0), merged[1])
}

func TestMergeTouchingIntervalsJoin(t *testing.T) {
	merged := intervals.Merge([]intervals.Interval{iv(9, 0, 12, 0), iv(12, 0, 15, 0)})
	require.Len(t, merged, 1)
	assert.Equal(t, iv(9, 0, 15, 0), merged[0])
}

func TestMergeDropsEmptyAndInverted(t *testing.T) {
	merged := intervals.Merge([]intervals.Interval{
		{Start: at(10, 0), End: at(10, 0)},
		{Start: at(12, 0), End: at(11, 0)},
	})
	assert.Empty(t, merged)
}

func TestMergeIsIdempotent(t *testing.T) {
	input := []intervals.Interval{iv(8, 0, 9, 30), iv(9, 0, 10, 0), iv(16, 0, 17, 0)}
	once := intervals.Merge(input)
	twice := intervals.Merge(once)
	assert.Equal(t, once, twice)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	input := []intervals.Interval{iv(13, 0, 14, 0), iv(9, 0, 10, 0)}
	intervals.Merge(input)
	assert.Equal(t, iv(13, 0, 14, 0), input[0])
	assert.Equal(t, iv(9, 0, 10, 0), input[1])
}

func TestGapsComplementWithinDay(t *testing.T) {
	occupied := []intervals.Interval{iv(9, 0, 13, 0), iv(14, 0, 18, 0)}
	gaps := intervals.Gaps(occupied, day, day.Add(24*time.Hour))

	require.Len(t, gaps, 3)
	assert.Equal(t, intervals.Interval{Start: day, End: at(9, 0)}, gaps[0])
	assert.Equal(t, iv(13, 0, 14, 0), gaps[1])
	assert.Equal(t, intervals.Interval{Start: at(18, 0), End: day.Add(24 * time.Hour)}, gaps[2])
}

func TestGapsEmptyOccupiedIsWholeDay(t *testing.T) {
	gaps := intervals.Gaps(nil, day, day.Add(24*time.Hour))
	require.Len(t, gaps, 1)
	assert.Equal(t, int64(86400), gaps[0].Seconds())
}

func TestGapsClipOccupiedOutsideWindow(t *testing.T) {
	occupied := []intervals.Interval{{Start: day.Add(-2 * time.Hour), End: at(1, 0)}}
	gaps := intervals.Gaps(occupied, day, day.Add(24*time.Hour))
	require.Len(t, gaps, 1)
	assert.Equal(t, at(1, 0), gaps[0].Start)
}

func TestGapsPlusOccupiedCoverDay(t *testing.T) {
	occupied := []intervals.Interval{iv(8, 15, 12, 45), iv(12, 30, 13, 0), iv(15, 0, 19, 10)}
	dayEnd := day.Add(24 * time.Hour)
	gaps := intervals.Gaps(occupied, day, dayEnd)

	total := intervals.SumSeconds(gaps) + intervals.SumSeconds(occupied)
	assert.Equal(t, int64(86400), total)
}

func TestIntersect(t *testing.T) {
	got, ok := intervals.Intersect(iv(9, 0, 12, 30), iv(12, 0, 15, 0))
	require.True(t, ok)
	assert.Equal(t, iv(12, 0, 12, 30), got)

	_, ok = intervals.Intersect(iv(9, 0, 12, 0), iv(12, 0, 15, 0))
	assert.False(t, ok, "touching boundaries must not intersect")

	_, ok = intervals.Intersect(iv(9, 0, 10, 0), iv(11, 0, 12, 0))
	assert.False(t, ok)
}

func TestSumSecondsDeduplicatesOverlap(t *testing.T) {
	total := intervals.SumSeconds([]intervals.Interval{iv(9, 0, 11, 0), iv(10, 0, 12, 0)})
	assert.Equal(t, int64(3*3600), total)
}

func TestSumSecondsMatchesPlainSumWithoutOverlaps(t *testing.T) {
	input := []intervals.Interval{iv(9, 0, 10, 0), iv(11, 0, 11, 30)}
	var plain int64
	for _, x := range input {
		plain += x.Seconds()
	}
	assert.Equal(t, plain, intervals.SumSeconds(input))
}

func TestContainsHalfOpen(t *testing.T) {
	span := iv(9, 0, 12, 0)
	assert.True(t, span.Contains(at(9, 0)))
	assert.True(t, span.Contains(at(11, 59)))
	assert.False(t, span.Contains(at(12, 0)))
}
