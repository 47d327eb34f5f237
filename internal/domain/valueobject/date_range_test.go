package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) DateRange {
	t.Helper()
	r, err := NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	start := day(2030, time.March, 10)

	t.Run("valid range", func(t *testing.T) {
		r, err := NewDateRange(start, start.Add(3*Day))
		require.NoError(t, err)
		assert.Equal(t, 3, r.NumberOfNights())
	})

	t.Run("end equal to start", func(t *testing.T) {
		_, err := NewDateRange(start, start)
		assert.ErrorIs(t, err, domainerror.ErrInvalidRange)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange(start, start.Add(-Day))
		assert.ErrorIs(t, err, domainerror.ErrInvalidRange)
	})

	t.Run("zero time", func(t *testing.T) {
		_, err := NewDateRange(time.Time{}, start)
		assert.ErrorIs(t, err, domainerror.ErrInvalidDate)
	})

	t.Run("normalizes to UTC", func(t *testing.T) {
		doha := time.FixedZone("AST", 3*3600)
		r := mustRange(t, time.Date(2030, 3, 10, 3, 0, 0, 0, doha), time.Date(2030, 3, 12, 3, 0, 0, 0, doha))
		assert.Equal(t, time.UTC, r.Start().Location())
		assert.Equal(t, start, r.Start())
	})
}

func TestDateRange_NumberOfNightsRoundsUp(t *testing.T) {
	start := day(2030, time.March, 10)
	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "one hour", end: start.Add(time.Hour), want: 1},
		{name: "exactly one day", end: start.Add(Day), want: 1},
		{name: "one day and a minute", end: start.Add(Day + time.Minute), want: 2},
		{name: "one week", end: start.Add(7 * Day), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRange(t, start, tt.end)
			assert.Equal(t, tt.want, r.NumberOfNights())
			assert.GreaterOrEqual(t, r.NumberOfNights(), 1)
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	base := mustRange(t, day(2030, 5, 10), day(2030, 5, 15))
	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "inside", other: mustRange(t, day(2030, 5, 11), day(2030, 5, 12)), want: true},
		{name: "straddles start", other: mustRange(t, day(2030, 5, 8), day(2030, 5, 11)), want: true},
		{name: "straddles end", other: mustRange(t, day(2030, 5, 14), day(2030, 5, 20)), want: true},
		{name: "check-out on check-in day", other: mustRange(t, day(2030, 5, 5), day(2030, 5, 10)), want: false},
		{name: "check-in on check-out day", other: mustRange(t, day(2030, 5, 15), day(2030, 5, 18)), want: false},
		{name: "disjoint", other: mustRange(t, day(2030, 6, 1), day(2030, 6, 3)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestDateRange_TimeQueries(t *testing.T) {
	r := mustRange(t, day(2030, 5, 10), day(2030, 5, 15))

	assert.True(t, r.IsInFutureAt(day(2030, 5, 1)))
	assert.False(t, r.IsInPastAt(day(2030, 5, 1)))
	assert.True(t, r.IsCurrentAt(day(2030, 5, 12)))
	assert.True(t, r.IsCurrentAt(day(2030, 5, 15)))
	assert.True(t, r.IsInPastAt(day(2030, 5, 16)))
	assert.Equal(t, 9, r.DaysUntilStart(day(2030, 5, 1)))
	assert.Equal(t, 10, r.DaysUntilStart(day(2030, 4, 30).Add(time.Hour)))
	assert.Negative(t, r.DaysUntilStart(day(2030, 5, 12)))

	assert.True(t, r.Contains(day(2030, 5, 10)))
	assert.False(t, r.Contains(day(2030, 5, 16)))
	assert.True(t, r.ContainsRange(mustRange(t, day(2030, 5, 11), day(2030, 5, 15))))
	assert.False(t, r.ContainsRange(mustRange(t, day(2030, 5, 11), day(2030, 5, 16))))
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2030-05-10", "2030-05-13")
	require.NoError(t, err)
	assert.Equal(t, 3, r.NumberOfNights())

	r, err = ParseDateRange("2030-05-10T14:00:00Z", "2030-05-11T11:00:00+00:00")
	require.NoError(t, err)
	assert.Equal(t, 1, r.NumberOfNights())

	_, err = ParseDateRange("10/05/2030", "2030-05-13")
	assert.ErrorIs(t, err, domainerror.ErrInvalidDate)
}

func TestDateRange_JSON(t *testing.T) {
	r := mustRange(t, day(2030, 5, 10), day(2030, 5, 13))
	assert.True(t, r.Equals(mustRange(t, day(2030, 5, 10), day(2030, 5, 13))))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startDate":"2030-05-10T00:00:00Z","endDate":"2030-05-13T00:00:00Z","numberOfNights":3}`, string(data))
}
