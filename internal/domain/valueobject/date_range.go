// Package valueobject contains immutable, self-validating domain value objects.
package valueobject

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// Day is the unit used for nights and day counts.
const Day = 24 * time.Hour

// dateLayouts are tried in order by ParseDateRange.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// DateRange is a half-open stay interval with start strictly before end.
type DateRange struct {
	start time.Time
	end   time.Time
}

// DateRangeJSON is the plain projection of DateRange.
type DateRangeJSON struct {
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	NumberOfNights int    `json:"numberOfNights"`
}

// NewDateRange creates a DateRange. Both times are normalized to UTC.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidDate,
			"start and end dates are required",
			domainerror.ErrInvalidDate,
		)
	}

	if !start.Before(end) {
		return DateRange{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidRange,
			fmt.Sprintf("start %s must be before end %s", start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)),
			domainerror.ErrInvalidRange,
		)
	}

	return DateRange{start: start.UTC(), end: end.UTC()}, nil
}

// ParseDateRange parses RFC 3339 timestamps or YYYY-MM-DD dates into a DateRange.
func ParseDateRange(start, end string) (DateRange, error) {
	startTime, err := parseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	endTime, err := parseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(startTime, endTime)
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domainerror.NewValueObjectError(
		domainerror.ErrCodeInvalidDate,
		fmt.Sprintf("cannot parse date %q", value),
		domainerror.ErrInvalidDate,
	)
}

// Start returns the start of the range.
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the end of the range.
func (r DateRange) End() time.Time {
	return r.end
}

// NumberOfNights returns the day difference rounded up.
func (r DateRange) NumberOfNights() int {
	return ceilDays(r.end.Sub(r.start))
}

// Overlaps reports strict interval intersection. Touching endpoints do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && r.end.After(other.start)
}

// Contains reports whether t lies within the range, endpoints included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && !t.After(r.end)
}

// ContainsRange reports whether other lies entirely within the range.
func (r DateRange) ContainsRange(other DateRange) bool {
	return !other.start.Before(r.start) && !other.end.After(r.end)
}

// IsInPast reports whether the range ended before now.
func (r DateRange) IsInPast() bool {
	return r.IsInPastAt(time.Now())
}

// IsInPastAt reports whether the range ended before now.
func (r DateRange) IsInPastAt(now time.Time) bool {
	return r.end.Before(now)
}

// IsInFuture reports whether the range starts after now.
func (r DateRange) IsInFuture() bool {
	return r.IsInFutureAt(time.Now())
}

// IsInFutureAt reports whether the range starts after now.
func (r DateRange) IsInFutureAt(now time.Time) bool {
	return r.start.After(now)
}

// IsCurrent reports whether now lies within the range, endpoints included.
func (r DateRange) IsCurrent() bool {
	return r.IsCurrentAt(time.Now())
}

// IsCurrentAt reports whether now lies within the range, endpoints included.
func (r DateRange) IsCurrentAt(now time.Time) bool {
	return r.Contains(now)
}

// DaysUntilStart returns ceil((start-now)/1 day). It is negative once the range has started.
func (r DateRange) DaysUntilStart(now time.Time) int {
	return ceilDays(r.start.Sub(now))
}

// Equals reports whether both ranges cover the same instants.
func (r DateRange) Equals(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// ToJSON returns the plain projection of the value.
func (r DateRange) ToJSON() DateRangeJSON {
	return DateRangeJSON{
		StartDate:      r.start.Format(time.RFC3339),
		EndDate:        r.end.Format(time.RFC3339),
		NumberOfNights: r.NumberOfNights(),
	}
}

// MarshalJSON implements json.Marshaler.
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToJSON())
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(Day)))
}
