package penalty

import (
	"fmt"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Interval is a half-open [Start, End) span of instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Duration returns the interval length in hours.
func (i Interval) Duration() float64 {
	return i.End.Sub(i.Start).Hours()
}

// ShiftInterval resolves a shift's date and time slot into concrete instants.
// An end clock earlier than the start clock rolls over to the next day, so
// 22:00-02:00 on 2024-01-01 ends at 02:00 on 2024-01-02.
func ShiftInterval(date string, slot schedule.TimeSlot) (Interval, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid shift date %q: %w", date, err)
	}

	start, err := clockOffset(slot.Start)
	if err != nil {
		return Interval{}, err
	}
	end, err := clockOffset(slot.End)
	if err != nil {
		return Interval{}, err
	}

	if end < start {
		end += 24 * time.Hour
	}

	return Interval{Start: day.Add(start), End: day.Add(end)}, nil
}

// ShiftDuration returns the length of a time slot in hours, with the same
// overnight rollover as ShiftInterval. No rounding.
func ShiftDuration(startClock, endClock string) (float64, error) {
	start, err := clockOffset(startClock)
	if err != nil {
		return 0, err
	}
	end, err := clockOffset(endClock)
	if err != nil {
		return 0, err
	}
	if end < start {
		end += 24 * time.Hour
	}
	return (end - start).Hours(), nil
}

func clockOffset(clock string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
