package entity

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// TripSchedule is the departure and return of an official trip.
// It is immutable; build it with NewTripSchedule.
type TripSchedule struct {
	start       time.Time
	end         time.Time
	purpose     string
	destination string
}

// NewTripSchedule validates that end is not before start.
func NewTripSchedule(start, end time.Time, purpose, destination string) (TripSchedule, error) {
	if end.Before(start) {
		return TripSchedule{}, fmt.Errorf("%w: start %s, end %s",
			ErrInvalidSchedule, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TripSchedule{
		start:       start,
		end:         end,
		purpose:     purpose,
		destination: destination,
	}, nil
}

func (t TripSchedule) Start() time.Time        { return t.start }
func (t TripSchedule) End() time.Time          { return t.end }
func (t TripSchedule) Purpose() string         { return t.purpose }
func (t TripSchedule) Destination() string     { return t.destination }
func (t TripSchedule) Duration() time.Duration { return t.end.Sub(t.start) }

// WholeDays is the number of complete 24-hour blocks away.
func (t TripSchedule) WholeDays() int {
	return int(t.Duration() / day)
}

// Remainder is the time left over after the whole days.
func (t TripSchedule) Remainder() time.Duration {
	return t.Duration() % day
}

// Nights counts the instants (local midnight + cutoffHour) that fall strictly
// inside the trip. A traveler away at that hour spent the night away.
func (t TripSchedule) Nights(cutoffHour int) int {
	y, m, d := t.start.Date()
	loc := t.start.Location()

	nights := 0
	for i := 0; ; i++ {
		instant := time.Date(y, m, d+i, cutoffHour, 0, 0, 0, loc)
		if !instant.Before(t.end) {
			break
		}
		if instant.After(t.start) {
			nights++
		}
	}
	return nights
}

// Overnight reports whether at least one night was spent away.
func (t TripSchedule) Overnight(cutoffHour int) bool {
	return t.Nights(cutoffHour) > 0
}
