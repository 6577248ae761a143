package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

var ErrInvalidTimeSlot = errs.Mark(errs.New("booking end must be after start"), errs.ErrBadRequest)

// TimeSlot is the half-open window [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time { return ts.start }
func (ts TimeSlot) End() time.Time   { return ts.end }

// Contains reports start <= t < end.
func (ts TimeSlot) Contains(t time.Time) bool {
	return !ts.start.After(t) && t.Before(ts.end)
}

func (ts TimeSlot) EndedBefore(t time.Time) bool   { return ts.end.Before(t) }
func (ts TimeSlot) StartsAfter(t time.Time) bool   { return ts.start.After(t) }
func (ts TimeSlot) StartedBefore(t time.Time) bool { return ts.start.Before(t) }

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}
