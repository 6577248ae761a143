package request

import (
	"time"

	"shareit/internal/handler/dto"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
)

var (
	ErrStartInPast = errs.Mark(errs.New("start must not be in the past"), errs.ErrBadRequest)
	ErrEndInPast   = errs.Mark(errs.New("end must be in the future"), errs.ErrBadRequest)
)

type CreateBookingRequest struct {
	ItemID int64              `json:"itemId" binding:"required,gt=0"`
	Start  *dto.LocalDateTime `json:"start" binding:"required"`
	End    *dto.LocalDateTime `json:"end" binding:"required"`
}

// ToCommand rejects windows that already began. Ordering of start and end
// is a domain rule and is left to the booking engine.
func (r *CreateBookingRequest) ToCommand(now time.Time) (commands.CreateBookingRequest, error) {
	start, end := r.Start.Time(), r.End.Time()
	// the wire format has second precision
	now = now.Truncate(time.Second)
	if start.Before(now) {
		return commands.CreateBookingRequest{}, ErrStartInPast
	}
	if !end.After(now) {
		return commands.CreateBookingRequest{}, ErrEndInPast
	}
	return commands.CreateBookingRequest{ItemID: r.ItemID, Start: start, End: end}, nil
}
