package booking

import (
	"strings"

	"shareit/internal/pkg/errs"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// State is the filter vocabulary of booking lists.
type State int

const (
	StateAll State = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[State]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseState is case-insensitive. Unknown names fail with an
// errs.ErrUnsupportedState mark whose message names the input.
func ParseState(raw string) (State, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	for state, name := range stateNames {
		if name == upper {
			return state, nil
		}
	}
	return 0, errs.Mark(errs.Newf("Unknown state: %s", raw), errs.ErrUnsupportedState)
}
