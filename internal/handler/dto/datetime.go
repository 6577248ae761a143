package dto

import (
	"bytes"
	"time"

	"shareit/internal/pkg/errs"
)

// DateTimeLayout is the wire format of every timestamp.
const DateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a timestamp rendered in the server's local zone without
// an offset. RFC 3339 input is accepted too.
type LocalDateTime time.Time

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime(t)
}

func (t LocalDateTime) Time() time.Time {
	return time.Time(t)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).In(time.Local).Format(DateTimeLayout) + `"`), nil
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errs.Newf("timestamp must be a string, got %s", data)
	}
	parsed, err := ParseDateTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = LocalDateTime(parsed)
	return nil
}

func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errs.Wrapf(err, "timestamp %q must look like %s", s, DateTimeLayout)
	}
	return t, nil
}
