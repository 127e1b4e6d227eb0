package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("model: invalid date")

const (
	ISODateLayout     = "2006-01-02"
	DisplayDateLayout = "02/01/2006"
)

// Stage is a closed date interval [Start, End] of a trip.
type Stage struct {
	Start time.Time
	End   time.Time
}

// NewStage truncates both bounds to calendar dates in UTC.
func NewStage(start, end time.Time) Stage {
	return Stage{Start: DateOf(start), End: DateOf(end)}
}

func (s Stage) IsValid() bool {
	return !s.End.Before(s.Start)
}

// Overlaps uses inclusive endpoints: sharing a boundary date counts.
func (s Stage) Overlaps(other Stage) bool {
	return !s.Start.After(other.End) && !other.Start.After(s.End)
}

func (s Stage) Equal(other Stage) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}

func (s Stage) Days() int {
	if !s.IsValid() {
		return 0
	}
	return int(s.End.Sub(s.Start).Hours()/24) + 1
}

func (s Stage) String() string {
	return fmt.Sprintf("%s - %s", s.Start.Format(DisplayDateLayout), s.End.Format(DisplayDateLayout))
}

func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts ISO (2006-01-02) and day-first (02/01/2006) dates.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{ISODateLayout, DisplayDateLayout} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
