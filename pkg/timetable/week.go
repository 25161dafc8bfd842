package timetable

import (
	"errors"
	"fmt"
)

// Builder converts a raw grid into a Week.
//
// By default a malformed cell aborts the whole build. With Lenient set the
// cell is dropped instead and passed to OnMalformed.
type Builder struct {
	Lenient     bool
	OnMalformed func(err *MalformedCellError)
}

// BuildWeek reconstructs a week from grid in strict mode.
func BuildWeek(grid Grid) (*Week, error) {
	return Builder{}.Build(grid)
}

// Build maps the rows of grid onto Monday..Saturday in order. A grid with
// more rows than weekday slots is rejected with a ProtocolError.
func (b Builder) Build(grid Grid) (*Week, error) {
	if len(grid) > len(Weekdays) {
		return nil, &ProtocolError{Rows: len(grid), Slots: len(Weekdays)}
	}

	var skip func(*MalformedCellError)
	if b.Lenient {
		skip = func(err *MalformedCellError) {
			if b.OnMalformed != nil {
				b.OnMalformed(err)
			}
		}
	}

	week := NewWeek()
	for i, row := range grid {
		weekday := Weekdays[i]
		day, err := buildDay(row, withWeekday(skip, weekday.String()))
		if err != nil {
			var malformed *MalformedCellError
			if errors.As(err, &malformed) {
				malformed.Weekday = weekday.String()
				return nil, err
			}
			return nil, fmt.Errorf("build %s: %w", weekday, err)
		}
		*week.slot(weekday) = day
	}
	return week, nil
}

func withWeekday(skip func(*MalformedCellError), weekday string) func(*MalformedCellError) {
	if skip == nil {
		return nil
	}
	return func(err *MalformedCellError) {
		err.Weekday = weekday
		skip(err)
	}
}
