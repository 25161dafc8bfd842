package timetable

import (
	"errors"
	"fmt"
)

// ErrMalformedCell indicates a cell whose fragments do not form whole lessons.
var ErrMalformedCell = errors.New("malformed cell")

// ErrProtocol indicates the grid no longer follows the expected row layout.
var ErrProtocol = errors.New("unexpected timetable layout")

// MalformedCellError describes a cell that could not be split into lessons.
type MalformedCellError struct {
	Weekday   string // empty until the week builder assigns the row
	Offset    int
	Fragments []string // fragments left after noise filtering
}

func (e *MalformedCellError) Error() string {
	where := fmt.Sprintf("column %d", e.Offset)
	if e.Weekday != "" {
		where = fmt.Sprintf("%s %s", e.Weekday, where)
	}
	return fmt.Sprintf("%s: %d fragments is not a multiple of 3 %q: %v", where, len(e.Fragments), e.Fragments, ErrMalformedCell)
}

func (e *MalformedCellError) Unwrap() error {
	return ErrMalformedCell
}

// ProtocolError is returned when the grid has more rows than weekday slots.
type ProtocolError struct {
	Rows  int
	Slots int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("grid has %d weekday rows but only %d slots: %v", e.Rows, e.Slots, ErrProtocol)
}

func (e *ProtocolError) Unwrap() error {
	return ErrProtocol
}
