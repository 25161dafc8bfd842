package timetable

import (
	"regexp"
	"strings"
)

// UnknownLocation is used for lessons listed without a room.
const UnknownLocation = "TBA"

// ProgramCodes is the closed set of programme tokens used in group tags.
var ProgramCodes = []string{
	"BABE", "BABM", "BAF", "BBA", "BCE", "BIS", "BMK", "CL", "CS", "EC", "ECwF", "LAW", "SE",
}

var (
	// groupTag matches another group's tag sharing the slot, e.g. "3BIS4".
	groupTag = regexp.MustCompile(`^\s*\d(?:` + strings.Join(ProgramCodes, "|") + `)\d+\s*$`)
	// capacityNote matches annotations like "(40)" after a room name.
	capacityNote = regexp.MustCompile(`\(\s*\d+\s*\)`)
)

// cleanFragments drops blank fragments and tags of other groups.
func cleanFragments(cell Cell) []string {
	var out []string
	for _, f := range cell {
		if strings.TrimSpace(f) == "" || groupTag.MatchString(f) {
			continue
		}
		out = append(out, f)
	}

	// One known source gap omits the room entirely.
	if len(out) == 2 {
		out = append([]string{UnknownLocation}, out...)
	}
	return out
}

// SplitCell turns one grid cell into its lessons. offset is the zero-based
// column index counted from BaseHour.
func SplitCell(cell Cell, offset int) ([]Lesson, error) {
	fragments := cleanFragments(cell)
	if len(fragments)%3 != 0 {
		return nil, &MalformedCellError{Offset: offset, Fragments: fragments}
	}

	lessons := make([]Lesson, 0, len(fragments)/3)
	for i := 0; i < len(fragments); i += 3 {
		name, format := DecodeLabel(fragments[i+1])
		lessons = append(lessons, Lesson{
			Name:     name,
			Tutor:    strings.TrimSpace(fragments[i+2]),
			Format:   format,
			Start:    BaseHour + Hours(offset),
			Length:   1,
			Location: strings.TrimSpace(capacityNote.ReplaceAllString(fragments[i], "")),
		})
	}
	return lessons, nil
}
