package timetable

import "errors"

// dayBuilder accumulates the lessons of one weekday column by column.
type dayBuilder struct {
	lessons   Day
	prevCount int
}

func newDayBuilder() *dayBuilder {
	return &dayBuilder{lessons: Day{}}
}

// window returns the index range of accumulated lessons that a column of k
// candidates may continue. The stacked lesson count can change between two
// adjacent columns, so the range covers the previous column's lessons plus
// enough history to reach a predecessor that moved stack position.
func (b *dayBuilder) window(k int) (int, int) {
	hi := len(b.lessons)
	lo := hi - (k + b.prevCount - 1)
	if lo < 0 {
		lo = 0
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// continuationIndex returns the index of the lesson in lessons[lo:hi] that
// the candidate directly continues, or -1.
func continuationIndex(lessons Day, lo, hi int, candidate Lesson) int {
	for i := lo; i < hi; i++ {
		l := lessons[i]
		if l.Name == candidate.Name && l.Format == candidate.Format && l.End() == candidate.Start {
			return i
		}
	}
	return -1
}

// add merges one column's candidates into the day.
func (b *dayBuilder) add(candidates []Lesson) {
	lo, hi := b.window(len(candidates))

	var extended []int
	for _, c := range candidates {
		if i := continuationIndex(b.lessons, lo, hi, c); i >= 0 {
			b.lessons[i].Length++
			extended = append(extended, i)
			continue
		}
		if b.extendedBy(extended, c) || b.duplicate(hi, c) {
			continue
		}
		b.lessons = append(b.lessons, c)
	}
	b.prevCount = len(candidates)
}

// extendedBy reports whether c repeats a lesson already extended into the
// current column.
func (b *dayBuilder) extendedBy(extended []int, c Lesson) bool {
	for _, i := range extended {
		l := b.lessons[i]
		if l.Name == c.Name && l.Format == c.Format && l.End() == c.Start+1 {
			return true
		}
	}
	return false
}

// duplicate reports whether c was already appended for the current column.
func (b *dayBuilder) duplicate(from int, c Lesson) bool {
	for _, l := range b.lessons[from:] {
		if l.Name == c.Name && l.Format == c.Format && l.Start == c.Start {
			return true
		}
	}
	return false
}

// BuildDay reconstructs a weekday from its hourly cells, joining a lesson
// that continues into the next hour into one longer lesson.
func BuildDay(row Row) (Day, error) {
	return buildDay(row, nil)
}

// buildDay fails on the first malformed cell unless skip is set, in which
// case the cell is reported and treated as empty.
func buildDay(row Row, skip func(*MalformedCellError)) (Day, error) {
	b := newDayBuilder()
	for offset, cell := range row {
		candidates, err := SplitCell(cell, offset)
		if err != nil {
			var malformed *MalformedCellError
			if skip == nil || !errors.As(err, &malformed) {
				return nil, err
			}
			skip(malformed)
		}
		b.add(candidates)
	}
	return b.lessons, nil
}
