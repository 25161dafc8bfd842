package timetable

import (
	"strconv"
	"time"
)

// BaseHour is the hour of day of the grid's first time column.
const BaseHour Hours = 9

// Hours is an hour-of-day or a duration in hours.
type Hours float64

// MarshalJSON always writes a decimal point so 9 becomes 9.0.
func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(h), 'f', 1, 64)), nil
}

// Clock converts an hour-of-day into hours and minutes.
func (h Hours) Clock() (int, int) {
	minutes := int(float64(h)*60 + 0.5)
	return minutes / 60, minutes % 60
}

// Format is the delivery format of a lesson (e.g. "online seminar").
type Format string

const (
	Lecture        Format = "lecture"
	OnlineLecture  Format = "online lecture"
	Seminar        Format = "seminar"
	OnlineSeminar  Format = "online seminar"
	Workshop       Format = "workshop"
	OnlineWorkshop Format = "online workshop"
)

// Online reports whether the lesson is delivered remotely.
func (f Format) Online() bool {
	return f == OnlineLecture || f == OnlineSeminar || f == OnlineWorkshop
}

// Lesson represents a single class block in a day
type Lesson struct {
	Name     string `json:"name"`
	Tutor    string `json:"tutor"`
	Format   Format `json:"type"`
	Start    Hours  `json:"start"`
	Length   Hours  `json:"length"`
	Location string `json:"location"`
}

// End is the hour at which the lesson finishes.
func (l Lesson) End() Hours {
	return l.Start + l.Length
}

// Day is the chronological list of lessons for one weekday.
type Day []Lesson

// Cell is the ordered text fragments found at one grid position.
type Cell []string

// Row is one weekday's cells, one per hourly column.
type Row []Cell

// Grid is the raw timetable, one row per weekday starting on Monday.
type Grid []Row

// Weekdays lists the day slots of a Week in row order.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// Week is the timetable of one group.
type Week struct {
	Monday    Day `json:"monday"`
	Tuesday   Day `json:"tuesday"`
	Wednesday Day `json:"wednesday"`
	Thursday  Day `json:"thursday"`
	Friday    Day `json:"friday"`
	Saturday  Day `json:"saturday"`
}

// NewWeek returns a week with every day present and empty.
func NewWeek() *Week {
	return &Week{
		Monday:    Day{},
		Tuesday:   Day{},
		Wednesday: Day{},
		Thursday:  Day{},
		Friday:    Day{},
		Saturday:  Day{},
	}
}

func (w *Week) slot(d time.Weekday) *Day {
	switch d {
	case time.Monday:
		return &w.Monday
	case time.Tuesday:
		return &w.Tuesday
	case time.Wednesday:
		return &w.Wednesday
	case time.Thursday:
		return &w.Thursday
	case time.Friday:
		return &w.Friday
	case time.Saturday:
		return &w.Saturday
	}
	return nil
}

// Day returns the lessons held on d. Sunday is always empty.
func (w *Week) Day(d time.Weekday) Day {
	if s := w.slot(d); s != nil {
		return *s
	}
	return Day{}
}

// Count returns the total number of lessons in the week.
func (w *Week) Count() int {
	n := 0
	for _, d := range Weekdays {
		n += len(w.Day(d))
	}
	return n
}
