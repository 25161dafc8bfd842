package exporter

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wiutctl/pkg/timetable"
)

// WeekStart returns midnight of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// GenerateICS writes the lessons of week as calendar events for the given
// number of consecutive weeks, starting with the week that contains from.
func GenerateICS(group string, week *timetable.Week, from time.Time, weeks int, w io.Writer) error {
	if weeks < 1 {
		return fmt.Errorf("number of weeks must be positive, got %d", weeks)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetName(fmt.Sprintf("%s timetable", group))

	title := cases.Title(language.English)
	monday := WeekStart(from)
	now := time.Now()

	for n := 0; n < weeks; n++ {
		for i, weekday := range timetable.Weekdays {
			date := monday.AddDate(0, 0, 7*n+i)
			for j, l := range week.Day(weekday) {
				hour, minute := l.Start.Clock()
				start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
				end := start.Add(time.Duration(float64(l.Length) * float64(time.Hour)))

				event := cal.AddEvent(fmt.Sprintf("%s-%s-%d@wiutctl", group, start.Format("20060102T1504"), j))
				event.SetCreatedTime(now)
				event.SetDtStampTime(now)
				event.SetModifiedAt(now)
				event.SetStartAt(start)
				event.SetEndAt(end)
				event.SetSummary(fmt.Sprintf("%s (%s)", l.Name, title.String(string(l.Format))))
				event.SetLocation(l.Location)
				event.SetDescription(fmt.Sprintf("Tutor: %s\nGroup: %s", l.Tutor, group))
			}
		}
	}

	return cal.SerializeTo(w)
}
