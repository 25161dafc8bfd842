package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wiutctl/pkg/timetable"
)

var (
	dayStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	onlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Italic(true)
)

func clock(h timetable.Hours) string {
	hour, minute := h.Clock()
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// RenderWeek formats a week for the terminal, one block per weekday.
func RenderWeek(group string, week *timetable.Week) string {
	var b strings.Builder
	title := cases.Title(language.English)

	b.WriteString(accentStyle.Bold(true).Render(fmt.Sprintf("Timetable for %s", group)))
	b.WriteString("\n")

	for _, weekday := range timetable.Weekdays {
		day := week.Day(weekday)
		b.WriteString("\n")
		b.WriteString(dayStyle.Render(weekday.String()))
		b.WriteString("\n")

		if len(day) == 0 {
			b.WriteString(mutedStyle.Render("  no classes"))
			b.WriteString("\n")
			continue
		}

		for _, l := range day {
			format := title.String(string(l.Format))
			if l.Format.Online() {
				format = onlineStyle.Render(format)
			}
			fmt.Fprintf(&b, "  %s %s [%s]\n",
				timeStyle.Render(clock(l.Start)+"–"+clock(l.End())),
				l.Name,
				format,
			)
			fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(fmt.Sprintf("      %s · %s", l.Location, l.Tutor)))
		}
	}

	return b.String()
}
