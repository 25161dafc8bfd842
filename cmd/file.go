package cmd

import (
	"fmt"
	"os"

	"wiutctl/pkg/scraper"
	"wiutctl/pkg/timetable"
)

func parseFile(path string, b timetable.Builder) (*timetable.Week, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timetable page: %w", err)
	}
	defer f.Close()

	week, err := scraper.ParseTimetable(f, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return week, nil
}
