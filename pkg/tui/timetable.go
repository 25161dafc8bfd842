package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"go.uber.org/zap"

	"wiutctl/pkg/config"
	"wiutctl/pkg/exporter"
	"wiutctl/pkg/scraper"
	"wiutctl/pkg/store"
	"wiutctl/pkg/timetable"
)

// NewBuilder returns the week builder configured by cfg. Dropped cells are logged.
func NewBuilder(cfg *config.AppConfig, log *zap.Logger) timetable.Builder {
	return timetable.Builder{
		Lenient: cfg.Lenient,
		OnMalformed: func(err *timetable.MalformedCellError) {
			log.Warn("dropped malformed cell",
				zap.String("weekday", err.Weekday),
				zap.Int("column", err.Offset),
				zap.Strings("fragments", err.Fragments),
			)
		},
	}
}

// RunTimetableTUI lets the user pick a group, shows its week and offers to save or export it
func RunTimetableTUI(log *zap.Logger) error {
	ctx := context.Background()
	fmt.Println(accentStyle.Render("Welcome to the WIUT timetable viewer!"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := Login(ctx, cfg, log)
	if err != nil {
		return err
	}

	table, err := FetchGroupTable(ctx, client)
	if err != nil {
		return err
	}

	if table.Len() == 0 {
		fmt.Println(errorStyle.Render("No groups found!"))
		return nil
	}

	saved := make(map[string]bool)
	for _, name := range cfg.SavedGroups {
		saved[name] = true
	}

	// Saved groups first so they are easy to reach
	var options []huh.Option[string]
	for _, g := range table.Groups() {
		if saved[g.Name] {
			options = append(options, huh.NewOption("★ "+g.Name, g.Name))
		}
	}
	for _, g := range table.Groups() {
		if !saved[g.Name] {
			options = append(options, huh.NewOption(g.Name, g.Name))
		}
	}

	var groupName string
	groupForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select your study group").
				Description("Start typing to filter.").
				Options(options...).
				Value(&groupName).
				Filtering(true).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := groupForm.Run(); err != nil {
		return err
	}

	groupID, err := table.Lookup(groupName)
	if err != nil {
		return err
	}

	var week *timetable.Week
	var fetchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching timetable for %s...", groupName)).
		Action(func() {
			week, fetchErr = client.FetchTimetable(ctx, groupID, NewBuilder(cfg, log))
		}).
		Run()

	if fetchErr != nil {
		return fetchErr
	}

	fmt.Println(RenderWeek(groupName, week))

	var action string
	actionForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What next?").
				Options(
					huh.NewOption("💾 Save as JSON", "save"),
					huh.NewOption("📅 Export to calendar (.ics)", "ics"),
					huh.NewOption("Done", "done"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme())

	if err := actionForm.Run(); err != nil {
		return err
	}

	switch action {
	case "save":
		s := store.New(cfg.Output())
		if err := s.Save(groupName, week); err != nil {
			return err
		}
		fmt.Println(accentStyle.Render(fmt.Sprintf("\nSaved to %s", s.Path(groupName))))
	case "ics":
		return runExportTUI(cfg, groupName, week)
	}

	return nil
}

func runExportTUI(cfg *config.AppConfig, groupName string, week *timetable.Week) error {
	outputFile := store.FileName(groupName)
	outputFile = strings.TrimSuffix(outputFile, ".json") + ".ics"
	weeks := "12"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of weeks").
				Value(&weeks).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 1 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, ".ics") {
		outputFile += ".ics"
	}

	n, _ := strconv.Atoi(weeks)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(groupName, week, time.Now().In(loc), n, file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d lessons per week to %s", week.Count(), outputFile)))
	return nil
}

// groupOptions lists every group, pre-selecting the saved ones.
func groupOptions(table *scraper.GroupTable, saved []string) []huh.Option[string] {
	savedMap := make(map[string]bool)
	for _, name := range saved {
		savedMap[name] = true
	}

	var options []huh.Option[string]
	for _, g := range table.Groups() {
		opt := huh.NewOption(g.Name, g.Name)
		if savedMap[g.Name] {
			opt = opt.Selected(true)
		}
		options = append(options, opt)
	}
	return options
}
