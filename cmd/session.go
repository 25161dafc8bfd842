package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"

	"wiutctl/pkg/config"
	"wiutctl/pkg/scraper"
	"wiutctl/pkg/timetable"
	"wiutctl/pkg/tui"
)

// signIn logs in with the configured credentials and loads the group table.
// It never prompts, so it is safe to use from scripts.
func signIn(ctx context.Context, cfg *config.AppConfig, noCache bool) (*scraper.Client, *scraper.GroupTable, error) {
	username, password, err := cfg.Credentials()
	if err != nil {
		return nil, nil, err
	}

	delay, jitter := cfg.Pacing()
	client, err := scraper.NewClient(scraper.ClientConfig{
		Delay:   delay,
		Jitter:  jitter,
		NoCache: noCache,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}

	var table *scraper.GroupTable
	_ = spinner.New().
		Title("Signing in to the intranet...").
		Action(func() {
			if err = client.Login(ctx, username, password); err != nil {
				return
			}
			table, err = client.FetchGroups(ctx)
		}).
		Run()

	if err != nil {
		return nil, nil, fmt.Errorf("sign in failed: %w", err)
	}
	return client, table, nil
}

// builder returns the configured week builder, forcing lenient mode if asked.
func builder(cfg *config.AppConfig, lenient bool) timetable.Builder {
	b := tui.NewBuilder(cfg, logger)
	b.Lenient = b.Lenient || lenient
	return b
}

// loadWeek reads a week either from a saved timetable page or from the intranet.
func loadWeek(ctx context.Context, cfg *config.AppConfig, group, file string, lenient, noCache bool) (*timetable.Week, error) {
	b := builder(cfg, lenient)

	if file != "" {
		return parseFile(file, b)
	}

	if group == "" {
		return nil, fmt.Errorf("either --group or --file is required")
	}

	client, table, err := signIn(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}

	id, err := table.Lookup(group)
	if err != nil {
		return nil, err
	}

	var week *timetable.Week
	_ = spinner.New().
		Title(fmt.Sprintf("Fetching timetable for %s...", group)).
		Action(func() {
			week, err = client.FetchTimetable(ctx, id, b)
		}).
		Run()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch timetable: %w", err)
	}
	return week, nil
}
