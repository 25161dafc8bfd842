package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"go.uber.org/zap"

	"wiutctl/pkg/config"
	"wiutctl/pkg/scraper"
)

// Login creates a client and signs in, asking for any missing credentials.
func Login(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*scraper.Client, error) {
	username, password := cfg.Login()

	if username == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Student ID").
					Value(&username),
				huh.NewInput().
					Title("Password").
					Description(fmt.Sprintf("Not saved. Set %s to skip this prompt.", config.PasswordEnv)).
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	delay, jitter := cfg.Pacing()
	client, err := scraper.NewClient(scraper.ClientConfig{Delay: delay, Jitter: jitter, Logger: log})
	if err != nil {
		return nil, err
	}

	var loginErr error
	_ = spinner.New().
		Title("Signing in to the intranet...").
		Action(func() {
			loginErr = client.Login(ctx, username, password)
		}).
		Run()

	if loginErr != nil {
		return nil, loginErr
	}
	return client, nil
}

// FetchGroupTable downloads the group code table behind a spinner.
func FetchGroupTable(ctx context.Context, client *scraper.Client) (*scraper.GroupTable, error) {
	var table *scraper.GroupTable
	var err error

	_ = spinner.New().
		Title("Fetching available study groups...").
		Action(func() {
			table, err = client.FetchGroups(ctx)
		}).
		Run()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	return table, nil
}
