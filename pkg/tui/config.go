package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"wiutctl/pkg/config"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI(log *zap.Logger) error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Student ID", "username"),
						huh.NewOption("Set Saved Study Groups", "groups"),
						huh.NewOption("Set Output Directory", "output"),
						huh.NewOption("Set Calendar Timezone", "timezone"),
						huh.NewOption("Toggle Lenient Parsing", "lenient"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "username":
			err = runSetTextTUI(cfg, "Student ID", "Used to sign in to the intranet.", &cfg.Username, nil)
		case "groups":
			err = runSetSavedGroupsTUI(cfg, log)
		case "output":
			err = runSetTextTUI(cfg, "Output directory", "Where 'wiutctl sync' writes one JSON file per group.", &cfg.OutputDir, nil)
		case "timezone":
			err = runSetTextTUI(cfg, "Calendar timezone", "IANA name used for calendar export, e.g. Asia/Tashkent. Empty means local time.", &cfg.Timezone, func(s string) error {
				if s == "" {
					return nil
				}
				_, err := time.LoadLocation(s)
				return err
			})
		case "lenient":
			cfg.Lenient = !cfg.Lenient
			err = config.Save(cfg)
			if err == nil {
				fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Lenient parsing is now %v\n", cfg.Lenient)))
			}
		case "view":
			printConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

func printConfig(cfg *config.AppConfig) {
	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.wiutctl.json) ---"))
	if cfg.Username == "" {
		fmt.Println("Student ID: Not set")
	} else {
		fmt.Printf("Student ID: %s\n", cfg.Username)
	}

	delay, jitter := cfg.Pacing()
	fmt.Printf("Saved Groups: %s\n", strings.Join(cfg.SavedGroups, ", "))
	fmt.Printf("Output Directory: %s\n", cfg.Output())
	fmt.Printf("Timezone: %s\n", cfg.Timezone)
	fmt.Printf("Request Pacing: %v + up to %v\n", delay, jitter)
	fmt.Printf("Lenient Parsing: %v\n", cfg.Lenient)
	fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
	fmt.Println()
}

func runSetTextTUI(cfg *config.AppConfig, title, description string, target *string, validate func(string) error) error {
	input := *target

	field := huh.NewInput().
		Title(title).
		Description(description).
		Value(&input)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := huh.NewForm(huh.NewGroup(field)).WithTheme(GetTheme()).Run(); err != nil {
		return err
	}

	*target = strings.TrimSpace(input)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ %s saved.\n", title)))
	return nil
}

func runSetSavedGroupsTUI(cfg *config.AppConfig, log *zap.Logger) error {
	ctx := context.Background()

	client, err := Login(ctx, cfg, log)
	if err != nil {
		return err
	}

	table, err := FetchGroupTable(ctx, client)
	if err != nil {
		return err
	}

	var selected []string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select your study group(s)").
				Description("Space = toggle, Enter = confirm. Start typing to filter.").
				Options(groupOptions(table, cfg.SavedGroups)...).
				Value(&selected).
				Filterable(true).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.SavedGroups = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Successfully saved %d groups.\n", len(selected))))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for wiutctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Campus Blue", colorBlock("33")), "33"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validHex),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Beautiful! The theme color is now saved.\n"))
	return nil
}

func validHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	for _, r := range str[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("must be a valid 6-character hex code starting with #")
		}
	}
	return nil
}
