package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"wiutctl/pkg/config"
	"wiutctl/pkg/scraper"
	"wiutctl/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wiutctl configuration",
	Long: `View or edit your local configuration settings (student ID, saved groups, output directory).

The password is never stored; provide it through the ` + config.PasswordEnv + ` environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if clearCache, _ := cmd.Flags().GetBool("clear-cache"); clearCache {
			if err := scraper.ClearCache(); err != nil {
				return err
			}
			fmt.Println("✅ Timetable cache cleared")
		}

		changed := false
		if cmd.Flags().Changed("username") {
			cfg.Username, _ = cmd.Flags().GetString("username")
			changed = true
		}
		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
			changed = true
		}
		if cmd.Flags().Changed("timezone") {
			cfg.Timezone, _ = cmd.Flags().GetString("timezone")
			if _, err := cfg.Location(); err != nil {
				return err
			}
			changed = true
		}
		if add, _ := cmd.Flags().GetStringSlice("add-group"); len(add) > 0 {
			for _, name := range add {
				if !slices.Contains(cfg.SavedGroups, name) {
					cfg.SavedGroups = append(cfg.SavedGroups, name)
				}
			}
			changed = true
		}

		if changed {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Println("✅ Configuration saved")
			return nil
		}

		if cmd.Flags().Changed("clear-cache") {
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI(logger)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("username", "u", "", "Set your student ID")
	configCmd.Flags().String("output-dir", "", "Set the directory 'sync' writes to")
	configCmd.Flags().String("timezone", "", "Set the IANA timezone used for calendar export")
	configCmd.Flags().StringSlice("add-group", nil, "Add groups to the saved list")
	configCmd.Flags().Bool("clear-cache", false, "Remove all cached timetables")
}
