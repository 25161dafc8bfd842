package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wiutctl/pkg/config"
	"wiutctl/pkg/tui"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the weekly timetable of a group",
	Long: `Download the timetable of a group and print it.

With --file, a timetable page saved from the browser is parsed instead and no
login is needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		file, _ := cmd.Flags().GetString("file")
		asJSON, _ := cmd.Flags().GetBool("json")
		lenient, _ := cmd.Flags().GetBool("lenient")
		noCache, _ := cmd.Flags().GetBool("no-cache")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		week, err := loadWeek(context.Background(), cfg, group, file, lenient, noCache)
		if err != nil {
			return err
		}

		if asJSON {
			data, err := json.MarshalIndent(week, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize timetable: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		title := group
		if title == "" {
			title = file
		}
		fmt.Println(tui.RenderWeek(title, week))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("group", "g", "", "Group name, e.g. 4BIS1")
	showCmd.Flags().StringP("file", "f", "", "Parse a saved timetable page instead of fetching")
	showCmd.Flags().Bool("json", false, "Print the week as JSON")
	showCmd.Flags().Bool("lenient", false, "Skip malformed cells instead of failing")
	showCmd.Flags().Bool("no-cache", false, "Always fetch a fresh copy")
	showCmd.MarkFlagsOneRequired("group", "file")
	showCmd.MarkFlagsMutuallyExclusive("group", "file")
}
