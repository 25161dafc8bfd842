package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wiutctl/pkg/config"
	"wiutctl/pkg/exporter"
	"wiutctl/pkg/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export a timetable to an ICS file",
	Long:  `Export the weekly timetable of a group to an ICS file without using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		file, _ := cmd.Flags().GetString("file")
		output, _ := cmd.Flags().GetString("output")
		weeks, _ := cmd.Flags().GetInt("weeks")
		lenient, _ := cmd.Flags().GetBool("lenient")

		if weeks < 1 {
			return fmt.Errorf("--weeks must be at least 1")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		week, err := loadWeek(context.Background(), cfg, group, file, lenient, false)
		if err != nil {
			return err
		}

		if week.Count() == 0 {
			return fmt.Errorf("no lessons found for group %s", group)
		}

		name := group
		if name == "" {
			name = "timetable"
		}
		if output == "" {
			output = strings.TrimSuffix(store.FileName(name), ".json") + ".ics"
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := exporter.GenerateICS(name, week, time.Now().In(loc), weeks, f); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d lessons per week over %d weeks to %s\n", week.Count(), weeks, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("group", "g", "", "Group name to export, e.g. 4BIS1")
	exportCmd.Flags().StringP("file", "f", "", "Parse a saved timetable page instead of fetching")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default <group>.ics)")
	exportCmd.Flags().IntP("weeks", "w", 12, "Number of weeks to repeat the timetable for")
	exportCmd.Flags().Bool("lenient", false, "Skip malformed cells instead of failing")
	exportCmd.MarkFlagsOneRequired("group", "file")
	exportCmd.MarkFlagsMutuallyExclusive("group", "file")
}
