package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"wiutctl/pkg/collector"
	"wiutctl/pkg/config"
	"wiutctl/pkg/scraper"
	"wiutctl/pkg/store"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download timetables and store them as JSON",
	Long: `Download the timetable of every selected group and write one JSON file per
group into the output directory. By default the saved groups are synced.

Requests are paced by the request_delay_ms and request_jitter_ms settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, _ := cmd.Flags().GetStringSlice("group")
		all, _ := cmd.Flags().GetBool("all")
		output, _ := cmd.Flags().GetString("output")
		workers, _ := cmd.Flags().GetInt("workers")
		lenient, _ := cmd.Flags().GetBool("lenient")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if !all && len(names) == 0 {
			names = cfg.SavedGroups
		}
		if !all && len(names) == 0 {
			return fmt.Errorf("no groups selected: pass --group, --all or save groups with 'wiutctl config'")
		}

		if output == "" {
			output = cfg.Output()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		client, table, err := signIn(ctx, cfg, true)
		if err != nil {
			return err
		}

		var groups []scraper.Group
		if all {
			groups = table.Groups()
		} else if groups, err = table.Select(names); err != nil {
			return err
		}

		fmt.Printf("Syncing %d groups into %s...\n", len(groups), output)

		c := &collector.Collector{
			Fetcher: client,
			Saver:   store.New(output),
			Builder: builder(cfg, lenient),
			Workers: workers,
			Log:     logger,
		}

		results, err := c.Run(ctx, groups)
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("%s %s: %v\n", failStyle.Render("✗"), r.Group.Name, r.Err)
			} else if r.Group.Name != "" {
				fmt.Printf("%s %s (%d lessons)\n", okStyle.Render("✓"), r.Group.Name, r.Lessons)
			}
		}
		if err != nil {
			return err
		}

		if failed := collector.Failed(results); len(failed) > 0 {
			return fmt.Errorf("%d of %d groups failed", len(failed), len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringSliceP("group", "g", nil, "Group names to sync (repeatable)")
	syncCmd.Flags().Bool("all", false, "Sync every group in the intranet")
	syncCmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	syncCmd.Flags().Int("workers", 4, "Number of parallel build workers")
	syncCmd.Flags().Bool("lenient", false, "Skip malformed cells instead of failing the group")
	syncCmd.MarkFlagsMutuallyExclusive("group", "all")
}
