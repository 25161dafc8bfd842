package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wiutctl/pkg/config"
)

var groupsCmd = &cobra.Command{
	Use:   "groups [filter]",
	Short: "List the study groups known to the intranet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		_, table, err := signIn(context.Background(), cfg, false)
		if err != nil {
			return err
		}

		groups := table.Groups()
		if len(args) == 1 {
			groups = table.Match(args[0])
		}

		if len(groups) == 0 {
			return fmt.Errorf("no groups found")
		}

		showIDs, _ := cmd.Flags().GetBool("ids")
		for _, g := range groups {
			if showIDs {
				fmt.Printf("%-12s %s\n", g.Name, g.ID)
			} else {
				fmt.Println(g.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.Flags().Bool("ids", false, "Also print the intranet class id of each group")
}
