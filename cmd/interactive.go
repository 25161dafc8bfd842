package cmd

import (
	"wiutctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to pick a group, browse its week and save or export it interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(logger)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
