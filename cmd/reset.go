package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	Long: "Deletes the save file and its backup. With --keep-points the learner " +
		"starts over but keeps their name and total points.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		saves := saveManager(cfg)
		out := cmd.OutOrStdout()

		if keep, _ := cmd.Flags().GetBool("keep-points"); keep {
			s, ok := saves.Load()
			if !ok {
				fmt.Fprintln(out, "Nothing to reset.")
				return nil
			}
			if !saves.Save(s.Restarted(true)) {
				return fmt.Errorf("could not save the restarted session to %s", saves.Path)
			}
			fmt.Fprintf(out, "Progress reset. %s keeps %d points.\n", s.UserName(), s.TotalPoints())
			return nil
		}

		if !saves.Exists() {
			fmt.Fprintln(out, "Nothing to reset.")
			return nil
		}
		if err := saves.Delete(); err != nil {
			return fmt.Errorf("delete saves: %w", err)
		}
		fmt.Fprintln(out, "Progress deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("keep-points", false, "Keep name and total points")
}
