package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitquest/internal/quest"
)

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "List quests and their completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		catalog := quest.Default()
		current := ""
		if s, ok := saveManager(cfg).Load(); ok {
			catalog.Restore(s.CompletedQuests())
			current = s.CurrentQuest()
		}

		out := cmd.OutOrStdout()
		for _, q := range catalog.All() {
			fmt.Fprintf(out, "[%s] %-6s %-14s %s", quest.CompletionStatus(q.Completed), quest.Stars(q.DifficultyLevel), q.ID, q.Name)
			if q.ID == current {
				fmt.Fprint(out, "  (in progress)")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "    %s (%d modules, %s)\n", q.Description, len(q.LearningModules), q.Level().DisplayName())
		}
		return nil
	},
}
