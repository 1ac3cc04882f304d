package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitquest/internal/questionbank"
)

var practiceCmd = &cobra.Command{
	Use:   "practice [level]",
	Short: "Drill questions without affecting progress",
	Long: "Asks random questions of one level. Wrong answers may be retried up to five " +
		"times before the answer is shown. Points and badges are not affected.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"beginner", "intermediate", "advanced"},
	RunE: func(cmd *cobra.Command, args []string) error {
		level := questionbank.LevelBeginner
		if len(args) == 1 {
			l, err := questionbank.ParseLevel(args[0])
			if err != nil {
				return err
			}
			level = l
		}
		rounds, _ := cmd.Flags().GetInt("rounds")
		if rounds < 1 {
			return fmt.Errorf("--rounds must be at least 1, got %d", rounds)
		}

		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		g, _ := d.newGame()
		return exitError(g.Practice(cmd.Context(), level, rounds))
	},
}

func init() {
	practiceCmd.Flags().IntP("rounds", "n", 5, "Number of questions to ask")
}
