package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitquest/internal/progress"
	"github.com/abhisek/gitquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		if s, ok := saveManager(d.cfg).Load(); ok {
			printSession(out, s)
		} else {
			fmt.Fprintln(out, "No saved progress yet.")
		}

		events := d.events()
		if events == nil {
			fmt.Fprintln(out, "\nEvent log is disabled.")
			return nil
		}
		ctx := cmd.Context()
		sum, err := events.Summary(ctx)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		recent, err := events.QueryBadgeEvents(ctx, store.QueryOpts{Limit: 5})
		if err != nil {
			return fmt.Errorf("badge history: %w", err)
		}
		printHistory(out, sum, recent)
		return nil
	},
}

func printSession(out io.Writer, s *progress.Session) {
	fmt.Fprintf(out, "Learner:           %s\n", s.UserName())
	fmt.Fprintf(out, "Total points:      %d\n", s.TotalPoints())
	fmt.Fprintf(out, "Modules completed: %d\n", s.ModulesCompleted())
	fmt.Fprintf(out, "Quests completed:  %d\n", len(s.CompletedQuests()))
	fmt.Fprintf(out, "Badges unlocked:   %d\n", len(s.UnlockedAchievements()))
	fmt.Fprintf(out, "Glossary lookups:  %d\n", s.GlossaryLookups())
	fmt.Fprintf(out, "Last module:       %s\n", s.LastModule())
	if ts := s.LastSaveTimestamp(); ts != "" {
		fmt.Fprintf(out, "Last saved:        %s\n", ts)
	}
}

func printHistory(out io.Writer, sum *store.Summary, recent []store.BadgeEventRecord) {
	fmt.Fprintf(out, "\nSessions played: %d   quests started: %d   completed: %d   badges awarded: %d\n",
		sum.Runs, sum.QuestsStarted, sum.QuestsCompleted, sum.Badges)

	if len(sum.Levels) > 0 {
		fmt.Fprintf(out, "\n%-14s %8s %8s %9s %7s\n", "Level", "Answered", "Correct", "Accuracy", "Points")
		for _, l := range sum.Levels {
			fmt.Fprintf(out, "%-14s %8d %8d %8.0f%% %7d\n", l.Level, l.Answered, l.Correct, l.Accuracy()*100, l.Points)
		}
	}

	if len(recent) > 0 {
		fmt.Fprintln(out, "\nRecent badges:")
		for _, r := range recent {
			fmt.Fprintf(out, "  %s  %-16s %s\n", r.Timestamp.Format("2006-01-02"), r.BadgeName, r.Reason)
		}
	}
}
