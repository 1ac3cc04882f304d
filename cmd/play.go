package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	g, _ := d.newGame()
	return exitError(g.Run(cmd.Context()))
}
