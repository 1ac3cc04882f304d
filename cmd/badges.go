package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/gitquest/internal/app"
	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/game"
	"github.com/abhisek/gitquest/internal/screens/badgevault"
	"github.com/abhisek/gitquest/internal/ui/layout"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Open the badge vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		g, engine := d.newGame()
		return app.Run(badgevault.New(engine, d.events()), headerFor(g, engine))
	},
}

func headerFor(g *game.Game, engine *badges.Engine) app.HeaderFunc {
	return func() layout.HeaderInfo {
		return layout.HeaderInfo{
			Points: g.Session().TotalPoints(),
			Badges: len(engine.Earned()),
		}
	}
}
