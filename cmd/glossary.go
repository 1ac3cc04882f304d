package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gitquest/internal/app"
	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/glossary"
	"github.com/abhisek/gitquest/internal/screens/search"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary [term]",
	Short: "Look up Git commands",
	Long: "With a term, prints the matching glossary entry. Without one, opens an " +
		"interactive search. Every lookup counts toward the Glossary Guru badge.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		g, engine := d.newGame()

		if len(args) > 0 {
			term := strings.Join(args, " ")
			if !g.Lookup(ctx, term) {
				return fmt.Errorf("no glossary entry for %q", term)
			}
			return nil
		}

		onLookup := func(glossary.Entry) []badges.Badge { return g.RecordLookup(ctx) }
		return app.Run(search.New(glossary.Default(), "", onLookup), headerFor(g, engine))
	},
}
