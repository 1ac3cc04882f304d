package cmd

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/config"
	"github.com/abhisek/gitquest/internal/game"
	"github.com/abhisek/gitquest/internal/progress"
	"github.com/abhisek/gitquest/internal/questionbank"
	"github.com/abhisek/gitquest/internal/quiz"
	"github.com/abhisek/gitquest/internal/store"
	"github.com/abhisek/gitquest/internal/terminal"
)

var rootCmd = &cobra.Command{
	Use:   "gitquest",
	Short: "Learn Git commands by playing",
	Long:  "GitQuest is a terminal game that teaches Git through quests, quizzes and badges.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for save files (overrides GITQUEST_DATA_DIR)")
	rootCmd.PersistentFlags().String("questions", "", "Question bank JSON file (overrides GITQUEST_QUESTIONS)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event log (overrides GITQUEST_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides GITQUEST_LOG_LEVEL)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable styled output")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(questsCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(glossaryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := flags.GetString("questions"); v != "" {
		cfg.QuestionsPath = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetBool("no-color"); v {
		cfg.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))
	return cfg, nil
}

// deps holds what the game commands share. st is nil when the event
// log is disabled or could not be opened.
type deps struct {
	cfg   *config.Config
	st    *store.Store
	runID string
}

func newDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, runID: uuid.NewString()}
	if !cfg.EventLog {
		return d, nil
	}

	dbPath, err := cfg.ResolvedDBPath()
	if err != nil {
		slog.Warn("event log disabled", "error", err)
		return d, nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		slog.Warn("event log disabled", "path", dbPath, "error", err)
		return d, nil
	}
	d.st = st
	return d, nil
}

func (d *deps) Close() {
	if d.st != nil {
		d.st.Close()
	}
}

func (d *deps) events() store.EventRepo {
	if d.st == nil {
		return nil
	}
	return d.st.EventRepo()
}

func (d *deps) bank() *questionbank.Bank {
	if d.cfg.QuestionsPath != "" {
		b, _ := questionbank.LoadFile(d.cfg.QuestionsPath)
		return b
	}
	b, _ := questionbank.Default()
	return b
}

func saveManager(cfg *config.Config) *progress.Manager {
	return progress.NewManager(cfg.DataDir)
}

// newGame wires a Game on stdin/stdout. The badge engine is returned too
// for the screens that show it.
func (d *deps) newGame() (*game.Game, *badges.Engine) {
	renderer, styler := terminal.Styles(d.cfg.NoColor)
	events := d.events()
	engine := badges.NewEngine(nil, badges.WithEventRepo(events, d.runID))

	var rng *rand.Rand
	if d.cfg.Seed != 0 {
		rng = quiz.NewRand(uint64(d.cfg.Seed))
	}

	g := game.New(game.Options{
		Console:  terminal.NewConsole(os.Stdin, os.Stdout),
		Renderer: renderer,
		Styler:   styler,
		Bank:     d.bank(),
		Badges:   engine,
		Saves:    saveManager(d.cfg),
		Events:   events,
		RunID:    d.runID,
		Rand:     rng,
	})
	return g, engine
}

// exitError turns a non-OK game status into an error for main.
func exitError(status game.ExitStatus, err error) error {
	if err != nil {
		return err
	}
	if status.Code() != 0 {
		return fmt.Errorf("game ended: %s", status)
	}
	return nil
}
