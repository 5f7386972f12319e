package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pad/internal/config"
	"github.com/vancomm/minesweeper-pad/internal/game"
	"github.com/vancomm/minesweeper-pad/internal/logging"
	"github.com/vancomm/minesweeper-pad/internal/mines"
	"github.com/vancomm/minesweeper-pad/internal/repository"
	"github.com/vancomm/minesweeper-pad/internal/tui"
)

var (
	log = logrus.New()

	sparse   bool
	safe     bool
	noScores bool
)

func init() {
	flag.BoolVar(&sparse, "sparse", false, "avoid placing mines on orthogonally adjacent cells")
	flag.BoolVar(&safe, "safe", false, "never lose on the first reveal")
	flag.BoolVar(&noScores, "no-scores", false, "do not keep high scores")
}

func setupLogging() {
	if err := logging.Setup(logging.OptionsFromEnv(), log, mines.Log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}
}

// setLogOutput moves log output off the terminal while the game is drawn
// on it. Entries still reach LOG_FILE through the hook.
func setLogOutput(w io.Writer) {
	log.SetOutput(w)
	mines.Log.SetOutput(w)
}

func main() {
	flag.Parse()
	setupLogging()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the high score store is closed on
// every path.
func run() error {
	gameOpts := []game.Option{game.WithSafeFirstReveal(safe)}
	if sparse {
		gameOpts = append(gameOpts, game.WithPlacer(mines.OrthogonalSparse))
	}

	var scores repository.HighScoreStore
	if !noScores {
		db, err := repository.OpenSQLite(config.HighscoresDB())
		if err != nil {
			return fmt.Errorf("unable to open high scores: %w", err)
		}
		defer db.Close()
		scores = db
	}

	model, err := tui.New(tui.Options{
		Scores:     scores,
		PlayerName: config.PlayerName(),
		Log:        log,
		Game:       gameOpts,
	})
	if err != nil {
		return fmt.Errorf("unable to start game: %w", err)
	}

	setLogOutput(io.Discard)
	defer setLogOutput(os.Stderr)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
