// Package tui renders a game session in the terminal with Bubble Tea and
// feeds key presses to it as pad button edges.
package tui

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pad/internal/game"
	"github.com/vancomm/minesweeper-pad/internal/input"
	"github.com/vancomm/minesweeper-pad/internal/repository"
)

const (
	leaderboardSize = 10
	storeTimeout    = 5 * time.Second
)

type screen int

const (
	playing screen = iota
	naming         // won, asking for the name to save the score under
	over
)

type (
	tickMsg   time.Time
	scoresMsg struct {
		scores []repository.HighScore
		err    error
	}
	savedMsg struct {
		score *repository.HighScore
		err   error
	}
)

func tickCmd() tea.Cmd {
	return tea.Tick(input.TickDuration, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Options struct {
	// Scores may be nil; won games are then not saved.
	Scores     repository.HighScoreStore
	PlayerName string
	Log        logrus.FieldLogger
	Game       []game.Option
}

type Model struct {
	session *game.Session
	gameKey string

	keys   KeyMap
	help   help.Model
	name   textinput.Model
	screen screen

	scores repository.HighScoreStore
	top    []repository.HighScore
	saved  *repository.HighScore
	err    error

	log           logrus.FieldLogger
	width, height int
}

func New(opts Options) (Model, error) {
	session, err := game.New(opts.Game...)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 24
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle
	ti.SetValue(opts.PlayerName)

	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	return Model{
		session: session,
		gameKey: rand.Text(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		name:    ti,
		scores:  opts.Scores,
		log:     log,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.session.Tick()
		cmd := m.checkGameOver()
		return m, tea.Batch(tickCmd(), cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case scoresMsg:
		m.top, m.err = msg.scores, msg.err
		return m, nil

	case savedMsg:
		m.saved, m.err = msg.score, msg.err
		return m, m.loadScores()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == naming {
			return m.updateNaming(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.name.Blur()
		m.screen = over
		return m, m.saveScore()
	case tea.KeyEsc:
		m.name.Blur()
		m.screen = over
		return m, m.loadScores()
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		if m.session.Status() != game.Playing {
			return m.reset()
		}
		return m, nil
	}

	b, ok := m.keys.Button(msg)
	if !ok {
		return m, nil
	}
	m.session.HandleButtonEdge(b, true)
	switch m.session.HandleButtonEdge(b, false) {
	case input.StartPressed:
		if m.session.Status() != game.Playing {
			return m.reset()
		}
	case input.SelectPressed:
		m.help.ShowAll = !m.help.ShowAll
	}
	cmd := m.checkGameOver()
	return m, cmd
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	if err := m.session.Reset(); err != nil {
		m.err = err
		return m, nil
	}
	m.gameKey = rand.Text()
	m.screen = playing
	m.saved = nil
	m.err = nil
	return m, nil
}

// checkGameOver moves off the playing screen once the session has ended.
// It runs on the model copy that Update returns.
func (m *Model) checkGameOver() tea.Cmd {
	if m.screen != playing {
		return nil
	}
	switch m.session.Status() {
	case game.Won:
		if m.scores != nil {
			m.screen = naming
			m.name.Focus()
			return textinput.Blink
		}
		m.screen = over
		return nil
	case game.Lost:
		m.screen = over
		return m.loadScores()
	}
	return nil
}

func (m Model) saveScore() tea.Cmd {
	if m.scores == nil {
		return nil
	}
	f := m.session.Field()
	params := repository.CreateHighScoreParams{
		SessionKey: m.gameKey,
		PlayerName: m.playerName(),
		Side:       f.Side(),
		MineCount:  f.MineCount(),
		Elapsed:    m.session.Elapsed(),
	}
	store, log := m.scores, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		score, err := store.SaveHighScore(ctx, params)
		if err != nil {
			log.WithError(err).Error("unable to save high score")
		}
		return savedMsg{score: score, err: err}
	}
}

func (m Model) loadScores() tea.Cmd {
	if m.scores == nil {
		return nil
	}
	f := m.session.Field()
	side, mineCount := f.Side(), f.MineCount()
	store := m.scores
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		scores, err := store.GetHighScores(ctx, repository.HighScoreFilter{
			Side:      &side,
			MineCount: &mineCount,
			Limit:     leaderboardSize,
		})
		return scoresMsg{scores: scores, err: err}
	}
}

func (m Model) playerName() string {
	if name := m.name.Value(); name != "" {
		return name
	}
	return "anonymous"
}
