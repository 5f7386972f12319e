package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/vancomm/minesweeper-pad/internal/game"
	"github.com/vancomm/minesweeper-pad/internal/input"
	"github.com/vancomm/minesweeper-pad/internal/repository"
)

var ErrOutOfRange = errors.New("cell index out of range")

// playSession is one player's game on the server. It is owned by the
// connection loop, or by the registry while detached.
type playSession struct {
	key  string
	name string
	// round counts resets so every game gets its own high score key.
	round    int
	game     *game.Session
	recorded bool
}

func newPlaySession(name string, opts ...game.Option) (*playSession, error) {
	g, err := game.New(opts...)
	if err != nil {
		return nil, err
	}
	return &playSession{key: rand.Text(), name: name, game: g}, nil
}

func (p *playSession) gameKey() string {
	return fmt.Sprintf("%s-%d", p.key, p.round)
}

func (p *playSession) reset() error {
	if err := p.game.Reset(); err != nil {
		return err
	}
	p.round++
	p.recorded = false
	return nil
}

func (p *playSession) apply(c command) error {
	if c.err != nil {
		return c.err
	}

	switch c.kind {
	case wsNoop:
		return nil
	case wsPress, wsRelease:
		a := p.game.HandleButtonEdge(c.button, c.kind == wsPress)
		if a == input.StartPressed && p.game.Status() != game.Playing {
			return p.reset()
		}
		return nil
	case wsOpen, wsFlag:
		if c.index < 0 || c.index >= p.game.Field().Len() {
			return fmt.Errorf("%w: %d", ErrOutOfRange, c.index)
		}
		if p.game.Status() != game.Playing {
			return game.ErrGameOver
		}
		p.game.SetSelection(c.index)
		var err error
		if c.kind == wsOpen {
			_, err = p.game.Reveal(c.index)
		} else {
			_, err = p.game.ToggleFlag(c.index)
		}
		return err
	case wsReset:
		return p.reset()
	}
	return ErrUnknownCommand
}

// pendingScore reports a won game that has not been recorded yet.
func (p *playSession) pendingScore() (repository.CreateHighScoreParams, bool) {
	if p.recorded || p.game.Status() != game.Won {
		return repository.CreateHighScoreParams{}, false
	}
	f := p.game.Field()
	return repository.CreateHighScoreParams{
		SessionKey: p.gameKey(),
		PlayerName: p.name,
		Side:       f.Side(),
		MineCount:  f.MineCount(),
		Elapsed:    p.game.Elapsed(),
	}, true
}

func (p *playSession) message(err error) Message {
	m := Message{Session: p.key, Snapshot: p.game.Snapshot()}
	if err != nil {
		m.Error = err.Error()
	}
	return m
}
