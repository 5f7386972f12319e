// Package game drives one Minesweeper game: the field, the selection
// cursor, the pad input state, the timer and the win/loss status.
//
// A Session is owned by a single update loop. It holds no locks; callers
// that share one across goroutines must serialize access themselves.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-pad/internal/cursor"
	"github.com/vancomm/minesweeper-pad/internal/input"
	"github.com/vancomm/minesweeper-pad/internal/mines"
)

type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{Playing, Won, Lost} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

var ErrGameOver = errors.New("game is over")

type Session struct {
	opts options

	field  *mines.Field
	cursor cursor.Cursor
	input  input.Debouncer
	status Status

	startedAt time.Time
	elapsed   time.Duration
	frozen    bool
	touched   bool // a reveal has reached the field
}

func New(opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = mines.NewRand()
	}

	s := &Session{opts: o}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the field, cursor, input state and timer and starts a new
// game. On error the session is left as it was.
func (s *Session) Reset() error {
	field, err := s.opts.newField(s.opts.rnd)
	if err != nil {
		return fmt.Errorf("unable to create field: %w", err)
	}
	*s = Session{
		opts:   s.opts,
		field:  field,
		cursor: cursor.New(field.Side()),
		status: Playing,
	}
	s.opts.log.WithField("field", field.String()).Debug("new game")
	return nil
}

func (s *Session) Status() Status      { return s.status }
func (s *Session) Selection() int      { return s.cursor.Index() }
func (s *Session) Field() *mines.Field { return s.field }

// Started reports whether the timer is running or has been frozen.
func (s *Session) Started() bool { return !s.startedAt.IsZero() }

// Elapsed is sampled from the clock while the game runs and frozen once it
// ends. It is zero until the first reveal or flag.
func (s *Session) Elapsed() time.Duration {
	switch {
	case s.frozen:
		return s.elapsed
	case s.startedAt.IsZero():
		return 0
	default:
		return s.opts.clock.Now().Sub(s.startedAt)
	}
}

func (s *Session) start() {
	if s.startedAt.IsZero() {
		s.startedAt = s.opts.clock.Now()
	}
}

func (s *Session) finish(status Status) {
	s.elapsed = s.Elapsed()
	s.frozen = true
	s.status = status
	s.opts.log.WithFields(logrus.Fields{
		"status":  status,
		"elapsed": s.elapsed,
	}).Info("game over")
}

// Reveal opens cell i.
//
// panics [mines.IndexError]
func (s *Session) Reveal(i int) (mines.RevealOutcome, error) {
	if s.status != Playing {
		return mines.RevealOutcome{}, ErrGameOver
	}

	if !s.field.Cell(i).Revealed {
		s.start()
		if s.opts.safeFirstReveal && !s.touched {
			s.field.MoveMineAway(i)
		}
		s.touched = true
	}

	out := s.field.Reveal(i)
	if out.HitMine {
		s.finish(Lost)
	}

	s.opts.log.WithFields(logrus.Fields{
		"index":    i,
		"hitMine":  out.HitMine,
		"cascaded": out.Cascaded(),
		"noop":     out.Noop,
	}).Debug("reveal")
	return out, nil
}

// ToggleFlag flags or unflags cell i.
//
// panics [mines.IndexError]
func (s *Session) ToggleFlag(i int) (mines.FlagOutcome, error) {
	if s.status != Playing {
		return mines.FlagOutcome{}, ErrGameOver
	}

	out := s.field.ToggleFlag(i)
	if !out.Noop {
		s.start()
	}
	if out.Won {
		s.finish(Won)
	}

	s.opts.log.WithFields(logrus.Fields{
		"index":     i,
		"flagged":   out.Flagged,
		"flagsLeft": out.FlagsLeft,
	}).Debug("flag")
	return out, nil
}

// SetSelection points the cursor at cell i, for pointer driven layers.
func (s *Session) SetSelection(i int) {
	s.cursor.Set(i)
}

// HandleButtonEdge feeds a raw press or release into the debouncer and
// applies the action it fires. The fired action is returned; select and
// start are never applied here and are left to the caller. While the game
// is over the button state is still tracked but nothing is applied.
func (s *Session) HandleButtonEdge(b input.Button, pressed bool) input.Action {
	a := s.input.Edge(b, pressed)
	s.dispatch(a)
	return a
}

// ReleaseButtons drops every held button without firing anything, for
// when the input source goes away mid-press.
func (s *Session) ReleaseButtons() {
	s.input.Reset()
}

// Tick advances the input repeat countdowns by one step, applies the
// actions that fire and returns them.
func (s *Session) Tick() []input.Action {
	fired := s.input.Tick()
	for _, a := range fired {
		s.dispatch(a)
	}
	return fired
}

func (s *Session) dispatch(a input.Action) {
	if s.status != Playing {
		return
	}
	switch a {
	case input.MoveRight:
		s.cursor.Move(cursor.Right)
	case input.MoveLeft:
		s.cursor.Move(cursor.Left)
	case input.MoveUp:
		s.cursor.Move(cursor.Up)
	case input.MoveDown:
		s.cursor.Move(cursor.Down)
	// status is Playing here, so neither call can return ErrGameOver
	case input.RevealCell:
		_, _ = s.Reveal(s.cursor.Index())
	case input.FlagCell:
		_, _ = s.ToggleFlag(s.cursor.Index())
	}
}
