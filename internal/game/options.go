package game

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-pad/internal/mines"
)

// Clock is sampled whenever the elapsed time is needed. time.Now carries a
// monotonic reading, so the default clock is immune to wall clock jumps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FieldFactory builds the field for a new game.
type FieldFactory func(r *rand.Rand) (*mines.Field, error)

// NewFieldFactory generates fields of the default size with the given
// placement strategy.
func NewFieldFactory(placer mines.Placer) FieldFactory {
	return func(r *rand.Rand) (*mines.Field, error) {
		return mines.NewField(
			mines.DefaultMineCount, mines.DefaultSide,
			mines.WithRand(r), mines.WithPlacer(placer),
		)
	}
}

type options struct {
	rnd             *rand.Rand
	clock           Clock
	newField        FieldFactory
	safeFirstReveal bool
	log             logrus.FieldLogger
}

type Option func(*options)

func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rnd = r }
}

func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithPlacer(p mines.Placer) Option {
	return func(o *options) { o.newField = NewFieldFactory(p) }
}

func WithFieldFactory(f FieldFactory) Option {
	return func(o *options) { o.newField = f }
}

// WithSafeFirstReveal moves a mine out of the way when it sits under the
// first reveal of a game.
func WithSafeFirstReveal(safe bool) Option {
	return func(o *options) { o.safeFirstReveal = safe }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

func defaultOptions() options {
	return options{
		clock:    systemClock{},
		newField: NewFieldFactory(mines.Uniform),
		log:      mines.Log,
	}
}
