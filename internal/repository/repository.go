package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Queries runs the high score queries against Postgres.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

var ErrDuplicate = errors.New("high score already recorded")

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type HighScore struct {
	HighscoreId int64     `json:"-" db:"highscore_id"`
	SessionKey  string    `json:"session_key" db:"session_key"`
	PlayerName  string    `json:"player_name" db:"player_name"`
	Side        int       `json:"side" db:"side"`
	MineCount   int       `json:"mine_count" db:"mine_count"`
	ElapsedMs   int64     `json:"elapsed_ms" db:"elapsed_ms"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (h HighScore) Elapsed() time.Duration {
	return time.Duration(h.ElapsedMs) * time.Millisecond
}

type CreateHighScoreParams struct {
	// SessionKey identifies the game; saving the same game twice fails
	// with [ErrDuplicate].
	SessionKey string
	PlayerName string
	Side       int
	MineCount  int
	Elapsed    time.Duration
}

type HighScoreFilter struct {
	Side      *int
	MineCount *int
	Limit     int
}

func (f HighScoreFilter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLimit
	case f.Limit > MaxLimit:
		return MaxLimit
	default:
		return f.Limit
	}
}

// HighScoreStore is implemented by the Postgres [Queries] and by [SQLite].
type HighScoreStore interface {
	SaveHighScore(ctx context.Context, params CreateHighScoreParams) (*HighScore, error)
	GetHighScores(ctx context.Context, filter HighScoreFilter) ([]HighScore, error)
}

var (
	_ HighScoreStore = (*Queries)(nil)
	_ HighScoreStore = (*SQLite)(nil)
)
