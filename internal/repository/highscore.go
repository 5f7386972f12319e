package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (f HighScoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Side != nil {
		clauses = append(clauses, "side = @side")
		args["side"] = *f.Side
	}
	if f.MineCount != nil {
		clauses = append(clauses, "mine_count = @mineCount")
		args["mineCount"] = *f.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) SaveHighScore(
	ctx context.Context, params CreateHighScoreParams,
) (*HighScore, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO highscore (
			session_key, player_name, side, mine_count, elapsed_ms
		)
		VALUES (
			@session_key, @player_name, @side, @mine_count, @elapsed_ms
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"session_key": params.SessionKey,
			"player_name": params.PlayerName,
			"side":        params.Side,
			"mine_count":  params.MineCount,
			"elapsed_ms":  params.Elapsed.Milliseconds(),
		},
	)
	score, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[HighScore],
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrDuplicate
	}
	return score, err
}

func (q Queries) GetHighScores(
	ctx context.Context, filter HighScoreFilter,
) ([]HighScore, error) {
	query := `
	SELECT
		highscore_id,
		session_key,
		player_name,
		side,
		mine_count,
		elapsed_ms,
		created_at
	FROM highscore`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY elapsed_ms, created_at LIMIT @limit;"
	args["limit"] = filter.limit()

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[HighScore])
}
