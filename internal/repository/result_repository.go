package repository

import (
	"context"

	"gamewise/api/internal/models"
)

type ResultRepository struct {
	pool poolIface
}

func NewResultRepository(pool poolIface) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func (r *ResultRepository) Insert(ctx context.Context, result models.GameResult) error {
	const query = `
		INSERT INTO game_results (id, user_id, game, score, played_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		result.Game,
		result.Score,
		result.PlayedAt,
	)
	return err
}

func (r *ResultRepository) SummaryByUser(ctx context.Context, userID string) ([]models.GameSummary, error) {
	const query = `
		SELECT game, COUNT(*), COALESCE(SUM(score), 0), COALESCE(MAX(score), 0)
		FROM game_results
		WHERE user_id = $1
		GROUP BY game
		ORDER BY game
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.GameSummary
	for rows.Next() {
		var s models.GameSummary
		if err := rows.Scan(&s.Game, &s.Plays, &s.TotalScore, &s.BestScore); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Games lists the distinct games with at least one recorded result.
func (r *ResultRepository) Games(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT game FROM game_results ORDER BY game`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []string
	for rows.Next() {
		var game string
		if err := rows.Scan(&game); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (r *ResultRepository) Leaderboard(ctx context.Context, game string, limit int) ([]models.LeaderboardEntry, error) {
	const query = `
		SELECT u.id, u.name, COALESCE(SUM(g.score), 0) AS total
		FROM game_results g
		JOIN users u ON u.id = g.user_id
		WHERE g.game = $1
		GROUP BY u.id, u.name
		ORDER BY total DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, game, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.TotalScore); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
