package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamewise/api/internal/models"
)

func newResultRepoMock(t *testing.T) (pgxmock.PgxPoolIface, *ResultRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewResultRepository(mock)
}

func TestResultRepositoryInsert(t *testing.T) {
	mock, repo := newResultRepoMock(t)
	playedAt := time.Now()

	mock.ExpectExec("INSERT INTO game_results").
		WithArgs("r1", "u1", "wordquest", 120, playedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Insert(context.Background(), models.GameResult{
		ID:       "r1",
		UserID:   "u1",
		Game:     "wordquest",
		Score:    120,
		PlayedAt: playedAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositorySummaryByUser(t *testing.T) {
	mock, repo := newResultRepoMock(t)

	rows := pgxmock.NewRows([]string{"game", "count", "sum", "max"}).
		AddRow("mathblitz", 2, 90, 60).
		AddRow("wordquest", 3, 300, 120)
	mock.ExpectQuery("FROM game_results").
		WithArgs("u1").
		WillReturnRows(rows)

	summaries, err := repo.SummaryByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, models.GameSummary{Game: "mathblitz", Plays: 2, TotalScore: 90, BestScore: 60}, summaries[0])
	assert.Equal(t, models.GameSummary{Game: "wordquest", Plays: 3, TotalScore: 300, BestScore: 120}, summaries[1])
}

func TestResultRepositoryLeaderboard(t *testing.T) {
	mock, repo := newResultRepoMock(t)

	rows := pgxmock.NewRows([]string{"id", "name", "total"}).
		AddRow("u2", "Ben", 500).
		AddRow("u1", "Ana", 300)
	mock.ExpectQuery("JOIN users u ON").
		WithArgs("wordquest", 10).
		WillReturnRows(rows)

	entries, err := repo.Leaderboard(context.Background(), "wordquest", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ben", entries[0].Name)
	assert.Equal(t, 500, entries[0].TotalScore)
}

func TestResultRepositoryGames(t *testing.T) {
	mock, repo := newResultRepoMock(t)

	rows := pgxmock.NewRows([]string{"game"}).
		AddRow("mathblitz").
		AddRow("wordquest")
	mock.ExpectQuery("SELECT DISTINCT game FROM game_results").
		WillReturnRows(rows)

	games, err := repo.Games(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mathblitz", "wordquest"}, games)
}
