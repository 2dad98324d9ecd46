package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) loginToken(t *testing.T) string {
	t.Helper()
	rec, body := e.login(t, "ana@x.com", "secret1")
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func TestStatsEndpointsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/stats/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing token", body["error"])

	rec, body = env.do(t, http.MethodGet, "/api/v1/stats/me", nil, "not-a-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid or expired token", body["error"])
}

func TestSaveResultEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	token := env.loginToken(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/stats", map[string]any{
		"game":  "wordquest",
		"score": 120,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "result recorded", body["message"])

	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wordquest", result["game"])
	assert.Equal(t, float64(120), result["score"])

	require.Len(t, env.results.inserted, 1)
	// The user id comes from the token claims, not the request body.
	user, err := env.store.FindByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, env.results.inserted[0].UserID)
}

func TestSaveResultEndpointValidation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	token := env.loginToken(t)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/stats", map[string]any{
		"score": 10,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/stats", map[string]any{
		"game":  "wordquest",
		"score": -5,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	token := env.loginToken(t)

	for _, score := range []int{40, 120, 60} {
		rec, _ := env.do(t, http.MethodPost, "/api/v1/stats", map[string]any{
			"game":  "wordquest",
			"score": score,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := env.do(t, http.MethodGet, "/api/v1/stats/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	stats, ok := body["stats"].([]any)
	require.True(t, ok)
	require.Len(t, stats, 1)
	summary := stats[0].(map[string]any)
	assert.Equal(t, "wordquest", summary["game"])
	assert.Equal(t, float64(3), summary["plays"])
	assert.Equal(t, float64(220), summary["totalScore"])
	assert.Equal(t, float64(120), summary["bestScore"])
}

func TestLeaderboardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	token := env.loginToken(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/stats/leaderboard?game=wordquest", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "wordquest", body["game"])

	entries, ok := body["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "Ana", entry["name"])
	assert.Equal(t, float64(120), entry["totalScore"])

	rec, _ = env.do(t, http.MethodGet, "/api/v1/stats/leaderboard", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "game query parameter is required")
}
