package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"gamewise/api/internal/ids"
	"gamewise/api/internal/models"
)

const (
	leaderboardKeyPrefix = "leaderboard:"
	leaderboardCacheTTL  = 5 * time.Minute
	leaderboardDefault   = 10
	leaderboardMax       = 100
)

// ResultStore is the statistics persistence surface.
// *repository.ResultRepository satisfies it.
type ResultStore interface {
	Insert(ctx context.Context, result models.GameResult) error
	SummaryByUser(ctx context.Context, userID string) ([]models.GameSummary, error)
	Games(ctx context.Context) ([]string, error)
	Leaderboard(ctx context.Context, game string, limit int) ([]models.LeaderboardEntry, error)
}

type StatsService struct {
	results ResultStore
	cache   *redis.Client
	log     zerolog.Logger
}

func NewStatsService(results ResultStore, cache *redis.Client, log zerolog.Logger) *StatsService {
	return &StatsService{
		results: results,
		cache:   cache,
		log:     log,
	}
}

func (s *StatsService) SaveResult(ctx context.Context, userID string, game string, score int) (models.GameResult, error) {
	game = strings.TrimSpace(game)
	if game == "" {
		return models.GameResult{}, fmt.Errorf("%w: game is required", ErrValidation)
	}
	if score < 0 {
		return models.GameResult{}, fmt.Errorf("%w: score must not be negative", ErrValidation)
	}

	result := models.GameResult{
		ID:       ids.New(),
		UserID:   userID,
		Game:     game,
		Score:    score,
		PlayedAt: time.Now(),
	}

	if err := s.results.Insert(ctx, result); err != nil {
		return models.GameResult{}, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, leaderboardKeyPrefix+game).Err(); err != nil {
			s.log.Warn().Err(err).Str("game", game).Msg("leaderboard cache invalidation failed")
		}
	}

	return result, nil
}

func (s *StatsService) Summary(ctx context.Context, userID string) ([]models.GameSummary, error) {
	return s.results.SummaryByUser(ctx, userID)
}

// Leaderboard ranks users by total score for one game. Results are served
// from redis when fresh; a miss falls through to the store and repopulates
// the cache.
func (s *StatsService) Leaderboard(ctx context.Context, game string, limit int) ([]models.LeaderboardEntry, error) {
	game = strings.TrimSpace(game)
	if game == "" {
		return nil, fmt.Errorf("%w: game is required", ErrValidation)
	}
	if limit <= 0 {
		limit = leaderboardDefault
	}
	if limit > leaderboardMax {
		limit = leaderboardMax
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, leaderboardKeyPrefix+game).Bytes()
		if err == nil {
			var entries []models.LeaderboardEntry
			if err := json.Unmarshal(cached, &entries); err == nil {
				if len(entries) > limit {
					entries = entries[:limit]
				}
				return entries, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("game", game).Msg("leaderboard cache read failed")
		}
	}

	entries, err := s.results.Leaderboard(ctx, game, leaderboardMax)
	if err != nil {
		return nil, err
	}

	s.storeLeaderboard(ctx, game, entries)

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// WarmLeaderboards recomputes and caches the ranking for every known game.
// Invoked by the scheduler.
func (s *StatsService) WarmLeaderboards(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	games, err := s.results.Games(ctx)
	if err != nil {
		return err
	}

	for _, game := range games {
		entries, err := s.results.Leaderboard(ctx, game, leaderboardMax)
		if err != nil {
			return err
		}
		s.storeLeaderboard(ctx, game, entries)
	}
	return nil
}

func (s *StatsService) storeLeaderboard(ctx context.Context, game string, entries []models.LeaderboardEntry) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, leaderboardKeyPrefix+game, payload, leaderboardCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("game", game).Msg("leaderboard cache write failed")
	}
}
