package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"gamewise/api/internal/repository"
	"gamewise/api/internal/service"
)

// Scheduler runs background housekeeping: clearing long-stale reset codes
// and keeping the leaderboard cache warm. Reset-code expiry is enforced at
// verification time; the purge only tidies rows whose window closed more
// than a day ago.
type Scheduler struct {
	cron  *cron.Cron
	users *repository.UserRepository
	stats *service.StatsService
	log   zerolog.Logger
}

func NewScheduler(users *repository.UserRepository, stats *service.StatsService, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		users: users,
		stats: stats,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeStaleResetCodes); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 * * * *", s.warmLeaderboards); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits briefly for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeStaleResetCodes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-24 * time.Hour)
	purged, err := s.users.PurgeStaleResetCodes(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("purge stale reset codes failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("stale reset codes cleared")
	}
}

func (s *Scheduler) warmLeaderboards() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.stats.WarmLeaderboards(ctx); err != nil {
		s.log.Error().Err(err).Msg("leaderboard warm failed")
	}
}
