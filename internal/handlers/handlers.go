package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"gamewise/api/internal/config"
	"gamewise/api/internal/mail"
	"gamewise/api/internal/middleware"
	"gamewise/api/internal/repository"
	"gamewise/api/internal/service"
)

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	authService  *service.AuthService
	statsService *service.StatsService
	db           *pgxpool.Pool
	cache        *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, mailer mail.Sender, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	resultRepo := repository.NewResultRepository(db)
	auth := service.NewAuthService(userRepo, mailer, cfg, log)
	stats := service.NewStatsService(resultRepo, cache, log)

	return HandlerSet{
		log:          log,
		cfg:          cfg,
		authService:  auth,
		statsService: stats,
		db:           db,
		cache:        cache,
	}
}

// StatsService exposes the stats service for the job scheduler.
func (h HandlerSet) StatsService() *service.StatsService {
	return h.statsService
}

func (h HandlerSet) Routes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)

		stats := v1.Group("/stats")
		stats.Use(middleware.Auth(h.cfg))
		stats.POST("", h.SaveResult)
		stats.GET("/me", h.MyStats)
		stats.GET("/leaderboard", h.Leaderboard)
	}
}
