package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamewise/api/internal/middleware"
)

type saveResultRequest struct {
	Game  string `json:"game" binding:"required"`
	Score int    `json:"score" binding:"min=0"`
}

type resultResponse struct {
	ID       string    `json:"id"`
	Game     string    `json:"game"`
	Score    int       `json:"score"`
	PlayedAt time.Time `json:"playedAt"`
}

func (h HandlerSet) SaveResult(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req saveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game and a non-negative score are required"})
		return
	}

	result, err := h.statsService.SaveResult(c.Request.Context(), claims.UserID, req.Game, req.Score)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "result recorded",
		"result": resultResponse{
			ID:       result.ID,
			Game:     result.Game,
			Score:    result.Score,
			PlayedAt: result.PlayedAt,
		},
	})
}

type summaryResponse struct {
	Game       string `json:"game"`
	Plays      int    `json:"plays"`
	TotalScore int    `json:"totalScore"`
	BestScore  int    `json:"bestScore"`
}

func (h HandlerSet) MyStats(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	summaries, err := h.statsService.Summary(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]summaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, summaryResponse{
			Game:       s.Game,
			Plays:      s.Plays,
			TotalScore: s.TotalScore,
			BestScore:  s.BestScore,
		})
	}

	c.JSON(http.StatusOK, gin.H{"stats": resp})
}

type leaderboardEntryResponse struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	TotalScore int    `json:"totalScore"`
}

func (h HandlerSet) Leaderboard(c *gin.Context) {
	game := c.Query("game")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.statsService.Leaderboard(c.Request.Context(), game, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, leaderboardEntryResponse{
			UserID:     e.UserID,
			Name:       e.Name,
			TotalScore: e.TotalScore,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"game":    game,
		"entries": resp,
	})
}
