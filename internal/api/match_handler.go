package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"HandballStats/internal/repository"
	"HandballStats/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MatchHandler 比赛创建与统计查询接口
type MatchHandler struct {
	matchService *service.MatchService
	logger       *logrus.Logger
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(db *gorm.DB, logger *logrus.Logger) *MatchHandler {
	repo := repository.NewMatchRepository(db)
	return &MatchHandler{
		matchService: service.NewMatchService(repo, logger),
		logger:       logger,
	}
}

// StartMatch 开始新比赛 POST /api/matches/start
// body: {"league": "...", "homeTeam": "...", "awayTeam": "..."}，字段均可省略
func (h *MatchHandler) StartMatch(c *gin.Context) {
	var req service.StartMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	matchID, err := h.matchService.StartMatch(c.Request.Context(), &req)
	if err != nil {
		requestLogger(c, h.logger).WithError(err).Error("StartMatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create match"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"matchId": matchID})
}

// ListMatches 比赛列表（含统计）GET /api/matches
// ?view=raw 时只返回比赛记录本身
func (h *MatchHandler) ListMatches(c *gin.Context) {
	if c.Query("view") == "raw" {
		matches, err := h.matchService.ListRawMatches(c.Request.Context())
		if err != nil {
			requestLogger(c, h.logger).WithError(err).Error("ListRawMatches failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load matches"})
			return
		}
		c.JSON(http.StatusOK, matches)
		return
	}

	summaries, err := h.matchService.ListMatches(c.Request.Context())
	if err != nil {
		requestLogger(c, h.logger).WithError(err).Error("ListMatches failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load match history"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetMatch 单场比赛统计 GET /api/matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	summary, err := h.matchService.GetMatch(c.Request.Context(), matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		requestLogger(c, h.logger).WithError(err).Error("GetMatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load match"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// matchIDParam 解析路径参数 :id，失败时已写入 400 响应
func matchIDParam(c *gin.Context) (uint64, bool) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || matchID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return matchID, true
}
