package api

import (
	"errors"
	"io"
	"net/http"

	"HandballStats/internal/repository"
	"HandballStats/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventHandler 比赛事件记录与撤销接口
type EventHandler struct {
	eventService *service.EventService
	logger       *logrus.Logger
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(db *gorm.DB, logger *logrus.Logger) *EventHandler {
	repo := repository.NewEventRepository(db)
	return &EventHandler{
		eventService: service.NewEventService(repo, logger),
		logger:       logger,
	}
}

// RecordEvent 记录一次动作 POST /api/events
// body: {"matchId": 1, "actionType": "save"}
func (h *EventHandler) RecordEvent(c *gin.Context) {
	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.eventService.RecordEvent(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrMatchIDRequired) || errors.Is(err, service.ErrInvalidMatchID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		requestLogger(c, h.logger).WithError(err).Error("RecordEvent failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save action"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "action saved"})
}

// UndoEvent 撤销最近一次同类动作 POST|DELETE /api/events/undo
// body: {"matchId": 1, "actionType": "save"}；没有可撤销的事件时返回 404
func (h *EventHandler) UndoEvent(c *gin.Context) {
	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.eventService.UndoEvent(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrNothingToUndo):
			c.JSON(http.StatusNotFound, gin.H{"message": "no action found"})
		case errors.Is(err, service.ErrInvalidMatchID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			requestLogger(c, h.logger).WithError(err).Error("UndoEvent failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not undo action"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "action undone"})
}

// ListMatchEvents 比赛事件时间线 GET /api/matches/:id/events
func (h *EventHandler) ListMatchEvents(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), matchID)
	if err != nil {
		requestLogger(c, h.logger).WithError(err).Error("ListMatchEvents failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load match events"})
		return
	}
	c.JSON(http.StatusOK, events)
}
