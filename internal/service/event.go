package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"HandballStats/internal/model"
	"HandballStats/internal/repository"

	"github.com/sirupsen/logrus"
)

// EventService 比赛事件的记录与撤销
type EventService struct {
	repo   repository.EventRepository
	logger *logrus.Logger
}

// NewEventService 创建 EventService
func NewEventService(repo repository.EventRepository, logger *logrus.Logger) *EventService {
	return &EventService{
		repo:   repo,
		logger: logger,
	}
}

// EventRequest 记录/撤销事件的参数。matchId 接受 JSON 数字或数字字符串
type EventRequest struct {
	MatchID    json.Number      `json:"matchId"`
	ActionType model.ActionType `json:"actionType"`
}

// RecordEvent 为比赛追加一条事件，时间戳由服务端生成。
// 缺少 matchId（或为 0）时返回 ErrMatchIDRequired，不访问数据库
func (s *EventService) RecordEvent(ctx context.Context, req *EventRequest) error {
	matchID, err := parseMatchID(req.MatchID)
	if err != nil {
		return err
	}
	if matchID == 0 {
		return ErrMatchIDRequired
	}

	if !req.ActionType.IsKnown() {
		s.logger.WithFields(logrus.Fields{
			"match_id":    matchID,
			"action_type": req.ActionType,
		}).Warn("未知动作类型，照常记录但不计入统计")
	}

	ev := &model.MatchEvent{
		MatchID:    matchID,
		ActionType: req.ActionType,
	}
	if err := s.repo.CreateEvent(ctx, ev); err != nil {
		return fmt.Errorf("保存事件失败 match_id=%d action_type=%s: %w", matchID, req.ActionType, err)
	}
	return nil
}

// UndoEvent 删除 (matchId, actionType) 下最新的一条事件。
// 没有可撤销的事件时返回 ErrNothingToUndo
func (s *EventService) UndoEvent(ctx context.Context, req *EventRequest) error {
	matchID, err := parseMatchID(req.MatchID)
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"match_id":    matchID,
		"action_type": req.ActionType,
	}).Info("收到撤销请求")

	deleted, err := s.repo.DeleteLatestEvent(ctx, matchID, req.ActionType)
	if err != nil {
		return fmt.Errorf("撤销事件失败 match_id=%d action_type=%s: %w", matchID, req.ActionType, err)
	}
	if deleted == 0 {
		return ErrNothingToUndo
	}
	return nil
}

// EventInfo 单条事件
type EventInfo struct {
	ID         uint64           `json:"id"`
	MatchID    uint64           `json:"matchId"`
	ActionType model.ActionType `json:"actionType"`
	Timestamp  time.Time        `json:"timestamp"`
}

// ListEvents 一场比赛的事件时间线，最早的在前
func (s *EventService) ListEvents(ctx context.Context, matchID uint64) ([]EventInfo, error) {
	events, err := s.repo.ListEventsByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("查询比赛%d事件失败: %w", matchID, err)
	}
	result := make([]EventInfo, 0, len(events))
	for _, ev := range events {
		result = append(result, EventInfo{
			ID:         ev.ID,
			MatchID:    ev.MatchID,
			ActionType: ev.ActionType,
			Timestamp:  ev.Timestamp,
		})
	}
	return result, nil
}

// parseMatchID 空值返回 0；非正整数返回 ErrInvalidMatchID
func parseMatchID(raw json.Number) (uint64, error) {
	s := strings.TrimSpace(raw.String())
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMatchID, s)
	}
	return id, nil
}
