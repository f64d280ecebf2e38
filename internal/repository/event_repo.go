package repository

import (
	"context"

	"HandballStats/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository 比赛事件仓储接口
type EventRepository interface {
	// CreateEvent 写入一条事件，Timestamp 为空时由服务端填充
	CreateEvent(ctx context.Context, ev *model.MatchEvent) error
	// DeleteLatestEvent 删除 (matchID, actionType) 下时间最新的一条事件，返回删除行数（0 或 1）
	DeleteLatestEvent(ctx context.Context, matchID uint64, actionType model.ActionType) (int64, error)
	// ListEventsByMatch 按时间顺序列出一场比赛的全部事件
	ListEventsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建 EventRepository 实例
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(ctx context.Context, ev *model.MatchEvent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ev).Error
}

// DeleteLatestEvent 查找与删除在同一条语句里完成：
// DELETE FROM match_events WHERE id = (SELECT id ... ORDER BY timestamp DESC, id DESC LIMIT 1)
// 并发的 record/undo 之间的先后由数据库默认隔离级别决定
func (r *eventRepository) DeleteLatestEvent(ctx context.Context, matchID uint64, actionType model.ActionType) (int64, error) {
	latest := r.db.Model(&model.MatchEvent{}).
		Select("id").
		Where("match_id = ? AND action_type = ?", matchID, actionType.String()).
		Order(clause.OrderBy{Columns: byTime("timestamp", true)}).
		Limit(1)

	result := r.db.WithContext(ctx).
		Where("id = (?)", latest).
		Delete(&model.MatchEvent{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *eventRepository) ListEventsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchEvent, error) {
	var events []*model.MatchEvent
	if err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order(clause.OrderBy{Columns: byTime("timestamp", false)}).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
