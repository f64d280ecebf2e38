package repository

import (
	"context"
	"time"

	"HandballStats/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchSummaryRow 比赛 + 各动作类型计数，对应聚合查询的一行
type MatchSummaryRow struct {
	ID           uint64
	League       *string
	HomeTeam     *string
	AwayTeam     *string
	CreatedAt    time.Time
	Saves        int64
	GoalsAgainst int64
	Missed       int64
	TeamGoals    int64
}

// MatchRepository 比赛仓储接口
type MatchRepository interface {
	// CreateMatch 新建比赛，成功后 m.ID 为生成的主键
	CreateMatch(ctx context.Context, m *model.Match) error
	// ListMatches 原始比赛记录，按创建时间倒序
	ListMatches(ctx context.Context) ([]*model.Match, error)
	// ListMatchSummaries 每场比赛一行，附带各动作类型的计数，按创建时间倒序
	ListMatchSummaries(ctx context.Context) ([]*MatchSummaryRow, error)
	// GetMatchSummary 单场比赛的统计；不存在时返回 gorm.ErrRecordNotFound
	GetMatchSummary(ctx context.Context, matchID uint64) (*MatchSummaryRow, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建 MatchRepository 实例
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateMatch(ctx context.Context, m *model.Match) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *matchRepository) ListMatches(ctx context.Context) ([]*model.Match, error) {
	var matches []*model.Match
	if err := r.db.WithContext(ctx).
		Order(clause.OrderBy{Columns: byTime("created_at", true)}).
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) ListMatchSummaries(ctx context.Context) ([]*MatchSummaryRow, error) {
	rows := make([]*MatchSummaryRow, 0)
	if err := r.summaryQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *matchRepository) GetMatchSummary(ctx context.Context, matchID uint64) (*MatchSummaryRow, error) {
	var rows []*MatchSummaryRow
	if err := r.summaryQuery(ctx).Where("m.id = ?", matchID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

// summaryQuery matches LEFT JOIN match_events，按比赛分组逐类型计数；没有事件的比赛计数为 0
func (r *matchRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("matches AS m").
		Select(`m.id, m.league, m.home_team, m.away_team, m.created_at,
			COUNT(CASE WHEN e.action_type = ? THEN 1 END) AS saves,
			COUNT(CASE WHEN e.action_type = ? THEN 1 END) AS goals_against,
			COUNT(CASE WHEN e.action_type = ? THEN 1 END) AS missed,
			COUNT(CASE WHEN e.action_type = ? THEN 1 END) AS team_goals`,
			model.ActionSave.String(), model.ActionGoal.String(), model.ActionMiss.String(), model.ActionTeamGoal.String()).
		Joins("LEFT JOIN match_events AS e ON e.match_id = m.id").
		Group("m.id, m.league, m.home_team, m.away_team, m.created_at").
		Order("m.created_at DESC, m.id DESC")
}

// byTime 按时间列排序，时间相同时按 id 同向排序
func byTime(timeColumn string, desc bool) []clause.OrderByColumn {
	return []clause.OrderByColumn{
		{Column: clause.Column{Name: timeColumn}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: desc},
	}
}
