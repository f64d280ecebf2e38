package model

import (
	"time"
)

// Match 对应 matches 表，一场比赛的记录。创建后不再修改或删除
type Match struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	League    *string   `gorm:"column:league;type:text;comment:联赛名称"`
	HomeTeam  *string   `gorm:"column:home_team;type:text;comment:主队"`
	AwayTeam  *string   `gorm:"column:away_team;type:text;comment:客队"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime;index;comment:创建时间"`
}

// MatchEvent 对应 match_events 表，比赛中的一次动作（扑救/失球/射偏/本队进球）
// Timestamp 由服务端写入，用于撤销时按时间倒序选出最近一条。
// 时间列不写 type，由方言决定：PostgreSQL 为 timestamptz，SQLite 为 datetime
type MatchEvent struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	MatchID    uint64     `gorm:"column:match_id;type:bigint;not null;index:idx_match_action;comment:关联比赛ID"`
	ActionType ActionType `gorm:"column:action_type;type:text;not null;index:idx_match_action;comment:动作类型"`
	Timestamp  time.Time  `gorm:"column:timestamp;not null;autoCreateTime;comment:记录时间"`
	// 仅用于建立外键约束，不参与读写
	Match *Match `gorm:"foreignKey:MatchID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Match) TableName() string      { return "matches" }
func (MatchEvent) TableName() string { return "match_events" }

// Tables 返回需要迁移的表（按依赖顺序）
func Tables() []interface{} {
	return []interface{}{
		&Match{},
		&MatchEvent{},
	}
}
