package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"HandballStats/internal/model"
	"HandballStats/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MatchService 比赛的创建与统计查询
type MatchService struct {
	repo   repository.MatchRepository
	logger *logrus.Logger
}

// NewMatchService 创建 MatchService
func NewMatchService(repo repository.MatchRepository, logger *logrus.Logger) *MatchService {
	return &MatchService{
		repo:   repo,
		logger: logger,
	}
}

// StartMatchRequest 开始比赛的参数，三个字段都可为空
type StartMatchRequest struct {
	League   *string `json:"league"`
	HomeTeam *string `json:"homeTeam"`
	AwayTeam *string `json:"awayTeam"`
}

// MatchSummary 列表中的一场比赛及其各类动作计数
type MatchSummary struct {
	ID           uint64    `json:"id"`
	League       *string   `json:"league"`
	HomeTeam     *string   `json:"homeTeam"`
	AwayTeam     *string   `json:"awayTeam"`
	CreatedAt    time.Time `json:"createdAt"`
	Saves        int64     `json:"saves"`
	GoalsAgainst int64     `json:"goalsAgainst"`
	Missed       int64     `json:"missed"`
	TeamGoals    int64     `json:"teamGoals"`
}

// MatchInfo 原始比赛记录（不含统计）
type MatchInfo struct {
	ID        uint64    `json:"id"`
	League    *string   `json:"league"`
	HomeTeam  *string   `json:"homeTeam"`
	AwayTeam  *string   `json:"awayTeam"`
	CreatedAt time.Time `json:"createdAt"`
}

// StartMatch 新建一场比赛并返回其 ID。不做去重，重复调用会创建多场
func (s *MatchService) StartMatch(ctx context.Context, req *StartMatchRequest) (uint64, error) {
	m := &model.Match{
		League:   req.League,
		HomeTeam: req.HomeTeam,
		AwayTeam: req.AwayTeam,
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return 0, fmt.Errorf("创建比赛失败: %w", err)
	}
	s.logger.WithField("match_id", m.ID).Info("新比赛已开始")
	return m.ID, nil
}

// ListMatches 所有比赛及统计，最新创建的在前
func (s *MatchService) ListMatches(ctx context.Context) ([]MatchSummary, error) {
	rows, err := s.repo.ListMatchSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询比赛统计失败: %w", err)
	}
	result := make([]MatchSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, toSummary(row))
	}
	return result, nil
}

// ListRawMatches 不带统计的比赛列表，最新创建的在前
func (s *MatchService) ListRawMatches(ctx context.Context) ([]MatchInfo, error) {
	matches, err := s.repo.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询比赛列表失败: %w", err)
	}
	result := make([]MatchInfo, 0, len(matches))
	for _, m := range matches {
		result = append(result, MatchInfo{
			ID:        m.ID,
			League:    m.League,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}

// GetMatch 单场比赛统计
func (s *MatchService) GetMatch(ctx context.Context, matchID uint64) (*MatchSummary, error) {
	row, err := s.repo.GetMatchSummary(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("查询比赛%d失败: %w", matchID, err)
	}
	summary := toSummary(row)
	return &summary, nil
}

func toSummary(row *repository.MatchSummaryRow) MatchSummary {
	return MatchSummary{
		ID:           row.ID,
		League:       row.League,
		HomeTeam:     row.HomeTeam,
		AwayTeam:     row.AwayTeam,
		CreatedAt:    row.CreatedAt,
		Saves:        row.Saves,
		GoalsAgainst: row.GoalsAgainst,
		Missed:       row.Missed,
		TeamGoals:    row.TeamGoals,
	}
}
