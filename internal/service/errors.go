package service

import "errors"

var (
	// ErrMatchIDRequired 记录事件时缺少 matchId，未访问数据库
	ErrMatchIDRequired = errors.New("matchId is required")
	// ErrInvalidMatchID matchId 不是正整数
	ErrInvalidMatchID = errors.New("matchId must be a positive integer")
	// ErrNothingToUndo 撤销时没有匹配的事件，数据库调用本身成功
	ErrNothingToUndo = errors.New("no matching action to undo")
	// ErrMatchNotFound 比赛不存在
	ErrMatchNotFound = errors.New("match not found")
)
