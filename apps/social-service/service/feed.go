package service

import (
	"context"
	"fmt"

	"gofilm-social/apps/social-service/model"
)

// GetFeed 查询用户动态事件，按时间戳升序返回
func (s *Service) GetFeed(ctx context.Context, userID int64) ([]*model.FeedEvent, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	events, err := s.feed.EventsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询动态失败: %v", model.ErrStorageUnavailable, err)
	}
	return events, nil
}
