package service

import (
	"context"
	"fmt"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// CreateReview 创建影评
func (s *Service) CreateReview(ctx context.Context, content string, isPositive bool, userID, filmID int64) (*model.Review, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: 影评内容不能为空", model.ErrInvalidArgument)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}

	review := &model.Review{
		Content:    content,
		IsPositive: isPositive,
		UserID:     userID,
		FilmID:     filmID,
	}
	// 事件实体ID在事务内由影评ID回填
	event := newFeedEvent(userID, model.EventTypeReview, model.OperationAdd, 0)
	if err := s.reviews.CreateReview(ctx, review, event); err != nil {
		return nil, fmt.Errorf("%w: 创建影评失败: %v", model.ErrStorageUnavailable, err)
	}

	s.publishSocialEvent(ctx, event)
	s.logger.Info(ctx, "Review created",
		logger.F("reviewID", review.ID),
		logger.F("userID", userID),
		logger.F("filmID", filmID))
	return review, nil
}

// GetReview 查询影评
func (s *Service) GetReview(ctx context.Context, reviewID int64) (*model.Review, error) {
	if reviewID <= 0 {
		return nil, fmt.Errorf("%w: 影评ID无效: %d", model.ErrInvalidArgument, reviewID)
	}
	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, fmt.Errorf("%w: 影评不存在: %d", model.ErrNotFound, reviewID)
		}
		return nil, fmt.Errorf("%w: 查询影评失败: %v", model.ErrStorageUnavailable, err)
	}
	return review, nil
}

// UpdateReview 更新影评内容，动态事件记在影评作者名下
func (s *Service) UpdateReview(ctx context.Context, reviewID int64, content string, isPositive bool) (*model.Review, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: 影评内容不能为空", model.ErrInvalidArgument)
	}
	existing, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	existing.Content = content
	existing.IsPositive = isPositive
	event := newFeedEvent(existing.UserID, model.EventTypeReview, model.OperationUpdate, reviewID)
	if err := s.reviews.UpdateReview(ctx, existing, event); err != nil {
		if err == model.ErrNotFound {
			return nil, fmt.Errorf("%w: 影评不存在: %d", model.ErrNotFound, reviewID)
		}
		return nil, fmt.Errorf("%w: 更新影评失败: %v", model.ErrStorageUnavailable, err)
	}

	s.publishSocialEvent(ctx, event)
	return existing, nil
}

// DeleteReview 删除影评及其全部投票
func (s *Service) DeleteReview(ctx context.Context, reviewID int64) error {
	existing, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}

	event := newFeedEvent(existing.UserID, model.EventTypeReview, model.OperationRemove, reviewID)
	if err := s.reviews.DeleteReview(ctx, reviewID, event); err != nil {
		if err == model.ErrNotFound {
			return fmt.Errorf("%w: 影评不存在: %d", model.ErrNotFound, reviewID)
		}
		return fmt.Errorf("%w: 删除影评失败: %v", model.ErrStorageUnavailable, err)
	}

	s.publishSocialEvent(ctx, event)
	s.logger.Info(ctx, "Review deleted",
		logger.F("reviewID", reviewID),
		logger.F("userID", existing.UserID))
	return nil
}

// ListReviews 查询影评列表，filmID为0时返回全部，按useful降序
func (s *Service) ListReviews(ctx context.Context, filmID int64, count int) ([]*model.Review, error) {
	if count <= 0 {
		count = model.DefaultTopLimit
	}
	if count > model.MaxPageSize {
		count = model.MaxPageSize
	}
	if filmID > 0 {
		if err := s.requireFilm(ctx, filmID); err != nil {
			return nil, err
		}
	}

	reviews, err := s.reviews.ListReviews(ctx, filmID, count)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询影评列表失败: %v", model.ErrStorageUnavailable, err)
	}
	return reviews, nil
}

// AddReviewVote 对影评投赞成或反对票
func (s *Service) AddReviewVote(ctx context.Context, reviewID, userID int64, isLike bool) error {
	if _, err := s.GetReview(ctx, reviewID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	if _, err := s.reviews.AddVote(ctx, reviewID, userID, isLike); err != nil {
		return fmt.Errorf("%w: 投票失败: %v", model.ErrStorageUnavailable, err)
	}
	return nil
}

// RemoveReviewVote 撤销对影评的投票
func (s *Service) RemoveReviewVote(ctx context.Context, reviewID, userID int64) error {
	if _, err := s.GetReview(ctx, reviewID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	if _, err := s.reviews.RemoveVote(ctx, reviewID, userID); err != nil {
		return fmt.Errorf("%w: 撤销投票失败: %v", model.ErrStorageUnavailable, err)
	}
	return nil
}
