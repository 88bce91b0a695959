package service

import (
	"context"
	"fmt"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// AddLike 用户点赞电影，重复点赞为幂等空操作
func (s *Service) AddLike(ctx context.Context, userID, filmID int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireFilm(ctx, filmID); err != nil {
		return err
	}

	event := newFeedEvent(userID, model.EventTypeLike, model.OperationAdd, filmID)
	changed, err := s.likes.AddLike(ctx, userID, filmID, event)
	if err != nil {
		return fmt.Errorf("%w: 点赞失败: %v", model.ErrStorageUnavailable, err)
	}
	if !changed {
		return nil
	}

	s.clearFilmStatsCache(ctx, filmID)
	s.publishSocialEvent(ctx, event)

	s.logger.Info(ctx, "Film liked",
		logger.F("userID", userID),
		logger.F("filmID", filmID))
	return nil
}

// RemoveLike 用户取消点赞，未点赞时为幂等空操作
func (s *Service) RemoveLike(ctx context.Context, userID, filmID int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireFilm(ctx, filmID); err != nil {
		return err
	}

	event := newFeedEvent(userID, model.EventTypeLike, model.OperationRemove, filmID)
	changed, err := s.likes.RemoveLike(ctx, userID, filmID, event)
	if err != nil {
		return fmt.Errorf("%w: 取消点赞失败: %v", model.ErrStorageUnavailable, err)
	}
	if !changed {
		return nil
	}

	s.clearFilmStatsCache(ctx, filmID)
	s.publishSocialEvent(ctx, event)

	s.logger.Info(ctx, "Film like removed",
		logger.F("userID", userID),
		logger.F("filmID", filmID))
	return nil
}

// GetLikedFilms 查询用户点赞过的电影
func (s *Service) GetLikedFilms(ctx context.Context, userID int64) ([]*model.FilmSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.likes.LikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询点赞列表失败: %v", model.ErrStorageUnavailable, err)
	}
	return s.filmSummaries(ctx, ids)
}

// GetUsersWhoLiked 查询点赞过电影的用户，按ID升序返回
func (s *Service) GetUsersWhoLiked(ctx context.Context, filmID int64) ([]*model.User, error) {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}

	ids, err := s.likes.UserIDsWhoLiked(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询点赞用户失败: %v", model.ErrStorageUnavailable, err)
	}
	return s.resolveUsers(ctx, ids)
}

// clearFilmStatsCache 清除电影统计缓存与热门列表缓存
func (s *Service) clearFilmStatsCache(ctx context.Context, filmID int64) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, model.GetFilmStatsKey(filmID))
	s.redis.Del(ctx, model.CacheKeyTopFilms)
}
