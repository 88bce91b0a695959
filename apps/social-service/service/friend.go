package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// AddFriend 建立双向好友关系
func (s *Service) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return fmt.Errorf("%w: 不能添加自己为好友: %d", model.ErrInvalidRelation, userID)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, friendID); err != nil {
		return err
	}

	event := newFeedEvent(userID, model.EventTypeFriend, model.OperationAdd, friendID)
	changed, err := s.friends.AddFriend(ctx, userID, friendID, event)
	if err != nil {
		return fmt.Errorf("%w: 添加好友失败: %v", model.ErrStorageUnavailable, err)
	}
	if !changed {
		return nil
	}

	s.clearFriendCache(ctx, userID, friendID)
	s.publishSocialEvent(ctx, event)

	s.logger.Info(ctx, "Friend added",
		logger.F("userID", userID),
		logger.F("friendID", friendID))
	return nil
}

// RemoveFriend 解除双向好友关系
func (s *Service) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return fmt.Errorf("%w: 不能删除自己: %d", model.ErrInvalidRelation, userID)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, friendID); err != nil {
		return err
	}

	event := newFeedEvent(userID, model.EventTypeFriend, model.OperationRemove, friendID)
	changed, err := s.friends.RemoveFriend(ctx, userID, friendID, event)
	if err != nil {
		return fmt.Errorf("%w: 删除好友失败: %v", model.ErrStorageUnavailable, err)
	}
	if !changed {
		return nil
	}

	s.clearFriendCache(ctx, userID, friendID)
	s.publishSocialEvent(ctx, event)

	s.logger.Info(ctx, "Friend removed",
		logger.F("userID", userID),
		logger.F("friendID", friendID))
	return nil
}

// GetFriends 查询用户好友列表，按ID升序返回
func (s *Service) GetFriends(ctx context.Context, userID int64) ([]*model.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.friendIDsCached(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询好友列表失败: %v", model.ErrStorageUnavailable, err)
	}
	return s.resolveUsers(ctx, ids)
}

// friendIDsCached 优先从缓存读取好友ID列表
func (s *Service) friendIDsCached(ctx context.Context, userID int64) ([]int64, error) {
	cacheKey := model.GetFriendListKey(userID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			var ids []int64
			if err := json.Unmarshal([]byte(cached), &ids); err == nil {
				return ids, nil
			}
		}
	}

	ids, err := s.friends.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(ids); err == nil {
			if err := s.redis.Set(ctx, cacheKey, string(data), model.CacheExpireFriendList*time.Second); err != nil {
				s.logger.Warn(ctx, "Failed to cache friend list",
					logger.F("error", err.Error()),
					logger.F("userID", userID))
			}
		}
	}
	return ids, nil
}

// GetCommonFriends 查询两个用户的共同好友，按ID升序返回
func (s *Service) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]*model.User, error) {
	if userID == otherID {
		return nil, fmt.Errorf("%w: 不能与自己求共同好友: %d", model.ErrInvalidRelation, userID)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, otherID); err != nil {
		return nil, err
	}

	mine, err := s.friends.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询好友列表失败: %v", model.ErrStorageUnavailable, err)
	}
	theirs, err := s.friends.FriendIDs(ctx, otherID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询好友列表失败: %v", model.ErrStorageUnavailable, err)
	}

	theirSet := make(map[int64]struct{}, len(theirs))
	for _, id := range theirs {
		theirSet[id] = struct{}{}
	}
	common := make([]int64, 0)
	for _, id := range mine {
		if _, ok := theirSet[id]; ok {
			common = append(common, id)
		}
	}
	return s.resolveUsers(ctx, common)
}

// resolveUsers 批量解析用户，跳过已删除的用户
func (s *Service) resolveUsers(ctx context.Context, userIDs []int64) ([]*model.User, error) {
	users := make([]*model.User, 0, len(userIDs))
	for _, id := range userIDs {
		user, err := s.catalog.GetUser(ctx, id)
		if err != nil {
			if err == model.ErrNotFound {
				continue
			}
			return nil, fmt.Errorf("%w: 查询用户失败: %v", model.ErrStorageUnavailable, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// clearFriendCache 清除双方的好友列表缓存
func (s *Service) clearFriendCache(ctx context.Context, userID, friendID int64) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, model.GetFriendListKey(userID))
	s.redis.Del(ctx, model.GetFriendListKey(friendID))
}
