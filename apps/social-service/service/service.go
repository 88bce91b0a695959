package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gofilm-social/apps/social-service/dao"
	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/kafka"
	"gofilm-social/pkg/logger"
	"gofilm-social/pkg/redis"
	"gofilm-social/pkg/snowflake"
)

// Service 社交聚合服务
type Service struct {
	catalog dao.CatalogDAO
	friends dao.FriendDAO
	likes   dao.LikeDAO
	feed    dao.FeedDAO
	reviews dao.ReviewDAO
	search  dao.SearchDAO
	redis   *redis.RedisClient
	kafka   *kafka.Producer
	logger  logger.Logger
}

// NewService 创建社交聚合服务实例
func NewService(
	catalogDAO dao.CatalogDAO,
	friendDAO dao.FriendDAO,
	likeDAO dao.LikeDAO,
	feedDAO dao.FeedDAO,
	reviewDAO dao.ReviewDAO,
	searchDAO dao.SearchDAO,
	redis *redis.RedisClient,
	kafka *kafka.Producer,
	log logger.Logger,
) *Service {
	return &Service{
		catalog: catalogDAO,
		friends: friendDAO,
		likes:   likeDAO,
		feed:    feedDAO,
		reviews: reviewDAO,
		search:  searchDAO,
		redis:   redis,
		kafka:   kafka,
		logger:  log,
	}
}

// newFeedEvent 构造一条动态事件，ID由snowflake生成
func newFeedEvent(userID int64, eventType, operation string, entityID int64) *model.FeedEvent {
	return &model.FeedEvent{
		ID:        snowflake.GenerateID(),
		UserID:    userID,
		EventType: eventType,
		Operation: operation,
		EntityID:  entityID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// requireUser 校验用户存在
func (s *Service) requireUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: 用户ID无效: %d", model.ErrInvalidArgument, userID)
	}
	exists, err := s.catalog.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: 查询用户失败: %v", model.ErrStorageUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("%w: 用户不存在: %d", model.ErrNotFound, userID)
	}
	return nil
}

// requireFilm 校验电影存在
func (s *Service) requireFilm(ctx context.Context, filmID int64) error {
	if filmID <= 0 {
		return fmt.Errorf("%w: 电影ID无效: %d", model.ErrInvalidArgument, filmID)
	}
	if _, err := s.catalog.GetFilm(ctx, filmID); err != nil {
		if err == model.ErrNotFound {
			return fmt.Errorf("%w: 电影不存在: %d", model.ErrNotFound, filmID)
		}
		return fmt.Errorf("%w: 查询电影失败: %v", model.ErrStorageUnavailable, err)
	}
	return nil
}

// publishSocialEvent 发布社交事件到消息队列与实时推送频道
func (s *Service) publishSocialEvent(ctx context.Context, event *model.FeedEvent) {
	socialEvent := &model.SocialEvent{
		EventID:   event.ID,
		EventType: event.EventType,
		Operation: event.Operation,
		UserID:    event.UserID,
		EntityID:  event.EntityID,
		Timestamp: time.UnixMilli(event.Timestamp),
	}

	eventData, err := json.Marshal(socialEvent)
	if err != nil {
		s.logger.Error(ctx, "Failed to marshal social event",
			logger.F("error", err.Error()),
			logger.F("eventID", event.ID))
		return
	}

	// 异步发送，不阻塞业务请求
	go func() {
		if s.kafka != nil {
			key := fmt.Sprintf("%d", socialEvent.UserID)
			if err := s.kafka.SendMessage(model.TopicSocialEvents, []byte(key), eventData); err != nil {
				s.logger.Error(context.Background(), "Failed to send social event",
					logger.F("error", err.Error()),
					logger.F("topic", model.TopicSocialEvents),
					logger.F("eventID", socialEvent.EventID))
			}
		}
		if s.redis != nil {
			channel := model.GetFeedChannel(socialEvent.UserID)
			if err := s.redis.Publish(context.Background(), channel, string(eventData)); err != nil {
				s.logger.Error(context.Background(), "Failed to publish feed event",
					logger.F("error", err.Error()),
					logger.F("channel", channel))
			}
		}
	}()
}

// filmSummaries 按给定顺序解析电影汇总并填充点赞数，跳过无法解析的电影
func (s *Service) filmSummaries(ctx context.Context, filmIDs []int64) ([]*model.FilmSummary, error) {
	if len(filmIDs) == 0 {
		return []*model.FilmSummary{}, nil
	}

	summaries, err := s.catalog.FilmSummaries(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询电影汇总失败: %v", model.ErrStorageUnavailable, err)
	}
	counts, err := s.likes.LikeCounts(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询点赞统计失败: %v", model.ErrStorageUnavailable, err)
	}

	result := make([]*model.FilmSummary, 0, len(filmIDs))
	for _, id := range filmIDs {
		summary, ok := summaries[id]
		if !ok {
			continue
		}
		summary.LikeCount = counts[id]
		result = append(result, summary)
	}
	return result, nil
}
