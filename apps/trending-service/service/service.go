package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gofilm-social/apps/trending-service/model"
	"gofilm-social/pkg/database"
	"gofilm-social/pkg/logger"
	"gofilm-social/pkg/redis"
)

// Service 热度榜服务，消费社交事件维护实时榜单
type Service struct {
	redis  *redis.RedisClient
	mongo  *database.MongoDB
	logger logger.Logger
}

// NewService 创建热度榜服务实例
func NewService(redis *redis.RedisClient, mongo *database.MongoDB, log logger.Logger) *Service {
	return &Service{
		redis:  redis,
		mongo:  mongo,
		logger: log,
	}
}

// HandleMessage 消费一条社交事件，点赞增减映射为榜单分数增减
func (s *Service) HandleMessage(msg *sarama.ConsumerMessage) error {
	var event model.SocialEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 格式错误的消息记日志后跳过，不阻塞消费
		s.logger.Warn(context.Background(), "Skipping malformed social event",
			logger.F("error", err.Error()),
			logger.F("offset", msg.Offset))
		return nil
	}
	if event.EventType != model.EventTypeLike {
		return nil
	}

	var delta float64
	switch event.Operation {
	case model.OperationAdd:
		delta = 1
	case model.OperationRemove:
		delta = -1
	default:
		return nil
	}

	ctx := context.Background()
	member := strconv.FormatInt(event.EntityID, 10)
	score, err := s.redis.ZIncrBy(ctx, model.TrendingBoardKey, delta, member)
	if err != nil {
		return fmt.Errorf("update trending board: %w", err)
	}

	// 分数归零的电影移出榜单
	if score <= 0 {
		if err := s.redis.ZRem(ctx, model.TrendingBoardKey, member); err != nil {
			s.logger.Warn(ctx, "Failed to prune trending entry",
				logger.F("error", err.Error()),
				logger.F("filmID", event.EntityID))
		}
	}
	return nil
}

// GetBoard 查询热度榜前N名
func (s *Service) GetBoard(ctx context.Context, limit int) ([]model.TrendingEntry, error) {
	if limit <= 0 {
		limit = model.DefaultBoardSize
	}
	if limit > model.MaxBoardSize {
		limit = model.MaxBoardSize
	}

	members, err := s.redis.ZRevRangeWithScores(ctx, model.TrendingBoardKey, 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("查询热度榜失败: %v", err)
	}

	entries := make([]model.TrendingEntry, 0, len(members))
	for _, m := range members {
		member, ok := m.Member.(string)
		if !ok {
			continue
		}
		filmID, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, model.TrendingEntry{FilmID: filmID, Score: m.Score})
	}
	return entries, nil
}

// TakeSnapshot 把当前榜单归档到Mongo
func (s *Service) TakeSnapshot(ctx context.Context) error {
	entries, err := s.GetBoard(ctx, model.SnapshotBoardSize)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	snapshot := model.TrendingSnapshot{
		TakenAt: time.Now(),
		Entries: entries,
	}
	collection := s.mongo.GetCollection(model.SnapshotCollection)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("归档榜单快照失败: %v", err)
	}

	s.logger.Info(ctx, "Trending snapshot taken",
		logger.F("entries", len(entries)))
	return nil
}

// ListSnapshots 查询最近的榜单快照，按归档时间倒序
func (s *Service) ListSnapshots(ctx context.Context, limit int) ([]model.TrendingSnapshot, error) {
	if limit <= 0 {
		limit = model.DefaultBoardSize
	}

	collection := s.mongo.GetCollection(model.SnapshotCollection)
	opts := options.Find().
		SetSort(bson.D{{Key: "taken_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("查询榜单快照失败: %v", err)
	}
	defer cursor.Close(ctx)

	var snapshots []model.TrendingSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("解析榜单快照失败: %v", err)
	}
	return snapshots, nil
}

// StartSnapshotLoop 周期性归档榜单，ctx取消时退出
func (s *Service) StartSnapshotLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.TakeSnapshot(ctx); err != nil {
				s.logger.Error(ctx, "Failed to take trending snapshot",
					logger.F("error", err.Error()))
			}
		case <-ctx.Done():
			return
		}
	}
}
