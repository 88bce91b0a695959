package model

import "time"

// Redis热度榜键
const (
	TrendingBoardKey = "trending:films"
)

// Kafka订阅配置
const (
	TopicSocialEvents = "film-social-events"
	ConsumerGroupID   = "trending-service"
)

// Mongo集合
const (
	SnapshotCollection = "trending_snapshots"
)

// 榜单默认配置
const (
	DefaultBoardSize  = 10
	MaxBoardSize      = 100
	SnapshotBoardSize = 50
)

// 处理的事件类型
const (
	EventTypeLike   = "LIKE"
	OperationAdd    = "ADD"
	OperationRemove = "REMOVE"
)

// SocialEvent 消费的社交事件
type SocialEvent struct {
	EventID   int64     `json:"event_id"`
	EventType string    `json:"event_type"`
	Operation string    `json:"operation"`
	UserID    int64     `json:"user_id"`
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TrendingEntry 榜单条目
type TrendingEntry struct {
	FilmID int64   `json:"film_id" bson:"film_id"`
	Score  float64 `json:"score" bson:"score"`
}

// TrendingSnapshot 榜单快照（Mongo归档文档）
type TrendingSnapshot struct {
	TakenAt time.Time       `json:"taken_at" bson:"taken_at"`
	Entries []TrendingEntry `json:"entries" bson:"entries"`
}
