package model

import (
	"fmt"
	"time"
)

// User 用户表
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Login     string    `json:"login" gorm:"type:varchar(64);not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"type:varchar(64)"`
	Birthday  time.Time `json:"birthday"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName .
func (User) TableName() string {
	return "users"
}

// MpaRating MPA分级表（静态参照数据）
type MpaRating struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(10);not null;uniqueIndex"`
}

// TableName .
func (MpaRating) TableName() string {
	return "mpa_ratings"
}

// Genre 电影类型表
type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName .
func (Genre) TableName() string {
	return "genres"
}

// Director 导演表
type Director struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(128);not null"`
}

// TableName .
func (Director) TableName() string {
	return "directors"
}

// Film 电影表
type Film struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Description string    `json:"description" gorm:"type:varchar(1000)"`
	ReleaseDate time.Time `json:"release_date" gorm:"not null;index"`
	Duration    int32     `json:"duration" gorm:"not null"`
	MpaRatingID int64     `json:"mpa_rating_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName .
func (Film) TableName() string {
	return "films"
}

// FilmGenre 电影与类型关联表
type FilmGenre struct {
	FilmID  int64 `json:"film_id" gorm:"primaryKey"`
	GenreID int64 `json:"genre_id" gorm:"primaryKey"`
}

// TableName .
func (FilmGenre) TableName() string {
	return "film_genres"
}

// FilmDirector 电影与导演关联表
type FilmDirector struct {
	FilmID     int64 `json:"film_id" gorm:"primaryKey"`
	DirectorID int64 `json:"director_id" gorm:"primaryKey"`
}

// TableName .
func (FilmDirector) TableName() string {
	return "film_directors"
}

// Friendship 好友关系表（无向边存两条有向记录）
type Friendship struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_friend"`
	FriendID  int64     `json:"friend_id" gorm:"not null;uniqueIndex:idx_user_friend;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (Friendship) TableName() string {
	return "friendships"
}

// FilmLike 电影点赞表
type FilmLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_film"`
	FilmID    int64     `json:"film_id" gorm:"not null;uniqueIndex:idx_user_film;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (FilmLike) TableName() string {
	return "film_likes"
}

// FilmLikeStats 电影点赞统计表
type FilmLikeStats struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FilmID    int64     `json:"film_id" gorm:"not null;uniqueIndex"`
	LikeCount int64     `json:"like_count" gorm:"default:0"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName .
func (FilmLikeStats) TableName() string {
	return "film_like_stats"
}

// Review 影评表
type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content    string    `json:"content" gorm:"type:varchar(2000);not null"`
	IsPositive bool      `json:"is_positive" gorm:"not null"`
	UserID     int64     `json:"user_id" gorm:"not null;index"`
	FilmID     int64     `json:"film_id" gorm:"not null;index"`
	Useful     int64     `json:"useful" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName .
func (Review) TableName() string {
	return "reviews"
}

// ReviewVote 影评投票表
type ReviewVote struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID  int64     `json:"review_id" gorm:"not null;uniqueIndex:idx_review_user"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_review_user"`
	IsLike    bool      `json:"is_like" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (ReviewVote) TableName() string {
	return "review_votes"
}

// FeedEvent 用户动态事件表（只追加，ID由snowflake生成）
type FeedEvent struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index:idx_user_ts"`
	EventType string    `json:"event_type" gorm:"type:varchar(20);not null"`
	Operation string    `json:"operation" gorm:"type:varchar(20);not null"`
	EntityID  int64     `json:"entity_id" gorm:"not null"`
	Timestamp int64     `json:"timestamp" gorm:"not null;index:idx_user_ts"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (FeedEvent) TableName() string {
	return "feed_events"
}

// FilmSummary 电影汇总（含类型、导演、分级与点赞数，用于API响应）
type FilmSummary struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate time.Time  `json:"release_date"`
	Duration    int32      `json:"duration"`
	Mpa         string     `json:"mpa"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"directors"`
	LikeCount   int64      `json:"like_count"`
}

// SocialEvent 社交事件（用于消息队列与实时推送）
type SocialEvent struct {
	EventID   int64     `json:"event_id"`
	EventType string    `json:"event_type"`
	Operation string    `json:"operation"`
	UserID    int64     `json:"user_id"`
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidateEventType 验证事件类型
func ValidateEventType(eventType string) bool {
	for _, t := range ValidEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// ValidateOperation 验证事件操作
func ValidateOperation(operation string) bool {
	for _, op := range ValidOperations {
		if op == operation {
			return true
		}
	}
	return false
}

// GetFilmStatsKey 生成电影统计的缓存键
func GetFilmStatsKey(filmID int64) string {
	return fmt.Sprintf("%s:%d", CacheKeyFilmStats, filmID)
}

// GetFriendListKey 生成好友列表的缓存键
func GetFriendListKey(userID int64) string {
	return fmt.Sprintf("%s:%d", CacheKeyFriendList, userID)
}

// GetFeedChannel 生成用户动态的发布频道
func GetFeedChannel(userID int64) string {
	return fmt.Sprintf("%s%d", FeedChannelPrefix, userID)
}
