package dao

import (
	"context"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/database"
)

// feedDAO 动态事件GORM实现
type feedDAO struct {
	db *database.PostgreSQL
}

// NewFeedDAO 创建动态DAO
func NewFeedDAO(db *database.PostgreSQL) FeedDAO {
	return &feedDAO{db: db}
}

// AppendEvent 追加事件记录
func (d *feedDAO) AppendEvent(ctx context.Context, event *model.FeedEvent) error {
	return d.db.GetDB().WithContext(ctx).Create(event).Error
}

// EventsByUser 查询用户事件，按时间戳升序，同时间戳按事件ID升序
func (d *feedDAO) EventsByUser(ctx context.Context, userID int64) ([]*model.FeedEvent, error) {
	var events []*model.FeedEvent
	err := d.db.GetDB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
