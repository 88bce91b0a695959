package dao

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/database"
)

// friendDAO 好友关系GORM实现
type friendDAO struct {
	db *database.PostgreSQL
}

// NewFriendDAO 创建好友DAO
func NewFriendDAO(db *database.PostgreSQL) FriendDAO {
	return &friendDAO{db: db}
}

// AddFriend 建立双向好友关系
func (d *friendDAO) AddFriend(ctx context.Context, userID, friendID int64, event *model.FeedEvent) (bool, error) {
	changed := false
	err := d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := []model.Friendship{
			{UserID: userID, FriendID: friendID},
			{UserID: friendID, FriendID: userID},
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		changed = true
		return tx.Create(event).Error
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// RemoveFriend 解除双向好友关系
func (d *friendDAO) RemoveFriend(ctx context.Context, userID, friendID int64, event *model.FeedEvent) (bool, error) {
	changed := false
	err := d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).Delete(&model.Friendship{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		changed = true
		return tx.Create(event).Error
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// FriendIDs 查询好友ID列表
func (d *friendDAO) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := d.db.GetDB().WithContext(ctx).
		Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
