package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/database"
)

// reviewDAO 影评GORM实现
type reviewDAO struct {
	db *database.PostgreSQL
}

// NewReviewDAO 创建影评DAO
func NewReviewDAO(db *database.PostgreSQL) ReviewDAO {
	return &reviewDAO{db: db}
}

// CreateReview 创建影评并写入事件
func (d *reviewDAO) CreateReview(ctx context.Context, review *model.Review, event *model.FeedEvent) error {
	return d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		event.EntityID = review.ID
		return tx.Create(event).Error
	})
}

// GetReview 查询影评
func (d *reviewDAO) GetReview(ctx context.Context, reviewID int64) (*model.Review, error) {
	var review model.Review
	err := d.db.GetDB().WithContext(ctx).First(&review, reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// UpdateReview 更新影评内容并写入事件
func (d *reviewDAO) UpdateReview(ctx context.Context, review *model.Review, event *model.FeedEvent) error {
	return d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Review{}).
			Where("id = ?", review.ID).
			Updates(map[string]interface{}{
				"content":     review.Content,
				"is_positive": review.IsPositive,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return tx.Create(event).Error
	})
}

// DeleteReview 删除影评及其投票并写入事件
func (d *reviewDAO) DeleteReview(ctx context.Context, reviewID int64, event *model.FeedEvent) error {
	return d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Review{}, reviewID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return model.ErrNotFound
		}
		if err := tx.Where("review_id = ?", reviewID).Delete(&model.ReviewVote{}).Error; err != nil {
			return err
		}
		return tx.Create(event).Error
	})
}

// ListReviews 查询影评，filmID为0时返回全部，按useful降序、ID升序
func (d *reviewDAO) ListReviews(ctx context.Context, filmID int64, limit int) ([]*model.Review, error) {
	query := d.db.GetDB().WithContext(ctx).Model(&model.Review{})
	if filmID > 0 {
		query = query.Where("film_id = ?", filmID)
	}

	var reviews []*model.Review
	err := query.Order("useful DESC, id ASC").Limit(limit).Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// AddVote 记录投票并调整useful计数
func (d *reviewDAO) AddVote(ctx context.Context, reviewID, userID int64, isLike bool) (bool, error) {
	changed := false
	err := d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.ReviewVote
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
		if err == nil {
			if existing.IsLike == isLike {
				return nil
			}
			// 换边投票：useful变化量为±2
			if err := tx.Model(&model.ReviewVote{}).
				Where("id = ?", existing.ID).
				UpdateColumn("is_like", isLike).Error; err != nil {
				return err
			}
			delta := int64(-2)
			if isLike {
				delta = 2
			}
			changed = true
			return d.adjustUseful(tx, reviewID, delta)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := model.ReviewVote{ReviewID: reviewID, UserID: userID, IsLike: isLike}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		delta := int64(-1)
		if isLike {
			delta = 1
		}
		changed = true
		return d.adjustUseful(tx, reviewID, delta)
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// RemoveVote 撤销投票并回退useful计数
func (d *reviewDAO) RemoveVote(ctx context.Context, reviewID, userID int64) (bool, error) {
	changed := false
	err := d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.ReviewVote
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&model.ReviewVote{}, existing.ID).Error; err != nil {
			return err
		}
		delta := int64(1)
		if existing.IsLike {
			delta = -1
		}
		changed = true
		return d.adjustUseful(tx, reviewID, delta)
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (d *reviewDAO) adjustUseful(tx *gorm.DB, reviewID, delta int64) error {
	return tx.Model(&model.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn("useful", gorm.Expr("useful + ?", delta)).Error
}
