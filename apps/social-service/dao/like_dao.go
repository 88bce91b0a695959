package dao

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/database"
)

// likeDAO 电影点赞GORM实现
type likeDAO struct {
	db *database.PostgreSQL
}

// NewLikeDAO 创建点赞DAO
func NewLikeDAO(db *database.PostgreSQL) LikeDAO {
	return &likeDAO{db: db}
}

// AddLike 幂等插入点赞边并维护统计
func (d *likeDAO) AddLike(ctx context.Context, userID, filmID int64, event *model.FeedEvent) (bool, error) {
	changed := false
	err := d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := model.FilmLike{UserID: userID, FilmID: filmID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		changed = true

		stats := model.FilmLikeStats{FilmID: filmID, LikeCount: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "film_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"like_count": gorm.Expr("film_like_stats.like_count + 1")}),
		}).Create(&stats).Error; err != nil {
			return err
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// RemoveLike 幂等删除点赞边并维护统计
func (d *likeDAO) RemoveLike(ctx context.Context, userID, filmID int64, event *model.FeedEvent) (bool, error) {
	changed := false
	err := d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND film_id = ?", userID, filmID).Delete(&model.FilmLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		changed = true

		if err := tx.Model(&model.FilmLikeStats{}).
			Where("film_id = ? AND like_count > 0", filmID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			return err
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// LikedFilmIDs 查询用户点赞的电影ID
func (d *likeDAO) LikedFilmIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := d.db.GetDB().WithContext(ctx).
		Model(&model.FilmLike{}).
		Where("user_id = ?", userID).
		Order("film_id ASC").
		Pluck("film_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UserIDsWhoLiked 查询点赞过电影的用户ID
func (d *likeDAO) UserIDsWhoLiked(ctx context.Context, filmID int64) ([]int64, error) {
	var ids []int64
	err := d.db.GetDB().WithContext(ctx).
		Model(&model.FilmLike{}).
		Where("film_id = ?", filmID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AllLikes 查询全量点赞边
func (d *likeDAO) AllLikes(ctx context.Context) (map[int64][]int64, error) {
	var likes []model.FilmLike
	err := d.db.GetDB().WithContext(ctx).
		Order("user_id ASC, film_id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64][]int64)
	for _, like := range likes {
		result[like.UserID] = append(result[like.UserID], like.FilmID)
	}
	return result, nil
}

// LikeCounts 批量查询电影点赞数
func (d *likeDAO) LikeCounts(ctx context.Context, filmIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(filmIDs))
	if len(filmIDs) == 0 {
		return result, nil
	}

	var stats []model.FilmLikeStats
	err := d.db.GetDB().WithContext(ctx).
		Where("film_id IN ?", filmIDs).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		result[s.FilmID] = s.LikeCount
	}
	return result, nil
}
