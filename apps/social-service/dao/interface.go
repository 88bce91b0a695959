package dao

import (
	"context"

	"gofilm-social/apps/social-service/model"
)

// FriendDAO 好友关系数据访问接口
type FriendDAO interface {
	// AddFriend 建立双向好友关系，与动态事件同事务写入；返回是否实际插入
	AddFriend(ctx context.Context, userID, friendID int64, event *model.FeedEvent) (bool, error)
	// RemoveFriend 解除双向好友关系，与动态事件同事务写入；返回是否实际删除
	RemoveFriend(ctx context.Context, userID, friendID int64, event *model.FeedEvent) (bool, error)
	// FriendIDs 返回用户好友ID列表，按ID升序
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

// LikeDAO 电影点赞数据访问接口
type LikeDAO interface {
	// AddLike 幂等插入点赞边，实际插入时同事务更新统计并写入事件；返回是否实际插入
	AddLike(ctx context.Context, userID, filmID int64, event *model.FeedEvent) (bool, error)
	// RemoveLike 幂等删除点赞边，实际删除时同事务更新统计并写入事件；返回是否实际删除
	RemoveLike(ctx context.Context, userID, filmID int64, event *model.FeedEvent) (bool, error)
	// LikedFilmIDs 返回用户点赞的电影ID列表，按ID升序
	LikedFilmIDs(ctx context.Context, userID int64) ([]int64, error)
	// UserIDsWhoLiked 返回点赞过电影的用户ID列表，按ID升序
	UserIDsWhoLiked(ctx context.Context, filmID int64) ([]int64, error)
	// AllLikes 返回全量点赞边，userID -> 电影ID集合（相似度推荐用）
	AllLikes(ctx context.Context) (map[int64][]int64, error)
	// LikeCounts 返回指定电影的点赞数
	LikeCounts(ctx context.Context, filmIDs []int64) (map[int64]int64, error)
}

// FeedDAO 动态事件数据访问接口
type FeedDAO interface {
	// AppendEvent 追加一条事件记录
	AppendEvent(ctx context.Context, event *model.FeedEvent) error
	// EventsByUser 返回用户的事件，按时间戳升序、同时间戳按写入顺序
	EventsByUser(ctx context.Context, userID int64) ([]*model.FeedEvent, error)
}

// CatalogDAO 用户与电影参照数据访问接口
type CatalogDAO interface {
	// 用户
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UserExists(ctx context.Context, userID int64) (bool, error)

	// 电影
	CreateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) error
	// UpdateFilm 覆盖电影字段并重建类型与导演关联
	UpdateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) error
	GetFilm(ctx context.Context, filmID int64) (*model.Film, error)
	ListFilms(ctx context.Context, genreID int64, year int32) ([]*model.Film, error)
	FilmsByDirector(ctx context.Context, directorID int64) ([]*model.Film, error)
	// FilmSummaries 解析电影的类型、导演与分级（不含点赞数）
	FilmSummaries(ctx context.Context, filmIDs []int64) (map[int64]*model.FilmSummary, error)

	// 参照数据
	CreateGenre(ctx context.Context, genre *model.Genre) error
	ListGenres(ctx context.Context) ([]*model.Genre, error)
	CreateDirector(ctx context.Context, director *model.Director) error
	ListDirectors(ctx context.Context) ([]*model.Director, error)
	DirectorExists(ctx context.Context, directorID int64) (bool, error)
	CreateMpaRating(ctx context.Context, rating *model.MpaRating) error
	ListMpaRatings(ctx context.Context) ([]*model.MpaRating, error)
}

// ReviewDAO 影评数据访问接口
type ReviewDAO interface {
	CreateReview(ctx context.Context, review *model.Review, event *model.FeedEvent) error
	GetReview(ctx context.Context, reviewID int64) (*model.Review, error)
	UpdateReview(ctx context.Context, review *model.Review, event *model.FeedEvent) error
	DeleteReview(ctx context.Context, reviewID int64, event *model.FeedEvent) error
	// ListReviews filmID为0时返回全部影评，按useful降序、ID升序
	ListReviews(ctx context.Context, filmID int64, limit int) ([]*model.Review, error)
	// AddVote 记录用户对影评的赞/踩，同事务调整useful计数；返回是否实际变更
	AddVote(ctx context.Context, reviewID, userID int64, isLike bool) (bool, error)
	// RemoveVote 撤销投票，同事务调整useful计数；返回是否实际删除
	RemoveVote(ctx context.Context, reviewID, userID int64) (bool, error)
}

// SearchDAO 电影全文检索接口
type SearchDAO interface {
	IndexFilm(ctx context.Context, summary *model.FilmSummary) error
	DeleteFilm(ctx context.Context, filmID int64) error
	// SearchFilms 在给定字段上模糊检索，返回电影ID列表
	SearchFilms(ctx context.Context, query string, fields []string, limit int) ([]int64, error)
}
