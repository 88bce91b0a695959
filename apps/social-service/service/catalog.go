package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// 最早的电影上映日期（电影诞生日）
var earliestReleaseDate = time.Date(1895, 12, 28, 0, 0, 0, 0, time.UTC)

// CreateUser 创建用户，名称为空时用登录名代替
func (s *Service) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return nil, fmt.Errorf("%w: 邮箱格式无效: %s", model.ErrInvalidArgument, user.Email)
	}
	if user.Login == "" || strings.Contains(user.Login, " ") {
		return nil, fmt.Errorf("%w: 登录名不能为空或含空格: %s", model.ErrInvalidArgument, user.Login)
	}
	if user.Birthday.After(time.Now()) {
		return nil, fmt.Errorf("%w: 生日不能晚于当前日期", model.ErrInvalidArgument)
	}
	if user.Name == "" {
		user.Name = user.Login
	}

	if err := s.catalog.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: 创建用户失败: %v", model.ErrStorageUnavailable, err)
	}
	s.logger.Info(ctx, "User created",
		logger.F("userID", user.ID),
		logger.F("login", user.Login))
	return user, nil
}

// GetUser 查询用户
func (s *Service) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: 用户ID无效: %d", model.ErrInvalidArgument, userID)
	}
	user, err := s.catalog.GetUser(ctx, userID)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, fmt.Errorf("%w: 用户不存在: %d", model.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: 查询用户失败: %v", model.ErrStorageUnavailable, err)
	}
	return user, nil
}

// ListUsers 查询全部用户
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.catalog.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询用户列表失败: %v", model.ErrStorageUnavailable, err)
	}
	return users, nil
}

// CreateFilm 创建电影及其类型、导演关联，并写入检索索引
func (s *Service) CreateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) (*model.Film, error) {
	if err := validateFilm(film); err != nil {
		return nil, err
	}

	if err := s.catalog.CreateFilm(ctx, film, genreIDs, directorIDs); err != nil {
		return nil, fmt.Errorf("%w: 创建电影失败: %v", model.ErrStorageUnavailable, err)
	}
	s.clearFilmStatsCache(ctx, film.ID)
	s.logger.Info(ctx, "Film created",
		logger.F("filmID", film.ID),
		logger.F("name", film.Name))

	s.indexFilmAsync(film.ID)
	return film, nil
}

// UpdateFilm 更新电影字段与关联，重写检索索引并清除缓存
func (s *Service) UpdateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) (*model.Film, error) {
	if err := validateFilm(film); err != nil {
		return nil, err
	}
	if err := s.requireFilm(ctx, film.ID); err != nil {
		return nil, err
	}

	if err := s.catalog.UpdateFilm(ctx, film, genreIDs, directorIDs); err != nil {
		if err == model.ErrNotFound {
			return nil, fmt.Errorf("%w: 电影不存在: %d", model.ErrNotFound, film.ID)
		}
		return nil, fmt.Errorf("%w: 更新电影失败: %v", model.ErrStorageUnavailable, err)
	}
	s.clearFilmStatsCache(ctx, film.ID)
	s.logger.Info(ctx, "Film updated",
		logger.F("filmID", film.ID),
		logger.F("name", film.Name))

	s.indexFilmAsync(film.ID)
	return film, nil
}

// validateFilm 电影字段校验
func validateFilm(film *model.Film) error {
	if film.Name == "" {
		return fmt.Errorf("%w: 电影名称不能为空", model.ErrInvalidArgument)
	}
	if len(film.Description) > 1000 {
		return fmt.Errorf("%w: 电影描述超过1000字符", model.ErrInvalidArgument)
	}
	if film.ReleaseDate.Before(earliestReleaseDate) {
		return fmt.Errorf("%w: 上映日期不能早于1895-12-28", model.ErrInvalidArgument)
	}
	if film.Duration <= 0 {
		return fmt.Errorf("%w: 电影时长必须为正数: %d", model.ErrInvalidArgument, film.Duration)
	}
	return nil
}

// GetFilmSummary 查询电影汇总（含类型、导演、分级与点赞数），优先走缓存
func (s *Service) GetFilmSummary(ctx context.Context, filmID int64) (*model.FilmSummary, error) {
	cacheKey := model.GetFilmStatsKey(filmID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			var summary model.FilmSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	if err := s.requireFilm(ctx, filmID); err != nil {
		return nil, err
	}
	summaries, err := s.filmSummaries(ctx, []int64{filmID})
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: 电影不存在: %d", model.ErrNotFound, filmID)
	}

	if s.redis != nil {
		if data, err := json.Marshal(summaries[0]); err == nil {
			if err := s.redis.Set(ctx, cacheKey, string(data), model.CacheExpireStats*time.Second); err != nil {
				s.logger.Warn(ctx, "Failed to cache film summary",
					logger.F("error", err.Error()),
					logger.F("filmID", filmID))
			}
		}
	}
	return summaries[0], nil
}

// ListFilms 查询电影列表，可按类型与年份过滤
func (s *Service) ListFilms(ctx context.Context, genreID int64, year int32) ([]*model.FilmSummary, error) {
	films, err := s.catalog.ListFilms(ctx, genreID, year)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询电影列表失败: %v", model.ErrStorageUnavailable, err)
	}
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	return s.filmSummaries(ctx, ids)
}

// CreateGenre 创建电影类型
func (s *Service) CreateGenre(ctx context.Context, genre *model.Genre) (*model.Genre, error) {
	if genre.Name == "" {
		return nil, fmt.Errorf("%w: 类型名称不能为空", model.ErrInvalidArgument)
	}
	if err := s.catalog.CreateGenre(ctx, genre); err != nil {
		return nil, fmt.Errorf("%w: 创建类型失败: %v", model.ErrStorageUnavailable, err)
	}
	return genre, nil
}

// ListGenres 查询全部类型
func (s *Service) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	genres, err := s.catalog.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询类型列表失败: %v", model.ErrStorageUnavailable, err)
	}
	return genres, nil
}

// CreateDirector 创建导演
func (s *Service) CreateDirector(ctx context.Context, director *model.Director) (*model.Director, error) {
	if director.Name == "" {
		return nil, fmt.Errorf("%w: 导演姓名不能为空", model.ErrInvalidArgument)
	}
	if err := s.catalog.CreateDirector(ctx, director); err != nil {
		return nil, fmt.Errorf("%w: 创建导演失败: %v", model.ErrStorageUnavailable, err)
	}
	return director, nil
}

// ListDirectors 查询全部导演
func (s *Service) ListDirectors(ctx context.Context) ([]*model.Director, error) {
	directors, err := s.catalog.ListDirectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询导演列表失败: %v", model.ErrStorageUnavailable, err)
	}
	return directors, nil
}

// CreateMpaRating 创建MPA分级
func (s *Service) CreateMpaRating(ctx context.Context, rating *model.MpaRating) (*model.MpaRating, error) {
	if rating.Name == "" {
		return nil, fmt.Errorf("%w: 分级名称不能为空", model.ErrInvalidArgument)
	}
	if err := s.catalog.CreateMpaRating(ctx, rating); err != nil {
		return nil, fmt.Errorf("%w: 创建分级失败: %v", model.ErrStorageUnavailable, err)
	}
	return rating, nil
}

// ListMpaRatings 查询全部分级
func (s *Service) ListMpaRatings(ctx context.Context) ([]*model.MpaRating, error) {
	ratings, err := s.catalog.ListMpaRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询分级列表失败: %v", model.ErrStorageUnavailable, err)
	}
	return ratings, nil
}
