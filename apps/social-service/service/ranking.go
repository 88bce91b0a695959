package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// TopFilms 按点赞数降序返回热门电影，可按类型与年份过滤
func (s *Service) TopFilms(ctx context.Context, limit int, genreID int64, year int32) ([]*model.FilmSummary, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit必须为正数: %d", model.ErrInvalidArgument, limit)
	}

	ranked, err := s.topFilmIDs(ctx, genreID, year)
	if err != nil {
		return nil, err
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return s.filmSummaries(ctx, ranked)
}

// topFilmIDs 计算排序后的电影ID，无过滤条件时走缓存
func (s *Service) topFilmIDs(ctx context.Context, genreID int64, year int32) ([]int64, error) {
	cacheable := genreID == 0 && year == 0 && s.redis != nil
	if cacheable {
		if cached, err := s.redis.Get(ctx, model.CacheKeyTopFilms); err == nil && cached != "" {
			var ids []int64
			if err := json.Unmarshal([]byte(cached), &ids); err == nil {
				return ids, nil
			}
		}
	}

	films, err := s.catalog.ListFilms(ctx, genreID, year)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询电影列表失败: %v", model.ErrStorageUnavailable, err)
	}
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	ranked, err := s.rankByLikes(ctx, ids)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(ranked); err == nil {
			if err := s.redis.Set(ctx, model.CacheKeyTopFilms, string(data), model.CacheExpireStats*time.Second); err != nil {
				s.logger.Warn(ctx, "Failed to cache top films",
					logger.F("error", err.Error()))
			}
		}
	}
	return ranked, nil
}

// CommonFilms 查询两个用户共同点赞的电影，按点赞数降序
func (s *Service) CommonFilms(ctx context.Context, userID, friendID int64) ([]*model.FilmSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, friendID); err != nil {
		return nil, err
	}

	mine, err := s.likes.LikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询点赞列表失败: %v", model.ErrStorageUnavailable, err)
	}
	theirs, err := s.likes.LikedFilmIDs(ctx, friendID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询点赞列表失败: %v", model.ErrStorageUnavailable, err)
	}

	theirSet := make(map[int64]struct{}, len(theirs))
	for _, id := range theirs {
		theirSet[id] = struct{}{}
	}
	common := make([]int64, 0)
	for _, id := range mine {
		if _, ok := theirSet[id]; ok {
			common = append(common, id)
		}
	}

	ranked, err := s.rankByLikes(ctx, common)
	if err != nil {
		return nil, err
	}
	return s.filmSummaries(ctx, ranked)
}

// FilmsByDirector 查询导演的全部电影，按年份升序或点赞数降序
func (s *Service) FilmsByDirector(ctx context.Context, directorID int64, sortBy string) ([]*model.FilmSummary, error) {
	if directorID <= 0 {
		return nil, fmt.Errorf("%w: 导演ID无效: %d", model.ErrInvalidArgument, directorID)
	}
	mode := strings.ToLower(sortBy)
	if mode != model.SortByYear && mode != model.SortByLikes {
		return nil, fmt.Errorf("%w: 排序模式无效: %s", model.ErrInvalidArgument, sortBy)
	}

	exists, err := s.catalog.DirectorExists(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询导演失败: %v", model.ErrStorageUnavailable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: 导演不存在: %d", model.ErrNotFound, directorID)
	}

	films, err := s.catalog.FilmsByDirector(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询导演电影失败: %v", model.ErrStorageUnavailable, err)
	}
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}

	if mode == model.SortByYear {
		sort.SliceStable(films, func(i, j int) bool {
			yi, yj := films[i].ReleaseDate.Year(), films[j].ReleaseDate.Year()
			if yi != yj {
				return yi < yj
			}
			return films[i].ID < films[j].ID
		})
		ordered := make([]int64, 0, len(films))
		for _, f := range films {
			ordered = append(ordered, f.ID)
		}
		return s.filmSummaries(ctx, ordered)
	}

	ranked, err := s.rankByLikes(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.filmSummaries(ctx, ranked)
}

// rankByLikes 按点赞数降序、ID升序排列电影ID
func (s *Service) rankByLikes(ctx context.Context, filmIDs []int64) ([]int64, error) {
	if len(filmIDs) == 0 {
		return []int64{}, nil
	}

	counts, err := s.likes.LikeCounts(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询点赞统计失败: %v", model.ErrStorageUnavailable, err)
	}

	ranked := make([]int64, len(filmIDs))
	copy(ranked, filmIDs)
	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := counts[ranked[i]], counts[ranked[j]]
		if ci != cj {
			return ci > cj
		}
		return ranked[i] < ranked[j]
	})
	return ranked, nil
}
