package service

import (
	"context"
	"fmt"
	"strings"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// SearchFilms 按片名、描述或导演模糊检索电影，by为逗号分隔的检索范围
func (s *Service) SearchFilms(ctx context.Context, query, by string, limit int) ([]*model.FilmSummary, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: 检索关键词不能为空", model.ErrInvalidArgument)
	}
	if s.search == nil {
		return nil, fmt.Errorf("%w: 检索服务未启用", model.ErrStorageUnavailable)
	}
	fields, err := searchFields(by)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > model.MaxPageSize {
		limit = model.DefaultPageSize
	}

	ids, err := s.search.SearchFilms(ctx, query, fields, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: 检索电影失败: %v", model.ErrStorageUnavailable, err)
	}
	return s.filmSummaries(ctx, ids)
}

// searchFields 把检索范围参数映射为索引字段，空值表示全部范围
func searchFields(by string) ([]string, error) {
	if by == "" {
		return nil, nil
	}

	var fields []string
	for _, scope := range strings.Split(by, ",") {
		switch strings.ToLower(strings.TrimSpace(scope)) {
		case "title":
			fields = append(fields, "name^2", "description")
		case "director":
			fields = append(fields, "directors")
		default:
			return nil, fmt.Errorf("%w: 不支持的检索范围: %s", model.ErrInvalidArgument, scope)
		}
	}
	return fields, nil
}

// indexFilmAsync 异步把电影写入检索索引，失败只记日志
func (s *Service) indexFilmAsync(filmID int64) {
	if s.search == nil {
		return
	}
	go func() {
		ctx := context.Background()
		summaries, err := s.filmSummaries(ctx, []int64{filmID})
		if err != nil || len(summaries) == 0 {
			s.logger.Warn(ctx, "Failed to load film for indexing",
				logger.F("filmID", filmID))
			return
		}
		if err := s.search.IndexFilm(ctx, summaries[0]); err != nil {
			s.logger.Error(ctx, "Failed to index film",
				logger.F("error", err.Error()),
				logger.F("filmID", filmID))
		}
	}()
}
