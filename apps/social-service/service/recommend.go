package service

import (
	"context"
	"fmt"
	"sort"

	"gofilm-social/apps/social-service/model"
)

// GetRecommendations 基于点赞相似度推荐电影
//
// 取与当前用户点赞交集最大的单个邻居（并列取ID最小者），
// 推荐邻居点赞过而当前用户未点赞的电影。无点赞或无重叠时返回空列表。
func (s *Service) GetRecommendations(ctx context.Context, userID int64) ([]*model.FilmSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	allLikes, err := s.likes.AllLikes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询点赞数据失败: %v", model.ErrStorageUnavailable, err)
	}

	mine := allLikes[userID]
	if len(mine) == 0 {
		return []*model.FilmSummary{}, nil
	}
	mySet := make(map[int64]struct{}, len(mine))
	for _, id := range mine {
		mySet[id] = struct{}{}
	}

	bestNeighbor := int64(0)
	bestOverlap := 0
	for other, films := range allLikes {
		if other == userID {
			continue
		}
		overlap := 0
		for _, id := range films {
			if _, ok := mySet[id]; ok {
				overlap++
			}
		}
		if overlap > bestOverlap || (overlap == bestOverlap && overlap > 0 && other < bestNeighbor) {
			bestNeighbor = other
			bestOverlap = overlap
		}
	}
	if bestOverlap == 0 {
		return []*model.FilmSummary{}, nil
	}

	// 推荐结果按电影ID升序返回
	candidates := make([]int64, 0)
	for _, id := range allLikes[bestNeighbor] {
		if _, ok := mySet[id]; !ok {
			candidates = append(candidates, id)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	return s.filmSummaries(ctx, candidates)
}
