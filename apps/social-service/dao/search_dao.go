package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/database"
)

// searchDAO 电影全文检索ES实现
type searchDAO struct {
	es *database.ElasticSearch
}

// NewSearchDAO 创建检索DAO
func NewSearchDAO(es *database.ElasticSearch) SearchDAO {
	return &searchDAO{es: es}
}

// filmDocument ES电影文档
type filmDocument struct {
	FilmID      int64    `json:"film_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Directors   []string `json:"directors"`
	ReleaseYear int      `json:"release_year"`
	LikeCount   int64    `json:"like_count"`
}

// IndexFilm 写入或更新电影文档
func (d *searchDAO) IndexFilm(ctx context.Context, summary *model.FilmSummary) error {
	directors := make([]string, 0, len(summary.Directors))
	for _, director := range summary.Directors {
		directors = append(directors, director.Name)
	}
	doc := filmDocument{
		FilmID:      summary.ID,
		Name:        summary.Name,
		Description: summary.Description,
		Directors:   directors,
		ReleaseYear: summary.ReleaseDate.Year(),
		LikeCount:   summary.LikeCount,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal film document: %w", err)
	}

	res, err := d.es.GetClient().Index(
		model.FilmIndexName,
		bytes.NewReader(body),
		d.es.GetClient().Index.WithDocumentID(strconv.FormatInt(summary.ID, 10)),
		d.es.GetClient().Index.WithContext(ctx),
		d.es.GetClient().Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index film: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index film failed: %s", res.String())
	}
	return nil
}

// DeleteFilm 删除电影文档
func (d *searchDAO) DeleteFilm(ctx context.Context, filmID int64) error {
	res, err := d.es.GetClient().Delete(
		model.FilmIndexName,
		strconv.FormatInt(filmID, 10),
		d.es.GetClient().Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete film document: %w", err)
	}
	defer res.Body.Close()

	// 404视为已删除
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete film document failed: %s", res.String())
	}
	return nil
}

// SearchFilms 在指定字段上模糊检索，按点赞数降序返回电影ID
func (d *searchDAO) SearchFilms(ctx context.Context, query string, fields []string, limit int) ([]int64, error) {
	if len(fields) == 0 {
		fields = []string{"name^2", "description", "directors"}
	}
	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    fields,
				"fuzziness": "AUTO",
			},
		},
		"sort": []map[string]interface{}{
			{"like_count": map[string]interface{}{"order": "desc"}},
			{"film_id": map[string]interface{}{"order": "asc"}},
		},
		"size": limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery); err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := d.es.GetClient().Search(
		d.es.GetClient().Search.WithContext(ctx),
		d.es.GetClient().Search.WithIndex(model.FilmIndexName),
		d.es.GetClient().Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search films failed: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source filmDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.FilmID)
	}
	return ids, nil
}
