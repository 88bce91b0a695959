package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/database"
)

// catalogDAO 用户与电影参照数据GORM实现
type catalogDAO struct {
	db *database.PostgreSQL
}

// NewCatalogDAO 创建参照数据DAO
func NewCatalogDAO(db *database.PostgreSQL) CatalogDAO {
	return &catalogDAO{db: db}
}

// CreateUser 创建用户
func (d *catalogDAO) CreateUser(ctx context.Context, user *model.User) error {
	return d.db.GetDB().WithContext(ctx).Create(user).Error
}

// GetUser 查询用户
func (d *catalogDAO) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := d.db.GetDB().WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers 查询全部用户
func (d *catalogDAO) ListUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := d.db.GetDB().WithContext(ctx).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UserExists 判断用户是否存在
func (d *catalogDAO) UserExists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := d.db.GetDB().WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateFilm 创建电影及其类型、导演关联
func (d *catalogDAO) CreateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) error {
	return d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(film).Error; err != nil {
			return err
		}
		for _, gid := range genreIDs {
			if err := tx.Create(&model.FilmGenre{FilmID: film.ID, GenreID: gid}).Error; err != nil {
				return err
			}
		}
		for _, did := range directorIDs {
			if err := tx.Create(&model.FilmDirector{FilmID: film.ID, DirectorID: did}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateFilm 覆盖电影字段并重建类型、导演关联
func (d *catalogDAO) UpdateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) error {
	return d.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Film{}).Where("id = ?", film.ID).Updates(map[string]interface{}{
			"name":          film.Name,
			"description":   film.Description,
			"release_date":  film.ReleaseDate,
			"duration":      film.Duration,
			"mpa_rating_id": film.MpaRatingID,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return model.ErrNotFound
		}

		if err := tx.Where("film_id = ?", film.ID).Delete(&model.FilmGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", film.ID).Delete(&model.FilmDirector{}).Error; err != nil {
			return err
		}
		for _, gid := range genreIDs {
			if err := tx.Create(&model.FilmGenre{FilmID: film.ID, GenreID: gid}).Error; err != nil {
				return err
			}
		}
		for _, did := range directorIDs {
			if err := tx.Create(&model.FilmDirector{FilmID: film.ID, DirectorID: did}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetFilm 查询电影
func (d *catalogDAO) GetFilm(ctx context.Context, filmID int64) (*model.Film, error) {
	var film model.Film
	err := d.db.GetDB().WithContext(ctx).First(&film, filmID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &film, nil
}

// ListFilms 按类型与年份过滤查询电影，参数为0表示不过滤
func (d *catalogDAO) ListFilms(ctx context.Context, genreID int64, year int32) ([]*model.Film, error) {
	query := d.db.GetDB().WithContext(ctx).Model(&model.Film{})
	if genreID > 0 {
		query = query.Joins("JOIN film_genres ON film_genres.film_id = films.id").
			Where("film_genres.genre_id = ?", genreID)
	}
	if year > 0 {
		query = query.Where("EXTRACT(YEAR FROM release_date) = ?", year)
	}

	var films []*model.Film
	err := query.Order("films.id ASC").Find(&films).Error
	if err != nil {
		return nil, err
	}
	return films, nil
}

// FilmsByDirector 查询导演的全部电影
func (d *catalogDAO) FilmsByDirector(ctx context.Context, directorID int64) ([]*model.Film, error) {
	var films []*model.Film
	err := d.db.GetDB().WithContext(ctx).
		Model(&model.Film{}).
		Joins("JOIN film_directors ON film_directors.film_id = films.id").
		Where("film_directors.director_id = ?", directorID).
		Order("films.id ASC").
		Find(&films).Error
	if err != nil {
		return nil, err
	}
	return films, nil
}

// FilmSummaries 批量解析电影的类型、导演与分级
func (d *catalogDAO) FilmSummaries(ctx context.Context, filmIDs []int64) (map[int64]*model.FilmSummary, error) {
	result := make(map[int64]*model.FilmSummary, len(filmIDs))
	if len(filmIDs) == 0 {
		return result, nil
	}

	db := d.db.GetDB().WithContext(ctx)

	var films []model.Film
	if err := db.Where("id IN ?", filmIDs).Find(&films).Error; err != nil {
		return nil, err
	}
	for i := range films {
		f := &films[i]
		result[f.ID] = &model.FilmSummary{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			ReleaseDate: f.ReleaseDate,
			Duration:    f.Duration,
			Genres:      []model.Genre{},
			Directors:   []model.Director{},
		}
	}

	var ratings []model.MpaRating
	if err := db.Find(&ratings).Error; err != nil {
		return nil, err
	}
	ratingNames := make(map[int64]string, len(ratings))
	for _, r := range ratings {
		ratingNames[r.ID] = r.Name
	}
	for _, f := range films {
		if s, ok := result[f.ID]; ok {
			s.Mpa = ratingNames[f.MpaRatingID]
		}
	}

	type filmGenreRow struct {
		FilmID int64
		ID     int64
		Name   string
	}
	var genreRows []filmGenreRow
	if err := db.Table("film_genres").
		Select("film_genres.film_id, genres.id, genres.name").
		Joins("JOIN genres ON genres.id = film_genres.genre_id").
		Where("film_genres.film_id IN ?", filmIDs).
		Order("genres.id ASC").
		Scan(&genreRows).Error; err != nil {
		return nil, err
	}
	for _, row := range genreRows {
		if s, ok := result[row.FilmID]; ok {
			s.Genres = append(s.Genres, model.Genre{ID: row.ID, Name: row.Name})
		}
	}

	type filmDirectorRow struct {
		FilmID int64
		ID     int64
		Name   string
	}
	var directorRows []filmDirectorRow
	if err := db.Table("film_directors").
		Select("film_directors.film_id, directors.id, directors.name").
		Joins("JOIN directors ON directors.id = film_directors.director_id").
		Where("film_directors.film_id IN ?", filmIDs).
		Order("directors.id ASC").
		Scan(&directorRows).Error; err != nil {
		return nil, err
	}
	for _, row := range directorRows {
		if s, ok := result[row.FilmID]; ok {
			s.Directors = append(s.Directors, model.Director{ID: row.ID, Name: row.Name})
		}
	}

	return result, nil
}

// CreateGenre 创建电影类型
func (d *catalogDAO) CreateGenre(ctx context.Context, genre *model.Genre) error {
	return d.db.GetDB().WithContext(ctx).Create(genre).Error
}

// ListGenres 查询全部类型
func (d *catalogDAO) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	var genres []*model.Genre
	err := d.db.GetDB().WithContext(ctx).Order("id ASC").Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

// CreateDirector 创建导演
func (d *catalogDAO) CreateDirector(ctx context.Context, director *model.Director) error {
	return d.db.GetDB().WithContext(ctx).Create(director).Error
}

// ListDirectors 查询全部导演
func (d *catalogDAO) ListDirectors(ctx context.Context) ([]*model.Director, error) {
	var directors []*model.Director
	err := d.db.GetDB().WithContext(ctx).Order("id ASC").Find(&directors).Error
	if err != nil {
		return nil, err
	}
	return directors, nil
}

// DirectorExists 判断导演是否存在
func (d *catalogDAO) DirectorExists(ctx context.Context, directorID int64) (bool, error) {
	var count int64
	err := d.db.GetDB().WithContext(ctx).
		Model(&model.Director{}).
		Where("id = ?", directorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateMpaRating 创建MPA分级
func (d *catalogDAO) CreateMpaRating(ctx context.Context, rating *model.MpaRating) error {
	return d.db.GetDB().WithContext(ctx).Create(rating).Error
}

// ListMpaRatings 查询全部分级
func (d *catalogDAO) ListMpaRatings(ctx context.Context) ([]*model.MpaRating, error) {
	var ratings []*model.MpaRating
	err := d.db.GetDB().WithContext(ctx).Order("id ASC").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
