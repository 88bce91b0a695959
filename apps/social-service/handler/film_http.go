package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// CreateFilmRequest 创建电影请求
type CreateFilmRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ReleaseDate string  `json:"release_date" binding:"required"`
	Duration    int32   `json:"duration" binding:"required"`
	MpaRatingID int64   `json:"mpa_rating_id"`
	GenreIDs    []int64 `json:"genre_ids"`
	DirectorIDs []int64 `json:"director_ids"`
}

// CreateFilm 创建电影
func (h *HTTPHandler) CreateFilm(c *gin.Context) {
	var req CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "上映日期格式无效，应为YYYY-MM-DD",
		})
		return
	}

	film := &model.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Duration:    req.Duration,
		MpaRatingID: req.MpaRatingID,
	}
	created, err := h.svc.CreateFilm(c.Request.Context(), film, req.GenreIDs, req.DirectorIDs)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to create film",
			logger.F("error", err.Error()),
			logger.F("name", req.Name))
		h.respondError(c, err)
		return
	}

	summary, err := h.svc.GetFilmSummary(c.Request.Context(), created.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "电影创建成功", h.converter.FilmSummaryToResponse(summary))
}

// GetUsersWhoLiked 查询点赞过电影的用户
func (h *HTTPHandler) GetUsersWhoLiked(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}

	users, err := h.svc.GetUsersWhoLiked(c.Request.Context(), filmID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.UsersToResponse(users))
}

// UpdateFilm 更新电影
func (h *HTTPHandler) UpdateFilm(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "上映日期格式无效，应为YYYY-MM-DD",
		})
		return
	}

	film := &model.Film{
		ID:          filmID,
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Duration:    req.Duration,
		MpaRatingID: req.MpaRatingID,
	}
	if _, err := h.svc.UpdateFilm(c.Request.Context(), film, req.GenreIDs, req.DirectorIDs); err != nil {
		h.logger.Error(c.Request.Context(), "Failed to update film",
			logger.F("error", err.Error()),
			logger.F("filmID", filmID))
		h.respondError(c, err)
		return
	}

	summary, err := h.svc.GetFilmSummary(c.Request.Context(), filmID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "电影更新成功", h.converter.FilmSummaryToResponse(summary))
}

// GetFilm 查询电影详情
func (h *HTTPHandler) GetFilm(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.svc.GetFilmSummary(c.Request.Context(), filmID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummaryToResponse(summary))
}

// ListFilms 查询电影列表，可按类型与年份过滤
func (h *HTTPHandler) ListFilms(c *gin.Context) {
	genreID, _ := strconv.ParseInt(c.Query("genreId"), 10, 64)
	year, _ := strconv.ParseInt(c.Query("year"), 10, 32)

	films, err := h.svc.ListFilms(c.Request.Context(), genreID, int32(year))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummariesToResponse(films))
}

// AddLike 点赞电影
func (h *HTTPHandler) AddLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.svc.AddLike(c.Request.Context(), userID, filmID); err != nil {
		h.logger.Error(c.Request.Context(), "Failed to add like",
			logger.F("error", err.Error()),
			logger.F("userID", userID),
			logger.F("filmID", filmID))
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "点赞成功", nil)
}

// RemoveLike 取消点赞
func (h *HTTPHandler) RemoveLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.svc.RemoveLike(c.Request.Context(), userID, filmID); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "取消点赞成功", nil)
}

// GetLikedFilms 查询用户点赞过的电影
func (h *HTTPHandler) GetLikedFilms(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	films, err := h.svc.GetLikedFilms(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummariesToResponse(films))
}

// TopFilms 查询热门电影
func (h *HTTPHandler) TopFilms(c *gin.Context) {
	count := model.DefaultTopLimit
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "count参数无效: " + raw,
			})
			return
		}
		count = parsed
	}
	genreID, _ := strconv.ParseInt(c.Query("genreId"), 10, 64)
	year, _ := strconv.ParseInt(c.Query("year"), 10, 32)

	films, err := h.svc.TopFilms(c.Request.Context(), count, genreID, int32(year))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummariesToResponse(films))
}

// CommonFilms 查询两个用户共同点赞的电影
func (h *HTTPHandler) CommonFilms(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "userId参数无效",
		})
		return
	}
	friendID, err := strconv.ParseInt(c.Query("friendId"), 10, 64)
	if err != nil || friendID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "friendId参数无效",
		})
		return
	}

	films, err := h.svc.CommonFilms(c.Request.Context(), userID, friendID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummariesToResponse(films))
}

// FilmsByDirector 查询导演的电影
func (h *HTTPHandler) FilmsByDirector(c *gin.Context) {
	directorID, ok := pathID(c, "directorId")
	if !ok {
		return
	}
	sortBy := c.DefaultQuery("sortBy", model.SortByLikes)

	films, err := h.svc.FilmsByDirector(c.Request.Context(), directorID, sortBy)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummariesToResponse(films))
}

// SearchFilms 全文检索电影
func (h *HTTPHandler) SearchFilms(c *gin.Context) {
	query := c.Query("query")
	by := c.Query("by")
	count, _ := strconv.Atoi(c.Query("count"))

	films, err := h.svc.SearchFilms(c.Request.Context(), query, by, count)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummariesToResponse(films))
}

// CreateGenreRequest 创建类型请求
type CreateGenreRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateGenre 创建电影类型
func (h *HTTPHandler) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	genre, err := h.svc.CreateGenre(c.Request.Context(), &model.Genre{Name: req.Name})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "类型创建成功", genre)
}

// ListGenres 查询全部类型
func (h *HTTPHandler) ListGenres(c *gin.Context) {
	genres, err := h.svc.ListGenres(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.GenresToResponse(genres))
}

// CreateDirectorRequest 创建导演请求
type CreateDirectorRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateDirector 创建导演
func (h *HTTPHandler) CreateDirector(c *gin.Context) {
	var req CreateDirectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	director, err := h.svc.CreateDirector(c.Request.Context(), &model.Director{Name: req.Name})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "导演创建成功", director)
}

// ListDirectors 查询导演列表
func (h *HTTPHandler) ListDirectors(c *gin.Context) {
	directors, err := h.svc.ListDirectors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", directors)
}

// CreateMpaRatingRequest 创建分级请求
type CreateMpaRatingRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateMpaRating 创建MPA分级
func (h *HTTPHandler) CreateMpaRating(c *gin.Context) {
	var req CreateMpaRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	rating, err := h.svc.CreateMpaRating(c.Request.Context(), &model.MpaRating{Name: req.Name})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "分级创建成功", rating)
}

// ListMpaRatings 查询全部分级
func (h *HTTPHandler) ListMpaRatings(c *gin.Context) {
	ratings, err := h.svc.ListMpaRatings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.MpaRatingsToResponse(ratings))
}
