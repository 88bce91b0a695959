package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gofilm-social/apps/social-service/converter"
	"gofilm-social/apps/social-service/model"
	"gofilm-social/apps/social-service/service"
	"gofilm-social/pkg/logger"
	"gofilm-social/pkg/redis"
)

// HTTPHandler HTTP处理器
type HTTPHandler struct {
	svc       *service.Service
	converter *converter.Converter
	redis     *redis.RedisClient
	logger    logger.Logger
}

// NewHTTPHandler 创建HTTP处理器
func NewHTTPHandler(svc *service.Service, redis *redis.RedisClient, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:       svc,
		converter: converter.NewConverter(),
		redis:     redis,
		logger:    log,
	}
}

// RegisterRoutes 注册HTTP路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// 用户与好友
		users := api.Group("/users")
		{
			users.POST("", h.CreateUser)
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
			users.PUT("/:id/friends/:friendId", h.AddFriend)
			users.DELETE("/:id/friends/:friendId", h.RemoveFriend)
			users.GET("/:id/friends", h.GetFriends)
			users.GET("/:id/friends/common/:otherId", h.GetCommonFriends)
			users.GET("/:id/likes", h.GetLikedFilms)
			users.GET("/:id/recommendations", h.GetRecommendations)
			users.GET("/:id/feed", h.GetFeed)
		}

		// 电影与点赞
		films := api.Group("/films")
		{
			films.POST("", h.CreateFilm)
			films.GET("", h.ListFilms)
			films.GET("/popular", h.TopFilms)
			films.GET("/common", h.CommonFilms)
			films.GET("/search", h.SearchFilms)
			films.GET("/director/:directorId", h.FilmsByDirector)
			films.GET("/:id", h.GetFilm)
			films.PUT("/:id", h.UpdateFilm)
			films.GET("/:id/likes", h.GetUsersWhoLiked)
			films.PUT("/:id/like/:userId", h.AddLike)
			films.DELETE("/:id/like/:userId", h.RemoveLike)
		}

		// 影评与投票
		reviews := api.Group("/reviews")
		{
			reviews.POST("", h.CreateReview)
			reviews.GET("", h.ListReviews)
			reviews.GET("/:id", h.GetReview)
			reviews.PUT("/:id", h.UpdateReview)
			reviews.DELETE("/:id", h.DeleteReview)
			reviews.PUT("/:id/like/:userId", h.LikeReview)
			reviews.PUT("/:id/dislike/:userId", h.DislikeReview)
			reviews.DELETE("/:id/vote/:userId", h.RemoveReviewVote)
		}

		// 参照数据
		api.POST("/genres", h.CreateGenre)
		api.GET("/genres", h.ListGenres)
		api.POST("/directors", h.CreateDirector)
		api.GET("/directors", h.ListDirectors)
		api.POST("/mpa", h.CreateMpaRating)
		api.GET("/mpa", h.ListMpaRatings)

		// 实时动态
		api.GET("/feed/ws", h.FeedWebSocket)
	}
}

// statusFromError 按业务错误分类映射HTTP状态码
func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidRelation), errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError 统一错误响应
func (h *HTTPHandler) respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{
		"success": false,
		"message": err.Error(),
	})
}

// respondOK 统一成功响应
func (h *HTTPHandler) respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// pathID 解析路径中的整数参数
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "路径参数无效: " + name,
		})
		return 0, false
	}
	return id, true
}
