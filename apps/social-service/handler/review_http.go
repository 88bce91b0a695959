package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gofilm-social/pkg/logger"
)

// CreateReviewRequest 创建影评请求
type CreateReviewRequest struct {
	Content    string `json:"content" binding:"required"`
	IsPositive *bool  `json:"is_positive" binding:"required"`
	UserID     int64  `json:"user_id" binding:"required"`
	FilmID     int64  `json:"film_id" binding:"required"`
}

// CreateReview 创建影评
func (h *HTTPHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	review, err := h.svc.CreateReview(c.Request.Context(), req.Content, *req.IsPositive, req.UserID, req.FilmID)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to create review",
			logger.F("error", err.Error()),
			logger.F("userID", req.UserID),
			logger.F("filmID", req.FilmID))
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "影评创建成功", h.converter.ReviewToResponse(review))
}

// GetReview 查询影评
func (h *HTTPHandler) GetReview(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.svc.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.ReviewToResponse(review))
}

// UpdateReviewRequest 更新影评请求
type UpdateReviewRequest struct {
	Content    string `json:"content" binding:"required"`
	IsPositive *bool  `json:"is_positive" binding:"required"`
}

// UpdateReview 更新影评
func (h *HTTPHandler) UpdateReview(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	review, err := h.svc.UpdateReview(c.Request.Context(), reviewID, req.Content, *req.IsPositive)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "影评更新成功", h.converter.ReviewToResponse(review))
}

// DeleteReview 删除影评
func (h *HTTPHandler) DeleteReview(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteReview(c.Request.Context(), reviewID); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "影评删除成功", nil)
}

// ListReviews 查询影评列表
func (h *HTTPHandler) ListReviews(c *gin.Context) {
	filmID, _ := strconv.ParseInt(c.Query("filmId"), 10, 64)
	count, _ := strconv.Atoi(c.Query("count"))

	reviews, err := h.svc.ListReviews(c.Request.Context(), filmID, count)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.ReviewsToResponse(reviews))
}

// LikeReview 赞影评
func (h *HTTPHandler) LikeReview(c *gin.Context) {
	h.voteReview(c, true)
}

// DislikeReview 踩影评
func (h *HTTPHandler) DislikeReview(c *gin.Context) {
	h.voteReview(c, false)
}

func (h *HTTPHandler) voteReview(c *gin.Context, isLike bool) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.svc.AddReviewVote(c.Request.Context(), reviewID, userID, isLike); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "投票成功", nil)
}

// RemoveReviewVote 撤销对影评的投票
func (h *HTTPHandler) RemoveReviewVote(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.svc.RemoveReviewVote(c.Request.Context(), reviewID, userID); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "撤销投票成功", nil)
}
