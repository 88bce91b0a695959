package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Login    string `json:"login" binding:"required"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// CreateUser 创建用户
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	var birthday time.Time
	if req.Birthday != "" {
		parsed, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "生日格式无效，应为YYYY-MM-DD",
			})
			return
		}
		birthday = parsed
	}

	user := &model.User{
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: birthday,
	}
	created, err := h.svc.CreateUser(c.Request.Context(), user)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to create user",
			logger.F("error", err.Error()),
			logger.F("login", req.Login))
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "用户创建成功", h.converter.UserToResponse(created))
}

// GetUser 查询用户
func (h *HTTPHandler) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.UserToResponse(user))
}

// ListUsers 查询全部用户
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.UsersToResponse(users))
}

// AddFriend 添加好友
func (h *HTTPHandler) AddFriend(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}

	if err := h.svc.AddFriend(c.Request.Context(), userID, friendID); err != nil {
		h.logger.Error(c.Request.Context(), "Failed to add friend",
			logger.F("error", err.Error()),
			logger.F("userID", userID),
			logger.F("friendID", friendID))
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "好友添加成功", nil)
}

// RemoveFriend 删除好友
func (h *HTTPHandler) RemoveFriend(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}

	if err := h.svc.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "好友删除成功", nil)
}

// GetFriends 查询好友列表
func (h *HTTPHandler) GetFriends(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	friends, err := h.svc.GetFriends(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.UsersToResponse(friends))
}

// GetCommonFriends 查询共同好友
func (h *HTTPHandler) GetCommonFriends(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(c, "otherId")
	if !ok {
		return
	}

	common, err := h.svc.GetCommonFriends(c.Request.Context(), userID, otherID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.UsersToResponse(common))
}

// GetRecommendations 查询推荐电影
func (h *HTTPHandler) GetRecommendations(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	films, err := h.svc.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FilmSummariesToResponse(films))
}
