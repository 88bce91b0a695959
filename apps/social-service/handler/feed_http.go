package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
)

// GetFeed 查询用户动态，按时间戳升序返回
func (h *HTTPHandler) GetFeed(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	events, err := h.svc.GetFeed(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, "查询成功", h.converter.FeedEventsToResponse(events))
}

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedWebSocket 订阅用户动态的实时推送
func (h *HTTPHandler) FeedWebSocket(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "userId参数无效",
		})
		return
	}

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to upgrade websocket",
			logger.F("error", err.Error()),
			logger.F("userID", userID))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.redis.Subscribe(ctx, model.GetFeedChannel(userID))
	defer pubsub.Close()

	h.logger.Info(ctx, "Feed websocket connected", logger.F("userID", userID))

	// 对端关闭时结束读循环，触发转发退出
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.logger.Warn(ctx, "Failed to push feed event",
					logger.F("error", err.Error()),
					logger.F("userID", userID))
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
