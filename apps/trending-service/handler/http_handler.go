package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gofilm-social/apps/trending-service/service"
	"gofilm-social/pkg/httpx"
	"gofilm-social/pkg/logger"
)

// HTTPHandler HTTP处理器
type HTTPHandler struct {
	svc    *service.Service
	logger logger.Logger
}

// NewHTTPHandler 创建HTTP处理器
func NewHTTPHandler(svc *service.Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: log,
	}
}

// RegisterRoutes 注册HTTP路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/trending")
	{
		api.GET("/films", h.GetBoard)          // 实时热度榜
		api.GET("/snapshots", h.ListSnapshots) // 历史榜单快照
	}
}

// GetBoard 查询实时热度榜
func (h *HTTPHandler) GetBoard(c *gin.Context) {
	count, _ := strconv.Atoi(c.Query("count"))

	entries, err := h.svc.GetBoard(c.Request.Context(), count)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to get trending board",
			logger.F("error", err.Error()))
		httpx.WriteObject(c, gin.H{"success": false, "message": err.Error()}, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"message": "查询成功",
		"data":    entries,
	}, nil)
}

// ListSnapshots 查询历史榜单快照
func (h *HTTPHandler) ListSnapshots(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	snapshots, err := h.svc.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to list trending snapshots",
			logger.F("error", err.Error()))
		httpx.WriteObject(c, gin.H{"success": false, "message": err.Error()}, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"message": "查询成功",
		"data":    snapshots,
	}, nil)
}
