package handler

import (
	"errors"
	"net/http"

	"brika-go/internal/service"
	"brika-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SwipeHandler 负责处理滑动交互相关的 API 请求。
type SwipeHandler struct {
	swipeService service.SwipeService
}

// NewSwipeHandler 创建一个新的 SwipeHandler 实例。
func NewSwipeHandler(swipeService service.SwipeService) *SwipeHandler {
	return &SwipeHandler{swipeService: swipeService}
}

// CreateSwipeRequest 定义了创建滑动记录 API 的请求体结构。
type CreateSwipeRequest struct {
	MealID    uint   `json:"mealId" binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
	Liked     *bool  `json:"liked" binding:"required"`
}

// CreateSwipe 处理一次左/右滑。
// 同一会话内对同一菜品的重复滑动被静默忽略，不触发偏好更新。
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	var req CreateSwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateSwipe: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	userID := c.GetUint("userID")
	created, err := h.swipeService.CreateSwipe(c.Request.Context(), userID, req.MealID, req.SessionID, *req.Liked)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "菜品不存在", "data": nil})
			return
		}
		log.Error("CreateSwipe: Failed to record swipe", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "记录滑动失败", "data": nil})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": gin.H{"created": created}})
}
