package handler

import (
	"errors"
	"net/http"
	"strconv"

	"brika-go/internal/service"
	"brika-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// BookmarkHandler 负责处理用户收藏相关的 API 请求。
type BookmarkHandler struct {
	bookmarkService service.BookmarkService
}

// NewBookmarkHandler 创建一个新的 BookmarkHandler 实例。
func NewBookmarkHandler(bookmarkService service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

// CreateMealBookmark 处理收藏菜品的请求。
func (h *BookmarkHandler) CreateMealBookmark(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的菜品 ID", "data": nil})
		return
	}

	userID := c.GetUint("userID")
	bookmark, err := h.bookmarkService.BookmarkMeal(c.Request.Context(), userID, uint(mealID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "菜品不存在", "data": nil})
		case errors.Is(err, service.ErrBookmarkExists):
			c.JSON(http.StatusConflict, gin.H{"code": http.StatusConflict, "message": "收藏已存在", "data": nil})
		default:
			log.Error("CreateMealBookmark: Failed to create bookmark", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "收藏失败", "data": nil})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": bookmark})
}

// ListMealBookmarks 返回当前用户的全部菜品收藏。
func (h *BookmarkHandler) ListMealBookmarks(c *gin.Context) {
	userID := c.GetUint("userID")
	bookmarks, err := h.bookmarkService.ListMealBookmarks(c.Request.Context(), userID)
	if err != nil {
		log.Error("ListMealBookmarks: Failed to list bookmarks", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取收藏列表失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": bookmarks})
}

// DeleteMealBookmark 处理取消收藏菜品的请求。
func (h *BookmarkHandler) DeleteMealBookmark(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的菜品 ID", "data": nil})
		return
	}

	userID := c.GetUint("userID")
	if err := h.bookmarkService.UnbookmarkMeal(c.Request.Context(), userID, uint(mealID)); err != nil {
		if errors.Is(err, service.ErrBookmarkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "收藏不存在", "data": nil})
			return
		}
		log.Error("DeleteMealBookmark: Failed to delete bookmark", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "取消收藏失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// CreatePlaceBookmark 处理收藏餐厅的请求。
func (h *BookmarkHandler) CreatePlaceBookmark(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的餐厅 ID", "data": nil})
		return
	}

	userID := c.GetUint("userID")
	bookmark, err := h.bookmarkService.BookmarkPlace(c.Request.Context(), userID, uint(placeID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "餐厅不存在", "data": nil})
		case errors.Is(err, service.ErrBookmarkExists):
			c.JSON(http.StatusConflict, gin.H{"code": http.StatusConflict, "message": "收藏已存在", "data": nil})
		default:
			log.Error("CreatePlaceBookmark: Failed to create bookmark", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "收藏失败", "data": nil})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": bookmark})
}

// ListPlaceBookmarks 返回当前用户的全部餐厅收藏。
func (h *BookmarkHandler) ListPlaceBookmarks(c *gin.Context) {
	userID := c.GetUint("userID")
	bookmarks, err := h.bookmarkService.ListPlaceBookmarks(c.Request.Context(), userID)
	if err != nil {
		log.Error("ListPlaceBookmarks: Failed to list bookmarks", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取收藏列表失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": bookmarks})
}

// DeletePlaceBookmark 处理取消收藏餐厅的请求。
func (h *BookmarkHandler) DeletePlaceBookmark(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的餐厅 ID", "data": nil})
		return
	}

	userID := c.GetUint("userID")
	if err := h.bookmarkService.UnbookmarkPlace(c.Request.Context(), userID, uint(placeID)); err != nil {
		if errors.Is(err, service.ErrBookmarkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "收藏不存在", "data": nil})
			return
		}
		log.Error("DeletePlaceBookmark: Failed to delete bookmark", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "取消收藏失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
