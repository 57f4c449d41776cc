package handler

import (
	"errors"
	"net/http"
	"strconv"

	"brika-go/internal/model"
	"brika-go/internal/service"
	"brika-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MealHandler 负责处理菜品管理相关的 API 请求。
type MealHandler struct {
	mealService service.MealService
}

// NewMealHandler 创建一个新的 MealHandler 实例。
func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// MealRequest 定义了创建/更新菜品 API 的请求体结构。
type MealRequest struct {
	PlaceID     uint     `json:"placeId" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

// CreateMeal 处理创建菜品的请求。
func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateMeal: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	meal := &model.Meal{
		PlaceID:     req.PlaceID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.mealService.CreateMeal(c.Request.Context(), meal); err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "餐厅不存在", "data": nil})
			return
		}
		log.Error("CreateMeal: Failed to create meal", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建菜品失败", "data": nil})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": meal})
}

// GetMeal 处理按 ID 查询菜品的请求。
func (h *MealHandler) GetMeal(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的菜品 ID", "data": nil})
		return
	}

	meal, err := h.mealService.GetMeal(uint(mealID))
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "菜品不存在", "data": nil})
			return
		}
		log.Error("GetMeal: Failed to fetch meal", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "查询菜品失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": meal})
}

// UpdateMeal 处理更新菜品的请求。
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的菜品 ID", "data": nil})
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdateMeal: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	meal := &model.Meal{
		ID:          uint(mealID),
		PlaceID:     req.PlaceID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.mealService.UpdateMeal(c.Request.Context(), meal); err != nil {
		switch {
		case errors.Is(err, service.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "菜品不存在", "data": nil})
		case errors.Is(err, service.ErrPlaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "餐厅不存在", "data": nil})
		default:
			log.Error("UpdateMeal: Failed to update meal", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "更新菜品失败", "data": nil})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": meal})
}

// DeleteMeal 处理删除菜品的请求，会一并清理该菜品的特征缓存与特征行。
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的菜品 ID", "data": nil})
		return
	}

	if err := h.mealService.DeleteMeal(c.Request.Context(), uint(mealID)); err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "菜品不存在", "data": nil})
			return
		}
		log.Error("DeleteMeal: Failed to delete meal", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除菜品失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
