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

// PlaceHandler 负责处理餐厅管理相关的 API 请求。
type PlaceHandler struct {
	placeService service.PlaceService
}

// NewPlaceHandler 创建一个新的 PlaceHandler 实例。
func NewPlaceHandler(placeService service.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

// PlaceRequest 定义了创建/更新餐厅 API 的请求体结构。
type PlaceRequest struct {
	Name    string   `json:"name" binding:"required"`
	Cuisine string   `json:"cuisine"`
	Address string   `json:"address"`
	Lat     *float64 `json:"latitude"`
	Lng     *float64 `json:"longitude"`
}

// CreatePlace 处理创建餐厅的请求。
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreatePlace: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	place := &model.Place{
		Name:    req.Name,
		Cuisine: req.Cuisine,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
	}
	if err := h.placeService.CreatePlace(c.Request.Context(), place); err != nil {
		log.Error("CreatePlace: Failed to create place", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建餐厅失败", "data": nil})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": place})
}

// GetPlace 处理按 ID 查询餐厅的请求。
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的餐厅 ID", "data": nil})
		return
	}

	place, err := h.placeService.GetPlace(uint(placeID))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "餐厅不存在", "data": nil})
			return
		}
		log.Error("GetPlace: Failed to fetch place", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "查询餐厅失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": place})
}

// UpdatePlace 处理更新餐厅的请求。
// 菜系发生变化时，该餐厅下所有菜品的特征会被异步重算。
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的餐厅 ID", "data": nil})
		return
	}

	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdatePlace: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	place := &model.Place{
		ID:      uint(placeID),
		Name:    req.Name,
		Cuisine: req.Cuisine,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
	}
	if err := h.placeService.UpdatePlace(c.Request.Context(), place); err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "餐厅不存在", "data": nil})
			return
		}
		log.Error("UpdatePlace: Failed to update place", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "更新餐厅失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": place})
}
