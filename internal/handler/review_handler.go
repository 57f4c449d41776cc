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

// ReviewHandler 负责处理菜品评价相关的 API 请求。
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler 创建一个新的 ReviewHandler 实例。
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest 定义了创建评价 API 的请求体结构。
// 三态标签缺省为 unspecified，表示评价者没有表态。
type CreateReviewRequest struct {
	Rating             int      `json:"rating" binding:"required"`
	Comment            string   `json:"comment"`
	Price              *float64 `json:"price"`
	WaitingTimeMinutes *int     `json:"waitingTimeMinutes"`

	IsVegan      model.TriState `json:"isVegan"`
	IsHalal      model.TriState `json:"isHalal"`
	IsVegetarian model.TriState `json:"isVegetarian"`
	IsSpicy      model.TriState `json:"isSpicy"`
	IsGlutenFree model.TriState `json:"isGlutenFree"`
	IsDairyFree  model.TriState `json:"isDairyFree"`
	IsNutFree    model.TriState `json:"isNutFree"`

	ImagePaths []string `json:"imagePaths"`
}

// normalizeTriState 把空值归一为 unspecified，非法值返回 false。
func normalizeTriState(v model.TriState) (model.TriState, bool) {
	switch v {
	case "":
		return model.TriUnspecified, true
	case model.TriYes, model.TriNo, model.TriUnspecified:
		return v, true
	}
	return "", false
}

// CreateReview 处理创建评价的请求，菜品 ID 来自路径参数。
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的菜品 ID", "data": nil})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateReview: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	tags := []*model.TriState{&req.IsVegan, &req.IsHalal, &req.IsVegetarian, &req.IsSpicy, &req.IsGlutenFree, &req.IsDairyFree, &req.IsNutFree}
	for _, tag := range tags {
		normalized, ok := normalizeTriState(*tag)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "标签取值必须是 yes/no/unspecified", "data": nil})
			return
		}
		*tag = normalized
	}

	review := &model.MealReview{
		MealID:             uint(mealID),
		UserID:             c.GetUint("userID"),
		Rating:             req.Rating,
		Comment:            req.Comment,
		Price:              req.Price,
		WaitingTimeMinutes: req.WaitingTimeMinutes,
		IsVegan:            req.IsVegan,
		IsHalal:            req.IsHalal,
		IsVegetarian:       req.IsVegetarian,
		IsSpicy:            req.IsSpicy,
		IsGlutenFree:       req.IsGlutenFree,
		IsDairyFree:        req.IsDairyFree,
		IsNutFree:          req.IsNutFree,
	}
	for _, path := range req.ImagePaths {
		review.Images = append(review.Images, model.MealReviewImage{Path: path})
	}

	if err := h.reviewService.CreateReview(c.Request.Context(), review); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "评分必须在 1~5 之间", "data": nil})
		case errors.Is(err, service.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "菜品不存在", "data": nil})
		default:
			log.Error("CreateReview: Failed to create review", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建评价失败", "data": nil})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": review})
}

// UpdateReviewRequest 定义了修改评价 API 的请求体结构，缺省字段保持原值。
type UpdateReviewRequest struct {
	Rating             *int     `json:"rating"`
	Comment            *string  `json:"comment"`
	Price              *float64 `json:"price"`
	WaitingTimeMinutes *int     `json:"waitingTimeMinutes"`

	IsVegan      *model.TriState `json:"isVegan"`
	IsHalal      *model.TriState `json:"isHalal"`
	IsVegetarian *model.TriState `json:"isVegetarian"`
	IsSpicy      *model.TriState `json:"isSpicy"`
	IsGlutenFree *model.TriState `json:"isGlutenFree"`
	IsDairyFree  *model.TriState `json:"isDairyFree"`
	IsNutFree    *model.TriState `json:"isNutFree"`
}

// UpdateReview 处理修改评价的请求，只有评价作者可以修改。
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的评价 ID", "data": nil})
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdateReview: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	tags := []*model.TriState{req.IsVegan, req.IsHalal, req.IsVegetarian, req.IsSpicy, req.IsGlutenFree, req.IsDairyFree, req.IsNutFree}
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		normalized, ok := normalizeTriState(*tag)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "标签取值必须是 yes/no/unspecified", "data": nil})
			return
		}
		*tag = normalized
	}

	patch := &service.ReviewUpdate{
		Rating:             req.Rating,
		Comment:            req.Comment,
		Price:              req.Price,
		WaitingTimeMinutes: req.WaitingTimeMinutes,
		IsVegan:            req.IsVegan,
		IsHalal:            req.IsHalal,
		IsVegetarian:       req.IsVegetarian,
		IsSpicy:            req.IsSpicy,
		IsGlutenFree:       req.IsGlutenFree,
		IsDairyFree:        req.IsDairyFree,
		IsNutFree:          req.IsNutFree,
	}

	userID := c.GetUint("userID")
	review, err := h.reviewService.UpdateReview(c.Request.Context(), userID, uint(reviewID), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "评分必须在 1~5 之间", "data": nil})
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "评价不存在", "data": nil})
		case errors.Is(err, service.ErrNotReviewOwner):
			c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "无权操作他人的评价", "data": nil})
		default:
			log.Error("UpdateReview: Failed to update review", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "修改评价失败", "data": nil})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": review})
}

// DeleteReview 处理删除评价的请求，只有评价作者可以删除。
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的评价 ID", "data": nil})
		return
	}

	userID := c.GetUint("userID")
	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, uint(reviewID)); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "评价不存在", "data": nil})
		case errors.Is(err, service.ErrNotReviewOwner):
			c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "无权操作他人的评价", "data": nil})
		default:
			log.Error("DeleteReview: Failed to delete review", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除评价失败", "data": nil})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
