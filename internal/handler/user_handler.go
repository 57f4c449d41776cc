// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"brika-go/internal/model"
	"brika-go/internal/service"
	"brika-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责处理所有与用户相关的 API 请求。
type UserHandler struct {
	userService      service.UserService
	recommendService service.RecommendService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService, recommendService service.RecommendService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		recommendService: recommendService,
	}
}

// RegisterRequest 定义了用户注册 API 的请求体结构。
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register 处理用户注册请求。
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Register: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	user, err := h.userService.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"code": http.StatusConflict, "message": "邮箱已被注册", "data": nil})
			return
		}
		log.Error("Register: Failed to register user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "注册失败", "data": nil})
		return
	}

	log.Infof("User '%s' registered, id=%d", user.Email, user.ID)
	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": user})
}

// LoginRequest 定义了用户登录 API 的请求体结构。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 校验用户凭证并返回用户信息。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "邮箱或密码不正确", "data": nil})
			return
		}
		log.Error("Login: Failed to verify credentials", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "登录失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": user})
}

// GetProfile 返回当前登录用户的信息。
func (h *UserHandler) GetProfile(c *gin.Context) {
	userValue, _ := c.Get("user")
	user := userValue.(*model.User)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": user})
}

// feedMealTags 是信息流里单个菜品的多数标签集合，字段名沿用移动端既有契约。
type feedMealTags struct {
	IsVegan      model.TriState `json:"is_vegan"`
	IsHalal      model.TriState `json:"is_halal"`
	IsVegetarian model.TriState `json:"is_vegetarian"`
	IsSpicy      model.TriState `json:"is_spicy"`
	IsGlutenFree model.TriState `json:"is_gluten_free"`
	IsDairyFree  model.TriState `json:"is_dairy_free"`
	IsNutFree    model.TriState `json:"is_nut_free"`
}

// feedMealResponse 是信息流接口的单条返回项，字段名沿用移动端既有契约。
type feedMealResponse struct {
	ID             uint         `json:"id"`
	Name           string       `json:"name"`
	Price          *float64     `json:"price"`
	PlaceID        uint         `json:"place_id"`
	PlaceName      string       `json:"place_name"`
	AvgRating      *float64     `json:"avg_rating"`
	ReviewCount    int          `json:"review_count"`
	AvgWaitingTime *float64     `json:"avg_waiting_time"`
	AvgPrice       *float64     `json:"avg_price"`
	FirstImage     *string      `json:"first_image"`
	DistanceMeters *float64     `json:"distance_meters"`
	IsNew          bool         `json:"is_new"`
	Tags           feedMealTags `json:"tags"`
	MatchScore     float64      `json:"match_score"`
}

// GetFeed 处理个性化信息流请求。
// limit 缺省为 3，限制在 1~50；lat/long 为可选坐标。
func (h *UserHandler) GetFeed(c *gin.Context) {
	userID := c.GetUint("userID")

	limit := 3
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "limit 必须是 1~50 的整数", "data": nil})
			return
		}
		limit = parsed
	}

	var lat, lng *float64
	if raw := c.Query("lat"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "lat 不是合法的浮点数", "data": nil})
			return
		}
		lat = &parsed
	}
	if raw := c.Query("long"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "long 不是合法的浮点数", "data": nil})
			return
		}
		lng = &parsed
	}

	recommendations, err := h.recommendService.Recommend(c.Request.Context(), userID, limit, lat, lng)
	if err != nil {
		log.Error("GetFeed: Failed to build recommendations", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取信息流失败", "data": nil})
		return
	}

	results := make([]feedMealResponse, 0, len(recommendations))
	for _, rec := range recommendations {
		results = append(results, buildFeedItem(rec, lat, lng))
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": results})
}

// buildFeedItem 把一条推荐结果拼装成信息流返回项。
func buildFeedItem(rec service.ScoredMeal, lat, lng *float64) feedMealResponse {
	meal := rec.Meal
	reviews := meal.Reviews

	item := feedMealResponse{
		ID:          meal.ID,
		Name:        meal.Name,
		Price:       meal.Price,
		PlaceID:     meal.PlaceID,
		ReviewCount: len(reviews),
		MatchScore:  rec.Score,
		IsNew:       time.Since(meal.CreatedAt) < 14*24*time.Hour,
		Tags: feedMealTags{
			IsVegan:      service.MajorityTag(reviews, "is_vegan"),
			IsHalal:      service.MajorityTag(reviews, "is_halal"),
			IsVegetarian: service.MajorityTag(reviews, "is_vegetarian"),
			IsSpicy:      service.MajorityTag(reviews, "is_spicy"),
			IsGlutenFree: service.MajorityTag(reviews, "is_gluten_free"),
			IsDairyFree:  service.MajorityTag(reviews, "is_dairy_free"),
			IsNutFree:    service.MajorityTag(reviews, "is_nut_free"),
		},
	}

	if len(reviews) > 0 {
		ratingSum := 0.0
		for i := range reviews {
			ratingSum += float64(reviews[i].Rating)
		}
		avgRating := ratingSum / float64(len(reviews))
		item.AvgRating = &avgRating

		priceSum, priceCount := 0.0, 0
		waitSum, waitCount := 0.0, 0
		for i := range reviews {
			if reviews[i].Price != nil {
				priceSum += *reviews[i].Price
				priceCount++
			}
			if reviews[i].WaitingTimeMinutes != nil {
				waitSum += float64(*reviews[i].WaitingTimeMinutes)
				waitCount++
			}
		}
		if priceCount > 0 {
			avgPrice := priceSum / float64(priceCount)
			item.AvgPrice = &avgPrice
		}
		if waitCount > 0 {
			avgWait := waitSum / float64(waitCount)
			item.AvgWaitingTime = &avgWait
		}

	}

	// 封面优先取菜品自己的图片，没有时回退到最新一条带图评价的第一张图
	if len(meal.Images) > 0 {
		path := meal.Images[0].Path
		item.FirstImage = &path
	} else if len(reviews) > 0 {
		sorted := make([]model.MealReview, len(reviews))
		copy(sorted, reviews)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
		for i := range sorted {
			if len(sorted[i].Images) > 0 {
				path := sorted[i].Images[0].Path
				item.FirstImage = &path
				break
			}
		}
	}

	if meal.Place != nil {
		item.PlaceName = meal.Place.Name
		if lat != nil && lng != nil && meal.Place.Lat != nil && meal.Place.Lng != nil {
			d := service.HaversineMeters(*lat, *lng, *meal.Place.Lat, *meal.Place.Lng)
			item.DistanceMeters = &d
		}
	}

	return item
}
