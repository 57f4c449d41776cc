package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brika-go/internal/model"
	"brika-go/internal/service"

	"github.com/gin-gonic/gin"
)

func floatPtr(v float64) *float64 { return &v }

// fakeRecommender 记录收到的参数并返回固定结果。
type fakeRecommender struct {
	gotLimit int
	gotLat   *float64
	gotLng   *float64
	results  []service.ScoredMeal
}

func (f *fakeRecommender) Recommend(ctx context.Context, userID uint, limit int, lat, lng *float64) ([]service.ScoredMeal, error) {
	f.gotLimit = limit
	f.gotLat = lat
	f.gotLng = lng
	return f.results, nil
}

func newFeedRouter(rec service.RecommendService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(nil, rec)
	r.GET("/feed", func(c *gin.Context) {
		c.Set("userID", uint(7))
		h.GetFeed(c)
	})
	return r
}

func TestGetFeedQueryValidation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"缺省参数", "", http.StatusOK},
		{"合法 limit", "?limit=10", http.StatusOK},
		{"limit 下界", "?limit=0", http.StatusBadRequest},
		{"limit 上界", "?limit=51", http.StatusBadRequest},
		{"limit 非数字", "?limit=abc", http.StatusBadRequest},
		{"非法 lat", "?lat=abc", http.StatusBadRequest},
		{"非法 long", "?lat=52.5&long=abc", http.StatusBadRequest},
		{"合法坐标", "?lat=52.5&long=13.4", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFeedRouter(&fakeRecommender{})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/feed"+tt.query, nil)
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("状态码: got %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestGetFeedDefaultLimitAndCoords(t *testing.T) {
	rec := &fakeRecommender{}
	r := newFeedRouter(rec)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed", nil))
	if rec.gotLimit != 3 {
		t.Errorf("缺省 limit: got %d, want 3", rec.gotLimit)
	}
	if rec.gotLat != nil || rec.gotLng != nil {
		t.Error("未传坐标时应为 nil")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed?limit=5&lat=52.5&long=13.4", nil))
	if rec.gotLimit != 5 {
		t.Errorf("limit: got %d, want 5", rec.gotLimit)
	}
	if rec.gotLat == nil || *rec.gotLat != 52.5 || rec.gotLng == nil || *rec.gotLng != 13.4 {
		t.Errorf("坐标透传: lat=%v, lng=%v", rec.gotLat, rec.gotLng)
	}
}

func TestGetFeedResponseShape(t *testing.T) {
	meal := model.Meal{
		ID:        1,
		PlaceID:   10,
		Name:      "麻婆豆腐",
		Price:     floatPtr(8800),
		CreatedAt: time.Now().Add(-48 * time.Hour),
		Place:     &model.Place{ID: 10, Name: "川味小馆", Lat: floatPtr(52.52), Lng: floatPtr(13.40)},
		Reviews: []model.MealReview{
			{ID: 100, MealID: 1, UserID: 9, Rating: 5, IsSpicy: model.TriYes, Price: floatPtr(9000),
				Images: []model.MealReviewImage{{ID: 1, MealReviewID: 100, Path: "reviews/100.jpg"}}},
			{ID: 101, MealID: 1, UserID: 8, Rating: 3, IsSpicy: model.TriYes},
		},
	}
	rec := &fakeRecommender{results: []service.ScoredMeal{{Meal: meal, Score: 0.42}}}
	r := newFeedRouter(rec)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed?lat=52.52&long=13.40", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("状态码: %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			ID             uint     `json:"id"`
			PlaceName      string   `json:"place_name"`
			AvgRating      *float64 `json:"avg_rating"`
			ReviewCount    int      `json:"review_count"`
			AvgPrice       *float64 `json:"avg_price"`
			FirstImage     *string  `json:"first_image"`
			DistanceMeters *float64 `json:"distance_meters"`
			IsNew          bool     `json:"is_new"`
			MatchScore     float64  `json:"match_score"`
			Tags           struct {
				IsSpicy string `json:"is_spicy"`
				IsVegan string `json:"is_vegan"`
			} `json:"tags"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	if len(resp.Data) != 1 {
		t.Fatalf("结果数量: %d", len(resp.Data))
	}

	item := resp.Data[0]
	if item.PlaceName != "川味小馆" {
		t.Errorf("place_name: %q", item.PlaceName)
	}
	if item.ReviewCount != 2 {
		t.Errorf("review_count: %d", item.ReviewCount)
	}
	if item.AvgRating == nil || *item.AvgRating != 4.0 {
		t.Errorf("avg_rating: %v", item.AvgRating)
	}
	if item.AvgPrice == nil || *item.AvgPrice != 9000 {
		t.Errorf("avg_price: %v", item.AvgPrice)
	}
	if item.FirstImage == nil || *item.FirstImage != "reviews/100.jpg" {
		t.Errorf("first_image: %v", item.FirstImage)
	}
	if item.DistanceMeters == nil || math.Abs(*item.DistanceMeters) > 1.0 {
		t.Errorf("distance_meters: %v", item.DistanceMeters)
	}
	if !item.IsNew {
		t.Error("两天前创建的菜品应标记 is_new")
	}
	if item.MatchScore != 0.42 {
		t.Errorf("match_score: %v", item.MatchScore)
	}
	if item.Tags.IsSpicy != "yes" || item.Tags.IsVegan != "unspecified" {
		t.Errorf("tags: %+v", item.Tags)
	}
}

func TestBuildFeedItemCoverImage(t *testing.T) {
	now := time.Now()
	reviewWithImage := model.MealReview{
		ID: 100, MealID: 1, Rating: 4, CreatedAt: now.Add(-time.Hour),
		Images: []model.MealReviewImage{{ID: 1, MealReviewID: 100, Path: "reviews/old.jpg"}},
	}
	newerReviewWithImage := model.MealReview{
		ID: 101, MealID: 1, Rating: 5, CreatedAt: now,
		Images: []model.MealReviewImage{{ID: 2, MealReviewID: 101, Path: "reviews/new.jpg"}},
	}
	reviewWithoutImage := model.MealReview{ID: 102, MealID: 1, Rating: 3, CreatedAt: now}

	tests := []struct {
		name string
		meal model.Meal
		want *string
	}{
		{
			// 菜品自己有图、评价无图时，封面必须是菜品自己的图
			name: "菜品自有图片优先",
			meal: model.Meal{ID: 1, Images: []model.MealImage{{ID: 1, MealID: 1, Path: "meals/1.jpg"}},
				Reviews: []model.MealReview{reviewWithoutImage}},
			want: strPtr("meals/1.jpg"),
		},
		{
			name: "自有图片压过评价图片",
			meal: model.Meal{ID: 1, Images: []model.MealImage{{ID: 1, MealID: 1, Path: "meals/1.jpg"}},
				Reviews: []model.MealReview{newerReviewWithImage}},
			want: strPtr("meals/1.jpg"),
		},
		{
			name: "没有自有图片时回退到最新评价图",
			meal: model.Meal{ID: 1, Reviews: []model.MealReview{reviewWithImage, newerReviewWithImage}},
			want: strPtr("reviews/new.jpg"),
		},
		{
			name: "完全没有图片",
			meal: model.Meal{ID: 1, Reviews: []model.MealReview{reviewWithoutImage}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := buildFeedItem(service.ScoredMeal{Meal: tt.meal, Score: 0.1}, nil, nil)
			switch {
			case tt.want == nil && item.FirstImage != nil:
				t.Errorf("first_image: got %q, want nil", *item.FirstImage)
			case tt.want != nil && (item.FirstImage == nil || *item.FirstImage != *tt.want):
				t.Errorf("first_image: got %v, want %q", item.FirstImage, *tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
