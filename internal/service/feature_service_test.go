package service

import (
	"context"
	"math"
	"testing"

	"brika-go/internal/model"
)

func newFeatureServiceForTest() (FeatureService, *fakeMealRepo, *fakeReviewRepo, *fakePlaceRepo, *fakeFeatureRepo) {
	mealRepo := newFakeMealRepo()
	reviewRepo := newFakeReviewRepo()
	placeRepo := newFakePlaceRepo()
	featureRepo := newFakeFeatureRepo()
	svc := NewFeatureService(mealRepo, reviewRepo, placeRepo, featureRepo)
	return svc, mealRepo, reviewRepo, placeRepo, featureRepo
}

func TestRecomputeMealFeaturesNoReviews(t *testing.T) {
	svc, mealRepo, _, _, featureRepo := newFeatureServiceForTest()
	mealRepo.meals[1] = &model.Meal{
		ID:      1,
		PlaceID: 10,
		Price:   floatPtr(1200),
		Place:   &model.Place{ID: 10, Cuisine: "italian"},
	}

	if err := svc.RecomputeMealFeatures(context.Background(), 1); err != nil {
		t.Fatalf("RecomputeMealFeatures: %v", err)
	}

	features := featureRepo.features[1]
	if features == nil {
		t.Fatal("特征行未落库")
	}
	if features.ReviewCount != 0 {
		t.Errorf("ReviewCount: got %d, want 0", features.ReviewCount)
	}
	for _, tag := range model.TagNames {
		if features.TagVector[tag] != 0 {
			t.Errorf("无评价时标签 %s 应为 0, got %v", tag, features.TagVector[tag])
		}
	}
	if features.CuisineVector["italian"] != 1.0 {
		t.Errorf("菜系向量: got %v", features.CuisineVector)
	}
	// 没有评价时价格回退到菜品标价，等位回退为 0
	if features.AvgPrice != 1200 {
		t.Errorf("AvgPrice: got %v, want 1200", features.AvgPrice)
	}
	if features.AvgWaitTime != 0 {
		t.Errorf("AvgWaitTime: got %v, want 0", features.AvgWaitTime)
	}
}

func TestRecomputeMealFeaturesAveraging(t *testing.T) {
	svc, mealRepo, reviewRepo, _, featureRepo := newFeatureServiceForTest()
	mealRepo.meals[1] = &model.Meal{
		ID:      1,
		PlaceID: 10,
		Price:   floatPtr(9999),
		Place:   &model.Place{ID: 10, Cuisine: "japanese"},
	}
	reviewRepo.byMeal[1] = []model.MealReview{
		{
			MealID: 1, UserID: 1, Rating: 5,
			IsVegan: model.TriYes, IsSpicy: model.TriYes,
			Price: floatPtr(1000), WaitingTimeMinutes: intPtr(10),
		},
		{
			MealID: 1, UserID: 2, Rating: 2,
			IsVegan:            model.TriNo,
			WaitingTimeMinutes: intPtr(30),
		},
	}

	if err := svc.RecomputeMealFeatures(context.Background(), 1); err != nil {
		t.Fatalf("RecomputeMealFeatures: %v", err)
	}

	features := featureRepo.features[1]
	if features == nil {
		t.Fatal("特征行未落库")
	}
	// (+1 -1) / 2 = 0
	if features.TagVector["is_vegan"] != 0 {
		t.Errorf("is_vegan: got %v, want 0", features.TagVector["is_vegan"])
	}
	// (+1 + 0) / 2 = 0.5：除以评价总数，未表态按 0 计
	if features.TagVector["is_spicy"] != 0.5 {
		t.Errorf("is_spicy: got %v, want 0.5", features.TagVector["is_spicy"])
	}
	// 只有一条评价带价格，均值只计非空值，不回退标价
	if features.AvgPrice != 1000 {
		t.Errorf("AvgPrice: got %v, want 1000", features.AvgPrice)
	}
	if features.AvgWaitTime != 20 {
		t.Errorf("AvgWaitTime: got %v, want 20", features.AvgWaitTime)
	}
	if features.ReviewCount != 2 {
		t.Errorf("ReviewCount: got %d, want 2", features.ReviewCount)
	}
}

func TestRecomputeMealFeaturesIdempotent(t *testing.T) {
	svc, mealRepo, reviewRepo, _, featureRepo := newFeatureServiceForTest()
	mealRepo.meals[1] = &model.Meal{ID: 1, PlaceID: 10, Place: &model.Place{ID: 10, Cuisine: "mexican"}}
	reviewRepo.byMeal[1] = []model.MealReview{
		{MealID: 1, UserID: 1, Rating: 4, IsHalal: model.TriYes, Price: floatPtr(2500)},
	}

	ctx := context.Background()
	if err := svc.RecomputeMealFeatures(ctx, 1); err != nil {
		t.Fatalf("第一次重算: %v", err)
	}
	first := *featureRepo.features[1]
	if err := svc.RecomputeMealFeatures(ctx, 1); err != nil {
		t.Fatalf("第二次重算: %v", err)
	}
	second := *featureRepo.features[1]

	if math.Abs(first.TagVector["is_halal"]-second.TagVector["is_halal"]) > 1e-12 ||
		first.AvgPrice != second.AvgPrice ||
		first.ReviewCount != second.ReviewCount {
		t.Errorf("同样的评价集合重算结果应一致: %+v vs %+v", first, second)
	}
}

func TestRecomputeMealFeaturesMealMissing(t *testing.T) {
	svc, _, _, _, featureRepo := newFeatureServiceForTest()

	// 后台尽力型任务：菜品不存在时静默跳过，不报错
	if err := svc.RecomputeMealFeatures(context.Background(), 42); err != nil {
		t.Fatalf("缺失菜品不应报错: %v", err)
	}
	if len(featureRepo.features) != 0 {
		t.Error("缺失菜品不应产生特征行")
	}
}

func TestRecomputeMealFeaturesCuisineNormalized(t *testing.T) {
	svc, mealRepo, _, _, featureRepo := newFeatureServiceForTest()
	mealRepo.meals[1] = &model.Meal{ID: 1, PlaceID: 10, Place: &model.Place{ID: 10, Cuisine: " Japanese "}}

	if err := svc.RecomputeMealFeatures(context.Background(), 1); err != nil {
		t.Fatalf("RecomputeMealFeatures: %v", err)
	}
	if featureRepo.features[1].CuisineVector["japanese"] != 1.0 {
		t.Errorf("菜系键应被归一为小写去空白: %v", featureRepo.features[1].CuisineVector)
	}
}

func TestRecomputeMealFeaturesCuisineUnspecified(t *testing.T) {
	svc, mealRepo, _, _, featureRepo := newFeatureServiceForTest()
	mealRepo.meals[1] = &model.Meal{ID: 1, PlaceID: 10, Place: &model.Place{ID: 10, Cuisine: model.CuisineUnspecified}}

	if err := svc.RecomputeMealFeatures(context.Background(), 1); err != nil {
		t.Fatalf("RecomputeMealFeatures: %v", err)
	}
	if len(featureRepo.features[1].CuisineVector) != 0 {
		t.Errorf("unspecified 菜系的向量应为空: %v", featureRepo.features[1].CuisineVector)
	}
}

func TestRecomputePlaceMealsFeatures(t *testing.T) {
	svc, mealRepo, _, placeRepo, featureRepo := newFeatureServiceForTest()
	place := &model.Place{ID: 10, Cuisine: "korean"}
	placeRepo.places[10] = place
	placeRepo.mealIDs[10] = []uint{1, 2, 3}
	mealRepo.meals[1] = &model.Meal{ID: 1, PlaceID: 10, Place: place}
	mealRepo.meals[2] = &model.Meal{ID: 2, PlaceID: 10, Place: place}
	// 菜品 3 已被删除，重算应跳过它并继续处理其余菜品

	if err := svc.RecomputePlaceMealsFeatures(context.Background(), 10); err != nil {
		t.Fatalf("RecomputePlaceMealsFeatures: %v", err)
	}
	if len(featureRepo.features) != 2 {
		t.Fatalf("特征行数量: got %d, want 2", len(featureRepo.features))
	}
	for _, mealID := range []uint{1, 2} {
		if featureRepo.features[mealID].CuisineVector["korean"] != 1.0 {
			t.Errorf("菜品 %d 菜系向量未更新", mealID)
		}
	}
}
