package service

import (
	"context"
	"errors"
	"strings"

	"brika-go/internal/model"
	"brika-go/internal/repository"
	"brika-go/pkg/log"

	"gorm.io/gorm"
)

// FeatureService 定义了菜品特征聚合的接口。
// 特征行是当前评价数据的纯函数：同样的评价集合重算任意多次结果不变。
type FeatureService interface {
	// RecomputeMealFeatures 依据菜品当前全部评价重算并覆盖其特征向量。
	// 菜品不存在时静默跳过（后台尽力型任务，不向调用方报错）。
	RecomputeMealFeatures(ctx context.Context, mealID uint) error
	// RecomputePlaceMealsFeatures 对某餐厅名下所有菜品逐一重算特征，
	// 在餐厅菜系等属性变更后调用。
	RecomputePlaceMealsFeatures(ctx context.Context, placeID uint) error
}

// featureService 是 FeatureService 接口的实现。
type featureService struct {
	mealRepo    repository.MealRepository
	reviewRepo  repository.ReviewRepository
	placeRepo   repository.PlaceRepository
	featureRepo repository.FeatureRepository
}

// NewFeatureService 创建一个新的 FeatureService 实例。
func NewFeatureService(
	mealRepo repository.MealRepository,
	reviewRepo repository.ReviewRepository,
	placeRepo repository.PlaceRepository,
	featureRepo repository.FeatureRepository,
) FeatureService {
	return &featureService{
		mealRepo:    mealRepo,
		reviewRepo:  reviewRepo,
		placeRepo:   placeRepo,
		featureRepo: featureRepo,
	}
}

// RecomputeMealFeatures 重算单个菜品的特征向量并落库。
func (s *featureService) RecomputeMealFeatures(ctx context.Context, mealID uint) error {
	meal, err := s.mealRepo.FindByID(mealID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Infof("菜品不存在，跳过特征重算, mealID=%d", mealID)
		return nil
	}
	if err != nil {
		return err
	}

	reviews, err := s.reviewRepo.FindByMeal(mealID)
	if err != nil {
		return err
	}

	// 1. 标签聚合：yes=+1, no=-1, unspecified=0，
	// 除以评价总数（而非表态数），没有评价时各标签为 0。
	tagVector := model.FloatVector{}
	for _, tag := range model.TagNames {
		score := 0.0
		for i := range reviews {
			switch reviews[i].TagValue(tag) {
			case model.TriYes:
				score += 1.0
			case model.TriNo:
				score -= 1.0
			}
		}
		if len(reviews) > 0 {
			tagVector[tag] = score / float64(len(reviews))
		} else {
			tagVector[tag] = 0.0
		}
	}

	// 2. 菜系聚合：单键向量，值恒为 1.0（存在指示，不是强度）。
	cuisineVector := model.FloatVector{}
	if meal.Place != nil && meal.Place.HasCuisine() {
		cuisine := strings.ToLower(strings.TrimSpace(meal.Place.Cuisine))
		cuisineVector[cuisine] = 1.0
	}

	// 3. 标量聚合：评价里非空值的均值，
	// 价格没有评价时回退到菜品标价，等位时长回退为 0。
	var priceSum float64
	var priceCount int
	var waitSum float64
	var waitCount int
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

	avgPrice := 0.0
	if priceCount > 0 {
		avgPrice = priceSum / float64(priceCount)
	} else if meal.Price != nil {
		avgPrice = *meal.Price
	}

	avgWaitTime := 0.0
	if waitCount > 0 {
		avgWaitTime = waitSum / float64(waitCount)
	}

	features := &model.MealFeatures{
		MealID:        mealID,
		TagVector:     tagVector,
		CuisineVector: cuisineVector,
		AvgPrice:      avgPrice,
		AvgWaitTime:   avgWaitTime,
		ReviewCount:   len(reviews),
	}
	return s.featureRepo.SaveMealFeatures(ctx, features)
}

// RecomputePlaceMealsFeatures 对餐厅名下所有菜品逐一重算特征。
// 单个菜品失败只记录日志并继续处理其余菜品。
func (s *featureService) RecomputePlaceMealsFeatures(ctx context.Context, placeID uint) error {
	mealIDs, err := s.placeRepo.MealIDs(placeID)
	if err != nil {
		return err
	}

	for _, mealID := range mealIDs {
		if err := s.RecomputeMealFeatures(ctx, mealID); err != nil {
			log.Errorf("重算菜品特征失败, placeID=%d, mealID=%d: %v", placeID, mealID, err)
		}
	}
	return nil
}
