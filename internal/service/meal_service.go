package service

import (
	"context"
	"errors"

	"brika-go/internal/model"
	"brika-go/internal/repository"
	"brika-go/pkg/kafka"
	"brika-go/pkg/log"
	"brika-go/pkg/tasks"

	"gorm.io/gorm"
)

// ErrPlaceNotFound 表示目标餐厅不存在。
var ErrPlaceNotFound = errors.New("餐厅不存在")

// MealService 定义了菜品管理的业务接口。
type MealService interface {
	CreateMeal(ctx context.Context, meal *model.Meal) error
	UpdateMeal(ctx context.Context, meal *model.Meal) error
	// DeleteMeal 删除菜品并级联删除其计算特征行。
	DeleteMeal(ctx context.Context, mealID uint) error
	GetMeal(mealID uint) (*model.Meal, error)
}

// mealService 是 MealService 接口的实现。
type mealService struct {
	mealRepo    repository.MealRepository
	placeRepo   repository.PlaceRepository
	featureRepo repository.FeatureRepository
}

// NewMealService 创建一个新的 MealService 实例。
func NewMealService(
	mealRepo repository.MealRepository,
	placeRepo repository.PlaceRepository,
	featureRepo repository.FeatureRepository,
) MealService {
	return &mealService{mealRepo: mealRepo, placeRepo: placeRepo, featureRepo: featureRepo}
}

// CreateMeal 创建菜品并异步触发首次特征聚合。
func (s *mealService) CreateMeal(ctx context.Context, meal *model.Meal) error {
	if _, err := s.placeRepo.FindByID(meal.PlaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}

	if err := s.mealRepo.Create(meal); err != nil {
		return err
	}

	s.produce(tasks.RecTask{Kind: tasks.TaskRecomputeMeal, MealID: meal.ID})
	return nil
}

// UpdateMeal 更新菜品并异步触发特征重算（标价是 avg_price 的回退值）。
func (s *mealService) UpdateMeal(ctx context.Context, meal *model.Meal) error {
	if _, err := s.mealRepo.FindByID(meal.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	if _, err := s.placeRepo.FindByID(meal.PlaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}

	if err := s.mealRepo.Update(meal); err != nil {
		return err
	}

	s.produce(tasks.RecTask{Kind: tasks.TaskRecomputeMeal, MealID: meal.ID})
	return nil
}

// DeleteMeal 删除菜品并级联删除特征行。
func (s *mealService) DeleteMeal(ctx context.Context, mealID uint) error {
	if _, err := s.mealRepo.FindByID(mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return err
	}

	if err := s.featureRepo.DeleteMealFeatures(ctx, mealID); err != nil {
		return err
	}
	return s.mealRepo.Delete(mealID)
}

// GetMeal 按 ID 取菜品。
func (s *mealService) GetMeal(mealID uint) (*model.Meal, error) {
	meal, err := s.mealRepo.FindByID(mealID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	return meal, err
}

// produce 投递后台任务，失败只记日志。
func (s *mealService) produce(task tasks.RecTask) {
	if err := kafka.ProduceRecTask(task); err != nil {
		log.Errorf("投递推荐任务失败, key=%s: %v", task.Key(), err)
	}
}
