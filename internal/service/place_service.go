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

// PlaceService 定义了餐厅管理的业务接口。
type PlaceService interface {
	CreatePlace(ctx context.Context, place *model.Place) error
	// UpdatePlace 更新餐厅，菜系发生变化时异步重算名下所有菜品的特征。
	UpdatePlace(ctx context.Context, place *model.Place) error
	GetPlace(placeID uint) (*model.Place, error)
}

// placeService 是 PlaceService 接口的实现。
type placeService struct {
	placeRepo repository.PlaceRepository
}

// NewPlaceService 创建一个新的 PlaceService 实例。
func NewPlaceService(placeRepo repository.PlaceRepository) PlaceService {
	return &placeService{placeRepo: placeRepo}
}

// CreatePlace 创建餐厅。新餐厅名下没有菜品，无需触发重算。
func (s *placeService) CreatePlace(ctx context.Context, place *model.Place) error {
	if place.Cuisine == "" {
		place.Cuisine = model.CuisineUnspecified
	}
	return s.placeRepo.Create(place)
}

// UpdatePlace 更新餐厅。
func (s *placeService) UpdatePlace(ctx context.Context, place *model.Place) error {
	existing, err := s.placeRepo.FindByID(place.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}
	cuisineChanged := existing.Cuisine != place.Cuisine

	if err := s.placeRepo.Update(place); err != nil {
		return err
	}

	// 菜系参与每道菜的 cuisine_vector，变更后需要批量重算
	if cuisineChanged {
		if err := kafka.ProduceRecTask(tasks.RecTask{
			Kind:    tasks.TaskRecomputePlace,
			PlaceID: place.ID,
		}); err != nil {
			log.Errorf("投递餐厅特征重算任务失败, placeID=%d: %v", place.ID, err)
		}
	}
	return nil
}

// GetPlace 按 ID 取餐厅。
func (s *placeService) GetPlace(placeID uint) (*model.Place, error) {
	place, err := s.placeRepo.FindByID(placeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaceNotFound
	}
	return place, err
}
