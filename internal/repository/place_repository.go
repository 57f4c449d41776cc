package repository

import (
	"brika-go/internal/model"

	"gorm.io/gorm"
)

// PlaceRepository 接口定义了餐厅数据的持久化操作。
type PlaceRepository interface {
	Create(place *model.Place) error
	Update(place *model.Place) error
	FindByID(placeID uint) (*model.Place, error)
	// MealIDs 返回该餐厅名下所有菜品的 ID，供菜系变更后批量重算特征使用。
	MealIDs(placeID uint) ([]uint, error)
}

// placeRepository 是 PlaceRepository 接口的 GORM 实现。
type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository 创建一个新的 PlaceRepository 实例。
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

// Create 在数据库中创建一个新的餐厅记录。
func (r *placeRepository) Create(place *model.Place) error {
	return r.db.Create(place).Error
}

// Update 更新数据库中一个已存在的餐厅记录。
func (r *placeRepository) Update(place *model.Place) error {
	return r.db.Save(place).Error
}

// FindByID 根据餐厅 ID 查找餐厅。
func (r *placeRepository) FindByID(placeID uint) (*model.Place, error) {
	var place model.Place
	err := r.db.First(&place, placeID).Error
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// MealIDs 返回该餐厅名下所有菜品的 ID。
func (r *placeRepository) MealIDs(placeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Meal{}).Where("place_id = ?", placeID).Pluck("id", &ids).Error
	return ids, err
}
