package repository

import (
	"brika-go/internal/model"

	"gorm.io/gorm"
)

// BookmarkRepository 接口定义了菜品/餐厅收藏的持久化操作。
type BookmarkRepository interface {
	CreateMealBookmark(bookmark *model.MealBookmark) error
	FindMealBookmark(userID, mealID uint) (*model.MealBookmark, error)
	// ListMealBookmarks 按收藏时间倒序返回该用户的全部菜品收藏，预加载菜品。
	ListMealBookmarks(userID uint) ([]model.MealBookmark, error)
	DeleteMealBookmark(userID, mealID uint) error

	CreatePlaceBookmark(bookmark *model.PlaceBookmark) error
	FindPlaceBookmark(userID, placeID uint) (*model.PlaceBookmark, error)
	// ListPlaceBookmarks 按收藏时间倒序返回该用户的全部餐厅收藏，预加载餐厅。
	ListPlaceBookmarks(userID uint) ([]model.PlaceBookmark, error)
	DeletePlaceBookmark(userID, placeID uint) error
}

// bookmarkRepository 是 BookmarkRepository 接口的 GORM 实现。
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository 创建一个新的 BookmarkRepository 实例。
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// CreateMealBookmark 在数据库中创建一条菜品收藏记录。
func (r *bookmarkRepository) CreateMealBookmark(bookmark *model.MealBookmark) error {
	return r.db.Create(bookmark).Error
}

// FindMealBookmark 按用户和菜品查找收藏记录。
func (r *bookmarkRepository) FindMealBookmark(userID, mealID uint) (*model.MealBookmark, error) {
	var bookmark model.MealBookmark
	err := r.db.Where("user_id = ? AND meal_id = ?", userID, mealID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// ListMealBookmarks 返回该用户的全部菜品收藏。
func (r *bookmarkRepository) ListMealBookmarks(userID uint) ([]model.MealBookmark, error) {
	var bookmarks []model.MealBookmark
	err := r.db.Preload("Meal").Preload("Meal.Place").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

// DeleteMealBookmark 删除一条菜品收藏记录。
func (r *bookmarkRepository) DeleteMealBookmark(userID, mealID uint) error {
	return r.db.Where("user_id = ? AND meal_id = ?", userID, mealID).
		Delete(&model.MealBookmark{}).Error
}

// CreatePlaceBookmark 在数据库中创建一条餐厅收藏记录。
func (r *bookmarkRepository) CreatePlaceBookmark(bookmark *model.PlaceBookmark) error {
	return r.db.Create(bookmark).Error
}

// FindPlaceBookmark 按用户和餐厅查找收藏记录。
func (r *bookmarkRepository) FindPlaceBookmark(userID, placeID uint) (*model.PlaceBookmark, error) {
	var bookmark model.PlaceBookmark
	err := r.db.Where("user_id = ? AND place_id = ?", userID, placeID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// ListPlaceBookmarks 返回该用户的全部餐厅收藏。
func (r *bookmarkRepository) ListPlaceBookmarks(userID uint) ([]model.PlaceBookmark, error) {
	var bookmarks []model.PlaceBookmark
	err := r.db.Preload("Place").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

// DeletePlaceBookmark 删除一条餐厅收藏记录。
func (r *bookmarkRepository) DeletePlaceBookmark(userID, placeID uint) error {
	return r.db.Where("user_id = ? AND place_id = ?", userID, placeID).
		Delete(&model.PlaceBookmark{}).Error
}
