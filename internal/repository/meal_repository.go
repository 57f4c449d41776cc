package repository

import (
	"fmt"

	"brika-go/internal/model"

	"gorm.io/gorm"
)

// hasImageClause 生成"菜品有任意图片"的 SQL 条件：
// 自己的图片，或其任意一条评价上挂的图片。
// idColumn 是承载菜品 ID 的列名（候选查询里是 computed_meal_features.meal_id）。
func hasImageClause(idColumn string) string {
	return fmt.Sprintf(`(
EXISTS (SELECT 1 FROM meal_image WHERE meal_image.meal_id = %s)
OR EXISTS (
  SELECT 1 FROM meal_review_image
  JOIN meal_review ON meal_review.id = meal_review_image.meal_review_id
  WHERE meal_review.meal_id = %s
))`, idColumn, idColumn)
}

// MealRepository 接口定义了菜品数据的持久化操作。
type MealRepository interface {
	Create(meal *model.Meal) error
	Update(meal *model.Meal) error
	Delete(mealID uint) error
	FindByID(mealID uint) (*model.Meal, error)
	// FindByIDs 按 ID 集合取菜品，预加载餐厅与评价（含评价图片），供信息流拼装。
	FindByIDs(mealIDs []uint) ([]model.Meal, error)
	CountAll() (int64, error)
	// FindRecent 按创建时间倒序返回最新菜品，作为冷启动兜底。
	// withImages 开启后只返回有图片的菜品；excludeInteractedBy 非零时
	// 排除该用户已滑动或已评价过的菜品。
	FindRecent(limit int, withImages bool, excludeInteractedBy uint) ([]model.Meal, error)
}

// mealRepository 是 MealRepository 接口的 GORM 实现。
type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository 创建一个新的 MealRepository 实例。
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

// Create 在数据库中创建一个新的菜品记录。
func (r *mealRepository) Create(meal *model.Meal) error {
	return r.db.Create(meal).Error
}

// Update 更新数据库中一个已存在的菜品记录。
func (r *mealRepository) Update(meal *model.Meal) error {
	return r.db.Save(meal).Error
}

// Delete 删除菜品及其级联的特征行由上层负责触发。
func (r *mealRepository) Delete(mealID uint) error {
	return r.db.Delete(&model.Meal{}, mealID).Error
}

// FindByID 根据菜品 ID 查找菜品，并预加载所属餐厅。
func (r *mealRepository) FindByID(mealID uint) (*model.Meal, error) {
	var meal model.Meal
	err := r.db.Preload("Place").First(&meal, mealID).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// FindByIDs 按 ID 集合取菜品，预加载餐厅、图片与评价。
func (r *mealRepository) FindByIDs(mealIDs []uint) ([]model.Meal, error) {
	if len(mealIDs) == 0 {
		return []model.Meal{}, nil
	}
	var meals []model.Meal
	err := r.db.
		Preload("Place").
		Preload("Images").
		Preload("Reviews").
		Preload("Reviews.Images").
		Where("id IN ?", mealIDs).
		Find(&meals).Error
	return meals, err
}

// CountAll 返回系统内菜品总数，用于决定是否启用图片过滤。
func (r *mealRepository) CountAll() (int64, error) {
	var total int64
	err := r.db.Model(&model.Meal{}).Count(&total).Error
	return total, err
}

// FindRecent 按创建时间倒序返回最新菜品。
func (r *mealRepository) FindRecent(limit int, withImages bool, excludeInteractedBy uint) ([]model.Meal, error) {
	query := r.db.Model(&model.Meal{}).
		Preload("Place").
		Preload("Images").
		Preload("Reviews").
		Preload("Reviews.Images")

	if withImages {
		query = query.Where(hasImageClause("meal.id"))
	}

	if excludeInteractedBy != 0 {
		swiped := r.db.Model(&model.Swipe{}).Select("meal_id").
			Where("user_id = ?", excludeInteractedBy)
		reviewed := r.db.Model(&model.MealReview{}).Select("meal_id").
			Where("user_id = ?", excludeInteractedBy)
		query = query.
			Where("id NOT IN (?)", swiped).
			Where("id NOT IN (?)", reviewed)
	}

	var meals []model.Meal
	err := query.Order("created_at DESC").Limit(limit).Find(&meals).Error
	return meals, err
}
