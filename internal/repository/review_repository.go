package repository

import (
	"brika-go/internal/model"

	"gorm.io/gorm"
)

// ReviewRepository 接口定义了菜品评价的持久化操作。
type ReviewRepository interface {
	Create(review *model.MealReview) error
	Update(review *model.MealReview) error
	Delete(reviewID uint) error
	FindByID(reviewID uint) (*model.MealReview, error)
	// FindByMeal 返回某菜品的全部评价，特征聚合器以此为输入。
	FindByMeal(mealID uint) ([]model.MealReview, error)
}

// reviewRepository 是 ReviewRepository 接口的 GORM 实现。
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建一个新的 ReviewRepository 实例。
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create 在数据库中创建一条评价记录。
func (r *reviewRepository) Create(review *model.MealReview) error {
	return r.db.Create(review).Error
}

// Update 更新一条已存在的评价记录。
func (r *reviewRepository) Update(review *model.MealReview) error {
	return r.db.Save(review).Error
}

// Delete 删除一条评价记录及其图片。
func (r *reviewRepository) Delete(reviewID uint) error {
	if err := r.db.Where("meal_review_id = ?", reviewID).
		Delete(&model.MealReviewImage{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.MealReview{}, reviewID).Error
}

// FindByID 根据评价 ID 查找评价。
func (r *reviewRepository) FindByID(reviewID uint) (*model.MealReview, error) {
	var review model.MealReview
	err := r.db.First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByMeal 返回某菜品的全部评价。
func (r *reviewRepository) FindByMeal(mealID uint) ([]model.MealReview, error) {
	var reviews []model.MealReview
	err := r.db.Where("meal_id = ?", mealID).Find(&reviews).Error
	return reviews, err
}
