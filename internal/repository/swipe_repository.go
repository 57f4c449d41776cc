package repository

import (
	"brika-go/internal/model"

	"gorm.io/gorm"
)

// SwipeRepository 接口定义了滑动记录的持久化操作。
type SwipeRepository interface {
	Create(swipe *model.Swipe) error
	// Exists 判断同一用户在同一会话内是否已对该菜品滑动过。
	Exists(userID, mealID uint, sessionID string) (bool, error)
}

// swipeRepository 是 SwipeRepository 接口的 GORM 实现。
type swipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository 创建一个新的 SwipeRepository 实例。
func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

// Create 在数据库中创建一条滑动记录。
func (r *swipeRepository) Create(swipe *model.Swipe) error {
	return r.db.Create(swipe).Error
}

// Exists 判断滑动记录是否已存在。
func (r *swipeRepository) Exists(userID, mealID uint, sessionID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Swipe{}).
		Where("user_id = ? AND meal_id = ? AND session_id = ?", userID, mealID, sessionID).
		Count(&count).Error
	return count > 0, err
}
