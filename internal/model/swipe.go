package model

import "time"

// Swipe 对应于数据库中的 'swipe' 表，记录用户对菜品的一次左/右滑。
type Swipe struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"not null;index:idx_swipe_user_meal_session" json:"userId"`
	MealID uint `gorm:"not null;index:idx_swipe_user_meal_session" json:"mealId"`
	// SessionID 标识一次浏览会话，同一会话内对同一菜品的重复滑动会被忽略。
	SessionID string    `gorm:"type:varchar(64);not null;index:idx_swipe_user_meal_session" json:"sessionId"`
	Liked     bool      `gorm:"not null" json:"liked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Swipe) TableName() string {
	return "swipe"
}
