package model

import "time"

// MealBookmark 对应于数据库中的 'meal_bookmark' 表，
// 记录用户收藏的菜品，同一用户对同一菜品只能收藏一次。
type MealBookmark struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_meal_bookmark_user_meal" json:"userId"`
	MealID    uint      `gorm:"not null;uniqueIndex:uidx_meal_bookmark_user_meal" json:"mealId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Meal *Meal `gorm:"foreignKey:MealID" json:"meal,omitempty"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MealBookmark) TableName() string {
	return "meal_bookmark"
}

// PlaceBookmark 对应于数据库中的 'place_bookmark' 表，
// 记录用户收藏的餐厅，同一用户对同一餐厅只能收藏一次。
type PlaceBookmark struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_place_bookmark_user_place" json:"userId"`
	PlaceID   uint      `gorm:"not null;uniqueIndex:uidx_place_bookmark_user_place" json:"placeId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Place *Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (PlaceBookmark) TableName() string {
	return "place_bookmark"
}
