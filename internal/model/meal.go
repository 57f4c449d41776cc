package model

import "time"

// Meal 对应于数据库中的 'meal' 表，表示餐厅的一道菜品。
type Meal struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaceID     uint   `gorm:"not null;index" json:"placeId"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// Price 是商户标注的价格（分）。没有评价时作为 avg_price 的回退值。
	Price     *float64  `json:"price"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Place   *Place       `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	Images  []MealImage  `gorm:"foreignKey:MealID" json:"images,omitempty"`
	Reviews []MealReview `gorm:"foreignKey:MealID" json:"reviews,omitempty"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Meal) TableName() string {
	return "meal"
}

// MealImage 对应于数据库中的 'meal_image' 表。
type MealImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MealID    uint      `gorm:"not null;index" json:"mealId"`
	Path      string    `gorm:"type:varchar(512);not null" json:"path"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MealImage) TableName() string {
	return "meal_image"
}
