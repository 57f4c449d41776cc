package model

import "time"

// TriState 表示评价中三态标签的取值：yes / no / unspecified。
type TriState string

const (
	TriYes         TriState = "yes"
	TriNo          TriState = "no"
	TriUnspecified TriState = "unspecified"
)

// TagNames 是参与特征聚合的 7 个固定标签，顺序即特征向量键的顺序。
var TagNames = []string{
	"is_vegan",
	"is_halal",
	"is_vegetarian",
	"is_spicy",
	"is_gluten_free",
	"is_dairy_free",
	"is_nut_free",
}

// MealReview 对应于数据库中的 'meal_review' 表。
type MealReview struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	MealID uint `gorm:"not null;index" json:"mealId"`
	UserID uint `gorm:"not null;index" json:"userId"`
	// Rating 为 1~5 的整数评分。
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`
	// Price 是评价者实际支付的价格（分），可为空。
	Price *float64 `json:"price"`
	// WaitingTimeMinutes 是评价者上报的等位时长（分钟），可为空。
	WaitingTimeMinutes *int `json:"waitingTimeMinutes"`

	IsVegan      TriState `gorm:"type:varchar(16);not null;default:'unspecified'" json:"isVegan"`
	IsHalal      TriState `gorm:"type:varchar(16);not null;default:'unspecified'" json:"isHalal"`
	IsVegetarian TriState `gorm:"type:varchar(16);not null;default:'unspecified'" json:"isVegetarian"`
	IsSpicy      TriState `gorm:"type:varchar(16);not null;default:'unspecified'" json:"isSpicy"`
	IsGlutenFree TriState `gorm:"type:varchar(16);not null;default:'unspecified'" json:"isGlutenFree"`
	IsDairyFree  TriState `gorm:"type:varchar(16);not null;default:'unspecified'" json:"isDairyFree"`
	IsNutFree    TriState `gorm:"type:varchar(16);not null;default:'unspecified'" json:"isNutFree"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Images []MealReviewImage `gorm:"foreignKey:MealReviewID" json:"images,omitempty"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MealReview) TableName() string {
	return "meal_review"
}

// TagValue 按标签名返回该条评价的三态取值。
// 未知标签名返回 unspecified，聚合时等同于没有表态。
func (r *MealReview) TagValue(name string) TriState {
	switch name {
	case "is_vegan":
		return r.IsVegan
	case "is_halal":
		return r.IsHalal
	case "is_vegetarian":
		return r.IsVegetarian
	case "is_spicy":
		return r.IsSpicy
	case "is_gluten_free":
		return r.IsGlutenFree
	case "is_dairy_free":
		return r.IsDairyFree
	case "is_nut_free":
		return r.IsNutFree
	}
	return TriUnspecified
}

// MealReviewImage 对应于数据库中的 'meal_review_image' 表。
type MealReviewImage struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MealReviewID uint      `gorm:"not null;index" json:"mealReviewId"`
	Path         string    `gorm:"type:varchar(512);not null" json:"path"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MealReviewImage) TableName() string {
	return "meal_review_image"
}
