package model

import "time"

// CuisineUnspecified 是 Place.Cuisine 的缺省哨兵值。
// 聚合菜系向量时，该值等同于"餐厅没有菜系信息"。
const CuisineUnspecified = "unspecified"

// Place 对应于数据库中的 'place' 表，表示一家餐厅。
type Place struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	// Cuisine 是餐厅的菜系，如 italian / japanese / mexican，
	// 未填写时为 unspecified。
	Cuisine string `gorm:"type:varchar(50);not null;default:'unspecified'" json:"cuisine"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	// Lat/Lng 为餐厅坐标，允许为空（部分商户没有定位信息）。
	Lat       *float64  `json:"latitude"`
	Lng       *float64  `json:"longitude"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Place) TableName() string {
	return "place"
}

// HasCuisine 判断餐厅是否有有效的菜系信息。
func (p *Place) HasCuisine() bool {
	return p.Cuisine != "" && p.Cuisine != CuisineUnspecified
}
