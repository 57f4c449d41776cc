package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FloatVector 是 "特征键 -> 强度" 的映射，作为 JSON 列持久化。
// 菜品侧的标签向量与菜系向量都使用该类型。
type FloatVector map[string]float64

// Value 实现 driver.Valuer，将向量序列化为 JSON 存储。
func (v FloatVector) Value() (driver.Value, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

// Scan 实现 sql.Scanner，从 JSON 列还原向量。
func (v *FloatVector) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		*v = FloatVector{}
		return nil
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	}
	return fmt.Errorf("无法将 %T 解析为 FloatVector", src)
}

// PrefEntry 是用户偏好向量中单个键的取值：
// Val 为学习到的偏好强度（始终被钳制在 [-1,1]），
// Count 为该键被更新过的次数，只增不减。
type PrefEntry struct {
	Val   float64 `json:"val"`
	Count int     `json:"count"`
}

// PrefVector 是 "特征键 -> (偏好值, 观测次数)" 的映射，作为 JSON 列持久化。
type PrefVector map[string]PrefEntry

// Value 实现 driver.Valuer。
func (v PrefVector) Value() (driver.Value, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

// Scan 实现 sql.Scanner。
func (v *PrefVector) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		*v = PrefVector{}
		return nil
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	}
	return fmt.Errorf("无法将 %T 解析为 PrefVector", src)
}

// MealFeatures 对应于数据库中的 'computed_meal_features' 表。
// 每个菜品一行，由特征聚合器依据当前全部评价重算覆盖，可随时安全重建。
type MealFeatures struct {
	MealID uint `gorm:"primaryKey" json:"mealId"`
	// TagVector 为 7 个固定标签的均值向量，取值范围 [-1,1]。
	TagVector FloatVector `gorm:"type:json" json:"tagVector"`
	// CuisineVector 最多只有一个键（餐厅菜系），值恒为 1.0，表示存在而非强度。
	CuisineVector FloatVector `gorm:"type:json" json:"cuisineVector"`
	AvgPrice      float64     `json:"avgPrice"`
	AvgWaitTime   float64     `json:"avgWaitTime"`
	// ReviewCount 作为新鲜度/置信度信号保存。
	ReviewCount int       `json:"reviewCount"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MealFeatures) TableName() string {
	return "computed_meal_features"
}

// UserPreferences 对应于数据库中的 'computed_user_preferences' 表。
// 每个用户一行，四组偏好向量与菜品特征的四个分组一一对应。
type UserPreferences struct {
	UserID        uint       `gorm:"primaryKey" json:"userId"`
	TagPrefs      PrefVector `gorm:"type:json" json:"tagPrefs"`
	CuisinePrefs  PrefVector `gorm:"type:json" json:"cuisinePrefs"`
	PriceBinPrefs PrefVector `gorm:"type:json" json:"priceBinPrefs"`
	WaitBinPrefs  PrefVector `gorm:"type:json" json:"waitBinPrefs"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (UserPreferences) TableName() string {
	return "computed_user_preferences"
}

// NewUserPreferences 创建一个四组向量均为空的偏好行。
func NewUserPreferences(userID uint) *UserPreferences {
	return &UserPreferences{
		UserID:        userID,
		TagPrefs:      PrefVector{},
		CuisinePrefs:  PrefVector{},
		PriceBinPrefs: PrefVector{},
		WaitBinPrefs:  PrefVector{},
	}
}
