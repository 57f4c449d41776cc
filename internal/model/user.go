// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// User 对应于数据库中的 'app_user' 表。
type User struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// Email 是用户的登录标识，唯一。
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	// Password 存储 bcrypt 哈希后的密码，绝不以明文出现。
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName  string    `gorm:"type:varchar(100)" json:"lastName"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "app_user"
}
