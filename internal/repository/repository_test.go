package repository

import (
	"testing"

	"brika-go/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB 建一个内存 SQLite 库并迁移全部表。
// 连接池限制为 1，避免每个连接各持一份内存库。
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Place{},
		&model.Meal{},
		&model.MealImage{},
		&model.MealReview{},
		&model.MealReviewImage{},
		&model.Swipe{},
		&model.MealBookmark{},
		&model.PlaceBookmark{},
		&model.MealFeatures{},
		&model.UserPreferences{},
	)
	if err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("写入测试数据失败: %v", err)
	}
}

func floatPtr(v float64) *float64 { return &v }
