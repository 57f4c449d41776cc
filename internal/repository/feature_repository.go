package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brika-go/internal/model"
	"brika-go/pkg/log"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GeoBox 是一个经纬度边界盒，用度/公里换算近似一个圆形半径。
type GeoBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Coord 是候选菜品所属餐厅的坐标，允许为空。
type Coord struct {
	Lat *float64
	Lng *float64
}

// FeatureRepository 接口定义了计算特征与用户偏好行的持久化操作。
// 菜品特征行读多写少，走 Redis 读穿缓存；用户偏好行直接读写 MySQL。
type FeatureRepository interface {
	GetMealFeatures(ctx context.Context, mealID uint) (*model.MealFeatures, error)
	SaveMealFeatures(ctx context.Context, features *model.MealFeatures) error
	DeleteMealFeatures(ctx context.Context, mealID uint) error

	GetUserPreferences(userID uint) (*model.UserPreferences, error)
	SaveUserPreferences(prefs *model.UserPreferences) error

	// FindCandidates 返回打分候选集：排除 userID 已滑动/已评价的菜品，
	// withImages 开启后只保留有图片的菜品，box 非空时限制在边界盒内。
	FindCandidates(userID uint, withImages bool, box *GeoBox) ([]model.MealFeatures, error)
	// PlaceCoords 按菜品 ID 批量取所属餐厅的坐标。
	PlaceCoords(mealIDs []uint) (map[uint]Coord, error)
}

// featureRepository 是 FeatureRepository 接口的 GORM+Redis 实现。
type featureRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
	cacheTTL    time.Duration
}

// NewFeatureRepository 创建一个新的 FeatureRepository 实例。
// redisClient 可以为 nil（如测试环境），此时退化为纯 MySQL 访问。
func NewFeatureRepository(db *gorm.DB, redisClient *redis.Client, cacheTTL time.Duration) FeatureRepository {
	return &featureRepository{db: db, redisClient: redisClient, cacheTTL: cacheTTL}
}

// mealFeaturesKey 生成菜品特征行的缓存键。
func mealFeaturesKey(mealID uint) string {
	return fmt.Sprintf("mealfeat:%d", mealID)
}

// GetMealFeatures 先查 Redis，未命中再查 MySQL 并回填缓存。
func (r *featureRepository) GetMealFeatures(ctx context.Context, mealID uint) (*model.MealFeatures, error) {
	if r.redisClient != nil {
		cached, err := r.redisClient.Get(ctx, mealFeaturesKey(mealID)).Result()
		if err == nil {
			var features model.MealFeatures
			if err := json.Unmarshal([]byte(cached), &features); err == nil {
				return &features, nil
			}
			// 缓存内容损坏时删除并回源
			_ = r.redisClient.Del(ctx, mealFeaturesKey(mealID)).Err()
		} else if err != redis.Nil {
			log.Warnf("读取菜品特征缓存失败, mealID=%d: %v", mealID, err)
		}
	}

	var features model.MealFeatures
	if err := r.db.First(&features, "meal_id = ?", mealID).Error; err != nil {
		return nil, err
	}

	r.fillCache(ctx, &features)
	return &features, nil
}

// SaveMealFeatures 写入 MySQL（存在则整行覆盖）并刷新缓存。
func (r *featureRepository) SaveMealFeatures(ctx context.Context, features *model.MealFeatures) error {
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(features).Error; err != nil {
		return err
	}
	r.fillCache(ctx, features)
	return nil
}

// DeleteMealFeatures 删除特征行（菜品删除时级联触发）并失效缓存。
func (r *featureRepository) DeleteMealFeatures(ctx context.Context, mealID uint) error {
	if err := r.db.Delete(&model.MealFeatures{}, "meal_id = ?", mealID).Error; err != nil {
		return err
	}
	if r.redisClient != nil {
		_ = r.redisClient.Del(ctx, mealFeaturesKey(mealID)).Err()
	}
	return nil
}

// fillCache 将特征行写入 Redis，失败只告警不影响主流程。
func (r *featureRepository) fillCache(ctx context.Context, features *model.MealFeatures) {
	if r.redisClient == nil {
		return
	}
	data, err := json.Marshal(features)
	if err != nil {
		return
	}
	if err := r.redisClient.Set(ctx, mealFeaturesKey(features.MealID), data, r.cacheTTL).Err(); err != nil {
		log.Warnf("写入菜品特征缓存失败, mealID=%d: %v", features.MealID, err)
	}
}

// GetUserPreferences 根据用户 ID 读取偏好行。
func (r *featureRepository) GetUserPreferences(userID uint) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := r.db.First(&prefs, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SaveUserPreferences 一次性提交整行偏好（四组向量原子落库）。
// 并发更新同一用户时为 last-write-wins，可能丢失一次 count 自增，
// 这是已知并接受的取舍，下一次交互会自然纠偏。
func (r *featureRepository) SaveUserPreferences(prefs *model.UserPreferences) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(prefs).Error
}

// FindCandidates 构建打分候选集。
func (r *featureRepository) FindCandidates(userID uint, withImages bool, box *GeoBox) ([]model.MealFeatures, error) {
	swiped := r.db.Model(&model.Swipe{}).Select("meal_id").Where("user_id = ?", userID)
	reviewed := r.db.Model(&model.MealReview{}).Select("meal_id").Where("user_id = ?", userID)

	query := r.db.Model(&model.MealFeatures{}).
		Where("meal_id NOT IN (?)", swiped).
		Where("meal_id NOT IN (?)", reviewed)

	if withImages {
		query = query.Where(hasImageClause("computed_meal_features.meal_id"))
	}

	if box != nil {
		query = query.
			Joins("JOIN meal ON meal.id = computed_meal_features.meal_id").
			Joins("JOIN place ON place.id = meal.place_id").
			Where("place.lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
			Where("place.lng BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	var candidates []model.MealFeatures
	err := query.Find(&candidates).Error
	return candidates, err
}

// PlaceCoords 按菜品 ID 批量取所属餐厅的坐标。
func (r *featureRepository) PlaceCoords(mealIDs []uint) (map[uint]Coord, error) {
	coords := make(map[uint]Coord, len(mealIDs))
	if len(mealIDs) == 0 {
		return coords, nil
	}

	var rows []struct {
		MealID uint
		Lat    *float64
		Lng    *float64
	}
	err := r.db.Model(&model.Meal{}).
		Select("meal.id AS meal_id, place.lat AS lat, place.lng AS lng").
		Joins("JOIN place ON place.id = meal.place_id").
		Where("meal.id IN ?", mealIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		coords[row.MealID] = Coord{Lat: row.Lat, Lng: row.Lng}
	}
	return coords, nil
}
