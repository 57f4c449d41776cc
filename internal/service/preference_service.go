package service

import (
	"context"
	"errors"
	"math"

	"brika-go/internal/model"
	"brika-go/internal/repository"
	"brika-go/pkg/log"

	"gorm.io/gorm"
)

// 在线偏好更新的算法常量。这些值是算法本身的一部分，不做部署级配置。
const (
	// learningRate 是指数滑动平均式 delta 更新的基础学习率。
	learningRate = 0.15
	// accelMax / accelDecay 构成冷启动加速因子 1 + accelMax*exp(-accelDecay*count)：
	// 观测次数少的键学得快，随观测累积衰减回 1 倍。
	accelMax   = 2.5
	accelDecay = 0.2
	// weakSignalThreshold 以下的特征值视为菜品在该维度没有明确表态，跳过不学。
	weakSignalThreshold = 0.2
)

// PreferenceService 定义了用户偏好在线更新的接口。
type PreferenceService interface {
	// ApplyInteraction 把用户对某菜品的一次交互（滑动/评价）按信号强度
	// 折算进该用户的四组偏好向量，整行原子落库。
	// 菜品即使懒惰重算后仍不存在时静默跳过。
	ApplyInteraction(ctx context.Context, userID uint, signalStrength float64, mealID uint) error
}

// preferenceService 是 PreferenceService 接口的实现。
type preferenceService struct {
	featureRepo    repository.FeatureRepository
	featureService FeatureService
}

// NewPreferenceService 创建一个新的 PreferenceService 实例。
func NewPreferenceService(featureRepo repository.FeatureRepository, featureService FeatureService) PreferenceService {
	return &preferenceService{featureRepo: featureRepo, featureService: featureService}
}

// ApplyInteraction 执行一次在线偏好更新。
func (s *preferenceService) ApplyInteraction(ctx context.Context, userID uint, signalStrength float64, mealID uint) error {
	features, err := s.getOrComputeMealFeatures(ctx, mealID)
	if err != nil {
		return err
	}
	if features == nil {
		log.Infof("菜品不存在，跳过偏好更新, userID=%d, mealID=%d", userID, mealID)
		return nil
	}

	prefs, err := s.featureRepo.GetUserPreferences(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 首次交互时懒创建空偏好行
		prefs = model.NewUserPreferences(userID)
	} else if err != nil {
		return err
	}

	// 实时更新，交互的时间衰减权重视为 1.0
	prefs.TagPrefs = updateFeatureGroup(prefs.TagPrefs, features.TagVector, signalStrength)
	prefs.CuisinePrefs = updateFeatureGroup(prefs.CuisinePrefs, features.CuisineVector, signalStrength)
	prefs.PriceBinPrefs = updateFeatureGroup(prefs.PriceBinPrefs, scalarToSoftBin(features.AvgPrice, PriceBins), signalStrength)
	prefs.WaitBinPrefs = updateFeatureGroup(prefs.WaitBinPrefs, scalarToSoftBin(features.AvgWaitTime, WaitBins), signalStrength)

	return s.featureRepo.SaveUserPreferences(prefs)
}

// getOrComputeMealFeatures 是特征行的读穿访问器：
// 缺失时先触发一次聚合再读，仍缺失（菜品确实不存在）返回 nil。
func (s *preferenceService) getOrComputeMealFeatures(ctx context.Context, mealID uint) (*model.MealFeatures, error) {
	features, err := s.featureRepo.GetMealFeatures(ctx, mealID)
	if err == nil {
		return features, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.featureService.RecomputeMealFeatures(ctx, mealID); err != nil {
		return nil, err
	}

	features, err = s.featureRepo.GetMealFeatures(ctx, mealID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return features, nil
}

// updateFeatureGroup 将菜品某一组特征折算进用户同组偏好，返回更新后的副本。
// 对每个键执行带冷启动加速的 delta 规则，并把结果钳制到 [-1,1]。
func updateFeatureGroup(prefs model.PrefVector, features model.FloatVector, signalStrength float64) model.PrefVector {
	updated := make(model.PrefVector, len(prefs)+len(features))
	for key, entry := range prefs {
		updated[key] = entry
	}

	for key, mealVal := range features {
		// 弱信号过滤：菜品在该维度表态不够鲜明时不更新
		if math.Abs(mealVal) <= weakSignalThreshold {
			continue
		}

		current := updated[key] // 缺省 (0.0, 0)

		multiplier := 1 + accelMax*math.Exp(-accelDecay*float64(current.Count))
		effectiveSignal := signalStrength * mealVal
		newVal := current.Val + learningRate*multiplier*(effectiveSignal-current.Val)
		newVal = clamp(newVal, -1.0, 1.0)

		updated[key] = model.PrefEntry{Val: newVal, Count: current.Count + 1}
	}
	return updated
}
