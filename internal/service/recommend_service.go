package service

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"

	"brika-go/internal/config"
	"brika-go/internal/model"
	"brika-go/internal/repository"
	"brika-go/pkg/log"

	"gorm.io/gorm"
)

// 相似度打分的算法常量。
const (
	weightTags     = 0.50
	weightCuisine  = 0.30
	weightPrice    = 0.10
	weightWait     = 0.10
	weightDistance = 0.20

	// distanceDecayKM 是距离相似度指数衰减的半衰期（公里）。
	distanceDecayKM = 3.0

	// 候选池超过该规模时，对前 limit+shufflePoolExtra 名做一次洗牌再截断，
	// 避免近似同分的候选之间出现固定顺序。
	shufflePoolThreshold = 100
	shufflePoolExtra     = 20
)

// metricNames 是可被探索策略随机屏蔽的四个相似度维度。
var metricNames = []string{"tags", "cuisine", "price", "wait"}

// ScoredMeal 是一条推荐结果：菜品与其（可能被探索策略置零的）得分。
type ScoredMeal struct {
	Meal  model.Meal
	Score float64
}

// RecommendService 定义了个性化信息流的接口。
type RecommendService interface {
	// Recommend 为用户生成至多 limit 条推荐，lat/lng 可为空。
	// 同一次调用的结果内菜品 ID 不重复。
	Recommend(ctx context.Context, userID uint, limit int, lat, lng *float64) ([]ScoredMeal, error)
}

// recommendService 是 RecommendService 接口的实现。
type recommendService struct {
	mealRepo    repository.MealRepository
	featureRepo repository.FeatureRepository
	cfg         config.RecommendConfig

	// 随机源可注入，测试用固定种子即可复现探索行为。
	// rand.Rand 非并发安全，用互斥锁串行化。
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommendService 创建一个新的 RecommendService 实例。
func NewRecommendService(
	mealRepo repository.MealRepository,
	featureRepo repository.FeatureRepository,
	cfg config.RecommendConfig,
	rng *rand.Rand,
) RecommendService {
	return &recommendService{
		mealRepo:    mealRepo,
		featureRepo: featureRepo,
		cfg:         cfg,
		rng:         rng,
	}
}

// scoredID 是排序阶段的中间结构。
type scoredID struct {
	mealID uint
	score  float64
}

// Recommend 生成个性化信息流。
func (s *recommendService) Recommend(ctx context.Context, userID uint, limit int, lat, lng *float64) ([]ScoredMeal, error) {
	totalMeals, err := s.mealRepo.CountAll()
	if err != nil {
		return nil, err
	}
	// 菜品总量足够大之后，没有任何图片的菜品不值得推荐
	withImages := totalMeals >= int64(s.cfg.ImageFilterMinMeals)

	prefs, err := s.featureRepo.GetUserPreferences(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 冷启动兜底：没有偏好行时直接返回最新菜品
		log.Infof("用户无偏好向量，返回最新菜品兜底, userID=%d", userID)
		return s.fallbackRecent(limit, withImages, 0)
	}
	if err != nil {
		return nil, err
	}

	// 1. 构建候选池：排除已交互菜品，按需启用图片过滤与地理边界盒
	var box *repository.GeoBox
	if lat != nil && lng != nil {
		box = geoBox(*lat, *lng, s.cfg.MaxRadiusKM)
	}

	candidates, err := s.featureRepo.FindCandidates(userID, withImages, box)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 && box != nil {
		// 半径内没有候选时放宽距离约束重试，信息流不能因地理原因落空
		log.Info("半径内无候选菜品，放宽距离过滤重试")
		candidates, err = s.featureRepo.FindCandidates(userID, withImages, nil)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		log.Infof("无可打分候选，返回最新菜品兜底, userID=%d", userID)
		return s.fallbackRecent(limit, withImages, userID)
	}

	// 2. 探索：以 epsilon 概率随机屏蔽一个相似度维度（对本批全部候选生效）
	ignoredMetric := ""
	if s.rand01() < s.cfg.EpsilonIgnoreMetric {
		ignoredMetric = metricNames[s.intn(len(metricNames))]
		log.Infof("探索: 本批忽略相似度维度 %s", ignoredMetric)
	}

	// 3. 逐候选打分
	candidateIDs := make([]uint, len(candidates))
	for i := range candidates {
		candidateIDs[i] = candidates[i].MealID
	}
	coords, err := s.featureRepo.PlaceCoords(candidateIDs)
	if err != nil {
		return nil, err
	}

	scores := make([]scoredID, 0, len(candidates))
	for i := range candidates {
		var distanceKM *float64
		if lat != nil && lng != nil {
			if coord, ok := coords[candidates[i].MealID]; ok && coord.Lat != nil && coord.Lng != nil {
				d := HaversineMeters(*lat, *lng, *coord.Lat, *coord.Lng) / 1000.0
				distanceKM = &d
			}
		}
		scores = append(scores, scoredID{
			mealID: candidates[i].MealID,
			score:  similarityScore(prefs, &candidates[i], distanceKM, ignoredMetric),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	// 4. 探索：候选池够大时，对头部 limit+N 洗牌后再截断
	var top []scoredID
	if len(scores) > shufflePoolThreshold {
		poolSize := limit + shufflePoolExtra
		if poolSize > len(scores) {
			poolSize = len(scores)
		}
		pool := make([]scoredID, poolSize)
		copy(pool, scores[:poolSize])
		s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		if limit < len(pool) {
			top = pool[:limit]
		} else {
			top = pool
		}
	} else {
		if limit < len(scores) {
			top = scores[:limit]
		} else {
			top = scores
		}
	}

	// 5. 探索：每个位置以 epsilon 概率被一个不在结果集内的随机候选替换
	currentIDs := make(map[uint]bool, len(top))
	for _, item := range top {
		currentIDs[item.mealID] = true
	}

	injected := 0
	for i := range top {
		if s.rand01() >= s.cfg.EpsilonRandom {
			continue
		}
		available := make([]uint, 0, len(candidates))
		for j := range candidates {
			if !currentIDs[candidates[j].MealID] {
				available = append(available, candidates[j].MealID)
			}
		}
		if len(available) == 0 {
			continue
		}
		randomID := available[s.intn(len(available))]
		// 注入项的得分记为 0，不佯装有相似度依据
		top[i] = scoredID{mealID: randomID, score: 0.0}
		currentIDs[randomID] = true
		injected++
	}
	if injected > 0 {
		log.Infof("探索: 注入了 %d 个随机菜品", injected)
	}

	// 6. 取回菜品实体并按打分顺序组装
	topIDs := make([]uint, len(top))
	scoreByID := make(map[uint]float64, len(top))
	for i, item := range top {
		topIDs[i] = item.mealID
		scoreByID[item.mealID] = item.score
	}

	meals, err := s.mealRepo.FindByIDs(topIDs)
	if err != nil {
		return nil, err
	}
	mealByID := make(map[uint]model.Meal, len(meals))
	for _, meal := range meals {
		mealByID[meal.ID] = meal
	}

	recommendations := make([]ScoredMeal, 0, len(topIDs))
	for _, mealID := range topIDs {
		meal, ok := mealByID[mealID]
		if !ok {
			continue
		}
		log.Debugf("推荐菜品 %d, score=%f", mealID, scoreByID[mealID])
		recommendations = append(recommendations, ScoredMeal{Meal: meal, Score: scoreByID[mealID]})
	}
	return recommendations, nil
}

// fallbackRecent 返回最新创建的菜品（得分 0）作为兜底信息流。
func (s *recommendService) fallbackRecent(limit int, withImages bool, excludeInteractedBy uint) ([]ScoredMeal, error) {
	meals, err := s.mealRepo.FindRecent(limit, withImages, excludeInteractedBy)
	if err != nil {
		return nil, err
	}
	results := make([]ScoredMeal, 0, len(meals))
	for _, meal := range meals {
		results = append(results, ScoredMeal{Meal: meal, Score: 0.0})
	}
	return results, nil
}

// similarityScore 计算单个候选的加权相似度得分。
// 四个余弦维度权重合计 1.0，距离项在有坐标时额外叠加（总权重可超过 1）。
func similarityScore(prefs *model.UserPreferences, features *model.MealFeatures, distanceKM *float64, ignoredMetric string) float64 {
	simTags := 0.0
	if ignoredMetric != "tags" {
		simTags = cosineSimilarity(prefs.TagPrefs, features.TagVector)
	}

	simCuisine := 0.0
	if ignoredMetric != "cuisine" {
		simCuisine = cosineSimilarity(prefs.CuisinePrefs, features.CuisineVector)
	}

	simPrice := 0.0
	if ignoredMetric != "price" {
		simPrice = cosineSimilarity(prefs.PriceBinPrefs, scalarToSoftBin(features.AvgPrice, PriceBins))
	}

	simWait := 0.0
	if ignoredMetric != "wait" {
		simWait = cosineSimilarity(prefs.WaitBinPrefs, scalarToSoftBin(features.AvgWaitTime, WaitBins))
	}

	simDist := 0.0
	if distanceKM != nil {
		// 指数衰减，3 公里处相似度减半
		decayRate := math.Ln2 / distanceDecayKM
		simDist = math.Exp(-decayRate * *distanceKM)
	}

	return simTags*weightTags +
		simCuisine*weightCuisine +
		simPrice*weightPrice +
		simWait*weightWait +
		simDist*weightDistance
}

// geoBox 把 (lat,lng) 为圆心、radiusKM 为半径的圆近似成经纬度边界盒。
// 1 度纬度约 111 公里，经度按纬度余弦修正。
func geoBox(lat, lng, radiusKM float64) *repository.GeoBox {
	latDelta := radiusKM / 111.0
	lngDelta := radiusKM / (111.0 * math.Cos(lat*math.Pi/180))
	return &repository.GeoBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

func (s *recommendService) rand01() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *recommendService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *recommendService) shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}
