// Package service 包含了应用的业务逻辑层。
package service

import (
	"fmt"
	"math"

	"brika-go/internal/model"
)

// MajorityTag 统计一组评价里某个三态标签的多数表态：
// 只计入明确表态（yes / no），票数相同或无人表态时返回 unspecified。
func MajorityTag(reviews []model.MealReview, name string) model.TriState {
	yesCount, noCount := 0, 0
	for i := range reviews {
		switch reviews[i].TagValue(name) {
		case model.TriYes:
			yesCount++
		case model.TriNo:
			noCount++
		}
	}
	if yesCount > noCount {
		return model.TriYes
	}
	if noCount > yesCount {
		return model.TriNo
	}
	return model.TriUnspecified
}

// PriceBins 与 WaitBins 是价格（分）和等位时长（分钟）的软分桶边界，升序。
var (
	PriceBins = []float64{0, 5000, 10000, 15000, 20000, 30000, 50000}
	WaitBins  = []float64{0, 10, 20, 30, 45, 60, 90}
)

// scalarToSoftBin 把一个标量离散化为软分桶向量：
// 命中桶权重 1.0，左右相邻桶（若存在）各 0.25。
// 键名为 "r{i}"，i 是桶下标；value 超过最后一条边界时落入最后一个桶。
func scalarToSoftBin(value float64, bins []float64) model.FloatVector {
	targetBin := 0
	for i := 0; i < len(bins)-1; i++ {
		if bins[i] <= value && value < bins[i+1] {
			targetBin = i
			break
		}
	}
	if value >= bins[len(bins)-1] {
		targetBin = len(bins) - 1
	}

	vector := model.FloatVector{}
	vector[fmt.Sprintf("r%d", targetBin)] = 1.0
	if targetBin > 0 {
		vector[fmt.Sprintf("r%d", targetBin-1)] = 0.25
	}
	if targetBin < len(bins)-1 {
		vector[fmt.Sprintf("r%d", targetBin+1)] = 0.25
	}
	return vector
}

// cosineSimilarity 计算用户偏好向量与菜品特征向量的非对称余弦相似度。
// 分子只累计双方共有的键；分母的两个范数分别取各自全部键，
// 所以只匹配到对方一小部分键的向量会被范数惩罚。任一范数为零时返回 0。
func cosineSimilarity(prefs model.PrefVector, features model.FloatVector) float64 {
	var dot, normPrefs, normFeatures float64

	for key, pref := range prefs {
		normPrefs += pref.Val * pref.Val
		if featureVal, ok := features[key]; ok {
			dot += pref.Val * featureVal
		}
	}
	for _, val := range features {
		normFeatures += val * val
	}

	if normPrefs == 0 || normFeatures == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normPrefs) * math.Sqrt(normFeatures))
}

// HaversineMeters 用 Haversine 公式计算两个坐标间的距离（米）。
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371000 // 米

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// clamp 把 v 钳制到 [lo, hi]。
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
