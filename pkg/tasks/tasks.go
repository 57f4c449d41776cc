// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

import "fmt"

// TaskKind 标识推荐引擎后台任务的类型。
type TaskKind string

const (
	// TaskRecomputeMeal 重算单个菜品的特征向量。
	TaskRecomputeMeal TaskKind = "recompute_meal"
	// TaskRecomputePlace 重算某个餐厅下所有菜品的特征向量（如菜系变更后）。
	TaskRecomputePlace TaskKind = "recompute_place"
	// TaskInteraction 将一次滑动/评价交互折算进用户偏好向量。
	TaskInteraction TaskKind = "interaction"
)

// RecTask represents the data structure for a recommendation engine job.
// 由 API 层在评价/滑动等变更提交后发送，消费端驱动特征重算与偏好更新。
type RecTask struct {
	Kind    TaskKind `json:"kind"`
	MealID  uint     `json:"meal_id,omitempty"`
	PlaceID uint     `json:"place_id,omitempty"`
	UserID  uint     `json:"user_id,omitempty"`
	Signal  float64  `json:"signal,omitempty"`
}

// Key 返回任务的去重/计数键，用于消费端的失败计数。
func (t RecTask) Key() string {
	switch t.Kind {
	case TaskRecomputePlace:
		return fmt.Sprintf("%s:%d", t.Kind, t.PlaceID)
	case TaskInteraction:
		return fmt.Sprintf("%s:%d:%d", t.Kind, t.UserID, t.MealID)
	default:
		return fmt.Sprintf("%s:%d", t.Kind, t.MealID)
	}
}
