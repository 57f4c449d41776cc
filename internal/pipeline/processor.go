// Package pipeline 定义了推荐引擎后台任务的处理流程。
package pipeline

import (
	"context"
	"fmt"

	"brika-go/internal/service"
	"brika-go/pkg/log"
	"brika-go/pkg/tasks"
)

// Processor 封装了推荐任务处理的所有依赖和逻辑。
// 引擎内部的失败只记日志并吞掉：这类任务是尽力型的，
// 丢失一次更新会被下一次交互自然补偿，不值得重试。
type Processor struct {
	featureService    service.FeatureService
	preferenceService service.PreferenceService
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(featureService service.FeatureService, preferenceService service.PreferenceService) *Processor {
	return &Processor{
		featureService:    featureService,
		preferenceService: preferenceService,
	}
}

// Process 是推荐任务处理的主函数，按任务类型分发到对应的引擎服务。
// 只有无法识别的任务类型会返回错误（说明生产端和消费端版本不一致）。
func (p *Processor) Process(ctx context.Context, task tasks.RecTask) error {
	switch task.Kind {
	case tasks.TaskRecomputeMeal:
		if err := p.featureService.RecomputeMealFeatures(ctx, task.MealID); err != nil {
			log.Errorf("[Processor] 菜品特征重算失败, mealID=%d: %v", task.MealID, err)
		}
		return nil
	case tasks.TaskRecomputePlace:
		if err := p.featureService.RecomputePlaceMealsFeatures(ctx, task.PlaceID); err != nil {
			log.Errorf("[Processor] 餐厅菜品特征重算失败, placeID=%d: %v", task.PlaceID, err)
		}
		return nil
	case tasks.TaskInteraction:
		if err := p.preferenceService.ApplyInteraction(ctx, task.UserID, task.Signal, task.MealID); err != nil {
			log.Errorf("[Processor] 用户偏好更新失败, userID=%d, mealID=%d: %v", task.UserID, task.MealID, err)
		}
		return nil
	}
	return fmt.Errorf("未知的任务类型: %s", task.Kind)
}
