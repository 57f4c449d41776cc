package service

import (
	"context"
	"errors"

	"brika-go/internal/model"
	"brika-go/internal/repository"
	"brika-go/pkg/kafka"
	"brika-go/pkg/log"
	"brika-go/pkg/tasks"

	"gorm.io/gorm"
)

// 交互信号强度：喜欢的滑动为正向满格，不喜欢的负向略弱。
const (
	SignalSwipeLiked    = 1.0
	SignalSwipeDisliked = -0.8
)

// ErrMealNotFound 表示目标菜品不存在。
var ErrMealNotFound = errors.New("菜品不存在")

// SwipeService 定义了滑动交互的业务接口。
type SwipeService interface {
	// CreateSwipe 记录一次滑动并异步触发偏好更新。
	// 同一会话内重复滑动同一菜品时返回 false 且不产生副作用。
	CreateSwipe(ctx context.Context, userID, mealID uint, sessionID string, liked bool) (bool, error)
}

// swipeService 是 SwipeService 接口的实现。
type swipeService struct {
	swipeRepo repository.SwipeRepository
	mealRepo  repository.MealRepository
}

// NewSwipeService 创建一个新的 SwipeService 实例。
func NewSwipeService(swipeRepo repository.SwipeRepository, mealRepo repository.MealRepository) SwipeService {
	return &swipeService{swipeRepo: swipeRepo, mealRepo: mealRepo}
}

// CreateSwipe 记录一次滑动。
func (s *swipeService) CreateSwipe(ctx context.Context, userID, mealID uint, sessionID string, liked bool) (bool, error) {
	if _, err := s.mealRepo.FindByID(mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrMealNotFound
		}
		return false, err
	}

	exists, err := s.swipeRepo.Exists(userID, mealID, sessionID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	swipe := &model.Swipe{
		UserID:    userID,
		MealID:    mealID,
		SessionID: sessionID,
		Liked:     liked,
	}
	if err := s.swipeRepo.Create(swipe); err != nil {
		return false, err
	}

	// 落库后异步折算偏好；投递失败只记日志，不影响本次请求
	signal := SignalSwipeLiked
	if !liked {
		signal = SignalSwipeDisliked
	}
	if err := kafka.ProduceRecTask(tasks.RecTask{
		Kind:   tasks.TaskInteraction,
		UserID: userID,
		MealID: mealID,
		Signal: signal,
	}); err != nil {
		log.Errorf("投递滑动交互任务失败, userID=%d, mealID=%d: %v", userID, mealID, err)
	}

	return true, nil
}
