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

// 评价折算的交互信号：3 星及以上视为正向。
const (
	SignalReviewPositive = 2.5
	SignalReviewNegative = -2.5
)

var (
	// ErrReviewNotFound 表示目标评价不存在。
	ErrReviewNotFound = errors.New("评价不存在")
	// ErrNotReviewOwner 表示当前用户无权操作该评价。
	ErrNotReviewOwner = errors.New("无权操作他人的评价")
	// ErrInvalidRating 表示评分超出 1~5 的范围。
	ErrInvalidRating = errors.New("评分必须在 1~5 之间")
)

// ReviewUpdate 描述对一条评价的局部修改，nil 字段表示保持原值。
type ReviewUpdate struct {
	Rating             *int
	Comment            *string
	Price              *float64
	WaitingTimeMinutes *int

	IsVegan      *model.TriState
	IsHalal      *model.TriState
	IsVegetarian *model.TriState
	IsSpicy      *model.TriState
	IsGlutenFree *model.TriState
	IsDairyFree  *model.TriState
	IsNutFree    *model.TriState
}

// ReviewService 定义了菜品评价的业务接口。
type ReviewService interface {
	// CreateReview 创建评价，并异步触发该菜品的特征重算与用户偏好更新。
	CreateReview(ctx context.Context, review *model.MealReview) error
	// UpdateReview 修改当前用户自己的评价，并异步触发菜品特征重算；
	// 评分发生变化时按新评分再投递一次偏好更新。
	UpdateReview(ctx context.Context, userID, reviewID uint, patch *ReviewUpdate) (*model.MealReview, error)
	// DeleteReview 删除当前用户自己的评价，并异步触发菜品特征重算。
	// 偏好向量不做回滚，历史交互的影响保留。
	DeleteReview(ctx context.Context, userID, reviewID uint) error
}

// reviewService 是 ReviewService 接口的实现。
type reviewService struct {
	reviewRepo repository.ReviewRepository
	mealRepo   repository.MealRepository
}

// NewReviewService 创建一个新的 ReviewService 实例。
func NewReviewService(reviewRepo repository.ReviewRepository, mealRepo repository.MealRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, mealRepo: mealRepo}
}

// ReviewSignal 把评分折算为交互信号强度。
func ReviewSignal(rating int) float64 {
	if rating > 2 {
		return SignalReviewPositive
	}
	return SignalReviewNegative
}

// CreateReview 创建一条评价。
func (s *reviewService) CreateReview(ctx context.Context, review *model.MealReview) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}
	if _, err := s.mealRepo.FindByID(review.MealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return err
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return err
	}

	s.produce(tasks.RecTask{Kind: tasks.TaskRecomputeMeal, MealID: review.MealID})
	s.produce(tasks.RecTask{
		Kind:   tasks.TaskInteraction,
		UserID: review.UserID,
		MealID: review.MealID,
		Signal: ReviewSignal(review.Rating),
	})
	return nil
}

// UpdateReview 修改一条评价，只有评价作者可以修改。
func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID uint, patch *ReviewUpdate) (*model.MealReview, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	if patch.Rating != nil {
		if *patch.Rating < 1 || *patch.Rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		review.Comment = *patch.Comment
	}
	if patch.Price != nil {
		review.Price = patch.Price
	}
	if patch.WaitingTimeMinutes != nil {
		review.WaitingTimeMinutes = patch.WaitingTimeMinutes
	}
	if patch.IsVegan != nil {
		review.IsVegan = *patch.IsVegan
	}
	if patch.IsHalal != nil {
		review.IsHalal = *patch.IsHalal
	}
	if patch.IsVegetarian != nil {
		review.IsVegetarian = *patch.IsVegetarian
	}
	if patch.IsSpicy != nil {
		review.IsSpicy = *patch.IsSpicy
	}
	if patch.IsGlutenFree != nil {
		review.IsGlutenFree = *patch.IsGlutenFree
	}
	if patch.IsDairyFree != nil {
		review.IsDairyFree = *patch.IsDairyFree
	}
	if patch.IsNutFree != nil {
		review.IsNutFree = *patch.IsNutFree
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	s.produce(tasks.RecTask{Kind: tasks.TaskRecomputeMeal, MealID: review.MealID})
	if patch.Rating != nil {
		s.produce(tasks.RecTask{
			Kind:   tasks.TaskInteraction,
			UserID: review.UserID,
			MealID: review.MealID,
			Signal: ReviewSignal(review.Rating),
		})
	}
	return review, nil
}

// DeleteReview 删除一条评价。
func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	s.produce(tasks.RecTask{Kind: tasks.TaskRecomputeMeal, MealID: review.MealID})
	return nil
}

// produce 投递后台任务，失败只记日志（尽力型，不影响请求）。
func (s *reviewService) produce(task tasks.RecTask) {
	if err := kafka.ProduceRecTask(task); err != nil {
		log.Errorf("投递推荐任务失败, key=%s: %v", task.Key(), err)
	}
}
