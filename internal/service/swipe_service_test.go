package service

import (
	"context"
	"errors"
	"testing"

	"brika-go/internal/model"
)

func TestCreateSwipe(t *testing.T) {
	mealRepo := newFakeMealRepo()
	mealRepo.meals[1] = &model.Meal{ID: 1}
	swipeRepo := &fakeSwipeRepo{}
	svc := NewSwipeService(swipeRepo, mealRepo)
	ctx := context.Background()

	created, err := svc.CreateSwipe(ctx, 7, 1, "session-a", true)
	if err != nil {
		t.Fatalf("CreateSwipe: %v", err)
	}
	if !created {
		t.Error("首次滑动应返回 created=true")
	}
	if len(swipeRepo.swipes) != 1 || !swipeRepo.swipes[0].Liked {
		t.Errorf("滑动未落库: %+v", swipeRepo.swipes)
	}

	// 同一会话内重复滑动同一菜品：静默忽略，不再落库
	created, err = svc.CreateSwipe(ctx, 7, 1, "session-a", false)
	if err != nil {
		t.Fatalf("重复滑动: %v", err)
	}
	if created {
		t.Error("重复滑动应返回 created=false")
	}
	if len(swipeRepo.swipes) != 1 {
		t.Errorf("重复滑动不应新增记录: %d 条", len(swipeRepo.swipes))
	}

	// 新会话里可以再次滑动同一菜品
	created, err = svc.CreateSwipe(ctx, 7, 1, "session-b", false)
	if err != nil {
		t.Fatalf("新会话滑动: %v", err)
	}
	if !created || len(swipeRepo.swipes) != 2 {
		t.Errorf("新会话滑动应落库: created=%v, %d 条", created, len(swipeRepo.swipes))
	}
}

func TestCreateSwipeMealMissing(t *testing.T) {
	svc := NewSwipeService(&fakeSwipeRepo{}, newFakeMealRepo())

	_, err := svc.CreateSwipe(context.Background(), 7, 42, "session-a", true)
	if !errors.Is(err, ErrMealNotFound) {
		t.Errorf("got %v, want ErrMealNotFound", err)
	}
}
