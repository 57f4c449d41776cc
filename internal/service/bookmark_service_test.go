package service

import (
	"context"
	"errors"
	"testing"

	"brika-go/internal/model"
)

func newBookmarkService() (BookmarkService, *fakeBookmarkRepo) {
	mealRepo := newFakeMealRepo()
	mealRepo.meals[1] = &model.Meal{ID: 1}
	placeRepo := newFakePlaceRepo()
	placeRepo.places[10] = &model.Place{ID: 10}
	bookmarkRepo := newFakeBookmarkRepo()
	return NewBookmarkService(bookmarkRepo, mealRepo, placeRepo), bookmarkRepo
}

func TestBookmarkMeal(t *testing.T) {
	svc, repo := newBookmarkService()
	ctx := context.Background()

	if _, err := svc.BookmarkMeal(ctx, 7, 42); !errors.Is(err, ErrMealNotFound) {
		t.Errorf("缺失菜品: got %v, want ErrMealNotFound", err)
	}

	bookmark, err := svc.BookmarkMeal(ctx, 7, 1)
	if err != nil {
		t.Fatalf("BookmarkMeal: %v", err)
	}
	if bookmark.UserID != 7 || bookmark.MealID != 1 {
		t.Errorf("收藏记录: %+v", bookmark)
	}

	// 重复收藏同一菜品必须报冲突
	if _, err := svc.BookmarkMeal(ctx, 7, 1); !errors.Is(err, ErrBookmarkExists) {
		t.Errorf("重复收藏: got %v, want ErrBookmarkExists", err)
	}

	// 其他用户收藏同一菜品不受影响
	if _, err := svc.BookmarkMeal(ctx, 8, 1); err != nil {
		t.Errorf("他人收藏: %v", err)
	}
	if len(repo.mealBookmarks) != 2 {
		t.Errorf("收藏数量: %d", len(repo.mealBookmarks))
	}
}

func TestUnbookmarkMeal(t *testing.T) {
	svc, repo := newBookmarkService()
	ctx := context.Background()

	if err := svc.UnbookmarkMeal(ctx, 7, 1); !errors.Is(err, ErrBookmarkNotFound) {
		t.Errorf("缺失收藏: got %v, want ErrBookmarkNotFound", err)
	}

	if _, err := svc.BookmarkMeal(ctx, 7, 1); err != nil {
		t.Fatalf("BookmarkMeal: %v", err)
	}
	if err := svc.UnbookmarkMeal(ctx, 7, 1); err != nil {
		t.Errorf("UnbookmarkMeal: %v", err)
	}
	if len(repo.mealBookmarks) != 0 {
		t.Errorf("收藏未删除: %+v", repo.mealBookmarks)
	}

	// 取消后可以再次收藏
	if _, err := svc.BookmarkMeal(ctx, 7, 1); err != nil {
		t.Errorf("再次收藏: %v", err)
	}
}

func TestBookmarkPlace(t *testing.T) {
	svc, _ := newBookmarkService()
	ctx := context.Background()

	if _, err := svc.BookmarkPlace(ctx, 7, 99); !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("缺失餐厅: got %v, want ErrPlaceNotFound", err)
	}

	if _, err := svc.BookmarkPlace(ctx, 7, 10); err != nil {
		t.Fatalf("BookmarkPlace: %v", err)
	}
	if _, err := svc.BookmarkPlace(ctx, 7, 10); !errors.Is(err, ErrBookmarkExists) {
		t.Errorf("重复收藏: got %v, want ErrBookmarkExists", err)
	}

	if err := svc.UnbookmarkPlace(ctx, 7, 10); err != nil {
		t.Errorf("UnbookmarkPlace: %v", err)
	}
	if err := svc.UnbookmarkPlace(ctx, 7, 10); !errors.Is(err, ErrBookmarkNotFound) {
		t.Errorf("重复取消: got %v, want ErrBookmarkNotFound", err)
	}
}

func TestListBookmarks(t *testing.T) {
	svc, _ := newBookmarkService()
	ctx := context.Background()

	if _, err := svc.BookmarkMeal(ctx, 7, 1); err != nil {
		t.Fatalf("BookmarkMeal: %v", err)
	}
	if _, err := svc.BookmarkPlace(ctx, 7, 10); err != nil {
		t.Fatalf("BookmarkPlace: %v", err)
	}

	meals, err := svc.ListMealBookmarks(ctx, 7)
	if err != nil || len(meals) != 1 || meals[0].MealID != 1 {
		t.Errorf("菜品收藏列表: %+v, err=%v", meals, err)
	}
	places, err := svc.ListPlaceBookmarks(ctx, 7)
	if err != nil || len(places) != 1 || places[0].PlaceID != 10 {
		t.Errorf("餐厅收藏列表: %+v, err=%v", places, err)
	}

	// 其他用户的列表为空
	meals, err = svc.ListMealBookmarks(ctx, 8)
	if err != nil || len(meals) != 0 {
		t.Errorf("他人菜品收藏列表: %+v, err=%v", meals, err)
	}
}
