package service

import (
	"context"
	"errors"

	"brika-go/internal/model"
	"brika-go/internal/repository"

	"gorm.io/gorm"
)

var (
	// ErrBookmarkExists 表示该收藏已存在。
	ErrBookmarkExists = errors.New("收藏已存在")
	// ErrBookmarkNotFound 表示目标收藏不存在。
	ErrBookmarkNotFound = errors.New("收藏不存在")
)

// BookmarkService 定义了菜品/餐厅收藏的业务接口。
// 收藏只是用户侧的标记，不参与偏好折算。
type BookmarkService interface {
	BookmarkMeal(ctx context.Context, userID, mealID uint) (*model.MealBookmark, error)
	ListMealBookmarks(ctx context.Context, userID uint) ([]model.MealBookmark, error)
	UnbookmarkMeal(ctx context.Context, userID, mealID uint) error

	BookmarkPlace(ctx context.Context, userID, placeID uint) (*model.PlaceBookmark, error)
	ListPlaceBookmarks(ctx context.Context, userID uint) ([]model.PlaceBookmark, error)
	UnbookmarkPlace(ctx context.Context, userID, placeID uint) error
}

// bookmarkService 是 BookmarkService 接口的实现。
type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	mealRepo     repository.MealRepository
	placeRepo    repository.PlaceRepository
}

// NewBookmarkService 创建一个新的 BookmarkService 实例。
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, mealRepo repository.MealRepository, placeRepo repository.PlaceRepository) BookmarkService {
	return &bookmarkService{
		bookmarkRepo: bookmarkRepo,
		mealRepo:     mealRepo,
		placeRepo:    placeRepo,
	}
}

// BookmarkMeal 收藏一道菜品。
func (s *bookmarkService) BookmarkMeal(ctx context.Context, userID, mealID uint) (*model.MealBookmark, error) {
	if _, err := s.mealRepo.FindByID(mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	_, err := s.bookmarkRepo.FindMealBookmark(userID, mealID)
	if err == nil {
		return nil, ErrBookmarkExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bookmark := &model.MealBookmark{UserID: userID, MealID: mealID}
	if err := s.bookmarkRepo.CreateMealBookmark(bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// ListMealBookmarks 返回该用户的全部菜品收藏。
func (s *bookmarkService) ListMealBookmarks(ctx context.Context, userID uint) ([]model.MealBookmark, error) {
	return s.bookmarkRepo.ListMealBookmarks(userID)
}

// UnbookmarkMeal 取消对一道菜品的收藏。
func (s *bookmarkService) UnbookmarkMeal(ctx context.Context, userID, mealID uint) error {
	if _, err := s.bookmarkRepo.FindMealBookmark(userID, mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}
	return s.bookmarkRepo.DeleteMealBookmark(userID, mealID)
}

// BookmarkPlace 收藏一家餐厅。
func (s *bookmarkService) BookmarkPlace(ctx context.Context, userID, placeID uint) (*model.PlaceBookmark, error) {
	if _, err := s.placeRepo.FindByID(placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	_, err := s.bookmarkRepo.FindPlaceBookmark(userID, placeID)
	if err == nil {
		return nil, ErrBookmarkExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bookmark := &model.PlaceBookmark{UserID: userID, PlaceID: placeID}
	if err := s.bookmarkRepo.CreatePlaceBookmark(bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// ListPlaceBookmarks 返回该用户的全部餐厅收藏。
func (s *bookmarkService) ListPlaceBookmarks(ctx context.Context, userID uint) ([]model.PlaceBookmark, error) {
	return s.bookmarkRepo.ListPlaceBookmarks(userID)
}

// UnbookmarkPlace 取消对一家餐厅的收藏。
func (s *bookmarkService) UnbookmarkPlace(ctx context.Context, userID, placeID uint) error {
	if _, err := s.bookmarkRepo.FindPlaceBookmark(userID, placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}
	return s.bookmarkRepo.DeletePlaceBookmark(userID, placeID)
}
