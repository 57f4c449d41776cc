package service

import (
	"context"

	"brika-go/internal/model"
	"brika-go/internal/repository"

	"gorm.io/gorm"
)

// 本文件是 service 层测试共用的内存假仓库，
// 行为与 GORM 实现保持一致：未命中返回 gorm.ErrRecordNotFound。

type fakeMealRepo struct {
	meals  map[uint]*model.Meal
	recent []model.Meal
	total  int64
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{meals: map[uint]*model.Meal{}}
}

func (f *fakeMealRepo) Create(meal *model.Meal) error {
	f.meals[meal.ID] = meal
	return nil
}

func (f *fakeMealRepo) Update(meal *model.Meal) error {
	f.meals[meal.ID] = meal
	return nil
}

func (f *fakeMealRepo) Delete(mealID uint) error {
	delete(f.meals, mealID)
	return nil
}

func (f *fakeMealRepo) FindByID(mealID uint) (*model.Meal, error) {
	meal, ok := f.meals[mealID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return meal, nil
}

func (f *fakeMealRepo) FindByIDs(mealIDs []uint) ([]model.Meal, error) {
	out := make([]model.Meal, 0, len(mealIDs))
	for _, id := range mealIDs {
		if meal, ok := f.meals[id]; ok {
			out = append(out, *meal)
		}
	}
	return out, nil
}

func (f *fakeMealRepo) CountAll() (int64, error) {
	return f.total, nil
}

func (f *fakeMealRepo) FindRecent(limit int, withImages bool, excludeInteractedBy uint) ([]model.Meal, error) {
	if limit > len(f.recent) {
		limit = len(f.recent)
	}
	return f.recent[:limit], nil
}

type fakeReviewRepo struct {
	byMeal map[uint][]model.MealReview
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byMeal: map[uint][]model.MealReview{}}
}

func (f *fakeReviewRepo) Create(review *model.MealReview) error {
	f.byMeal[review.MealID] = append(f.byMeal[review.MealID], *review)
	return nil
}

func (f *fakeReviewRepo) Update(review *model.MealReview) error {
	reviews := f.byMeal[review.MealID]
	for i := range reviews {
		if reviews[i].ID == review.ID {
			reviews[i] = *review
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) Delete(reviewID uint) error { return nil }

func (f *fakeReviewRepo) FindByID(reviewID uint) (*model.MealReview, error) {
	for _, reviews := range f.byMeal {
		for i := range reviews {
			if reviews[i].ID == reviewID {
				return &reviews[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) FindByMeal(mealID uint) ([]model.MealReview, error) {
	return f.byMeal[mealID], nil
}

type fakePlaceRepo struct {
	places  map[uint]*model.Place
	mealIDs map[uint][]uint
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: map[uint]*model.Place{}, mealIDs: map[uint][]uint{}}
}

func (f *fakePlaceRepo) Create(place *model.Place) error {
	f.places[place.ID] = place
	return nil
}

func (f *fakePlaceRepo) Update(place *model.Place) error {
	f.places[place.ID] = place
	return nil
}

func (f *fakePlaceRepo) FindByID(placeID uint) (*model.Place, error) {
	place, ok := f.places[placeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return place, nil
}

func (f *fakePlaceRepo) MealIDs(placeID uint) ([]uint, error) {
	return f.mealIDs[placeID], nil
}

// fakeFeatureRepo 记录 FindCandidates 的调用参数，供探索/放宽逻辑断言。
type fakeFeatureRepo struct {
	features map[uint]*model.MealFeatures
	prefs    map[uint]*model.UserPreferences

	candidates      []model.MealFeatures
	boxedCandidates []model.MealFeatures
	coords          map[uint]repository.Coord

	findBoxes      []*repository.GeoBox
	withImagesSeen []bool
}

func newFakeFeatureRepo() *fakeFeatureRepo {
	return &fakeFeatureRepo{
		features: map[uint]*model.MealFeatures{},
		prefs:    map[uint]*model.UserPreferences{},
		coords:   map[uint]repository.Coord{},
	}
}

func (f *fakeFeatureRepo) GetMealFeatures(ctx context.Context, mealID uint) (*model.MealFeatures, error) {
	features, ok := f.features[mealID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return features, nil
}

func (f *fakeFeatureRepo) SaveMealFeatures(ctx context.Context, features *model.MealFeatures) error {
	f.features[features.MealID] = features
	return nil
}

func (f *fakeFeatureRepo) DeleteMealFeatures(ctx context.Context, mealID uint) error {
	delete(f.features, mealID)
	return nil
}

func (f *fakeFeatureRepo) GetUserPreferences(userID uint) (*model.UserPreferences, error) {
	prefs, ok := f.prefs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return prefs, nil
}

func (f *fakeFeatureRepo) SaveUserPreferences(prefs *model.UserPreferences) error {
	f.prefs[prefs.UserID] = prefs
	return nil
}

func (f *fakeFeatureRepo) FindCandidates(userID uint, withImages bool, box *repository.GeoBox) ([]model.MealFeatures, error) {
	f.findBoxes = append(f.findBoxes, box)
	f.withImagesSeen = append(f.withImagesSeen, withImages)
	if box != nil {
		return f.boxedCandidates, nil
	}
	return f.candidates, nil
}

func (f *fakeFeatureRepo) PlaceCoords(mealIDs []uint) (map[uint]repository.Coord, error) {
	out := make(map[uint]repository.Coord, len(mealIDs))
	for _, id := range mealIDs {
		if coord, ok := f.coords[id]; ok {
			out[id] = coord
		}
	}
	return out, nil
}

type fakeSwipeRepo struct {
	swipes []model.Swipe
}

func (f *fakeSwipeRepo) Create(swipe *model.Swipe) error {
	f.swipes = append(f.swipes, *swipe)
	return nil
}

func (f *fakeSwipeRepo) Exists(userID, mealID uint, sessionID string) (bool, error) {
	for i := range f.swipes {
		if f.swipes[i].UserID == userID && f.swipes[i].MealID == mealID && f.swipes[i].SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

type fakeBookmarkRepo struct {
	mealBookmarks  []model.MealBookmark
	placeBookmarks []model.PlaceBookmark
	nextID         uint
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{nextID: 1}
}

func (f *fakeBookmarkRepo) CreateMealBookmark(bookmark *model.MealBookmark) error {
	bookmark.ID = f.nextID
	f.nextID++
	f.mealBookmarks = append(f.mealBookmarks, *bookmark)
	return nil
}

func (f *fakeBookmarkRepo) FindMealBookmark(userID, mealID uint) (*model.MealBookmark, error) {
	for i := range f.mealBookmarks {
		if f.mealBookmarks[i].UserID == userID && f.mealBookmarks[i].MealID == mealID {
			return &f.mealBookmarks[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookmarkRepo) ListMealBookmarks(userID uint) ([]model.MealBookmark, error) {
	var out []model.MealBookmark
	for i := range f.mealBookmarks {
		if f.mealBookmarks[i].UserID == userID {
			out = append(out, f.mealBookmarks[i])
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) DeleteMealBookmark(userID, mealID uint) error {
	kept := f.mealBookmarks[:0]
	for i := range f.mealBookmarks {
		if f.mealBookmarks[i].UserID != userID || f.mealBookmarks[i].MealID != mealID {
			kept = append(kept, f.mealBookmarks[i])
		}
	}
	f.mealBookmarks = kept
	return nil
}

func (f *fakeBookmarkRepo) CreatePlaceBookmark(bookmark *model.PlaceBookmark) error {
	bookmark.ID = f.nextID
	f.nextID++
	f.placeBookmarks = append(f.placeBookmarks, *bookmark)
	return nil
}

func (f *fakeBookmarkRepo) FindPlaceBookmark(userID, placeID uint) (*model.PlaceBookmark, error) {
	for i := range f.placeBookmarks {
		if f.placeBookmarks[i].UserID == userID && f.placeBookmarks[i].PlaceID == placeID {
			return &f.placeBookmarks[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookmarkRepo) ListPlaceBookmarks(userID uint) ([]model.PlaceBookmark, error) {
	var out []model.PlaceBookmark
	for i := range f.placeBookmarks {
		if f.placeBookmarks[i].UserID == userID {
			out = append(out, f.placeBookmarks[i])
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) DeletePlaceBookmark(userID, placeID uint) error {
	kept := f.placeBookmarks[:0]
	for i := range f.placeBookmarks {
		if f.placeBookmarks[i].UserID != userID || f.placeBookmarks[i].PlaceID != placeID {
			kept = append(kept, f.placeBookmarks[i])
		}
	}
	f.placeBookmarks = kept
	return nil
}
